package model

// CaseStatus is the enumerated lifecycle state of a legal case.
type CaseStatus string

const (
	StatusInProgress           CaseStatus = "IN_PROGRESS"
	StatusHaveFinalJudgment    CaseStatus = "HAVE_FINAL_JUDGMENT"
	StatusClosed               CaseStatus = "CLOSED"
	StatusSendBack             CaseStatus = "SEND_BACK"
	StatusHaveInitialJudgment  CaseStatus = "HAVE_INITIAL_JUDGMENT"
	StatusUnderReview          CaseStatus = "UNDER_REVIEW"
)

// AllStatuses lists every case state, in the order filters present them.
var AllStatuses = []CaseStatus{
	StatusInProgress,
	StatusUnderReview,
	StatusHaveInitialJudgment,
	StatusHaveFinalJudgment,
	StatusSendBack,
	StatusClosed,
}

// CasePriority is the backend's case priority enum.
type CasePriority string

const (
	PriorityLow    CasePriority = "LOW"
	PriorityMedium CasePriority = "MEDIUM"
	PriorityHigh   CasePriority = "HIGH"
	PriorityUrgent CasePriority = "URGENT"
)

// AllPriorities lists every priority, lowest first.
var AllPriorities = []CasePriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// CaseInformation carries the decision/financial/notice/grievance block of
// a case. Dates are timezone-naive ISO strings as the backend sends them.
type CaseInformation struct {
	ID                     int          `json:"id,omitempty"`
	DecisionNumber         *int         `json:"decisionNumber"`
	DecisionDate           *string      `json:"decisionDate"`
	NoticeNumber           *int         `json:"noticeNumber"`
	NoticeDate             *string      `json:"noticeDate"`
	InquiryNumber          *int         `json:"inquiryNumber"`
	InquiryDate            *string      `json:"inquiryDate"`
	CaseNumber             string       `json:"caseNumber"`
	ClosingDate            *string      `json:"closingDate,omitempty"`
	RepaymentAmount        *float64     `json:"repaymentAmount"`
	RepaymentDate          *string      `json:"repaymentDate"`
	GrievanceRequestNumber *int         `json:"grievanceRequestNumber"`
	GrievanceRequestDate   *string      `json:"grievanceRequestDate"`
	FineAmount             float64      `json:"fineAmount"`
	LossRatio              float64      `json:"lossRatio"`
	IsConfidential         bool         `json:"isConfidential"`
	ConsultantOpinion      string       `json:"consultantOpinion"`
	Priority               CasePriority `json:"priority"`
	AgainstName            string       `json:"againstName,omitempty"`
	ApplierName            string       `json:"applierName,omitempty"`
	Value                  *float64     `json:"value,omitempty"`
	CreatedDate            string       `json:"createdDate,omitempty"`
}

// CaseDetails is the read model for a persisted case. Owned by the
// backend; the client only renders it and invalidates its copy after any
// mutation.
type CaseDetails struct {
	ID                      int             `json:"id"`
	Name                    string          `json:"name"`
	Description             string          `json:"description"`
	IsAgainstStc            bool            `json:"isAgainstStc"`
	CaseFilingDate          string          `json:"caseFilingDate"`
	State                   CaseStatus      `json:"state"`
	AssignedConsultantName  string          `json:"assignedConsultantName"`
	AdditionalConsultantIDs []int           `json:"additionalConsultantIds"`
	CreatedDate             string          `json:"createdDate"`
	CreatedBy               string          `json:"createdBy"`
	CaseFolderID            *int            `json:"caseFolderId"`
	InternalClient          LookupItem      `json:"internalClient"`
	CaseType                LookupItem      `json:"caseType"`
	LawsuitType             LookupItem      `json:"lawsuitType"`
	SpecializedCourt        LookupItem      `json:"specializedCourt"`
	District                LookupItem      `json:"district"`
	City                    LookupItem      `json:"city"`
	CaseLevel               LookupItem      `json:"caseLevel"`
	Litigants               []Litigant      `json:"litigants"`
	CaseInformation         CaseInformation `json:"caseInformation"`
	Tags                    []string        `json:"tags"`
}

// CasePage is one page of the paginated case listing.
type CasePage struct {
	Content       []CaseDetails `json:"content"`
	TotalElements int           `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
	Number        int           `json:"number"`
	Size          int           `json:"size"`
}

// CaseNote is a note attached to a case.
type CaseNote struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	AuthorEmail string `json:"authorEmail"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
	IsPrivate   bool   `json:"isPrivate"`
}

// CaseDocument is a stored attachment of a case.
type CaseDocument struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
	FileType    string `json:"fileType"`
	UploadedBy  string `json:"uploadedBy"`
	UploadedAt  string `json:"uploadedAt"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"isPublic"`
}

// CaseTeamMember is a user assigned to work a case.
type CaseTeamMember struct {
	ID       int    `json:"id"`
	UserID   int    `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	AddedBy  string `json:"addedBy"`
	AddedAt  string `json:"addedAt"`
	IsActive bool   `json:"isActive"`
}

// CaseJudgement is a recorded judgement on a case.
type CaseJudgement struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	CourtName     string `json:"courtName"`
	JudgeName     string `json:"judgeName"`
	JudgementDate string `json:"judgementDate"`
	Outcome       string `json:"outcome"`
	Notes         string `json:"notes,omitempty"`
	CreatedBy     string `json:"createdBy"`
	CreatedAt     string `json:"createdAt"`
}

// CaseEventType enumerates calendar event kinds.
type CaseEventType string

const (
	EventHearing  CaseEventType = "HEARING"
	EventMeeting  CaseEventType = "MEETING"
	EventDeadline CaseEventType = "DEADLINE"
	EventFiling   CaseEventType = "FILING"
	EventOther    CaseEventType = "OTHER"
)

// CaseEvent is a calendar entry attached to a case.
type CaseEvent struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	EventType   CaseEventType `json:"eventType"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate,omitempty"`
	Location    string        `json:"location,omitempty"`
	Attendees   []string      `json:"attendees,omitempty"`
	CreatedBy   string        `json:"createdBy"`
	CreatedAt   string        `json:"createdAt"`
	IsCompleted bool          `json:"isCompleted"`
}
