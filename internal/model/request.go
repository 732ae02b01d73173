package model

// Tag is a free-text label on a case request. The id is client-generated
// (unix millis + random) until the server assigns a real one on save.
type Tag struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

// PendingFile is a staged upload: it lives only in the creation form's
// transient state and is serialized into the multipart payload at submit.
type PendingFile struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	Path        string `json:"path,omitempty"` // local path for staged files
	Content     []byte `json:"-"`
	Description string `json:"description,omitempty"`
}

// SameAs reports duplicate identity for staged files (name + byte size).
func (p PendingFile) SameAs(other PendingFile) bool {
	return p.Name == other.Name && p.Size == other.Size
}

// CaseDocuments bundles the pending files of a case request.
type CaseDocuments struct {
	Files         []PendingFile `json:"files"`
	DeleteFileIDs []int         `json:"deleteFileIds,omitempty"`
}

// CaseRequestInformation is the write-side caseInformation block. Distinct
// from CaseInformation: no server-assigned fields, and the case number is
// copied in from the form's top-level number field.
type CaseRequestInformation struct {
	DecisionNumber         *int         `json:"decisionNumber"`
	DecisionDate           *string      `json:"decisionDate"`
	NoticeNumber           *int         `json:"noticeNumber"`
	NoticeDate             *string      `json:"noticeDate"`
	InquiryNumber          *int         `json:"inquiryNumber"`
	InquiryDate            *string      `json:"inquiryDate"`
	RepaymentAmount        *float64     `json:"repaymentAmount"`
	RepaymentDate          *string      `json:"repaymentDate"`
	GrievanceRequestNumber *int         `json:"grievanceRequestNumber"`
	GrievanceRequestDate   *string      `json:"grievanceRequestDate"`
	FineAmount             float64      `json:"fineAmount"`
	LossRatio              float64      `json:"lossRatio"`
	IsConfidential         bool         `json:"isConfidential"`
	ConsultantOpinion      string       `json:"consultantOpinion"`
	Priority               CasePriority `json:"priority"`
	CaseNumber             string       `json:"caseNumber"`
}

// CaseRequest is the write model assembled across the multi-step creation
// form and finalized exactly once at submit time. Classification fields
// carry whole lookup objects, not bare ids, matching the backend contract.
type CaseRequest struct {
	Name                  string                 `json:"name"`
	Description           string                 `json:"description"`
	IsAgainstStc          bool                   `json:"isAgainstStc"`
	CaseFilingDate        string                 `json:"caseFilingDate"`
	CaseLevel             LookupItem             `json:"caseLevel"`
	InternalClient        LookupItem             `json:"internalClient"`
	CaseType              LookupItem             `json:"caseType"`
	LawsuitType           LookupItem             `json:"lawsuitType"`
	SpecializedCourt      LookupItem             `json:"specializedCourt"`
	District              LookupItem             `json:"district"`
	City                  LookupItem             `json:"city"`
	Litigants             []Litigant             `json:"litigants"`
	AdditionalConsultants []Consultant           `json:"additionalConsultants"`
	Tags                  []Tag                  `json:"tags"`
	CaseInformation       CaseRequestInformation `json:"caseInformation"`
	Documents             CaseDocuments          `json:"documents"`
}
