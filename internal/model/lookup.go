package model

// LookupCategory identifies a reference-data category served by the
// lookups endpoint. Values match the backend's `types` query parameter.
type LookupCategory string

const (
	LookupJudgmentTypes  LookupCategory = "JUDGMENT_TYPES"
	LookupJudgmentResult LookupCategory = "JUDGMENT_RESULT"
	LookupCaseLevel      LookupCategory = "CASE_LEVEL"
	LookupInternalClient LookupCategory = "INTERNAL_CLIENT"
	LookupCaseType       LookupCategory = "CASE_TYPE"
	LookupCity           LookupCategory = "CITY"
	LookupDistrict       LookupCategory = "DISTRICT"
	LookupCaseCategory   LookupCategory = "CASE_CATEGORY"
	LookupCourts         LookupCategory = "COURTS"
	LookupStates         LookupCategory = "STATES"
)

// LookupItem is an immutable reference entity (court, district, case type...).
// The client never mutates items; a category's list is only replaced
// wholesale on refetch.
type LookupItem struct {
	ID          int          `json:"id"`
	NameEn      string       `json:"nameEn"`
	NameAr      string       `json:"nameAr"`
	Code        string       `json:"code,omitempty"`
	OrderNumber int          `json:"orderNumber"`
	Cities      []LookupItem `json:"cities,omitempty"` // districts embed their cities
}

// DisplayName resolves the localized name for a lookup item. Arabic falls
// back to the English name when the Arabic one is missing.
func (l LookupItem) DisplayName(lang string) string {
	if lang == "ar" && l.NameAr != "" {
		return l.NameAr
	}
	return l.NameEn
}

// Consultant is a search-result entity from the consultant/user search
// endpoints. Ephemeral: fetched per search, never cached across searches.
type Consultant struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	NameAr string `json:"nameAr,omitempty"`
	Email  string `json:"email,omitempty"`
}

// DisplayName resolves the localized name for a consultant.
func (c Consultant) DisplayName(lang string) string {
	if lang == "ar" && c.NameAr != "" {
		return c.NameAr
	}
	return c.Name
}

// Litigant is a search-result entity from the litigant search endpoint.
type Litigant struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	NameAr string `json:"nameAr,omitempty"`
	Email  string `json:"email,omitempty"`
}

// DisplayName resolves the localized name for a litigant.
func (l Litigant) DisplayName(lang string) string {
	if lang == "ar" && l.NameAr != "" {
		return l.NameAr
	}
	return l.Name
}
