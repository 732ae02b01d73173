package model

// FilterCriteria narrows the case listing. Optional criteria are nil when
// unset (never empty strings) so query keys derived from a criteria value
// stay stable.
type FilterCriteria struct {
	Size          int     `json:"size"`
	Page          int     `json:"page"`
	SearchKey     *string `json:"searchKey"`
	Sort          *string `json:"sort"`
	FromPeriod    *string `json:"fromPeriod"`
	ToPeriod      *string `json:"toPeriod"`
	FinalResultID *string `json:"finalResultId"`
	LawsuitTypeID *string `json:"lawsuitTypeId"`
	CourtID       *string `json:"courtId"`
	State         *string `json:"state"`
}

// PageData is the pagination cursor. Filters reset it; the table can also
// advance it directly.
type PageData struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// DefaultPageSize is the listing page size the backend UI contract assumes.
const DefaultPageSize = 7

// DefaultFilterCriteria returns the documented default criteria object:
// given size (or DefaultPageSize when <= 0), page 1, all optional fields nil.
func DefaultFilterCriteria(size int) FilterCriteria {
	if size <= 0 {
		size = DefaultPageSize
	}
	return FilterCriteria{Size: size, Page: 1}
}
