package form

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

// Step indices of the creation form.
const (
	StepDetails     = 0 // identity, classification, parties
	StepInformation = 1 // caseInformation block, tags, attachments
	StepCount       = 2
)

// Field names. The same names appear as keys in the errors map.
const (
	FieldName             = "name"
	FieldNumber           = "number"
	FieldDescription      = "description"
	FieldIsAgainstStc     = "isAgainstStc"
	FieldCaseFilingDate   = "caseFilingDate"
	FieldInternalClient   = "internalClient"
	FieldCaseType         = "caseType"
	FieldLawsuitType      = "lawsuitType"
	FieldCaseLevel        = "caseLevel"
	FieldSpecializedCourt = "specializedCourt"
	FieldDistrict         = "district"
	FieldCity             = "city"
	FieldLitigants        = "litigants"
	FieldConsultants      = "additionalConsultants"
	FieldPriority         = "priority"
	FieldIsConfidential   = "isConfidential"
	FieldOpinion          = "consultantOpinion"
	FieldFineAmount       = "fineAmount"
	FieldLossRatio        = "lossRatio"
	FieldDecisionNumber   = "decisionNumber"
	FieldDecisionDate     = "decisionDate"
	FieldNoticeNumber     = "noticeNumber"
	FieldNoticeDate       = "noticeDate"
	FieldInquiryNumber    = "inquiryNumber"
	FieldInquiryDate      = "inquiryDate"
)

// stepFields lists which required fields gate each step. Moving forward
// validates only the current step; Submit validates all of them.
var stepFields = map[int][]string{
	StepDetails: {
		FieldName, FieldCaseFilingDate, FieldInternalClient, FieldCaseType,
		FieldLawsuitType, FieldCaseLevel, FieldSpecializedCourt,
		FieldDistrict, FieldCity, FieldLitigants,
	},
	StepInformation: {FieldPriority},
}

// Form is the state of one case creation flow: a value per field, the
// current step, and the transient tag and attachment lists. All methods
// are safe for concurrent use; the UI mutates it from the event loop
// while background work reads it.
type Form struct {
	mu     sync.Mutex
	step   int
	values map[string]interface{}
	errors map[string]string
	tags   []string
	files  []model.PendingFile
}

func New() *Form {
	return &Form{
		values: map[string]interface{}{
			FieldIsAgainstStc:   false,
			FieldIsConfidential: false,
			FieldPriority:       model.PriorityMedium,
		},
		errors: make(map[string]string),
	}
}

// SetValue stores one field value. Setting the district clears the city
// value: the city options belong to a different district now, but any
// other field keeps whatever the user already entered.
func (f *Form) SetValue(name string, value interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name == FieldDistrict {
		prev, _ := f.values[FieldDistrict].(model.LookupItem)
		next, _ := value.(model.LookupItem)
		if prev.ID != next.ID {
			delete(f.values, FieldCity)
		}
	}
	if value == nil {
		delete(f.values, name)
	} else {
		f.values[name] = value
	}
	delete(f.errors, name)
}

// Value returns the stored value of a field, nil if unset.
func (f *Form) Value(name string) interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

// Step returns the current step index.
func (f *Form) Step() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Next validates the current step and advances past it. On validation
// failure the step does not change and the field errors are recorded.
func (f *Form) Next() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if errs := f.validateSteps(f.step); len(errs) > 0 {
		return fmt.Errorf("step %d has %d invalid fields", f.step, len(errs))
	}
	if f.step < StepCount-1 {
		f.step++
	}
	return nil
}

// Prev moves back one step. Going back never validates; the user may
// leave a half-filled step to fix an earlier one.
func (f *Form) Prev() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step > 0 {
		f.step--
	}
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// AddTag appends a tag unless an equal value is already present.
// Leading and trailing space is trimmed; empty tags are dropped.
func (f *Form) AddTag(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.tags {
		if existing == value {
			return false
		}
	}
	f.tags = append(f.tags, value)
	return true
}

// RemoveTag drops a tag by value.
func (f *Form) RemoveTag(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.tags {
		if existing == value {
			f.tags = append(f.tags[:i], f.tags[i+1:]...)
			return
		}
	}
}

// Tags returns a copy of the tag list in insertion order.
func (f *Form) Tags() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tags...)
}

// AddFile stages an attachment unless one with the same name and size
// is already staged.
func (f *Form) AddFile(file model.PendingFile) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.files {
		if existing.SameAs(file) {
			return false
		}
	}
	f.files = append(f.files, file)
	return true
}

// RemoveFile drops a staged attachment by name.
func (f *Form) RemoveFile(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.files {
		if existing.Name == name {
			f.files = append(f.files[:i], f.files[i+1:]...)
			return
		}
	}
}

// Files returns a copy of the staged attachments.
func (f *Form) Files() []model.PendingFile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.PendingFile(nil), f.files...)
}

// BuildCaseRequest revalidates the whole form and assembles the write
// model. Tags get client-generated ids here, not earlier, so editing
// the tag list never burns ids. The case number entered on step one
// lands inside the caseInformation block.
func (f *Form) BuildCaseRequest() (model.CaseRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if errs := f.validateSteps(StepDetails, StepInformation); len(errs) > 0 {
		return model.CaseRequest{}, fmt.Errorf("form has %d invalid fields", len(errs))
	}

	req := model.CaseRequest{
		Name:             f.stringValue(FieldName),
		Description:      f.stringValue(FieldDescription),
		IsAgainstStc:     f.boolValue(FieldIsAgainstStc),
		CaseFilingDate:   f.stringValue(FieldCaseFilingDate),
		InternalClient:   f.lookupValue(FieldInternalClient),
		CaseType:         f.lookupValue(FieldCaseType),
		LawsuitType:      f.lookupValue(FieldLawsuitType),
		CaseLevel:        f.lookupValue(FieldCaseLevel),
		SpecializedCourt: f.lookupValue(FieldSpecializedCourt),
		District:         f.lookupValue(FieldDistrict),
		City:             f.lookupValue(FieldCity),
		CaseInformation: model.CaseRequestInformation{
			CaseNumber:        f.stringValue(FieldNumber),
			Priority:          f.priorityValue(),
			IsConfidential:    f.boolValue(FieldIsConfidential),
			ConsultantOpinion: f.stringValue(FieldOpinion),
			FineAmount:        f.floatValue(FieldFineAmount),
			LossRatio:         f.floatValue(FieldLossRatio),
			DecisionNumber:    f.intPtrValue(FieldDecisionNumber),
			DecisionDate:      f.stringPtrValue(FieldDecisionDate),
			NoticeNumber:      f.intPtrValue(FieldNoticeNumber),
			NoticeDate:        f.stringPtrValue(FieldNoticeDate),
			InquiryNumber:     f.intPtrValue(FieldInquiryNumber),
			InquiryDate:       f.stringPtrValue(FieldInquiryDate),
		},
		Documents: model.CaseDocuments{Files: append([]model.PendingFile(nil), f.files...)},
	}
	if litigants, ok := f.values[FieldLitigants].([]model.Litigant); ok {
		req.Litigants = append([]model.Litigant(nil), litigants...)
	}
	if consultants, ok := f.values[FieldConsultants].([]model.Consultant); ok {
		req.AdditionalConsultants = append([]model.Consultant(nil), consultants...)
	}
	for _, value := range f.tags {
		req.Tags = append(req.Tags, model.Tag{ID: newTagID(), Value: value})
	}
	return req, nil
}

// newTagID builds a client-side tag id: unix millis with a random
// suffix, unique enough until the server assigns real ids on save.
func newTagID() int64 {
	return time.Now().UnixMilli()*1000 + rand.Int63n(1000)
}

// validateSteps checks the required fields of the given steps and
// replaces the error entries for those fields. Callers hold f.mu.
func (f *Form) validateSteps(steps ...int) map[string]string {
	errs := make(map[string]string)
	for _, step := range steps {
		for _, name := range stepFields[step] {
			if msg := f.validateField(name); msg != "" {
				errs[name] = msg
				f.errors[name] = msg
			} else {
				delete(f.errors, name)
			}
		}
	}
	return errs
}

func (f *Form) validateField(name string) string {
	switch name {
	case FieldName, FieldCaseFilingDate:
		if strings.TrimSpace(f.stringValue(name)) == "" {
			return "required"
		}
	case FieldInternalClient, FieldCaseType, FieldLawsuitType,
		FieldCaseLevel, FieldSpecializedCourt, FieldDistrict, FieldCity:
		if f.lookupValue(name).ID == 0 {
			return "required"
		}
	case FieldLitigants:
		litigants, _ := f.values[FieldLitigants].([]model.Litigant)
		if len(litigants) == 0 {
			return "at least one litigant is required"
		}
	case FieldPriority:
		if f.priorityValue() == "" {
			return "required"
		}
	}
	return ""
}

func (f *Form) stringValue(name string) string {
	s, _ := f.values[name].(string)
	return s
}

func (f *Form) boolValue(name string) bool {
	b, _ := f.values[name].(bool)
	return b
}

func (f *Form) floatValue(name string) float64 {
	v, _ := f.values[name].(float64)
	return v
}

func (f *Form) lookupValue(name string) model.LookupItem {
	item, _ := f.values[name].(model.LookupItem)
	return item
}

func (f *Form) priorityValue() model.CasePriority {
	p, _ := f.values[FieldPriority].(model.CasePriority)
	return p
}

func (f *Form) intPtrValue(name string) *int {
	if v, ok := f.values[name].(int); ok {
		return &v
	}
	return nil
}

func (f *Form) stringPtrValue(name string) *string {
	if v, ok := f.values[name].(string); ok && v != "" {
		return &v
	}
	return nil
}
