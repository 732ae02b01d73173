package form

import (
	"encoding/json"
	"fmt"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

// snapshot is the serialized shape of a form, grouped by value type so
// restoring does not have to guess types out of raw JSON.
type snapshot struct {
	Step        int                         `json:"step"`
	Strings     map[string]string           `json:"strings,omitempty"`
	Bools       map[string]bool             `json:"bools,omitempty"`
	Ints        map[string]int              `json:"ints,omitempty"`
	Floats      map[string]float64          `json:"floats,omitempty"`
	Lookups     map[string]model.LookupItem `json:"lookups,omitempty"`
	Priority    model.CasePriority          `json:"priority,omitempty"`
	Litigants   []model.Litigant            `json:"litigants,omitempty"`
	Consultants []model.Consultant          `json:"consultants,omitempty"`
	Tags        []string                    `json:"tags,omitempty"`
	Files       []model.PendingFile         `json:"files,omitempty"`
}

// Snapshot serializes the form for draft storage. Staged file contents
// are not included; only their paths, so a restored draft re-reads the
// files at submit time.
func (f *Form) Snapshot() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := snapshot{
		Step:    f.step,
		Strings: make(map[string]string),
		Bools:   make(map[string]bool),
		Ints:    make(map[string]int),
		Floats:  make(map[string]float64),
		Lookups: make(map[string]model.LookupItem),
		Tags:    append([]string(nil), f.tags...),
	}
	for _, file := range f.files {
		file.Content = nil
		snap.Files = append(snap.Files, file)
	}
	for name, value := range f.values {
		switch v := value.(type) {
		case string:
			snap.Strings[name] = v
		case bool:
			snap.Bools[name] = v
		case int:
			snap.Ints[name] = v
		case float64:
			snap.Floats[name] = v
		case model.LookupItem:
			snap.Lookups[name] = v
		case model.CasePriority:
			snap.Priority = v
		case []model.Litigant:
			snap.Litigants = append([]model.Litigant(nil), v...)
		case []model.Consultant:
			snap.Consultants = append([]model.Consultant(nil), v...)
		default:
			return nil, fmt.Errorf("field %s has unsnapshotable type %T", name, value)
		}
	}
	return json.Marshal(snap)
}

// Restore replaces the form state with a stored snapshot.
func (f *Form) Restore(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode draft snapshot: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = snap.Step
	f.values = make(map[string]interface{})
	f.errors = make(map[string]string)
	for name, v := range snap.Strings {
		f.values[name] = v
	}
	for name, v := range snap.Bools {
		f.values[name] = v
	}
	for name, v := range snap.Ints {
		f.values[name] = v
	}
	for name, v := range snap.Floats {
		f.values[name] = v
	}
	for name, v := range snap.Lookups {
		f.values[name] = v
	}
	if snap.Priority != "" {
		f.values[FieldPriority] = snap.Priority
	}
	if len(snap.Litigants) > 0 {
		f.values[FieldLitigants] = snap.Litigants
	}
	if len(snap.Consultants) > 0 {
		f.values[FieldConsultants] = snap.Consultants
	}
	f.tags = append([]string(nil), snap.Tags...)
	f.files = append([]model.PendingFile(nil), snap.Files...)
	return nil
}
