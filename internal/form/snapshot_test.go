package form

import (
	"testing"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	f := New()
	fillDetailsStep(f)
	f.SetValue(FieldPriority, model.PriorityHigh)
	f.AddTag("spectrum")
	f.AddFile(model.PendingFile{Name: "ruling.pdf", Size: 42, Path: "/tmp/ruling.pdf", Content: []byte("bytes")})
	if err := f.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}

	data, err := f.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	restored := New()
	if err := restored.Restore(data); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if restored.Step() != StepInformation {
		t.Fatalf("step = %d, want %d", restored.Step(), StepInformation)
	}
	if got := restored.Value(FieldName); got != "Unlicensed spectrum use" {
		t.Fatalf("name = %v", got)
	}
	if got, _ := restored.Value(FieldDistrict).(model.LookupItem); got.ID != 7 {
		t.Fatalf("district = %+v", got)
	}
	if got, _ := restored.Value(FieldPriority).(model.CasePriority); got != model.PriorityHigh {
		t.Fatalf("priority = %v", got)
	}
	if got, _ := restored.Value(FieldLitigants).([]model.Litigant); len(got) != 1 || got[0].Name != "Contoso Telecom" {
		t.Fatalf("litigants = %+v", got)
	}
	if got := restored.Tags(); len(got) != 1 || got[0] != "spectrum" {
		t.Fatalf("tags = %v", got)
	}

	files := restored.Files()
	if len(files) != 1 || files[0].Name != "ruling.pdf" || files[0].Path != "/tmp/ruling.pdf" {
		t.Fatalf("files = %+v", files)
	}
	if files[0].Content != nil {
		t.Fatal("file content must not be serialized into drafts")
	}

	// The restored form submits like the original.
	if _, err := restored.BuildCaseRequest(); err != nil {
		t.Fatalf("BuildCaseRequest after restore: %v", err)
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	f := New()
	if err := f.Restore([]byte("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
}
