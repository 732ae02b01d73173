package form

import (
	"testing"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

func fillDetailsStep(f *Form) {
	f.SetValue(FieldName, "Unlicensed spectrum use")
	f.SetValue(FieldNumber, "4721/2026")
	f.SetValue(FieldCaseFilingDate, "2026-02-11T00:00:00.000")
	f.SetValue(FieldInternalClient, model.LookupItem{ID: 3, NameEn: "Regulatory Affairs"})
	f.SetValue(FieldCaseType, model.LookupItem{ID: 5, NameEn: "Administrative"})
	f.SetValue(FieldLawsuitType, model.LookupItem{ID: 2, NameEn: "Against"})
	f.SetValue(FieldCaseLevel, model.LookupItem{ID: 1, NameEn: "First Instance"})
	f.SetValue(FieldSpecializedCourt, model.LookupItem{ID: 12, NameEn: "Administrative Court"})
	f.SetValue(FieldDistrict, model.LookupItem{ID: 7, NameEn: "Riyadh"})
	f.SetValue(FieldCity, model.LookupItem{ID: 71, NameEn: "Riyadh City"})
	f.SetValue(FieldLitigants, []model.Litigant{{ID: 9, Name: "Contoso Telecom"}})
}

func TestNextBlocksOnMissingRequiredFields(t *testing.T) {
	f := New()
	if err := f.Next(); err == nil {
		t.Fatal("empty first step must not advance")
	}
	if f.Step() != StepDetails {
		t.Fatalf("step = %d after failed Next, want %d", f.Step(), StepDetails)
	}
	if _, ok := f.Errors()[FieldName]; !ok {
		t.Fatal("missing name should be flagged")
	}

	fillDetailsStep(f)
	if err := f.Next(); err != nil {
		t.Fatalf("Next with complete step: %v", err)
	}
	if f.Step() != StepInformation {
		t.Fatalf("step = %d, want %d", f.Step(), StepInformation)
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("errors not cleared after valid Next: %v", f.Errors())
	}
}

func TestNextValidatesOnlyCurrentStep(t *testing.T) {
	f := New()
	fillDetailsStep(f)
	// Clear the priority default so step two is invalid while step one is
	// complete: advancing must still work.
	f.SetValue(FieldPriority, nil)
	if err := f.Next(); err != nil {
		t.Fatalf("Next must not validate fields of a later step: %v", err)
	}
}

func TestPrevNeverValidates(t *testing.T) {
	f := New()
	fillDetailsStep(f)
	if err := f.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	// Ruin the first step, then go back: allowed.
	f.SetValue(FieldName, "")
	f.Prev()
	if f.Step() != StepDetails {
		t.Fatalf("step = %d after Prev, want %d", f.Step(), StepDetails)
	}
	f.Prev()
	if f.Step() != StepDetails {
		t.Fatal("Prev at the first step must stay put")
	}
}

func TestDistrictChangeClearsCityOnly(t *testing.T) {
	f := New()
	fillDetailsStep(f)

	f.SetValue(FieldDistrict, model.LookupItem{ID: 8, NameEn: "Makkah"})
	if f.Value(FieldCity) != nil {
		t.Fatal("city value must be cleared when the district changes")
	}
	if f.Value(FieldName) == nil || f.Value(FieldCaseType) == nil {
		t.Fatal("district change must not touch unrelated fields")
	}

	// Re-setting the same district keeps the city.
	f.SetValue(FieldCity, model.LookupItem{ID: 81, NameEn: "Jeddah"})
	f.SetValue(FieldDistrict, model.LookupItem{ID: 8, NameEn: "Makkah"})
	if f.Value(FieldCity) == nil {
		t.Fatal("selecting the same district again must keep the city")
	}
}

func TestTagsAreDeduplicatedByValue(t *testing.T) {
	f := New()
	if !f.AddTag("urgent") {
		t.Fatal("first tag rejected")
	}
	if f.AddTag("urgent") {
		t.Fatal("duplicate tag accepted")
	}
	if f.AddTag("  urgent  ") {
		t.Fatal("whitespace-padded duplicate accepted")
	}
	if f.AddTag("") || f.AddTag("   ") {
		t.Fatal("empty tag accepted")
	}
	f.AddTag("spectrum")
	if got := f.Tags(); len(got) != 2 || got[0] != "urgent" || got[1] != "spectrum" {
		t.Fatalf("tags = %v", got)
	}
	f.RemoveTag("urgent")
	if got := f.Tags(); len(got) != 1 || got[0] != "spectrum" {
		t.Fatalf("tags after remove = %v", got)
	}
}

func TestFilesAreDeduplicatedByNameAndSize(t *testing.T) {
	f := New()
	a := model.PendingFile{Name: "ruling.pdf", Size: 1024}
	if !f.AddFile(a) {
		t.Fatal("first file rejected")
	}
	if f.AddFile(model.PendingFile{Name: "ruling.pdf", Size: 1024, Description: "other"}) {
		t.Fatal("same name and size must be rejected as a duplicate")
	}
	if !f.AddFile(model.PendingFile{Name: "ruling.pdf", Size: 2048}) {
		t.Fatal("same name but different size is a distinct file")
	}
	if got := f.Files(); len(got) != 2 {
		t.Fatalf("files = %v", got)
	}
}

func TestBuildCaseRequestAssemblesWriteModel(t *testing.T) {
	f := New()
	fillDetailsStep(f)
	f.SetValue(FieldPriority, model.PriorityUrgent)
	f.SetValue(FieldOpinion, "settle early")
	f.AddTag("urgent")
	f.AddTag("spectrum")
	f.AddFile(model.PendingFile{Name: "ruling.pdf", Size: 10, Content: []byte("x")})

	req, err := f.BuildCaseRequest()
	if err != nil {
		t.Fatalf("BuildCaseRequest: %v", err)
	}
	if req.Name != "Unlicensed spectrum use" {
		t.Fatalf("name = %q", req.Name)
	}
	if req.CaseInformation.CaseNumber != "4721/2026" {
		t.Fatalf("case number not copied into caseInformation: %q", req.CaseInformation.CaseNumber)
	}
	if req.CaseInformation.Priority != model.PriorityUrgent {
		t.Fatalf("priority = %q", req.CaseInformation.Priority)
	}
	if len(req.Tags) != 2 {
		t.Fatalf("tags = %v", req.Tags)
	}
	if req.Tags[0].ID == 0 || req.Tags[0].ID == req.Tags[1].ID {
		t.Fatalf("tag ids must be generated and distinct: %d, %d", req.Tags[0].ID, req.Tags[1].ID)
	}
	if req.Tags[0].Value != "urgent" || req.Tags[1].Value != "spectrum" {
		t.Fatalf("tag values = %v", req.Tags)
	}
	if len(req.Documents.Files) != 1 || req.Documents.Files[0].Name != "ruling.pdf" {
		t.Fatalf("documents = %+v", req.Documents)
	}
	if len(req.Litigants) != 1 || req.Litigants[0].Name != "Contoso Telecom" {
		t.Fatalf("litigants = %+v", req.Litigants)
	}
}

func TestBuildCaseRequestRevalidatesWholeForm(t *testing.T) {
	f := New()
	fillDetailsStep(f)
	if err := f.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	// The first step was valid when we left it; break it afterwards.
	f.SetValue(FieldName, "")
	if _, err := f.BuildCaseRequest(); err == nil {
		t.Fatal("submit must revalidate every step, not only the current one")
	}
}
