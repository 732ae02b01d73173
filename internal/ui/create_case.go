package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/drafts"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/form"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

const createPageName = "create-case"

// createCaseView drives the multi-step creation flow. One view instance
// lives from opening the form until submit or cancel; navigating
// between steps keeps all entered values.
type createCaseView struct {
	app     *App
	form    *form.Form
	draftID string

	litigants   *RemoteSelect
	consultants *RemoteSelect
}

// openCreateForm starts a new case creation flow, optionally seeded
// from a saved draft.
func (a *App) openCreateForm(draft *drafts.Draft) {
	if !a.deps.Session.Can("CASE_CREATE") {
		a.setStatus("[%s]You do not have permission to create cases[-]", a.theme.TagWarning)
		return
	}

	v := &createCaseView{app: a, form: form.New()}
	if draft != nil {
		if err := v.form.Restore(draft.Payload); err != nil {
			a.setStatus("[%s]Could not restore draft: %v[-]", a.theme.TagError, err)
			return
		}
		v.draftID = draft.ID
	}

	redraw := func() { a.app.QueueUpdateDraw(func() {}) }
	v.litigants = NewRemoteSelect(a.ctx, litigantSearch(a.deps.Client, a.deps.Language), redraw)
	v.consultants = NewRemoteSelect(a.ctx, consultantSearch(a.deps.Client, a.deps.Language), redraw)

	// Cities for a restored district must be available before the city
	// dropdown renders.
	if district, ok := v.form.Value(form.FieldDistrict).(model.LookupItem); ok {
		go a.deps.Lookups.FetchCities(a.ctx, &district.ID)
	}

	v.render()
}

func (v *createCaseView) close() {
	v.litigants.Close()
	v.consultants.Close()
	v.app.pages.RemovePage(createPageName)
	v.app.app.SetFocus(v.app.table)
}

// render rebuilds the page for the current step.
func (v *createCaseView) render() {
	var page tview.Primitive
	var title string
	if v.form.Step() == form.StepDetails {
		page = v.buildDetailsStep()
		title = " New Case (1/2): Details "
	} else {
		page = v.buildInformationStep()
		title = " New Case (2/2): Case Information "
	}

	frame := tview.NewFlex().SetDirection(tview.FlexRow).AddItem(page, 0, 1, true)
	frame.SetBorder(true).SetTitle(title).SetBorderColor(v.app.theme.FocusBorder)

	v.app.pages.RemovePage(createPageName)
	v.app.pages.AddPage(createPageName, frame, true, true)
	v.app.app.SetFocus(page)
}

func (v *createCaseView) buildDetailsStep() *tview.Form {
	f := tview.NewForm()
	f.SetBackgroundColor(v.app.theme.Bg)

	f.AddInputField("Title", v.stringField(form.FieldName), 40, nil, func(text string) {
		v.form.SetValue(form.FieldName, text)
	})
	f.AddInputField("Case number", v.stringField(form.FieldNumber), 20, nil, func(text string) {
		v.form.SetValue(form.FieldNumber, text)
	})
	f.AddInputField("Filing date (YYYY-MM-DD)", v.stringField(form.FieldCaseFilingDate), 20, nil, func(text string) {
		v.form.SetValue(form.FieldCaseFilingDate, text)
	})
	f.AddTextArea("Description", v.stringField(form.FieldDescription), 60, 3, 0, func(text string) {
		v.form.SetValue(form.FieldDescription, text)
	})
	f.AddCheckbox("Against STC", v.boolField(form.FieldIsAgainstStc), func(checked bool) {
		v.form.SetValue(form.FieldIsAgainstStc, checked)
	})

	v.addLookupDropdown(f, "Internal client", form.FieldInternalClient, v.app.deps.Lookups.Items(model.LookupInternalClient))
	v.addLookupDropdown(f, "Case type", form.FieldCaseType, v.app.deps.Lookups.Items(model.LookupCaseType))
	v.addLookupDropdown(f, "Lawsuit type", form.FieldLawsuitType, v.app.deps.Lookups.Items(model.LookupCaseCategory))
	v.addLookupDropdown(f, "Case level", form.FieldCaseLevel, v.app.deps.Lookups.Items(model.LookupCaseLevel))
	v.addLookupDropdown(f, "Court", form.FieldSpecializedCourt, v.app.deps.Lookups.Items(model.LookupCourts))
	v.addDistrictDropdown(f)
	v.addCityDropdown(f)
	v.addRemoteSelectField(f, "Litigants", v.litigants)
	v.addRemoteSelectField(f, "Consultants", v.consultants)

	f.AddButton("Next", func() {
		v.applyParties()
		if err := v.form.Next(); err != nil {
			v.showErrors()
			return
		}
		v.render()
	})
	f.AddButton("Save draft", v.saveDraft)
	f.AddButton("Cancel", v.close)
	v.bindEscape(f)
	return f
}

func (v *createCaseView) buildInformationStep() *tview.Form {
	f := tview.NewForm()
	f.SetBackgroundColor(v.app.theme.Bg)

	priorities := make([]string, len(model.AllPriorities))
	initial := 0
	for i, p := range model.AllPriorities {
		priorities[i] = PriorityBadge(p).Label
		if current, ok := v.form.Value(form.FieldPriority).(model.CasePriority); ok && current == p {
			initial = i
		}
	}
	f.AddDropDown("Priority", priorities, initial, func(text string, index int) {
		if index >= 0 {
			v.form.SetValue(form.FieldPriority, model.AllPriorities[index])
		}
	})
	f.AddCheckbox("Confidential", v.boolField(form.FieldIsConfidential), func(checked bool) {
		v.form.SetValue(form.FieldIsConfidential, checked)
	})
	f.AddTextArea("Consultant opinion", v.stringField(form.FieldOpinion), 60, 3, 0, func(text string) {
		v.form.SetValue(form.FieldOpinion, text)
	})
	v.addFloatField(f, "Fine amount", form.FieldFineAmount)
	v.addFloatField(f, "Loss ratio", form.FieldLossRatio)
	v.addIntField(f, "Decision number", form.FieldDecisionNumber)
	f.AddInputField("Decision date (YYYY-MM-DD)", v.stringField(form.FieldDecisionDate), 20, nil, func(text string) {
		v.form.SetValue(form.FieldDecisionDate, text)
	})
	v.addIntField(f, "Notice number", form.FieldNoticeNumber)
	f.AddInputField("Notice date (YYYY-MM-DD)", v.stringField(form.FieldNoticeDate), 20, nil, func(text string) {
		v.form.SetValue(form.FieldNoticeDate, text)
	})
	v.addIntField(f, "Inquiry number", form.FieldInquiryNumber)
	f.AddInputField("Inquiry date (YYYY-MM-DD)", v.stringField(form.FieldInquiryDate), 20, nil, func(text string) {
		v.form.SetValue(form.FieldInquiryDate, text)
	})

	f.AddInputField(v.tagLabel(), "", 30, nil, nil)
	if tagField, ok := f.GetFormItem(f.GetFormItemCount() - 1).(*tview.InputField); ok {
		tagField.SetDoneFunc(func(key tcell.Key) {
			if key != tcell.KeyEnter {
				return
			}
			if v.form.AddTag(tagField.GetText()) {
				tagField.SetText("")
				tagField.SetLabel(v.tagLabel())
			}
		})
	}

	v.addAttachmentDropdown(f)

	f.AddButton("Back", func() {
		v.form.Prev()
		v.render()
	})
	f.AddButton("Save draft", v.saveDraft)
	f.AddButton("Submit", v.submit)
	f.AddButton("Cancel", v.close)
	v.bindEscape(f)
	return f
}

// applyParties copies the remote-select choices into the form. It always
// writes, so deselecting every party clears the form value too and an
// empty litigant list fails step validation as it should.
func (v *createCaseView) applyParties() {
	chosen := v.litigants.Selected()
	litigants := make([]model.Litigant, len(chosen))
	for i, option := range chosen {
		litigants[i] = model.Litigant{ID: option.ID, Name: option.Label}
	}
	v.form.SetValue(form.FieldLitigants, litigants)

	picked := v.consultants.Selected()
	consultants := make([]model.Consultant, len(picked))
	for i, option := range picked {
		consultants[i] = model.Consultant{ID: option.ID, Name: option.Label}
	}
	v.form.SetValue(form.FieldConsultants, consultants)
}

func (v *createCaseView) submit() {
	v.applyParties()
	req, err := v.form.BuildCaseRequest()
	if err != nil {
		v.showErrors()
		return
	}

	v.app.setStatus("[%s]Submitting case...[-]", v.app.theme.TagMuted)
	go func() {
		created, err := v.app.deps.Cases.Create(v.app.ctx, req)
		if err != nil {
			v.app.app.QueueUpdateDraw(func() {
				v.app.setStatusDirect("[%s]Create failed: %v[-]", v.app.theme.TagError, err)
			})
			return
		}
		if v.draftID != "" {
			if err := v.app.deps.Drafts.Delete(v.app.ctx, v.draftID); err != nil {
				v.app.deps.Logger.Printf("could not remove submitted draft %s: %v", v.draftID, err)
			}
		}
		v.app.app.QueueUpdateDraw(func() {
			v.close()
			v.app.setStatusDirect("[%s]Case #%d created[-]", v.app.theme.TagSuccess, created.ID)
		})
		v.app.refresh()
	}()
}

func (v *createCaseView) saveDraft() {
	v.applyParties()
	payload, err := v.form.Snapshot()
	if err != nil {
		v.app.setStatus("[%s]Could not snapshot draft: %v[-]", v.app.theme.TagError, err)
		return
	}
	title, _ := v.form.Value(form.FieldName).(string)
	if title == "" {
		title = "Untitled case"
	}
	draft := &drafts.Draft{ID: v.draftID, Title: title, Step: v.form.Step(), Payload: payload}
	if err := v.app.deps.Drafts.Save(v.app.ctx, draft); err != nil {
		v.app.setStatus("[%s]Could not save draft: %v[-]", v.app.theme.TagError, err)
		return
	}
	v.draftID = draft.ID
	v.app.setStatus("[%s]Draft saved[-]", v.app.theme.TagSuccess)
}

func (v *createCaseView) showErrors() {
	errs := v.form.Errors()
	fields := make([]string, 0, len(errs))
	for name := range errs {
		fields = append(fields, name)
	}
	v.app.setStatus("[%s]Missing or invalid: %s[-]", v.app.theme.TagError, strings.Join(fields, ", "))
}

func (v *createCaseView) bindEscape(f *tview.Form) {
	f.SetCancelFunc(v.close)
}

func (v *createCaseView) tagLabel() string {
	tags := v.form.Tags()
	if len(tags) == 0 {
		return "Add tag (Enter)"
	}
	return fmt.Sprintf("Add tag (%s)", strings.Join(tags, ", "))
}

func (v *createCaseView) stringField(name string) string {
	s, _ := v.form.Value(name).(string)
	return s
}

func (v *createCaseView) boolField(name string) bool {
	b, _ := v.form.Value(name).(bool)
	return b
}

// addLookupDropdown renders one reference-data dropdown. A category
// still loading renders with a placeholder entry; reopening the form
// after the preload finishes shows the real options.
func (v *createCaseView) addLookupDropdown(f *tview.Form, label, fieldName string, items []model.LookupItem) {
	if len(items) == 0 {
		f.AddDropDown(label, []string{"(loading...)"}, 0, nil)
		return
	}
	options := make([]string, len(items)+1)
	options[0] = "(none)"
	initial := 0
	current, _ := v.form.Value(fieldName).(model.LookupItem)
	for i, item := range items {
		options[i+1] = item.DisplayName(v.app.deps.Language)
		if current.ID == item.ID {
			initial = i + 1
		}
	}
	f.AddDropDown(label, options, initial, func(text string, index int) {
		if index <= 0 {
			v.form.SetValue(fieldName, nil)
			return
		}
		v.form.SetValue(fieldName, items[index-1])
	})
}

// addDistrictDropdown is the lookup dropdown plus the city cascade:
// picking a district clears the city and fetches its city list.
func (v *createCaseView) addDistrictDropdown(f *tview.Form) {
	items := v.app.deps.Lookups.Items(model.LookupDistrict)
	if len(items) == 0 {
		f.AddDropDown("District", []string{"(loading...)"}, 0, nil)
		return
	}
	options := make([]string, len(items)+1)
	options[0] = "(none)"
	initial := 0
	current, _ := v.form.Value(form.FieldDistrict).(model.LookupItem)
	for i, item := range items {
		options[i+1] = item.DisplayName(v.app.deps.Language)
		if current.ID == item.ID {
			initial = i + 1
		}
	}
	f.AddDropDown("District", options, initial, func(text string, index int) {
		if index <= 0 {
			v.form.SetValue(form.FieldDistrict, nil)
			return
		}
		district := items[index-1]
		v.form.SetValue(form.FieldDistrict, district)
		go func() {
			v.app.deps.Lookups.FetchCities(v.app.ctx, &district.ID)
			v.app.app.QueueUpdateDraw(v.render)
		}()
	})
}

func (v *createCaseView) addCityDropdown(f *tview.Form) {
	district, ok := v.form.Value(form.FieldDistrict).(model.LookupItem)
	if !ok {
		f.AddDropDown("City", []string{"(pick a district first)"}, 0, nil)
		return
	}
	cities := v.app.deps.Lookups.Cities(&district.ID)
	if len(cities) == 0 {
		f.AddDropDown("City", []string{"(loading...)"}, 0, nil)
		return
	}
	options := make([]string, len(cities)+1)
	options[0] = "(none)"
	initial := 0
	current, _ := v.form.Value(form.FieldCity).(model.LookupItem)
	for i, city := range cities {
		options[i+1] = city.DisplayName(v.app.deps.Language)
		if current.ID == city.ID {
			initial = i + 1
		}
	}
	f.AddDropDown("City", options, initial, func(text string, index int) {
		if index <= 0 {
			v.form.SetValue(form.FieldCity, nil)
			return
		}
		v.form.SetValue(form.FieldCity, cities[index-1])
	})
}

// addRemoteSelectField renders a remote search as an input plus a
// toggling result dropdown.
func (v *createCaseView) addRemoteSelectField(f *tview.Form, label string, rs *RemoteSelect) {
	selectedLabel := func() string {
		n := len(rs.Selected())
		if n == 0 {
			return label + " search"
		}
		return fmt.Sprintf("%s search (%d selected)", label, n)
	}
	f.AddInputField(selectedLabel(), "", 30, nil, func(text string) {
		rs.SetTerm(text)
	})
	field := f.GetFormItem(f.GetFormItemCount() - 1)
	input, _ := field.(*tview.InputField)
	if input == nil {
		return
	}
	input.SetAutocompleteFunc(func(string) []string {
		options := rs.Options()
		entries := make([]string, len(options))
		for i, option := range options {
			marker := "  "
			if rs.IsSelected(option.ID) {
				marker = "* "
			}
			entries[i] = marker + option.Label
		}
		return entries
	})
	input.SetAutocompletedFunc(func(text string, index int, source int) bool {
		if source != tview.AutocompletedEnter && source != tview.AutocompletedClick {
			return false
		}
		options := rs.Options()
		if index >= 0 && index < len(options) {
			rs.Toggle(options[index])
			input.SetLabel(selectedLabel())
		}
		return false
	})
}

func (v *createCaseView) addFloatField(f *tview.Form, label, fieldName string) {
	initial := ""
	if current, ok := v.form.Value(fieldName).(float64); ok {
		initial = strconv.FormatFloat(current, 'f', -1, 64)
	}
	f.AddInputField(label, initial, 15, tview.InputFieldFloat, func(text string) {
		if text == "" {
			v.form.SetValue(fieldName, nil)
			return
		}
		if parsed, err := strconv.ParseFloat(text, 64); err == nil {
			v.form.SetValue(fieldName, parsed)
		}
	})
}

func (v *createCaseView) addIntField(f *tview.Form, label, fieldName string) {
	initial := ""
	if current, ok := v.form.Value(fieldName).(int); ok {
		initial = strconv.Itoa(current)
	}
	f.AddInputField(label, initial, 15, tview.InputFieldInteger, func(text string) {
		if text == "" {
			v.form.SetValue(fieldName, nil)
			return
		}
		if parsed, err := strconv.Atoi(text); err == nil {
			v.form.SetValue(fieldName, parsed)
		}
	})
}

// addAttachmentDropdown lists staging-directory files for attachment.
func (v *createCaseView) addAttachmentDropdown(f *tview.Form) {
	label := fmt.Sprintf("Attach file (%d staged)", len(v.form.Files()))
	if v.app.deps.Staging == nil {
		f.AddDropDown(label, []string{"(no staging directory configured)"}, 0, nil)
		return
	}
	candidates := v.app.deps.Staging.Files()
	if len(candidates) == 0 {
		f.AddDropDown(label, []string{"(staging directory is empty)"}, 0, nil)
		return
	}
	options := make([]string, len(candidates)+1)
	options[0] = "(pick a file)"
	for i, file := range candidates {
		options[i+1] = fmt.Sprintf("%s (%d bytes)", file.Name, file.Size)
	}
	f.AddDropDown(label, options, 0, func(text string, index int) {
		if index <= 0 {
			return
		}
		if v.form.AddFile(candidates[index-1]) {
			v.app.setStatus("[%s]Attached %s[-]", v.app.theme.TagSuccess, candidates[index-1].Name)
		} else {
			v.app.setStatus("[%s]%s is already attached[-]", v.app.theme.TagWarning, candidates[index-1].Name)
		}
	})
}

// openDraftPicker lists saved drafts; Enter resumes one, d deletes.
func (a *App) openDraftPicker() {
	go func() {
		saved, err := a.deps.Drafts.List(a.ctx)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.setStatusDirect("[%s]Could not list drafts: %v[-]", a.theme.TagError, err)
				return
			}
			if len(saved) == 0 {
				a.setStatusDirect("[%s]No saved drafts[-]", a.theme.TagMuted)
				return
			}
			a.renderDraftPicker(saved)
		})
	}()
}

func (a *App) renderDraftPicker(saved []*drafts.Draft) {
	list := tview.NewList().ShowSecondaryText(true)
	list.SetBackgroundColor(a.theme.Bg)
	list.SetBorder(true).SetTitle(" Drafts (Enter resume, d delete, Esc close) ").SetBorderColor(a.theme.Border)

	for _, draft := range saved {
		d := draft
		list.AddItem(d.Title,
			fmt.Sprintf("step %d/%d, saved %s", d.Step+1, form.StepCount, d.UpdatedAt.Format("2006-01-02 15:04")),
			0, func() {
				a.pages.RemovePage("draft-picker")
				a.openCreateForm(d)
			})
	}
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape:
			a.pages.RemovePage("draft-picker")
			a.app.SetFocus(a.table)
			return nil
		case event.Rune() == 'd':
			idx := list.GetCurrentItem()
			if idx >= 0 && idx < len(saved) {
				id := saved[idx].ID
				go func() {
					if err := a.deps.Drafts.Delete(a.ctx, id); err != nil {
						a.deps.Logger.Printf("draft delete failed: %v", err)
					}
					a.openDraftPicker()
				}()
				a.pages.RemovePage("draft-picker")
			}
			return nil
		}
		return event
	})

	a.pages.AddPage("draft-picker", list, true, true)
	a.app.SetFocus(list)
}
