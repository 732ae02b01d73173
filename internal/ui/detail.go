package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

// caseBundle is everything the detail page shows, fetched in parallel.
type caseBundle struct {
	details    model.CaseDetails
	notes      []model.CaseNote
	documents  []model.CaseDocument
	judgements []model.CaseJudgement
	team       []model.CaseTeamMember
	events     []model.CaseEvent
}

// openDetail shows the full record of the selected case. Sub-resources
// that fail to load render as a warning line instead of blocking the
// whole page.
func (a *App) openDetail() {
	c, ok := a.selectedCase()
	if !ok {
		return
	}
	a.setStatus("[%s]Loading case #%d...[-]", a.theme.TagMuted, c.ID)

	go func() {
		bundle, warnings := a.loadBundle(c.ID)
		a.app.QueueUpdateDraw(func() {
			a.renderDetail(bundle, warnings)
		})
	}()
}

func (a *App) loadBundle(id int) (caseBundle, []string) {
	var bundle caseBundle
	var warnings []string
	var mu sync.Mutex
	var wg sync.WaitGroup

	warn := func(what string, err error) {
		mu.Lock()
		warnings = append(warnings, fmt.Sprintf("%s unavailable: %v", what, err))
		mu.Unlock()
	}

	run := func(what string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				warn(what, err)
			}
		}()
	}

	run("details", func() error {
		d, err := a.deps.Cases.Get(a.ctx, id)
		bundle.details = d
		return err
	})
	run("notes", func() error {
		n, err := a.deps.Client.GetCaseNotes(a.ctx, id)
		bundle.notes = n
		return err
	})
	run("documents", func() error {
		d, err := a.deps.Client.GetCaseDocuments(a.ctx, id)
		bundle.documents = d
		return err
	})
	run("judgements", func() error {
		j, err := a.deps.Client.GetCaseJudgements(a.ctx, id)
		bundle.judgements = j
		return err
	})
	run("team", func() error {
		t, err := a.deps.Client.GetCaseTeamMembers(a.ctx, id)
		bundle.team = t
		return err
	})
	run("events", func() error {
		e, err := a.deps.Client.GetCaseEvents(a.ctx, id)
		bundle.events = e
		return err
	})
	wg.Wait()
	return bundle, warnings
}

func (a *App) renderDetail(bundle caseBundle, warnings []string) {
	t := a.theme
	d := bundle.details
	lang := a.deps.Language

	var b strings.Builder
	badge := StatusBadge(d.State)
	priority := PriorityBadge(d.CaseInformation.Priority)

	fmt.Fprintf(&b, "[%s::b]#%d %s[-::-]\n\n", t.TagAccent, d.ID, d.Name)
	fmt.Fprintf(&b, "[%s]Status:[-] [%s]%s[-]    [%s]Priority:[-] [%s]%s[-]\n",
		t.TagMuted, badge.Tag, badge.Label, t.TagMuted, priority.Tag, priority.Label)
	fmt.Fprintf(&b, "[%s]Number:[-] %s    [%s]Filed:[-] %s\n",
		t.TagMuted, d.CaseInformation.CaseNumber, t.TagMuted, d.CaseFilingDate)
	fmt.Fprintf(&b, "[%s]Court:[-] %s    [%s]Level:[-] %s\n",
		t.TagMuted, d.SpecializedCourt.DisplayName(lang), t.TagMuted, d.CaseLevel.DisplayName(lang))
	fmt.Fprintf(&b, "[%s]District:[-] %s / %s\n",
		t.TagMuted, d.District.DisplayName(lang), d.City.DisplayName(lang))
	fmt.Fprintf(&b, "[%s]Consultant:[-] %s\n", t.TagMuted, d.AssignedConsultantName)
	if d.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", d.Description)
	}
	if len(d.Tags) > 0 {
		fmt.Fprintf(&b, "\n[%s]Tags:[-] %s\n", t.TagMuted, strings.Join(d.Tags, ", "))
	}

	if len(bundle.litigantNames()) > 0 {
		fmt.Fprintf(&b, "\n[%s::b]Litigants[-::-]\n", t.TagAccent)
		for _, name := range bundle.litigantNames() {
			fmt.Fprintf(&b, "  - %s\n", name)
		}
	}

	fmt.Fprintf(&b, "\n[%s::b]Notes (%d)[-::-]\n", t.TagAccent, len(bundle.notes))
	for _, note := range bundle.notes {
		visibility := ""
		if note.IsPrivate {
			visibility = fmt.Sprintf(" [%s](private)[-]", t.TagWarning)
		}
		fmt.Fprintf(&b, "  - [%s]%s[-] %s%s\n", t.TagMuted, note.Author, note.Title, visibility)
	}

	fmt.Fprintf(&b, "\n[%s::b]Documents (%d)[-::-]\n", t.TagAccent, len(bundle.documents))
	for _, doc := range bundle.documents {
		fmt.Fprintf(&b, "  - %s [%s](%d bytes)[-]\n", doc.FileName, t.TagMuted, doc.FileSize)
	}

	fmt.Fprintf(&b, "\n[%s::b]Judgements (%d)[-::-]\n", t.TagAccent, len(bundle.judgements))
	for _, j := range bundle.judgements {
		fmt.Fprintf(&b, "  - %s: %s [%s]%s[-]\n", j.JudgementDate, j.Title, t.TagMuted, j.Outcome)
	}

	fmt.Fprintf(&b, "\n[%s::b]Team (%d)[-::-]\n", t.TagAccent, len(bundle.team))
	for _, member := range bundle.team {
		fmt.Fprintf(&b, "  - %s [%s]%s[-]\n", member.Name, t.TagMuted, member.Role)
	}

	fmt.Fprintf(&b, "\n[%s::b]Events (%d)[-::-]\n", t.TagAccent, len(bundle.events))
	for _, ev := range bundle.events {
		fmt.Fprintf(&b, "  - %s [%s]%s[-] %s\n", ev.StartDate, t.TagMuted, ev.EventType, ev.Title)
	}

	for _, w := range warnings {
		fmt.Fprintf(&b, "\n[%s]%s[-]", t.TagWarning, w)
	}

	view := tview.NewTextView().SetDynamicColors(true).SetText(b.String())
	view.SetBackgroundColor(t.Bg)
	view.SetBorder(true).
		SetTitle(fmt.Sprintf(" Case #%d ", d.ID)).
		SetBorderColor(t.Border)
	view.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			a.pages.RemovePage("detail")
			a.app.SetFocus(a.table)
			return nil
		}
		return event
	})

	a.pages.AddPage("detail", view, true, true)
	a.app.SetFocus(view)
	a.setStatusDirect("[%s]Esc[-] back", t.TagAccent)
}

func (cb caseBundle) litigantNames() []string {
	names := make([]string, 0, len(cb.details.Litigants))
	for _, l := range cb.details.Litigants {
		if l.Name != "" {
			names = append(names, l.Name)
		} else {
			names = append(names, l.NameAr)
		}
	}
	return names
}
