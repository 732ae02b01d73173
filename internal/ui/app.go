package ui

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/api"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/cases"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/debounce"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/drafts"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/filters"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/lookup"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/session"
	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/staging"
)

// Deps wires the application services into the TUI.
type Deps struct {
	Client   *api.Client
	Session  *session.Session
	Lookups  *lookup.Cache
	Filters  *filters.Store
	Cases    *cases.Service
	Drafts   *drafts.Store
	Staging  *staging.Watcher // nil when no staging directory is configured
	Logger   *log.Logger
	Language string
}

// App is the terminal user interface: a cases table with filters,
// debounced search and pagination, plus the creation and detail flows.
type App struct {
	app  *tview.Application
	deps Deps

	// Layout
	layout        *tview.Flex
	pages         *tview.Pages
	title         *tview.TextView
	stats         *tview.TextView
	searchInput   *tview.InputField
	stateDropdown *tview.DropDown
	courtDropdown *tview.DropDown
	table         *tview.Table
	pageInfo      *tview.TextView
	statusBar     *tview.TextView

	theme        Theme
	hasTrueColor bool

	searchDebouncer *debounce.Debouncer

	// loadGen rises per refresh; a response carrying an older gen lost
	// the race and is dropped instead of overwriting newer rows.
	loadGen uint64

	mu          sync.Mutex
	currentPage model.CasePage
	courtIDs    []int // parallel to courtDropdown options, minus "All"
	fatalErr    error

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp assembles the TUI without starting it.
func NewApp(ctx context.Context, deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = log.New(log.Writer(), "[ui] ", log.LstdFlags)
	}
	appCtx, cancel := context.WithCancel(ctx)

	a := &App{
		app:          tview.NewApplication(),
		deps:         deps,
		theme:        themeDark(),
		hasTrueColor: detectTrueColor(),
		ctx:          appCtx,
		cancel:       cancel,
	}

	// Settled search terms land in the filter store; empty clears the
	// criterion. Either way the page resets and a refresh follows.
	a.searchDebouncer = debounce.New(debounce.DefaultDelay, func(term string) {
		if term == "" {
			deps.Filters.SetSearchKey(nil)
		} else {
			deps.Filters.SetSearchKey(&term)
		}
	})

	a.setupLayout()
	a.setupKeybindings()

	deps.Filters.Subscribe(func(model.FilterCriteria, model.PageData) {
		a.refresh()
	})

	return a
}

// Start runs the TUI until quit or context cancellation. It returns
// api.ErrUnauthorized when the backend rejects the session.
func (a *App) Start(ctx context.Context) error {
	a.deps.Logger.Println("Starting case browser TUI")

	go func() {
		// Reference data for the filter bar and the creation form.
		a.deps.Lookups.Preload(a.ctx,
			model.LookupStates, model.LookupCourts, model.LookupInternalClient,
			model.LookupCaseType, model.LookupCaseCategory, model.LookupCaseLevel,
			model.LookupDistrict)
		a.app.QueueUpdateDraw(func() {
			a.populateCourtDropdown()
		})
	}()

	a.refresh()

	go func() {
		select {
		case <-ctx.Done():
		case <-a.ctx.Done():
		}
		a.cancel()
		a.app.Stop()
	}()

	err := a.app.Run()
	a.searchDebouncer.Stop()
	a.cancel()

	a.mu.Lock()
	fatal := a.fatalErr
	a.mu.Unlock()
	if fatal != nil {
		return fatal
	}
	return err
}

// Stop ends the TUI from outside the event loop.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}

func (a *App) setupLayout() {
	t := a.theme

	a.title = tview.NewTextView().SetDynamicColors(true)
	a.title.SetBackgroundColor(t.Bg)
	fmt.Fprintf(a.title, "[%s::b]JRSS Console[-::-]  [%s]%s[-]", t.TagAccent, t.TagMuted, a.deps.Session.Email())

	a.stats = tview.NewTextView().SetDynamicColors(true)
	a.stats.SetBackgroundColor(t.Bg)

	a.searchInput = tview.NewInputField().
		SetLabel(" Search: ").
		SetFieldWidth(30).
		SetChangedFunc(func(text string) {
			a.searchDebouncer.Set(text)
		})
	a.searchInput.SetFieldBackgroundColor(t.Surface)

	a.stateDropdown = tview.NewDropDown().SetLabel(" State: ")
	stateOptions := []string{"All"}
	for _, state := range model.AllStatuses {
		stateOptions = append(stateOptions, StatusBadge(state).Label)
	}
	a.stateDropdown.SetOptions(stateOptions, func(text string, index int) {
		if index <= 0 {
			a.deps.Filters.SetState(nil)
			return
		}
		state := string(model.AllStatuses[index-1])
		a.deps.Filters.SetState(&state)
	})
	a.stateDropdown.SetFieldBackgroundColor(t.Surface)

	a.courtDropdown = tview.NewDropDown().SetLabel(" Court: ")
	a.courtDropdown.SetOptions([]string{"All"}, func(string, int) {})
	a.courtDropdown.SetFieldBackgroundColor(t.Surface)

	filterBar := tview.NewFlex().
		AddItem(a.searchInput, 0, 2, false).
		AddItem(a.stateDropdown, 0, 1, false).
		AddItem(a.courtDropdown, 0, 1, false)
	filterBar.SetBackgroundColor(t.Bg)

	a.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0)
	a.table.SetBackgroundColor(t.Bg)
	a.table.SetBorder(true).SetTitle(" Cases ").SetBorderColor(t.Border)
	a.table.SetSelectedStyle(tcell.StyleDefault.Background(t.SelectionBg).Foreground(t.SelectionFg))

	a.pageInfo = tview.NewTextView().SetDynamicColors(true)
	a.pageInfo.SetBackgroundColor(t.Bg)

	a.statusBar = tview.NewTextView().SetDynamicColors(true)
	a.statusBar.SetBackgroundColor(t.Surface)
	a.setStatusDirect("[%s]/[-] search  [%s]s[-] state  [%s]c[-] new case  [%s]d[-] delete  [%s]Enter[-] details  [%s]n/p[-] page  [%s]r[-] reload  [%s]q[-] quit",
		t.TagAccent, t.TagAccent, t.TagAccent, t.TagAccent, t.TagAccent, t.TagAccent, t.TagAccent, t.TagAccent)

	browse := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.title, 1, 0, false).
		AddItem(a.stats, 1, 0, false).
		AddItem(filterBar, 1, 0, false).
		AddItem(a.table, 0, 1, true).
		AddItem(a.pageInfo, 1, 0, false).
		AddItem(a.statusBar, 1, 0, false)
	browse.SetBackgroundColor(t.Bg)

	a.pages = tview.NewPages().AddPage("browse", browse, true, true)
	a.layout = tview.NewFlex().AddItem(a.pages, 0, 1, true)
	a.app.SetRoot(a.layout, true)
	a.app.SetFocus(a.table)
}

func (a *App) setupKeybindings() {
	a.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q':
			a.Stop()
			return nil
		case '/':
			a.app.SetFocus(a.searchInput)
			return nil
		case 's':
			a.app.SetFocus(a.stateDropdown)
			return nil
		case 'n':
			a.nextPage()
			return nil
		case 'p':
			a.prevPage()
			return nil
		case 'r':
			a.deps.Cases.Invalidate()
			a.refresh()
			return nil
		case 'x':
			a.resetFilters()
			return nil
		case 'c':
			a.openCreateForm(nil)
			return nil
		case 'D':
			a.openDraftPicker()
			return nil
		case 'd':
			a.confirmDelete()
			return nil
		case 'e':
			a.setStatus("[%s]Editing from the console is not available yet[-]", a.theme.TagWarning)
			return nil
		}
		if event.Key() == tcell.KeyEnter {
			a.openDetail()
			return nil
		}
		return event
	})

	// Leaving the search box returns focus to the table.
	a.searchInput.SetDoneFunc(func(key tcell.Key) {
		a.app.SetFocus(a.table)
	})
	a.stateDropdown.SetDoneFunc(func(key tcell.Key) {
		a.app.SetFocus(a.table)
	})
	a.courtDropdown.SetDoneFunc(func(key tcell.Key) {
		a.app.SetFocus(a.table)
	})
}

// populateCourtDropdown fills the court filter once lookups arrive.
func (a *App) populateCourtDropdown() {
	courts := a.deps.Lookups.Items(model.LookupCourts)
	if len(courts) == 0 {
		return
	}
	sort.Slice(courts, func(i, j int) bool { return courts[i].OrderNumber < courts[j].OrderNumber })

	options := []string{"All"}
	ids := make([]int, 0, len(courts))
	for _, court := range courts {
		options = append(options, court.DisplayName(a.deps.Language))
		ids = append(ids, court.ID)
	}
	a.mu.Lock()
	a.courtIDs = ids
	a.mu.Unlock()

	a.courtDropdown.SetOptions(options, func(text string, index int) {
		if index <= 0 {
			a.deps.Filters.SetCourtID(nil)
			return
		}
		a.mu.Lock()
		id := strconv.Itoa(a.courtIDs[index-1])
		a.mu.Unlock()
		a.deps.Filters.SetCourtID(&id)
	})
}

func (a *App) resetFilters() {
	a.searchInput.SetText("")
	a.stateDropdown.SetCurrentOption(0)
	a.courtDropdown.SetCurrentOption(0)
	a.deps.Filters.Reset()
}

// refresh loads the current page in the background. Responses that
// arrive after a newer refresh started are dropped.
func (a *App) refresh() {
	gen := atomic.AddUint64(&a.loadGen, 1)
	criteria := a.deps.Filters.Criteria()
	page := a.deps.Filters.Page()

	go func() {
		result, cached, err := a.deps.Cases.Query(a.ctx, criteria, page)
		if atomic.LoadUint64(&a.loadGen) != gen {
			return
		}
		if err != nil {
			if err == api.ErrUnauthorized || a.ctx.Err() != nil {
				a.fail(err)
				return
			}
			a.deps.Logger.Printf("failed to load cases: %v", err)
			a.app.QueueUpdateDraw(func() {
				a.setStatusDirect("[%s]Error loading cases: %v[-]", a.theme.TagError, err)
			})
			return
		}
		if cached {
			a.deps.Logger.Printf("served page %d from cache", page.Page)
		}
		a.app.QueueUpdateDraw(func() {
			a.renderPage(result, page.Page)
		})
	}()
}

// fail records a fatal error and tears the TUI down.
func (a *App) fail(err error) {
	a.mu.Lock()
	if a.fatalErr == nil {
		a.fatalErr = err
	}
	a.mu.Unlock()
	a.Stop()
}

func (a *App) renderPage(result model.CasePage, uiPage int) {
	a.mu.Lock()
	a.currentPage = result
	a.mu.Unlock()

	t := a.theme
	a.table.Clear()
	headers := []string{"ID", "Case", "Number", "Status", "Priority", "Court", "Filed"}
	for col, header := range headers {
		a.table.SetCell(0, col, tview.NewTableCell(header).
			SetTextColor(t.TableHeader).
			SetBackgroundColor(t.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
	}

	for i, c := range result.Content {
		row := i + 1
		zebra := t.TableZebra1
		if row%2 == 0 {
			zebra = t.TableZebra2
		}
		rowColor := t.TableRow
		switch RowClass(c.State) {
		case "settled":
			rowColor = t.TableRowMuted
		case "attention":
			rowColor = t.Error
		}

		badge := StatusBadge(c.State)
		priority := PriorityBadge(c.CaseInformation.Priority)
		cells := []struct {
			text  string
			color tcell.Color
		}{
			{strconv.Itoa(c.ID), rowColor},
			{c.Name, rowColor},
			{c.CaseInformation.CaseNumber, rowColor},
			{badge.Label, badge.Color},
			{priority.Label, priority.Color},
			{c.SpecializedCourt.DisplayName(a.deps.Language), rowColor},
			{c.CaseFilingDate, rowColor},
		}
		for col, cell := range cells {
			tc := tview.NewTableCell(cell.text).
				SetTextColor(cell.color).
				SetBackgroundColor(zebra)
			if col == 1 {
				tc.SetExpansion(1)
			}
			a.table.SetCell(row, col, tc)
		}
	}
	if len(result.Content) > 0 && a.table.GetRowCount() > 1 {
		a.table.Select(1, 0)
	}

	a.stats.Clear()
	fmt.Fprintf(a.stats, "[%s]%s[-]", t.TagMuted, statLine(result))
	a.pageInfo.Clear()
	fmt.Fprintf(a.pageInfo, "[%s]%s[-]", t.TagMuted, pageLabel(uiPage, result.TotalPages, result.TotalElements))
}

func (a *App) nextPage() {
	a.mu.Lock()
	totalPages := a.currentPage.TotalPages
	a.mu.Unlock()
	page := a.deps.Filters.Page()
	if page.Page < totalPages {
		page.Page++
		a.deps.Filters.SetPage(page)
	}
}

func (a *App) prevPage() {
	page := a.deps.Filters.Page()
	if page.Page > 1 {
		page.Page--
		a.deps.Filters.SetPage(page)
	}
}

// selectedCase returns the case under the cursor, if any.
func (a *App) selectedCase() (model.CaseDetails, bool) {
	row, _ := a.table.GetSelection()
	a.mu.Lock()
	defer a.mu.Unlock()
	idx := row - 1
	if idx < 0 || idx >= len(a.currentPage.Content) {
		return model.CaseDetails{}, false
	}
	return a.currentPage.Content[idx], true
}

// caseDeleteDialog is the confirm dialog contract during a delete. The
// dialog stays on screen for the whole call and closes only on success;
// a failure restores it so the user can retry or cancel.
type caseDeleteDialog interface {
	ShowDeleting()
	ShowError(err error)
	Close()
}

// runCaseDelete drives the dialog through one delete attempt. It blocks
// until the call resolves, so it runs off the event loop.
func runCaseDelete(ctx context.Context, dlg caseDeleteDialog, del func(context.Context) error) error {
	dlg.ShowDeleting()
	if err := del(ctx); err != nil {
		dlg.ShowError(err)
		return err
	}
	dlg.Close()
	return nil
}

// confirmDeleteModal adapts a tview modal to caseDeleteDialog. Its
// methods are called from the delete goroutine and queue their redraws.
type confirmDeleteModal struct {
	owner    *App
	modal    *tview.Modal
	target   model.CaseDetails
	deleting bool
}

func (d *confirmDeleteModal) prompt() string {
	return fmt.Sprintf("Delete case #%d\n%q?", d.target.ID, d.target.Name)
}

func (d *confirmDeleteModal) ShowDeleting() {
	d.owner.app.QueueUpdateDraw(func() {
		d.modal.SetText(fmt.Sprintf("Deleting case #%d...", d.target.ID)).ClearButtons()
	})
}

func (d *confirmDeleteModal) ShowError(err error) {
	d.owner.app.QueueUpdateDraw(func() {
		d.deleting = false
		d.modal.SetText(fmt.Sprintf("%s\n\n[%s]Delete failed: %v[-]", d.prompt(), d.owner.theme.TagError, err)).
			AddButtons([]string{"Delete", "Cancel"})
	})
}

func (d *confirmDeleteModal) Close() {
	d.owner.app.QueueUpdateDraw(func() {
		d.owner.pages.RemovePage("confirm-delete")
		d.owner.app.SetFocus(d.owner.table)
	})
}

// confirmDelete asks before deleting; the row is only removed after the
// backend confirms, by refetching the page.
func (a *App) confirmDelete() {
	c, ok := a.selectedCase()
	if !ok {
		return
	}
	if !a.deps.Session.Can("CASE_DELETE") {
		a.setStatus("[%s]You do not have permission to delete cases[-]", a.theme.TagWarning)
		return
	}

	modal := tview.NewModal()
	dlg := &confirmDeleteModal{owner: a, modal: modal, target: c}
	modal.SetText(dlg.prompt()).
		AddButtons([]string{"Delete", "Cancel"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			if dlg.deleting {
				return
			}
			if buttonLabel != "Delete" {
				a.pages.RemovePage("confirm-delete")
				a.app.SetFocus(a.table)
				return
			}
			dlg.deleting = true
			go func() {
				if err := runCaseDelete(a.ctx, dlg, func(ctx context.Context) error {
					return a.deps.Cases.Delete(ctx, c.ID)
				}); err != nil {
					return
				}
				a.app.QueueUpdateDraw(func() {
					a.setStatusDirect("[%s]Case #%d deleted[-]", a.theme.TagSuccess, c.ID)
				})
				a.refresh()
			}()
		})
	a.pages.AddPage("confirm-delete", modal, true, true)
}

// setStatus writes the status bar from outside the event loop.
func (a *App) setStatus(format string, args ...interface{}) {
	a.statusBar.Clear()
	fmt.Fprintf(a.statusBar, format, args...)
}

// setStatusDirect writes the status bar from inside a queued update.
func (a *App) setStatusDirect(format string, args ...interface{}) {
	a.statusBar.Clear()
	fmt.Fprintf(a.statusBar, format, args...)
}
