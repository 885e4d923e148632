// Package tui provides the interactive Bubble Tea front end for shiftcast.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/shiftcast/internal/config"
	"github.com/theirongolddev/shiftcast/internal/model"
	"github.com/theirongolddev/shiftcast/internal/pipeline"
	"github.com/theirongolddev/shiftcast/internal/report"
	"github.com/theirongolddev/shiftcast/internal/session"
	"github.com/theirongolddev/shiftcast/internal/store"
	"github.com/theirongolddev/shiftcast/internal/tui/components"
	"github.com/theirongolddev/shiftcast/internal/tui/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// FileLoadedMsg is sent when a sales file finishes loading.
type FileLoadedMsg struct {
	Period   model.Period
	Path     string
	Forecast *model.PeriodForecast
	Err      error
}

// SubmittedMsg is sent when a submit finishes.
type SubmittedMsg struct {
	Result *session.Result
	Err    error
}

// PrintedMsg is sent when the print command returns.
type PrintedMsg struct {
	Err error
}

// RunsLoadedMsg carries the report history.
type RunsLoadedMsg struct {
	Runs []model.Run
	Err  error
}

// RunLoadedMsg carries one past run with its rows.
type RunLoadedMsg struct {
	Run model.Run
	Err error
}

// Options configures a new App.
type Options struct {
	Session  *session.Session
	Cache    *store.Cache // optional; enables the History view
	Config   config.Config
	StartDir string // where the file picker opens
	Setup    bool   // show the setup form first
}

// App is the root Bubble Tea model.
type App struct {
	sess     *session.Session
	cache    *store.Cache
	cfg      config.Config
	startDir string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	keys      keyMap
	help      help.Model

	// File picker (huh), one period at a time
	picker     *huh.Form
	pickPeriod model.Period
	picked     *string

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues

	// Background work
	busy      bool
	busyLabel string
	spinner   spinner.Model

	result    *session.Result
	fromCache map[model.Period]bool

	// History view
	runs      []model.Run
	runCursor int
	runDetail *model.Run

	status     string
	statusKind components.StatusKind
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 140
	printTimeout     = 30 * time.Second
)

const (
	tabReport = iota
	tabAM
	tabPM
	tabHistory
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	startDir := opts.StartDir
	if startDir == "" {
		startDir = "."
	}

	a := App{
		sess:      opts.Session,
		cache:     opts.Cache,
		cfg:       opts.Config,
		startDir:  startDir,
		keys:      newKeyMap(),
		help:      help.New(),
		spinner:   sp,
		picked:    new(string),
		fromCache: make(map[model.Period]bool),
		status:    "Choose the AM and PM sales files, then submit",
	}
	if opts.Setup {
		a.setupVals = SetupValuesFrom(opts.Config)
		a.setupForm = NewSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	if a.cache != nil {
		cmds = append(cmds, loadRunsCmd(a.cache))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.picker != nil {
			a.picker = a.picker.WithWidth(a.contentWidth())
		}
		return a, nil

	case tea.MouseMsg:
		if a.setupForm != nil || a.picker != nil || a.showHelp {
			return a, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := components.TabAtX(msg.X, a.activeTab); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.picker != nil {
			if msg.String() == "esc" {
				a.picker = nil
				a.setStatus("File selection cancelled", components.StatusInfo)
				return a, nil
			}
			return a.updatePicker(msg)
		}
		return a.handleKey(msg)

	case FileLoadedMsg:
		a.busy = false
		if msg.Err != nil {
			a.setStatus(fmt.Sprintf("Cannot process %s: %s", filepath.Base(msg.Path), rootCause(msg.Err)), components.StatusError)
			return a, nil
		}
		a.setStatus(fmt.Sprintf("Loaded %s sales from %s (through %s)",
			msg.Period, filepath.Base(msg.Path), msg.Forecast.EndDate.Format("Jan 2")), components.StatusOK)
		if msg.Period == model.PeriodAM {
			a.activeTab = tabAM
		} else {
			a.activeTab = tabPM
		}
		return a, nil

	case SubmittedMsg:
		a.busy = false
		switch {
		case errors.Is(msg.Err, pipeline.ErrMissingPeriod):
			a.setStatus(missingPeriodText(a.sess), components.StatusWarn)
			return a, nil
		case msg.Err != nil:
			a.setStatus(msg.Err.Error(), components.StatusError)
			return a, nil
		}
		a.result = msg.Result
		a.activeTab = tabReport
		a.setStatus("Report saved to "+msg.Result.Path, components.StatusOK)
		if a.cache != nil {
			return a, loadRunsCmd(a.cache)
		}
		return a, nil

	case PrintedMsg:
		a.busy = false
		switch {
		case errors.Is(msg.Err, report.ErrNothingToPrint):
			a.setStatus("Nothing to print yet: submit the sales files first", components.StatusWarn)
		case msg.Err != nil:
			a.setStatus(msg.Err.Error(), components.StatusError)
		default:
			a.setStatus("Sent "+a.sess.OutputPath()+" to the printer", components.StatusOK)
		}
		return a, nil

	case RunsLoadedMsg:
		if msg.Err != nil {
			a.setStatus("History unavailable: "+msg.Err.Error(), components.StatusWarn)
			return a, nil
		}
		a.runs = msg.Runs
		if a.runCursor >= len(a.runs) {
			a.runCursor = max(0, len(a.runs)-1)
		}
		a.runDetail = nil
		if len(a.runs) > 0 {
			return a, loadRunCmd(a.cache, a.runs[a.runCursor].ID)
		}
		return a, nil

	case RunLoadedMsg:
		if msg.Err == nil {
			run := msg.Run
			a.runDetail = &run
		}
		return a, nil

	case spinner.TickMsg:
		if a.busy {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to an active form (cursor blinks, dir reads)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.picker != nil {
		return a.updatePicker(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showHelp {
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		a.showHelp = false
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.ChooseAM):
		return a.openPicker(model.PeriodAM)

	case key.Matches(msg, a.keys.ChoosePM):
		return a.openPicker(model.PeriodPM)

	case key.Matches(msg, a.keys.Submit):
		if a.busy {
			return a, nil
		}
		a.startBusy("Building report")
		return a, tea.Batch(a.spinner.Tick, submitCmd(a.sess))

	case key.Matches(msg, a.keys.Print):
		if a.busy {
			return a, nil
		}
		a.startBusy("Printing")
		return a, tea.Batch(a.spinner.Tick, printCmd(a.sess.OutputPath(), a.cfg.Print.Command))

	case key.Matches(msg, a.keys.Reset):
		if a.busy {
			return a, nil
		}
		a.sess.Reset()
		a.result = nil
		a.fromCache = make(map[model.Period]bool)
		a.setStatus("Cleared loaded files", components.StatusInfo)
		return a, nil

	case key.Matches(msg, a.keys.NextTab):
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil

	case key.Matches(msg, a.keys.PrevTab):
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil

	case key.Matches(msg, a.keys.Up):
		return a.moveRunCursor(-1)

	case key.Matches(msg, a.keys.Down):
		return a.moveRunCursor(1)
	}

	if r := []rune(msg.String()); len(r) == 1 {
		if tab := components.TabIdxByKey(r[0]); tab >= 0 {
			a.activeTab = tab
		}
	}
	return a, nil
}

func (a App) moveRunCursor(delta int) (tea.Model, tea.Cmd) {
	if a.activeTab != tabHistory || len(a.runs) == 0 {
		return a, nil
	}
	next := a.runCursor + delta
	if next < 0 || next >= len(a.runs) {
		return a, nil
	}
	a.runCursor = next
	return a, loadRunCmd(a.cache, a.runs[next].ID)
}

func (a App) openPicker(period model.Period) (tea.Model, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	dir := a.startDir
	if pf := a.sess.Forecast(period); pf != nil && pf.Source != "" {
		dir = filepath.Dir(pf.Source)
	}
	*a.picked = ""
	a.pickPeriod = period
	a.picker = newFilePicker(period, dir, a.picked)
	if a.width > 0 {
		a.picker = a.picker.WithWidth(a.contentWidth())
	}
	return a, a.picker.Init()
}

func (a App) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.picker.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.picker = f
	}

	switch a.picker.State {
	case huh.StateCompleted:
		path := *a.picked
		period := a.pickPeriod
		a.picker = nil
		if path == "" {
			a.setStatus("No file selected", components.StatusWarn)
			return a, nil
		}
		a.startBusy(fmt.Sprintf("Loading %s sales", period))
		return a, tea.Batch(a.spinner.Tick, loadFileCmd(a.sess, period, path))
	case huh.StateAborted:
		a.picker = nil
		a.setStatus("File selection cancelled", components.StatusInfo)
		return a, nil
	}
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		cfg := a.cfg
		if err := a.setupVals.Apply(&cfg); err != nil {
			a.setStatus("Setup not saved: "+err.Error(), components.StatusWarn)
		} else if err := config.Save(cfg); err != nil {
			a.setStatus("Could not save config: "+err.Error(), components.StatusWarn)
		} else {
			a.cfg = cfg
			theme.SetActive(cfg.Appearance.Theme)
			a.setStatus("Saved settings to "+config.Path()+", they apply from the next start", components.StatusOK)
		}
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a *App) startBusy(label string) {
	a.busy = true
	a.busyLabel = label
}

func (a *App) setStatus(msg string, kind components.StatusKind) {
	a.status = msg
	a.statusKind = kind
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  shiftcast needs at least %d columns.\n",
			a.width, minTerminalWidth)
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewMain() string {
	cw := a.contentWidth()

	var body string
	if a.picker != nil {
		body = components.AccentCard("", a.picker.View(), cw)
	} else {
		switch a.activeTab {
		case tabReport:
			body = a.renderReportTab(cw)
		case tabAM:
			body = a.renderPeriodTab(model.PeriodAM, cw)
		case tabPM:
			body = a.renderPeriodTab(model.PeriodPM, cw)
		case tabHistory:
			body = a.renderHistoryTab(cw)
		}
	}

	status := a.status
	if a.busy {
		status = a.spinner.View() + " " + a.busyLabel + "..."
	}
	hints := a.help.ShortHelpView(a.keys.ShortHelp())
	bar := components.RenderStatusBar(a.width, hints, status, a.statusKind)

	header := components.RenderTabBar(a.activeTab, a.width)
	contentH := max(1, a.height-lipgloss.Height(header)-lipgloss.Height(bar))

	return header + "\n" + padHeight(truncateHeight(body, contentH), contentH) + "\n" + bar
}

func (a App) viewHelp() string {
	t := theme.Active
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("shiftcast"))
	b.WriteString(mutedStyle.Render("  next week's sales forecast"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Means over the last %d days, week starting %s.",
		a.cfg.General.WindowDays, a.cfg.Anchor())))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press any key to close."))

	card := components.AccentCard("Keys", b.String(), min(a.contentWidth(), 72))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func newFilePicker(period model.Period, dir string, value *string) *huh.Form {
	fp := huh.NewFilePicker().
		Title(fmt.Sprintf("Choose the %s sales file", period)).
		Description("CSV or Excel export. Enter selects, esc cancels.").
		CurrentDirectory(dir).
		AllowedTypes([]string{".csv", ".xlsx", ".xlsm"}).
		FileAllowed(true).
		DirAllowed(false).
		Picking(true).
		Height(15).
		Value(value)
	return huh.NewForm(huh.NewGroup(fp)).WithShowHelp(true)
}

func loadFileCmd(sess *session.Session, period model.Period, path string) tea.Cmd {
	return func() tea.Msg {
		pf, err := sess.Load(period, path)
		return FileLoadedMsg{Period: period, Path: path, Forecast: pf, Err: err}
	}
}

func submitCmd(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		res, err := sess.Submit()
		return SubmittedMsg{Result: res, Err: err}
	}
}

func printCmd(path, command string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), printTimeout)
		defer cancel()
		return PrintedMsg{Err: report.Print(ctx, path, command)}
	}
}

func loadRunsCmd(cache *store.Cache) tea.Cmd {
	return func() tea.Msg {
		runs, err := cache.ListRuns(50)
		return RunsLoadedMsg{Runs: runs, Err: err}
	}
}

func loadRunCmd(cache *store.Cache, id int64) tea.Cmd {
	return func() tea.Msg {
		run, err := cache.GetRun(id)
		return RunLoadedMsg{Run: run, Err: err}
	}
}

func missingPeriodText(sess *session.Session) string {
	am, pm := sess.Forecast(model.PeriodAM), sess.Forecast(model.PeriodPM)
	switch {
	case am == nil && pm == nil:
		return "Please choose both the AM and PM sales files before submitting"
	case am == nil:
		return "Please choose the AM sales file before submitting"
	default:
		return "Please choose the PM sales file before submitting"
	}
}

// rootCause drops the "reading <path>:" prefixes the status line already shows.
func rootCause(err error) string {
	var amountErr *pipeline.AmountError
	if errors.As(err, &amountErr) {
		return amountErr.Error()
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && errors.Is(err, pipeline.ErrNoUsableRows) {
		return msg[i+2:]
	}
	return msg
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	n := strings.Count(s, "\n") + 1
	if n >= h {
		return s
	}
	return s + strings.Repeat("\n", h-n)
}
