// Package tui provides a Bubble Tea terminal user interface for modfetch.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/handiism/modfetch/internal/config"
	"github.com/handiism/modfetch/internal/download"
	"github.com/handiism/modfetch/internal/manifest"
	"github.com/handiism/modfetch/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F16436")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateDownloading
	StateComplete
	StateError
)

const maxLogs = 10

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state    State
	inputs   []textinput.Model
	focus    int
	spinner  spinner.Model
	progress progress.Model
	settings *config.Settings
	logs     []LogEntry
	result   *model.Result
	err      error

	// Download context
	ctx    context.Context
	cancel context.CancelFunc

	manager *download.Manager
	events  chan download.ProgressEvent

	// Download progress
	round         int32
	doneFiles     int32
	totalFiles    int32
	receivedBytes int64

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model using settings.
func NewModel(settings *config.Settings) Model {
	manifestInput := textinput.New()
	manifestInput.Placeholder = "manifest.json"
	manifestInput.Prompt = "Manifest: "
	manifestInput.CharLimit = 500
	manifestInput.Width = 60
	manifestInput.Focus()

	outInput := textinput.New()
	outInput.Placeholder = "mods"
	outInput.Prompt = "Output:   "
	outInput.CharLimit = 500
	outInput.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F16436"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:    StateInput,
		inputs:   []textinput.Model{manifestInput, outInput},
		spinner:  sp,
		progress: prog,
		settings: settings,
		logs:     make([]LogEntry, 0),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every progress event of the manager.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// DownloadDoneMsg is sent when the run completes.
	DownloadDoneMsg struct {
		Result *model.Result
		Err    error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading {
				m.cancel()
			}

		case "tab", "shift+tab", "up", "down":
			if m.state == StateInput {
				m.inputs[m.focus].Blur()
				m.focus = (m.focus + 1) % len(m.inputs)
				cmds = append(cmds, m.inputs[m.focus].Focus())
				return m, tea.Batch(cmds...)
			}

		case "ctrl+v":
			if m.state == StateInput {
				m.verbose = !m.verbose
				return m, nil
			}

		case "enter":
			if m.state == StateInput {
				if m.inputs[m.focus].Value() == "" || m.focus < len(m.inputs)-1 {
					m.inputs[m.focus].Blur()
					m.focus = (m.focus + 1) % len(m.inputs)
					return m, m.inputs[m.focus].Focus()
				}
				return m.start()
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new run
				m.state = StateInput
				m.logs = nil
				m.result = nil
				m.err = nil
				m.round, m.doneFiles, m.totalFiles, m.receivedBytes = 0, 0, 0, 0
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.focus = 0
				return m, m.inputs[0].Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, m.waitForEvent())
		if msg.Event.Level == download.LevelVerbose && !m.verbose {
			return m, tea.Batch(cmds...)
		}
		m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case DownloadDoneMsg:
		m.updateProgress()
		m.result = msg.Result
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = errors.New("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateDownloading {
			m.updateProgress()
			var percent float64
			if m.totalFiles > 0 {
				percent = float64(m.doneFiles) / float64(m.totalFiles)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// start validates the inputs and launches the run.
func (m Model) start() (tea.Model, tea.Cmd) {
	if err := m.settings.Validate(); err != nil {
		m.state = StateError
		m.err = err
		return m, nil
	}

	entries, err := manifest.Load(m.inputs[0].Value())
	if err != nil {
		m.state = StateError
		m.err = err
		return m, nil
	}

	m.events = make(chan download.ProgressEvent, 64)
	events := m.events
	m.manager = download.NewManager(m.settings, m.inputs[1].Value(), zerolog.Nop(), func(event download.ProgressEvent) {
		events <- event
	})
	m.totalFiles = int32(len(entries))
	m.state = StateDownloading

	return m, tea.Batch(m.startDownload(entries), m.waitForEvent(), m.tickProgress(), m.spinner.Tick)
}

func (m *Model) updateProgress() {
	if m.manager == nil {
		return
	}
	m.round, m.doneFiles, m.totalFiles, m.receivedBytes = m.manager.GetProgress()
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent forwards the next progress event to Update.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// startDownload runs the manager in the background.
func (m Model) startDownload(entries []model.ManifestEntry) tea.Cmd {
	ctx, manager, events := m.ctx, m.manager, m.events
	return func() tea.Msg {
		result, err := manager.Run(ctx, entries)
		close(events)
		return DownloadDoneMsg{Result: result, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("modfetch"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download the mods of a CurseForge modpack"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Modpack:"))
	b.WriteString("\n\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[x]"
	}
	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Workers: %d | Rate limit: %d/s", m.settings.MaxConcurrentDownloads, m.settings.RateLimit)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Downloading mods (round %d)...", max(m.round, 1))))
	b.WriteString("\n\n")

	var percent float64
	if m.totalFiles > 0 {
		percent = float64(m.doneFiles) / float64(m.totalFiles)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Mods: %d/%d | Downloaded: %.2f MB",
		m.doneFiles,
		m.totalFiles,
		float64(m.receivedBytes)/1024/1024,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	r := m.result
	if r == nil {
		r = &model.Result{}
	}

	b.WriteString(boxStyle.Render(fmt.Sprintf(
		"Download Complete!\n\n"+
			"Mods: %d\n"+
			"Manual: %d\n"+
			"Failed: %d\n"+
			"Rounds: %d\n"+
			"Size: %.2f MB",
		len(r.Jars)-len(r.ManualDownloads),
		len(r.ManualDownloads),
		len(r.Failed),
		r.Rounds,
		float64(m.receivedBytes)/1024/1024,
	)))
	b.WriteString("\n")

	if len(r.ManualDownloads) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Download these manually:"))
		b.WriteString("\n")
		for _, md := range r.ManualDownloads {
			b.WriteString(urlStyle.Render("  " + md.URL))
			b.WriteString("\n")
			b.WriteString(dimStyle.Render("    -> " + md.Outcome.Path))
			b.WriteString("\n")
		}
	}

	if len(r.Failed) > 0 {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Could not fetch:"))
		b.WriteString("\n")
		for _, e := range r.Failed {
			b.WriteString(fmt.Sprintf("  project %d, file %d\n", e.ProjectID, e.FileID))
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: next/start • tab: switch field • ctrl+v: verbose • esc: quit"
	case StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
