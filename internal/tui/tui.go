// Package tui provides a Bubble Tea terminal user interface for batchdl.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/batchdl/batchdl/internal/config"
	"github.com/batchdl/batchdl/internal/download"
	"github.com/batchdl/batchdl/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
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
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	batch     *model.BatchResult
	err       error

	ctx    context.Context
	cancel context.CancelFunc

	manager *download.Manager
	events  chan download.ProgressEvent

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "https://x.test/a.pdf https://x.test/b.pdf  (or @input.json)"
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 70

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when a download progress event arrives.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// DownloadDoneMsg is sent when the whole batch finished.
	DownloadDoneMsg struct {
		Batch *model.BatchResult
		Err   error
	}

	// TickMsg is for periodic progress-bar updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
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
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateDownloading
				return m, tea.Batch(m.startDownload(m.textInput.Value()), m.waitForEvent(), m.tickProgress(), m.spinner.Tick)
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new batch
				m.state = StateInput
				m.logs = nil
				m.batch = nil
				m.err = nil
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level != download.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{
				Message: msg.Event.Message,
				Level:   msg.Event.Level,
			})
			// Keep only last 10 logs
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		}
		cmds = append(cmds, m.waitForEvent())

	case DownloadDoneMsg:
		m.batch = msg.Batch
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateDownloading {
			_, done, total := m.managerProgress()
			var percent float64
			if total > 0 {
				percent = float64(done) / float64(total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// startDownload kicks off the batch in the background. The returned command
// resolves once every job has an outcome.
func (m *Model) startDownload(input string) tea.Cmd {
	m.events = make(chan download.ProgressEvent, 64)
	events := m.events

	manager := download.NewManager(m.settings, func(event download.ProgressEvent) {
		select {
		case events <- event:
		default:
		}
	})
	m.manager = manager

	ctx := m.ctx
	return func() tea.Msg {
		payload, err := parseInput(input)
		if err != nil {
			close(events)
			return DownloadDoneMsg{Err: err}
		}

		batch, err := manager.Run(ctx, payload)
		close(events)
		return DownloadDoneMsg{Batch: batch, Err: err}
	}
}

// parseInput turns the text field value into a run payload: "@path" loads a
// JSON file, anything else is treated as whitespace-separated URLs.
func parseInput(input string) (any, error) {
	input = strings.TrimSpace(input)

	if strings.HasPrefix(input, "@") {
		data, err := os.ReadFile(strings.TrimPrefix(input, "@"))
		if err != nil {
			return nil, err
		}
		var payload any
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("parse input file: %w", err)
		}
		return payload, nil
	}

	var urls []any
	for _, field := range strings.Fields(input) {
		urls = append(urls, field)
	}
	return urls, nil
}

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

func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

func (m Model) managerProgress() (received int64, done, total int32) {
	return m.manager.GetProgress()
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("batchdl"))
	b.WriteString("\n")

	switch m.state {
	case StateInput:
		b.WriteString(subtitleStyle.Render("Enter URLs, or @path to a JSON input file"))
		b.WriteString("\n\n")
		b.WriteString(m.textInput.View())
		b.WriteString("\n\n")
		b.WriteString(m.renderOptions())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("enter: start  v: toggle verbose  esc: quit"))

	case StateDownloading:
		received, done, total := m.managerProgress()
		b.WriteString(fmt.Sprintf("%s Downloading %d/%d files (%.2f MB)\n\n",
			m.spinner.View(), done, total, float64(received)/1024/1024))
		b.WriteString(m.progress.View())
		b.WriteString("\n\n")
		b.WriteString(m.renderLogs())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("esc: cancel"))

	case StateComplete:
		b.WriteString(successStyle.Render("Batch complete"))
		b.WriteString("\n\n")
		b.WriteString(m.renderSummary())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("r: new batch  q: quit"))

	case StateError:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(m.renderLogs())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("r: retry  q: quit"))
	}

	return boxStyle.Render(b.String())
}

func (m Model) renderOptions() string {
	folder := m.settings.Folder
	if folder == "" {
		folder = "."
	}

	lines := []string{
		fmt.Sprintf("output:  %s", folder),
		fmt.Sprintf("pattern: %s", m.settings.NamePattern),
		fmt.Sprintf("limit:   %g MB, %d concurrent", m.settings.MaxSizeInMb, m.settings.Concurrency),
	}
	if m.verbose {
		lines = append(lines, "verbose: on")
	}

	return dimStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderLogs() string {
	if len(m.logs) == 0 {
		return dimStyle.Render("waiting...")
	}

	var lines []string
	for _, entry := range m.logs {
		style := infoStyle
		switch entry.Level {
		case download.LevelError:
			style = errorStyle
		case download.LevelWarning:
			style = warningStyle
		case download.LevelSuccess:
			style = successStyle
		case download.LevelVerbose:
			style = dimStyle
		}
		lines = append(lines, style.Render(entry.Message))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderSummary() string {
	if m.batch == nil {
		return ""
	}

	var ok, failed int
	var lines []string
	for i, out := range m.batch.FilePaths {
		if out.OK() {
			ok++
			lines = append(lines, successStyle.Render(fmt.Sprintf("%3d  %s", i, out.Path())))
		} else {
			failed++
			lines = append(lines, errorStyle.Render(fmt.Sprintf("%3d  %v", i, out.Err())))
		}
	}
	if len(lines) > 12 {
		lines = append(lines[:12], dimStyle.Render(fmt.Sprintf("... and %d more", len(lines)-12)))
	}

	header := fmt.Sprintf("%d saved, %d failed", ok, failed)
	return subtitleStyle.Render(header) + "\n" + strings.Join(lines, "\n")
}

// Run starts the TUI program.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
