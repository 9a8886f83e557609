// Package tui implements the interactive upload-and-render client: one
// bubbletea model owning all client state (current file, phase, last
// result, pending alert).
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"arffview/internal/config"
	"arffview/internal/dataset"
	apperrors "arffview/internal/errors"
	"arffview/internal/logging"
	"arffview/internal/render"
	"arffview/internal/service"
	"arffview/internal/tui/msg"
	"arffview/internal/tui/styles"
	"arffview/internal/watch"
)

// phase is the client's UI state.
type phase int

const (
	// phasePicking: no valid selection yet, the path input is focused.
	phasePicking phase = iota
	// phaseReady: a file is selected and submission is enabled.
	phaseReady
	// phaseUploading: one submission is in flight; submit keys are
	// ignored so at most one request runs at a time.
	phaseUploading
	// phaseResults: the last response is rendered and scrollable.
	phaseResults
)

// Model holds the TUI application state
type Model struct {
	cfg     *config.Config
	client  service.Client
	watcher *watch.Watcher // nil when no drop directory is configured
	logger  *logging.Logger

	phase    phase
	input    textinput.Model
	spin     spinner.Model
	selected *dataset.Selected

	// alert is the pending blocking alert text; non-empty means the
	// overlay is up and must be dismissed before anything else.
	alert string

	// results holds the rendered regions of the last response.
	results string
	scroll  int

	sent, total int64
	progressCh  chan msg.UploadProgressMsg

	width    int
	height   int
	quitting bool
}

// NewModel creates a new TUI model. watcher may be nil.
func NewModel(cfg *config.Config, client service.Client, watcher *watch.Watcher, logger *logging.Logger) Model {
	input := textinput.New()
	input.Placeholder = "path/to/dataset" + cfg.Upload.Extension
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Primary

	return Model{
		cfg:        cfg,
		client:     client,
		watcher:    watcher,
		logger:     logger,
		phase:      phasePicking,
		input:      input,
		spin:       spin,
		progressCh: make(chan msg.UploadProgressMsg, 16),
	}
}

// WithClient returns a copy of the model wired to client. The client is
// injected after construction because it wants the model's progress
// callback.
func (m Model) WithClient(client service.Client) Model {
	m.client = client
	return m
}

// ProgressFunc returns the upload progress callback to wire into the
// service client. It never blocks the upload goroutine.
func (m Model) ProgressFunc() service.ProgressFunc {
	ch := m.progressCh
	return func(sent, total int64) {
		select {
		case ch <- msg.UploadProgressMsg{Sent: sent, Total: total}:
		default:
		}
	}
}

// Init starts the input cursor blink and, when a drop directory is
// configured, the watcher relay.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.watcher != nil {
		cmds = append(cmds, msg.WaitForDrop(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(message)

	case spinner.TickMsg:
		if m.phase != phaseUploading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(message)
		return m, cmd

	case msg.FileOfferedMsg:
		m.selectFile(message.Path)
		return m, m.rearmWatcher()

	case msg.DropRejectedMsg:
		m.alert = fmt.Sprintf("only %s files are accepted (got %q)", m.cfg.Upload.Extension, message.Path)
		return m, m.rearmWatcher()

	case msg.WatchErrMsg:
		m.alert = fmt.Sprintf("drop directory watcher failed: %v", message.Err)
		return m, m.rearmWatcher()

	case msg.UploadProgressMsg:
		if m.phase != phaseUploading {
			return m, nil
		}
		m.sent, m.total = message.Sent, message.Total
		return m, msg.ListenProgress(m.progressCh)

	case msg.UploadFinishedMsg:
		return m.finishUpload(message)
	}

	if m.phase == phasePicking && m.alert == "" {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(message)
		return m, cmd
	}
	return m, nil
}

// handleKey routes key presses by phase. A pending alert swallows
// everything except dismissal, approximating a blocking alert.
func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.alert != "" {
		switch key.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.alert = ""
		}
		return m, nil
	}

	switch m.phase {
	case phasePicking:
		return m.handlePickingKey(key)
	case phaseReady:
		return m.handleReadyKey(key)
	case phaseUploading:
		// Submission is disabled while one request is in flight.
		return m, nil
	case phaseResults:
		return m.handleResultsKey(key)
	}
	return m, nil
}

func (m Model) handlePickingKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEnter:
		if m.input.Value() != "" {
			m.selectFile(m.input.Value())
		}
		return m, nil
	case tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m Model) handleReadyKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter", "s":
		return m.startUpload()
	case "n":
		return m.backToPicking(), nil
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleResultsKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
	case "down", "j":
		if m.scroll < m.maxScroll() {
			m.scroll++
		}
	case "s":
		return m.startUpload()
	case "n":
		return m.backToPicking(), nil
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// selectFile validates path and makes it the current selection,
// replacing any previous one. Invalid files alert and leave state
// untouched.
func (m *Model) selectFile(path string) {
	sel, err := dataset.Select(path, m.cfg.Upload.Extension, m.cfg.Upload.MaxSizeBytes)
	if err != nil {
		m.logger.Warn("file rejected", "path", path, "error", err)
		m.alert = apperrors.UserMessage(err)
		return
	}

	m.logger.Info("file selected", "file", sel.Name, "bytes", sel.Size)
	m.selected = &sel
	m.phase = phaseReady
	m.input.SetValue("")
}

// startUpload begins the one in-flight submission.
func (m Model) startUpload() (tea.Model, tea.Cmd) {
	if m.selected == nil {
		m.alert = apperrors.ErrNoFileSelected.Error()
		return m, nil
	}

	m.phase = phaseUploading
	m.sent, m.total = 0, 0

	return m, tea.Batch(
		m.spin.Tick,
		msg.Submit(m.client, *m.selected),
		msg.ListenProgress(m.progressCh),
	)
}

// finishUpload leaves the loading state on every outcome and either
// alerts or renders the result.
func (m Model) finishUpload(message msg.UploadFinishedMsg) (tea.Model, tea.Cmd) {
	if message.Err != nil {
		m.logger.Error("submission failed", "error", message.Err)
		m.alert = apperrors.UserMessage(message.Err)
		m.phase = phaseReady
		return m, nil
	}

	rendered, err := render.Result(message.Result, render.Options{
		HistogramDir: m.cfg.Output.HistogramDir,
		Contract:     contractVariant(m.cfg.Service.Contract),
	})
	// A render failure keeps the regions produced before it; the alert
	// carries the error.
	m.results = rendered
	m.scroll = 0
	m.phase = phaseResults
	if err != nil {
		m.logger.Error("render failed", "error", err)
		m.alert = apperrors.UserMessage(err)
	}
	return m, nil
}

// backToPicking returns to file selection, keeping the previous results
// until the next render replaces them.
func (m Model) backToPicking() Model {
	m.phase = phasePicking
	m.input.SetValue("")
	m.input.Focus()
	return m
}

// rearmWatcher re-issues the watcher relay command.
func (m Model) rearmWatcher() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return msg.WaitForDrop(m.watcher)
}

// contractVariant maps the config contract string to an InfoVariant.
func contractVariant(contract string) service.InfoVariant {
	switch contract {
	case "stratify":
		return service.InfoStratify
	case "shape":
		return service.InfoShape
	default:
		return service.InfoNone
	}
}
