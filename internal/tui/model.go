package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/format"
	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/orchestration"
	"github.com/agbru/txt2pptx/internal/progress"
)

const (
	// historySize is the number of ticks kept for the sparkline.
	historySize = 40
	barWidth    = 40
	clockRate   = 250 * time.Millisecond
)

type (
	submittedMsg struct{ err error }
	clockMsg     time.Time
)

// Model is the root bubbletea model of the dashboard.
type Model struct {
	ctx         context.Context
	cancel      context.CancelFunc
	orch        *orchestration.Orchestrator
	request     generation.Request
	labels      *generation.Dictionary
	downloadURL func(string) string

	header  HeaderModel
	keymap  KeyMap
	help    help.Model
	history *percentHistory

	tick      progress.Tick
	outcome   *generation.Outcome
	failure   string
	notice    string
	submitErr error
	scroll    int
	width     int
	height    int
	now       func() time.Time
}

// NewModel creates the dashboard for orch. The first generation of req
// starts when the program initializes.
func NewModel(parent context.Context, orch *orchestration.Orchestrator, req generation.Request, labels *generation.Dictionary, downloadURL func(string) string, version string) Model {
	if labels == nil {
		labels = generation.LabelsFor(generation.LanguageEnglish)
	}
	ctx, cancel := context.WithCancel(parent)
	m := Model{
		ctx:         ctx,
		cancel:      cancel,
		orch:        orch,
		request:     req,
		labels:      labels,
		downloadURL: downloadURL,
		header:      NewHeaderModel(version),
		keymap:      DefaultKeyMap(),
		help:        help.New(),
		history:     newPercentHistory(historySize),
		now:         time.Now,
	}
	m.header.Start(m.now())
	return m
}

// Init starts the first generation and the elapsed-time clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.submitCmd(), clockCmd())
}

// submitCmd acknowledges the previous cycle and submits the request off the
// event loop, so presenter messages sent while holding the orchestrator's
// notification lock are always drained.
func (m Model) submitCmd() tea.Cmd {
	ctx, orch, req := m.ctx, m.orch, m.request
	return func() tea.Msg {
		if err := orch.Acknowledge(); err != nil {
			return submittedMsg{err: err}
		}
		return submittedMsg{err: orch.Submit(ctx, req)}
	}
}

func clockCmd() tea.Cmd {
	return tea.Tick(clockRate, func(t time.Time) tea.Msg { return clockMsg(t) })
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.tick = msg.Tick
		m.history.add(msg.Tick.Percent)
		return m, nil

	case SuccessMsg:
		o := msg.Outcome
		m.outcome = &o
		m.scroll = 0
		m.header.Finish(m.now(), orchestration.StateSucceeded)
		return m, nil

	case FailureMsg:
		m.failure = msg.Message
		m.header.Finish(m.now(), orchestration.StateFailed)
		return m, nil

	case RejectedMsg:
		m.notice = msg.Reason
		m.header.Finish(m.now(), orchestration.StateIdle)
		return m, nil

	case submittedMsg:
		m.submitErr = msg.err
		if errors.Is(msg.err, apperrors.ErrInFlight) || errors.Is(msg.err, apperrors.ErrNotTerminal) {
			m.notice = msg.err.Error()
		}
		return m, nil

	case clockMsg:
		return m, clockCmd()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Submit):
		if m.orch.State() == orchestration.StateRunning {
			m.notice = apperrors.ErrInFlight.Error()
			return m, nil
		}
		m.reset()
		return m, m.submitCmd()

	case key.Matches(msg, m.keymap.Up):
		if m.scroll > 0 {
			m.scroll--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.outcome != nil && m.scroll < len(m.outcome.Slides)-1 {
			m.scroll++
		}
	}
	return m, nil
}

// reset clears the view for a new generation.
func (m *Model) reset() {
	m.tick = progress.Tick{}
	m.outcome = nil
	m.failure = ""
	m.notice = ""
	m.submitErr = nil
	m.scroll = 0
	m.history.clear()
	m.header.Start(m.now())
}

// Err returns the error of the last generation once the program has
// exited. A rejected request returns its validation error.
func (m Model) Err() error {
	var validationErr apperrors.ValidationError
	if errors.As(m.submitErr, &validationErr) {
		return m.submitErr
	}
	_, err := m.orch.Wait(context.Background())
	if errors.Is(err, apperrors.ErrNothingSubmitted) {
		return nil
	}
	return err
}

// View renders the dashboard.
func (m Model) View() string {
	var body string
	switch {
	case m.outcome != nil:
		body = m.renderOutcome()
	case m.failure != "":
		body = errorStyle.Render("✗ " + m.failure)
	default:
		body = m.renderProgress()
	}

	panel := panelStyle
	if m.width > 4 {
		panel = panel.Width(m.width - 2)
	}

	var b strings.Builder
	b.WriteString(m.header.View(m.now()))
	b.WriteString("\n")
	b.WriteString(panel.Render(body))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(warningStyle.Render("! " + m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

func (m Model) renderProgress() string {
	title := m.tick.Title
	if title == "" {
		title = m.labels.Message(generation.MsgGenerating)
	}
	filled := barWidth * m.tick.Percent / 100
	bar := barStyle.Render(strings.Repeat("█", filled)) + barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))

	lines := []string{
		phaseStyle.Render(title),
		dimStyle.Render(m.tick.Detail),
		"",
		bar + " " + format.FormatPercent(m.tick.Percent),
		sparklineStyle.Render(m.history.sparkline()),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderOutcome() string {
	o := *m.outcome
	lines := []string{successStyle.Render("✓ " + m.labels.Summary(o))}
	if o.Subtitle != "" {
		lines = append(lines, dimStyle.Render(o.Subtitle))
	}
	lines = append(lines, "")

	visible := len(o.Slides)
	if m.height > 0 {
		// header, borders, summary lines, link, notice and help
		visible = max(1, m.height-12)
	}
	end := min(len(o.Slides), m.scroll+visible)
	width := len(fmt.Sprint(len(o.Slides)))
	for i := m.scroll; i < end; i++ {
		s := o.Slides[i]
		lines = append(lines, fmt.Sprintf("%*d. %s %s", width, i+1, s.Title, layoutStyle.Render("["+m.labels.Layout(s.Layout)+"]")))
	}

	if m.downloadURL != nil && o.Filename != "" {
		lines = append(lines, "", m.labels.Message(generation.MsgDownload)+": "+linkStyle.Render(m.downloadURL(o.Filename)))
	}
	return strings.Join(lines, "\n")
}

// Run builds the orchestrator around the dashboard's presenter, starts the
// first generation and blocks until the user quits. It returns the error of
// the last generation.
func Run(ctx context.Context, build func(orchestration.Presenter) *orchestration.Orchestrator, req generation.Request, labels *generation.Dictionary, downloadURL func(string) string, version string) error {
	// Styles depend on the theme chosen after package init.
	initTUIStyles()

	ref := &programRef{}
	orch := build(newPresenter(ref))
	model := NewModel(ctx, orch, req, labels, downloadURL, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	ref.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		model.cancel()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return apperrors.WrapError(err, "run dashboard")
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
