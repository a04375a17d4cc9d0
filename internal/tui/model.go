package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrboora04/focuspoint/internal/engine"
	"github.com/mrboora04/focuspoint/internal/types"
	"github.com/mrboora04/focuspoint/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	mission  *types.Mission
	progress engine.MissionProgress
	streak   engine.Streak
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	mission  *types.Mission
	progress engine.MissionProgress
	streak   engine.Streak
	err      error
}

type completedMsg struct {
	grade engine.Grade
	res   *engine.CompleteResult
	err   error
}

// actionMsg reports a breach action (penalty, restart, acknowledge).
type actionMsg struct {
	text string
	err  error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

// loadCmd reconciles before reading, so opening the board rolls the day over.
func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ReconcileActive(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		now := m.svc.Now()
		return loadedMsg{
			mission:  &res.Mission,
			progress: engine.Progress(res.Mission, now),
			streak:   engine.Streaks(res.Mission, now),
		}
	}
}

func (m boardModel) completeCmd(taskID string, g engine.Grade) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteTask(m.ctx, m.mission.ID, taskID, g.Points())
		return completedMsg{grade: g, res: res, err: err}
	}
}

func (m boardModel) acceptCmd() tea.Cmd {
	return func() tea.Msg {
		b, err := m.svc.AcceptPenalty(m.ctx, m.mission.ID)
		if err != nil || b == nil {
			return actionMsg{text: "Nothing to accept.", err: err}
		}
		return actionMsg{text: fmt.Sprintf("Penalty accepted for %s. Day marked failed.", b.Date)}
	}
}

func (m boardModel) restartCmd() tea.Cmd {
	return func() tea.Msg {
		ok, err := m.svc.Restart(m.ctx, m.mission.ID)
		if err != nil || !ok {
			return actionMsg{text: "Nothing to restart.", err: err}
		}
		return actionMsg{text: "Mission restarted from today."}
	}
}

func (m boardModel) ackCmd() tea.Cmd {
	return func() tea.Msg {
		ok, err := m.svc.AcknowledgeMercy(m.ctx, m.mission.ID)
		if err != nil || !ok {
			return actionMsg{text: "Nothing to acknowledge.", err: err}
		}
		return actionMsg{text: "Mercy acknowledged. Back to work."}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.mission = msg.mission
		m.progress = msg.progress
		m.streak = msg.streak
		if m.selected >= len(m.mission.Tasks) {
			m.selected = len(m.mission.Tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = completionLog(msg.grade, msg.res)
		return m, m.loadCmd()
	case actionMsg:
		if msg.err != nil {
			m.lastLog = "Action failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.text
		return m, m.loadCmd()
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m boardModel) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	}
	if m.mission == nil {
		return m, nil
	}

	// While a breach is open only the modal keys work.
	if m.mission.Pending != nil {
		switch {
		case m.mission.Blocked() && key == "p":
			return m, m.acceptCmd()
		case m.mission.Blocked() && key == "R":
			return m, m.restartCmd()
		case !m.mission.Blocked() && key == "a":
			return m, m.ackCmd()
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.mission.Tasks)-1 {
			m.selected++
		}
	case "c", " ", "enter":
		return m.complete(engine.GradeGood)
	case "f":
		return m.complete(engine.GradeFail)
	case "b":
		return m.complete(engine.GradeBetter)
	case "x":
		return m.complete(engine.GradeBest)
	}
	return m, nil
}

func (m boardModel) complete(g engine.Grade) (tea.Model, tea.Cmd) {
	if m.selected < 0 || m.selected >= len(m.mission.Tasks) {
		m.lastLog = "No task selected."
		return m, nil
	}
	t := m.mission.Tasks[m.selected]
	if t.Status == types.TaskCompleted {
		m.lastLog = "Already done."
		return m, nil
	}
	m.lastLog = fmt.Sprintf("Completing %s…", t.Title)
	return m, m.completeCmd(t.ID, g)
}

func completionLog(g engine.Grade, res *engine.CompleteResult) string {
	if res == nil || !res.Applied {
		reason := engine.SkipNone
		if res != nil {
			reason = res.Skipped
		}
		return fmt.Sprintf("Not recorded (%s).", reason)
	}
	s := fmt.Sprintf("%s %s: %+d pts (today %d)", g, res.Task.Title, g.Points(), res.ScoreAfter)
	if res.TargetReached {
		s += "  " + ui.BadgeTarget
	} else if res.Celebrate {
		s += " " + ui.IconSparkle
	}
	return s
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.mission == nil {
		return "FocusPoint — loading…"
	}
	cfg := m.mission.Config
	bar := progressBar(m.mission.TodayScore, cfg.DailyPointTarget, 30)
	return fmt.Sprintf("FocusPoint | %s | Day %d/%d | %d/%d pts %s",
		cfg.Name, m.progress.DayNumber, m.progress.TotalDays, m.mission.TodayScore, cfg.DailyPointTarget, bar)
}

func (m boardModel) renderSidebar() string {
	if m.mission == nil {
		return "Mission\n\nLoading…"
	}
	p := m.progress
	lines := []string{"Mission"}
	switch {
	case !p.Started:
		lines = append(lines, "- starts "+m.mission.Config.StartDate.String())
	case p.Finished:
		lines = append(lines, "- finished "+ui.IconTrophy)
	default:
		lines = append(lines, fmt.Sprintf("- %d days left", p.DaysRemaining))
		lines = append(lines, "- "+formatCountdown(p.TimeLeftToday)+" left today")
	}
	if !p.ScheduledToday {
		lines = append(lines, "- rest day")
	}
	lines = append(lines, fmt.Sprintf("- buffer: %d", m.mission.Config.BufferDays))
	lines = append(lines, fmt.Sprintf("- streak: %d (best %d)", m.streak.Current, m.streak.Best))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: good (+10)")
	lines = append(lines, "- b: better  x: best")
	lines = append(lines, "- f: fail (-15)")
	lines = append(lines, "- r: refresh  q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	if m.mission.Pending != nil {
		return m.renderBreach(*m.mission.Pending)
	}

	out := []string{"Today"}
	if len(m.mission.Tasks) == 0 {
		out = append(out, "(no tasks)")
		return strings.Join(out, "\n")
	}
	for i, t := range m.mission.Tasks {
		cursor, title := "  ", t.Title
		if i == m.selected {
			cursor, title = "> ", ui.SelectedRow.Render(t.Title)
		}
		out = append(out, fmt.Sprintf("%s%s %s [%s]", cursor, ui.TaskCheckbox(t.Status), title, ui.PriorityText(t.Priority)))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderBreach(b types.Breach) string {
	cfg := m.mission.Config
	if b.MercyApplied {
		return ui.MercyModal.Render(strings.Join([]string{
			ui.Good.Render("Mercy applied"),
			"",
			fmt.Sprintf("You missed %s.", b.Date),
			fmt.Sprintf("A buffer day covered it (%d left).", cfg.BufferDays),
			"",
			"a: acknowledge",
		}, "\n"))
	}
	penalty := string(cfg.PenaltyType)
	if cfg.PenaltyDetail != "" {
		penalty += ": " + cfg.PenaltyDetail
	}
	return ui.Modal.Render(strings.Join([]string{
		ui.Bad.Render(ui.IconSkull + " Mission breached"),
		"",
		fmt.Sprintf("You missed %s.", b.Date),
		"Penalty: " + penalty,
		"",
		"p: accept penalty",
		"R: restart mission",
	}, "\n"))
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	return fmt.Sprintf("%02dh%02dm", h, mins)
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
