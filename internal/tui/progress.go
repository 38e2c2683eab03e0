// Package tui renders live scan progress with bubbletea. The scan itself
// runs on its own goroutine; the view only reads the shared Stats atomics.
package tui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leadgrid/leadgrid/internal/engine/scraper"
	"github.com/leadgrid/leadgrid/internal/model"
)

type tickMsg time.Time

type scanDoneMsg struct {
	err error
}

// scanOutcome collects what the scan goroutine produced, behind a mutex
// because bubbletea copies models by value.
type scanOutcome struct {
	mu      sync.Mutex
	results *model.ResultSet
	err     error
}

func (o *scanOutcome) set(rs *model.ResultSet, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results, o.err = rs, err
}

func (o *scanOutcome) get() (*model.ResultSet, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.results, o.err
}

type scanModel struct {
	area      model.SearchArea
	types     []string
	stats     *scraper.Stats
	cancel    context.CancelFunc
	progress  progress.Model
	startTime time.Time
	canceling bool
	done      bool
	err       error
}

// RunScan drives a full scan under a live progress view. Esc or ctrl+c
// cancels the run; whatever was aggregated up to that point is returned
// along with context.Canceled.
func RunScan(parent context.Context, area model.SearchArea, types []string, client *scraper.Client, cfg scraper.Config, logger *log.Logger) (*model.ResultSet, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	stats := &scraper.Stats{}
	outcome := &scanOutcome{}

	m := scanModel{
		area:   area,
		types:  types,
		stats:  stats,
		cancel: cancel,
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(50),
		),
		startTime: time.Now(),
	}

	p := tea.NewProgram(m)

	go func() {
		rs, err := scraper.Run(ctx, area, types, client, cfg, logger, &scraper.RunOptions{
			SuppressStderr: true,
			Stats:          stats,
		})
		outcome.set(rs, err)
		p.Send(scanDoneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		return nil, fmt.Errorf("running progress view: %w", err)
	}

	return outcome.get()
}

func (m scanModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.canceling = true
			m.cancel()
			return m, nil
		}
	case tickMsg:
		if m.done {
			return m, nil
		}
		return m, tickCmd()
	case scanDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}

	var cmd tea.Cmd
	var pm tea.Model
	pm, cmd = m.progress.Update(msg)
	m.progress = pm.(progress.Model)
	return m, cmd
}

func (m scanModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Scanning %.4f, %.4f (r=%.1fkm)", m.area.Lat, m.area.Lon, m.area.RadiusKm)
	if len(m.types) > 0 {
		title += fmt.Sprintf(" — %s", strings.Join(m.types, ", "))
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(statsBoxStyle.Render(m.renderStats()))
	b.WriteString("\n\n")

	var pct float64
	if m.stats.CellsTotal > 0 {
		pct = float64(m.stats.CellsDone.Load()) / float64(m.stats.CellsTotal)
	}
	b.WriteString(m.progress.ViewAs(pct))
	b.WriteString("\n")

	switch {
	case m.done && m.err != nil && m.err != context.Canceled:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.done:
		b.WriteString(successStyle.Render(fmt.Sprintf("Complete! %d unique businesses", m.stats.Kept.Load())))
	case m.canceling:
		b.WriteString(warningStyle.Render("Stopping after current cell..."))
	default:
		b.WriteString(statusBarStyle.Render("esc cancel • ctrl+c quit"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m scanModel) renderStats() string {
	var sb strings.Builder

	row := func(label, value string) {
		sb.WriteString(statLabelStyle.Render(label))
		sb.WriteString(statValueStyle.Render(value))
		sb.WriteString("\n")
	}

	done := m.stats.CellsDone.Load()
	total := int64(m.stats.CellsTotal)
	elapsed := time.Since(m.startTime).Truncate(time.Second)

	row("Cells:", fmt.Sprintf("%d/%d", done, total))
	row("Found:", fmt.Sprintf("%d", m.stats.Found.Load()))
	row("Unique:", fmt.Sprintf("%d", m.stats.Kept.Load()))

	if errs := m.stats.Errors.Load(); errs > 0 {
		sb.WriteString(statLabelStyle.Render("Skipped:"))
		sb.WriteString(errorStyle.Render(fmt.Sprintf("%d", errs)))
		sb.WriteString("\n")
	}
	if rl := m.stats.RateLimits.Load(); rl > 0 {
		sb.WriteString(statLabelStyle.Render("Rate Lim:"))
		sb.WriteString(warningStyle.Render(fmt.Sprintf("%d", rl)))
		sb.WriteString("\n")
	}

	row("Elapsed:", elapsed.String())

	if done > 0 && done < total && !m.done {
		perCell := elapsed.Seconds() / float64(done)
		eta := time.Duration(perCell * float64(total-done) * float64(time.Second)).Truncate(time.Second)
		row("ETA:", "~"+eta.String())
	}

	return sb.String()
}
