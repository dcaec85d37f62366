// Package ui renders the interactive scan view: a live progress bar
// fed by orchestrator updates, followed by the grouped result summary.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/fenilsonani/smartcare/internal/scan"
	"github.com/fenilsonani/smartcare/internal/ui/styles"
)

// ProgressMsg carries one orchestrator progress update
type ProgressMsg scan.ProgressUpdate

// ScanCompleteMsg signals the end of the run
type ScanCompleteMsg struct {
	Result *scan.Result
	Err    error
}

// ScanModel is the bubbletea model for a scan run
type ScanModel struct {
	spinner   spinner.Model
	bar       progress.Model
	latest    scan.ProgressUpdate
	result    *scan.Result
	err       error
	scanning  bool
	startTime time.Time
	width     int
}

// NewScanModel creates the scan view model
func NewScanModel() *ScanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	bar := progress.New(progress.WithDefaultGradient())

	return &ScanModel{
		spinner:   s,
		bar:       bar,
		scanning:  true,
		startTime: time.Now(),
		width:     80,
	}
}

// Init starts the spinner
func (m *ScanModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m *ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - 8
		if m.bar.Width > 60 {
			m.bar.Width = 60
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		barModel, cmd := m.bar.Update(msg)
		m.bar = barModel.(progress.Model)
		return m, cmd

	case ProgressMsg:
		m.latest = scan.ProgressUpdate(msg)
		return m, m.bar.SetPercent(m.latest.Overall)

	case ScanCompleteMsg:
		m.scanning = false
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the scan view
func (m *ScanModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Smart Care"))
	b.WriteString("\n\n")

	if m.scanning {
		b.WriteString(fmt.Sprintf("%s %s %s\n\n",
			m.spinner.View(),
			m.latest.Title,
			styles.DimStyle.Render(fmt.Sprintf("(%s)", time.Since(m.startTime).Round(time.Second)))))

		b.WriteString("  " + m.bar.View() + "\n\n")

		if m.latest.StageCount > 0 {
			b.WriteString(styles.DimStyle.Render(
				fmt.Sprintf("  Stage %d of %d", m.latest.Stage, m.latest.StageCount)))
			b.WriteString("\n")
		}
		if m.latest.Detail != "" {
			b.WriteString(styles.SubtitleStyle.Render("  " + m.latest.Detail))
			b.WriteString("\n")
		}

		c := m.latest.Counters
		b.WriteString(fmt.Sprintf("  Found %s in %d items",
			styles.SizeStyle.Render(humanize.Bytes(uint64(c.BytesFound))),
			c.FlaggedCount))
		if c.AppsScanned > 0 {
			b.WriteString(fmt.Sprintf(", %d apps scanned", c.AppsScanned))
		}
		b.WriteString("\n\n")
		b.WriteString(styles.DimStyle.Render("  press q to abort"))
		return b.String()
	}

	if m.err != nil {
		b.WriteString(styles.UnsafeStyle.Render("Scan failed: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	return b.String() + m.renderSummary()
}

// renderSummary draws the grouped result tree after completion
func (m *ScanModel) renderSummary() string {
	if m.result == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Scan complete in %s: %s found, %s recommended\n\n",
		m.result.Duration.Round(time.Second),
		styles.SizeStyle.Render(humanize.Bytes(uint64(m.result.TotalSize()))),
		styles.RecommendedStyle.Render(humanize.Bytes(uint64(m.result.RecommendedSize())))))

	for _, domain := range scan.Domains() {
		groups := m.result.Domains[domain]
		if len(groups) == 0 {
			continue
		}
		b.WriteString(styles.SubtitleStyle.Render(domain.Title()))
		b.WriteString("\n")
		for _, group := range groups {
			b.WriteString(fmt.Sprintf("  %s (%s)\n",
				group.Title, humanize.Bytes(uint64(group.TotalSize()))))
			for _, item := range group.Items {
				marker := "  "
				if item.IsRecommended {
					marker = styles.RecommendedStyle.Render("✓ ")
				} else if !item.SafeToRun && item.Size > 0 {
					marker = styles.UnsafeStyle.Render("! ")
				}
				b.WriteString(fmt.Sprintf("    %s%s: %s\n",
					marker, item.Title,
					styles.SizeStyle.Render(humanize.Bytes(uint64(item.Size)))))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Result returns the final scan result once the view has quit
func (m *ScanModel) Result() (*scan.Result, error) {
	return m.result, m.err
}
