package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

const (
	progressBarWidth = 40
	maxLabelWidth    = 24
)

// DownloadProgress renders download progress on stderr. On a terminal it
// draws a progress bar; otherwise it prints one line per download.
type DownloadProgress struct {
	out         io.Writer
	interactive bool

	program *tea.Program
	done    chan struct{}
	total   int64
	lastPct int
}

// NewDownloadProgress returns a reporter writing to stderr.
func NewDownloadProgress() *DownloadProgress {
	return &DownloadProgress{out: os.Stderr, interactive: isTerminal(os.Stderr)}
}

// NewPlainProgress returns a reporter that never draws a bar.
func NewPlainProgress(out io.Writer) *DownloadProgress {
	return &DownloadProgress{out: out}
}

// Start implements core.ProgressReporter.
func (p *DownloadProgress) Start(label string, total int64) {
	p.total = total
	p.lastPct = -1
	if !p.interactive {
		fmt.Fprintf(p.out, "Downloading %s (%s)...\n", label, formatBytes(total))
		return
	}
	p.program = tea.NewProgram(newProgressModel(label, total), tea.WithOutput(p.out), tea.WithInput(nil))
	p.done = make(chan struct{})
	go func() {
		_, _ = p.program.Run()
		close(p.done)
	}()
}

// Update implements core.ProgressReporter.
func (p *DownloadProgress) Update(current int64) {
	if p.program == nil || p.total <= 0 {
		return
	}
	// Redraw only when the bar would visibly move.
	pct := int(current * 200 / p.total)
	if pct == p.lastPct {
		return
	}
	p.lastPct = pct
	p.program.Send(progressMsg(current))
}

// Finish implements core.ProgressReporter.
func (p *DownloadProgress) Finish() {
	if p.program == nil {
		return
	}
	p.program.Send(progressDoneMsg{})
	<-p.done
	p.program = nil
}

type (
	progressMsg     int64
	progressDoneMsg struct{}
)

type progressModel struct {
	label   string
	total   int64
	current int64
	bar     progress.Model
	done    bool
}

func newProgressModel(label string, total int64) progressModel {
	return progressModel{
		label: ansi.Truncate(label, maxLabelWidth, "…"),
		total: total,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressBarWidth)),
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.current = int64(msg)
	case progressDoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		// Leave room for the label and byte counts.
		if w := msg.Width - maxLabelWidth - 24; w < progressBarWidth {
			m.bar.Width = max(w, 10)
		} else {
			m.bar.Width = progressBarWidth
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	view := fmt.Sprintf("%s %s %s/%s", m.label, m.bar.ViewAs(m.percent()),
		formatBytes(m.current), formatBytes(m.total))
	if m.done {
		view += "\n"
	}
	return view
}

func (m progressModel) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	pct := float64(m.current) / float64(m.total)
	if pct > 1 {
		return 1
	}
	return pct
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
