package tui

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{70 * 1024 * 1024, "70.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPlainProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewPlainProgress(&out)
	p.Start("go1.22.3", 2048)
	p.Update(1024)
	p.Update(2048)
	p.Finish()

	got := out.String()
	if got != "Downloading go1.22.3 (2.0 KiB)...\n" {
		t.Errorf("output = %q", got)
	}
}

func TestProgressModel(t *testing.T) {
	m := newProgressModel("go1.22.3", 1000)
	if m.percent() != 0 {
		t.Errorf("initial percent = %v, want 0", m.percent())
	}

	updated, cmd := m.Update(progressMsg(500))
	m = updated.(progressModel)
	if cmd != nil {
		t.Error("progress update should not return a command")
	}
	if m.percent() != 0.5 {
		t.Errorf("percent = %v, want 0.5", m.percent())
	}
	if !strings.Contains(m.View(), "go1.22.3") {
		t.Errorf("View() = %q, want label", m.View())
	}

	updated, cmd = m.Update(progressDoneMsg{})
	m = updated.(progressModel)
	if !m.done || cmd == nil {
		t.Error("done message should finish the model and quit")
	}
	if !strings.HasSuffix(m.View(), "\n") {
		t.Error("finished view should end with a newline")
	}
}

func TestProgressModel_TruncatesLabel(t *testing.T) {
	m := newProgressModel(strings.Repeat("x", 60), 10)
	if strings.Contains(m.label, strings.Repeat("x", maxLabelWidth+1)) {
		t.Errorf("label not truncated: %q", m.label)
	}
}
