package logx

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		verbose bool
		want    zapcore.Level
	}{
		{"default is warn", "", false, zapcore.WarnLevel},
		{"env sets level", "info", false, zapcore.InfoLevel},
		{"verbose forces debug", "error", true, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvVar, tt.env)
			log, err := New(tt.verbose)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if !log.Core().Enabled(tt.want) {
				t.Errorf("level %s not enabled", tt.want)
			}
			if tt.want > zapcore.DebugLevel && log.Core().Enabled(tt.want-1) {
				t.Errorf("level %s unexpectedly enabled", tt.want-1)
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Setenv(EnvVar, "loud")
	if _, err := New(false); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
