package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWritesRollingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fitquest.log")

	log, err := New(Options{Level: "info", Path: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Info("points awarded")
	_ = log.Sync()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected log file at %s: %v", path, err)
	}
	if info.Size() == 0 {
		t.Error("expected log file to contain the entry")
	}
}
