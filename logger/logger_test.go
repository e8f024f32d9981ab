package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorustyt/gocave/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	l, err := New(config.LogConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) || !l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("empty level should mean info")
	}
}

func TestCoreWritesConsoleAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cave.log")
	var console bytes.Buffer
	core := newCore(config.LogConfig{File: path, MaxSize: 1}, zapcore.DebugLevel, zapcore.AddSync(&console))
	l := zap.New(core)
	l.Debug("triangulated", zap.Int("vertices", 100))
	l.Sync()

	if !strings.Contains(console.String(), "triangulated") {
		t.Errorf("console = %q", console.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("file line is not JSON: %v (%q)", err, data)
	}
	if entry["msg"] != "triangulated" || entry["vertices"] != 100.0 {
		t.Errorf("entry = %v", entry)
	}
}
