package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggingPrepare_NoOutputs(t *testing.T) {
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none"},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if log == nil {
		t.Fatal("Prepare() returned nil logger")
	}

	// must be safe to use even with every core disabled
	log.Info("quiet")
	log.Error("still quiet")
}

func TestLoggingPrepare_FileLogging(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "test.log")

	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "normal", Destination: dest, Mode: "overwrite"},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	log.Info("file logging works")
	log.Debug("below the configured level")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("unable to read log destination: %v", err)
	}
	if !strings.Contains(string(data), "file logging works") {
		t.Errorf("log destination does not contain emitted record: %q", data)
	}
	if strings.Contains(string(data), "below the configured level") {
		t.Error("debug record must not appear at normal level")
	}
}

func TestLoggingPrepare_DebugLevelFile(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "debug.log")

	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "debug", Destination: dest, Mode: "overwrite"},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	log.Debug("debug record")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("unable to read log destination: %v", err)
	}
	if !strings.Contains(string(data), "debug record") {
		t.Errorf("log destination does not contain debug record: %q", data)
	}
}
