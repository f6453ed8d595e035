package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridforge.yaml")
	content := `logging:
  level: DEBUG
  format: json
  file_max_size_mb: 20
request:
  width: 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if config.Level != "DEBUG" {
		t.Errorf("Level = %q, want DEBUG", config.Level)
	}
	if config.Format != "json" {
		t.Errorf("Format = %q, want json", config.Format)
	}
	if config.FileMaxSizeMB != 20 {
		t.Errorf("FileMaxSizeMB = %d, want 20", config.FileMaxSizeMB)
	}
	if config.FileMaxBackups != DefaultConfig().FileMaxBackups {
		t.Errorf("FileMaxBackups = %d, want default %d", config.FileMaxBackups, DefaultConfig().FileMaxBackups)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig(missing) returned nil error")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("GRIDFORGE_LOG_LEVEL", "ERROR")
	t.Setenv("GRIDFORGE_LOG_FILE_ENABLED", "true")
	t.Setenv("GRIDFORGE_LOG_FILE_PATH", "/tmp/custom.log")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if config.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR (from env var)", config.Level)
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true (from env var)")
	}
	if config.FilePath != "/tmp/custom.log" {
		t.Errorf("FilePath = %q, want /tmp/custom.log", config.FilePath)
	}
}

func TestLevelFiltering(t *testing.T) {
	defer Reset()
	var buf bytes.Buffer
	SetOutput(&buf, "INFO")

	Info("stage done", "stage", "mask")
	Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "stage=mask") {
		t.Errorf("output missing structured field: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("DEBUG message logged at INFO level: %s", out)
	}
}

func TestFanoutHandler(t *testing.T) {
	defer Reset()
	var a, b bytes.Buffer
	logger = slog.New(&fanoutHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelInfo}),
	}})

	Warning("clamped width")

	if !strings.Contains(a.String(), "clamped width") {
		t.Errorf("text handler missing message: %s", a.String())
	}
	if !strings.Contains(b.String(), `"msg":"clamped width"`) {
		t.Errorf("json handler missing message: %s", b.String())
	}
}

func TestNilLoggerIsNoop(t *testing.T) {
	Reset()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("logging with nil logger panicked: %v", r)
		}
	}()
	Debug("debug")
	Info("info")
	Warning("warning")
	Error("error")
}

func TestInitializeWithoutOutputs(t *testing.T) {
	defer Reset()
	if err := Initialize(Config{Level: "INFO"}, nil); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	Info("discarded")
	if err := Initialize(Config{FileEnabled: true}, nil); err == nil {
		t.Error("Initialize with file enabled and empty path returned nil error")
	}
}
