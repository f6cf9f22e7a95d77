package log

import (
	"bytes"
	"log/slog"
	"regexp"
	"strings"
	"testing"
)

func TestHandlerLine(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewWriterHandler(&out, false, nil))

	logger.Info("restored document",
		slog.String("module", "theatre"),
		slog.Int("layers", 3),
		slog.String("note", "two words"),
	)
	line := regexp.MustCompile(`^\d\d:\d\d:\d\d\.\d{3} INFO \[theatre\] restored document layers=3 note="two words"\n$`)
	if !line.MatchString(out.String()) {
		t.Errorf("unexpected line %q", out.String())
	}
}

func TestHandlerLevelAndAttrs(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewWriterHandler(&out, false, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Info("dropped")
	if out.Len() != 0 {
		t.Errorf("info logged at warn level: %q", out.String())
	}

	logger.With("module", "api").Warn("slow client", "clients", 2)
	got := out.String()
	if !strings.Contains(got, "WARN [api] slow client clients=2") {
		t.Errorf("unexpected line %q", got)
	}
	if strings.Contains(got, "\033[") {
		t.Error("colour codes written with colour disabled")
	}
}

func TestHandlerColour(t *testing.T) {
	var out bytes.Buffer
	slog.New(NewWriterHandler(&out, true, nil)).Error("boom")
	if !strings.Contains(out.String(), "\033[91mERROR \033[0m") {
		t.Errorf("error level not coloured: %q", out.String())
	}
}
