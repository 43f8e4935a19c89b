package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestDefault_Config(t *testing.T) {
	saved := Default()
	t.Cleanup(func() { SetDefault(saved) })

	var buf bytes.Buffer
	SetDefault(Make(&buf))
	Config(WithFormat(FormatText), WithLevel(LevelDebug), WithCaller(true))

	Debug("from package")

	got := buf.String()
	if !strings.Contains(got, "msg=\"from package\"") {
		t.Errorf("expected message, got %q", got)
	}
	if !strings.Contains(got, "default_test.go:") {
		t.Errorf("expected caller to be the test file, got %q", got)
	}
}
