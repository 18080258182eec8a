package audit

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.SetWriter(&buf)

	logger.Log(TransitionEvent{
		Login:        "curator",
		ClientIP:     "10.0.0.1",
		Kind:         "sample",
		SubmissionID: 7,
		From:         "draft",
		To:           "ready",
		Success:      true,
	})

	line := buf.String()

	// PRI = facility*8 + severity = 1*8 + 6
	if !strings.HasPrefix(line, "<14>1 ") {
		t.Errorf("expected RFC5424 PRI prefix, got %q", line)
	}
	if !strings.Contains(line, "metadata-broker") {
		t.Errorf("expected appname in %q", line)
	}
	if !strings.Contains(line, " transition ") {
		t.Errorf("expected msgid in %q", line)
	}
	if !strings.Contains(line, "curator transitioned sample submission 7 from draft to ready") {
		t.Errorf("unexpected message in %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Errorf("expected trailing newline in %q", line)
	}
}

func TestTransitionEventFailureSeverity(t *testing.T) {
	event := TransitionEvent{
		Login:        "curator",
		Kind:         "sample",
		SubmissionID: 7,
		From:         "rejected",
		To:           "draft",
		Success:      false,
		ErrorMessage: "invalid transition",
	}

	if event.Severity() != SeverityWarning {
		t.Errorf("failed transitions should log at warning, got %d", event.Severity())
	}
	if !strings.Contains(event.Message(), "invalid transition") {
		t.Errorf("message should carry the error, got %q", event.Message())
	}
}

func TestEscapeSDValue(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`plain`, `"plain"`},
		{`with"quote`, `"with\"quote"`},
		{`with]bracket`, `"with\]bracket"`},
		{`with\slash`, `"with\\slash"`},
	}

	for _, tt := range tests {
		if got := escapeSDValue(tt.input); got != tt.want {
			t.Errorf("escapeSDValue(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatStructuredDataEmpty(t *testing.T) {
	if got := formatStructuredData(nil); got != "" {
		t.Errorf("expected empty string for no structured data, got %q", got)
	}
}
