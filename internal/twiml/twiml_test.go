package twiml

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestReply(t *testing.T) {
	got, err := Reply("pong")
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}

	body := string(got)
	if !strings.HasPrefix(body, xml.Header) {
		t.Errorf("Reply() missing XML declaration:\n%s", body)
	}
	if !strings.Contains(body, "<Response><Message>pong</Message></Response>") {
		t.Errorf("Reply() = %q, want a pong Message verb", body)
	}
}

func TestReply_EscapesMarkup(t *testing.T) {
	got, err := Reply(`usa <ctx> & "quotes"`)
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}

	body := string(got)
	if strings.Contains(body, "<ctx>") {
		t.Errorf("Reply() left raw markup in the envelope:\n%s", body)
	}
	if !strings.Contains(body, "&lt;ctx&gt;") || !strings.Contains(body, "&amp;") {
		t.Errorf("Reply() did not escape markup:\n%s", body)
	}
}

func TestReply_RoundTripsCodeBlocks(t *testing.T) {
	text := "```bash\nfor i in $(seq 1 10); do echo \"$i < 11\"; done\n```"

	got, err := Reply(text)
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}

	var parsed struct {
		Message string `xml:"Message"`
	}
	if err := xml.Unmarshal(got, &parsed); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if parsed.Message != text {
		t.Errorf("round-tripped message = %q, want %q", parsed.Message, text)
	}
}

func TestReply_EmptyMessage(t *testing.T) {
	got, err := Reply("")
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if !strings.Contains(string(got), "<Message></Message>") {
		t.Errorf("Reply(\"\") = %q, want an empty Message verb", got)
	}
}
