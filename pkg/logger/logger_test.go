package logger

import (
	"log"
	"os"
	"strings"
	"testing"
)

type captureSink struct {
	lines []string
}

func (c *captureSink) Log(line string) {
	c.lines = append(c.lines, line)
}

func TestAttachSinkTeesNamedLoggers(t *testing.T) {
	Init()
	t.Cleanup(func() {
		AttachSink(nil)
		log.SetOutput(os.Stderr)
	})

	sink := &captureSink{}
	AttachSink(sink)

	InfoLogger.Println("catalog ready")
	ErrorLogger.Println("navigate failed")

	if len(sink.lines) != 2 {
		t.Fatalf("expected 2 teed lines, got %d", len(sink.lines))
	}
	if !strings.Contains(sink.lines[0], "catalog ready") {
		t.Errorf("unexpected first line: %q", sink.lines[0])
	}
	if !strings.Contains(sink.lines[1], "navigate failed") {
		t.Errorf("unexpected second line: %q", sink.lines[1])
	}
}

func TestAttachSinkTeesDefaultLogger(t *testing.T) {
	Init()
	t.Cleanup(func() {
		AttachSink(nil)
		log.SetOutput(os.Stderr)
	})

	sink := &captureSink{}
	AttachSink(sink)

	log.Printf("sync: thread user_1 synced (3 messages)")

	if len(sink.lines) != 1 {
		t.Fatalf("expected the default logger line to reach the sink, got %d lines", len(sink.lines))
	}
	if !strings.Contains(sink.lines[0], "sync: thread user_1 synced") {
		t.Errorf("unexpected line: %q", sink.lines[0])
	}
}

func TestDetachedSinkReceivesNothing(t *testing.T) {
	Init()
	t.Cleanup(func() {
		AttachSink(nil)
		log.SetOutput(os.Stderr)
	})

	sink := &captureSink{}
	AttachSink(sink)
	AttachSink(nil)

	InfoLogger.Println("after detach")
	log.Printf("after detach too")

	if len(sink.lines) != 0 {
		t.Fatalf("detached sink still received %d lines", len(sink.lines))
	}
}
