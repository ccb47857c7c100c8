// Package logger provides the process-wide loggers plus an optional sink so
// the dashboard can stream log lines to connected clients.
package logger

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	// InfoLogger logs normal operational events.
	InfoLogger *log.Logger
	// ErrorLogger logs failures that need operator attention.
	ErrorLogger *log.Logger
)

// Sink receives every formatted log line after it is written to the
// underlying stream.
type Sink interface {
	Log(line string)
}

type teeWriter struct {
	dst io.Writer

	mu   sync.RWMutex
	sink Sink
}

func (t *teeWriter) Write(p []byte) (int, error) {
	n, err := t.dst.Write(p)
	t.mu.RLock()
	sink := t.sink
	t.mu.RUnlock()
	if sink != nil {
		sink.Log(string(p))
	}
	return n, err
}

func (t *teeWriter) setSink(s Sink) {
	t.mu.Lock()
	t.sink = s
	t.mu.Unlock()
}

var (
	infoWriter  = &teeWriter{dst: os.Stdout}
	errorWriter = &teeWriter{dst: os.Stderr}
)

// Init creates the loggers. Safe to call once at startup before any use.
// The package-level default logger is redirected into the same tee, so
// sinks attached later also receive lines written with plain log.Printf.
func Init() {
	InfoLogger = log.New(infoWriter, "INFO: ", log.Ldate|log.Ltime)
	ErrorLogger = log.New(errorWriter, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	log.SetOutput(infoWriter)
}

// AttachSink routes a copy of every log line to s. Passing nil detaches.
func AttachSink(s Sink) {
	infoWriter.setSink(s)
	errorWriter.setSink(s)
}
