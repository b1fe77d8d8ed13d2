package audit

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Sink receives audit events.
type Sink interface {
	Append(event Event) error
}

// Func adapts a plain function to a Sink.
type Func func(event Event) error

func (f Func) Append(event Event) error {
	return f(event)
}

// Nop discards every event.
var Nop Sink = Func(func(Event) error { return nil })

// FileSink appends one line per event to a log file.
// The file is opened and closed for every event so nothing is held open between changes.
type FileSink struct {
	fs   afero.Fs
	path string
	tag  string
}

// NewFileSink creates a sink writing to path on fs.
// A non-empty tag (usually the session id) is written on every line.
func NewFileSink(fs afero.Fs, path, tag string) *FileSink {
	return &FileSink{
		fs:   fs,
		path: path,
		tag:  tag,
	}
}

// Append writes the event as `[<ctime>] [session <tag>] <event>`.
func (s *FileSink) Append(event Event) (err error) {
	f, err := s.fs.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log %s: %w", s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close audit log %s: %w", s.path, cerr)
		}
	}()

	if _, err = io.WriteString(f, s.format(event)); err != nil {
		return fmt.Errorf("failed to write audit log %s: %w", s.path, err)
	}
	return nil
}

func (s *FileSink) format(event Event) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(event.At.Format(time.ANSIC))
	b.WriteString("] ")
	if s.tag != "" {
		b.WriteString("[session ")
		b.WriteString(s.tag)
		b.WriteString("] ")
	}
	b.WriteString(event.String())
	b.WriteString("\n")
	return b.String()
}
