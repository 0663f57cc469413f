package logger

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	ColorBoldBlue   = color.New(color.FgBlue, color.Bold)
	ColorBoldRed    = color.New(color.FgRed, color.Bold)
	ColorBoldYellow = color.New(color.FgYellow, color.Bold)
)

// Sink is an append-only destination for command output. Everything written
// is copied to each attached writer.
type Sink struct {
	writers []io.Writer
	color   bool

	headerCount int
}

var _ io.Writer = (*Sink)(nil)

// NewSink creates a sink writing to the given writers.
func NewSink(writers ...io.Writer) *Sink {
	return &Sink{writers: writers}
}

// SetColor turns colored headers and errors on or off.
func (s *Sink) SetColor(enabled bool) {
	s.color = enabled
}

// AddWriter attaches another destination.
func (s *Sink) AddWriter(w io.Writer) {
	s.writers = append(s.writers, w)
}

// RemoveWriter detaches a destination previously added.
func (s *Sink) RemoveWriter(w io.Writer) {
	for i, existing := range s.writers {
		if existing == w {
			s.writers = append(s.writers[:i:i], s.writers[i+1:]...)
			return
		}
	}
}

// SwapWriters replaces all destinations and returns the previous ones.
func (s *Sink) SwapWriters(writers []io.Writer) []io.Writer {
	old := s.writers
	s.writers = writers
	return old
}

// Write implements io.Writer. Failing writers are skipped so one broken log
// file doesn't silence the others.
func (s *Sink) Write(b []byte) (int, error) {
	for _, w := range s.writers {
		_, _ = w.Write(b)
	}
	return len(b), nil
}

// Logf writes formatted text.
func (s *Sink) Logf(format string, a ...interface{}) {
	fmt.Fprintf(s, format, a...)
}

// Header writes a numbered section header, e.g. "1. Executing ILANG frontend."
func (s *Sink) Header(format string, a ...interface{}) {
	s.headerCount++
	text := fmt.Sprintf("%d. %s", s.headerCount, fmt.Sprintf(format, a...))
	fmt.Fprintf(s, "\n%s\n", s.sprintf(ColorBoldBlue, "%s", text))
}

// Warning writes a highlighted warning line.
func (s *Sink) Warning(format string, a ...interface{}) {
	fmt.Fprintf(s, "%s%s\n", s.sprintf(ColorBoldYellow, "Warning: "), fmt.Sprintf(format, a...))
}

// Error writes a highlighted error line.
func (s *Sink) Error(err error) {
	fmt.Fprintf(s, "%s%v\n", s.sprintf(ColorBoldRed, "ERROR: "), err)
}

func (s *Sink) sprintf(c *color.Color, format string, a ...interface{}) string {
	if s.color {
		return c.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}
