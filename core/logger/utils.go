package logger

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Event types written to the event log.
const (
	EventRunCommand     = "run_command"
	EventUnknownCommand = "unknown_command"
	EventCommandError   = "command_error"
	EventShellCommand   = "shell_command"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(event *structpb.Struct) error

// Logger captures command events so sessions can be reviewed later.
type Logger struct {
	Record LogRecorder
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format. It is safe for concurrent sessions.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(event *structpb.Struct) error {
			entry, err := protojson.Marshal(event)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that drops every event.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(*structpb.Struct) error {
			return nil
		},
	}
}

func (l *Logger) recordEvent(sessionID, eventType string, fields map[string]interface{}) error {
	values := map[string]interface{}{
		"timestamp_micros": time.Now().UnixNano() / int64(time.Microsecond),
		"session_id":       sessionID,
		"type":             eventType,
	}
	for k, v := range fields {
		values[k] = v
	}

	event, err := structpb.NewStruct(values)
	if err != nil {
		return err
	}
	return l.Record(event)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// Sessionless creates a logger without a session ID.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: ""}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// RunCommand records a resolved command about to execute.
func (l *SessionLogger) RunCommand(args []string) error {
	return l.recordEvent(l.sessionID, EventRunCommand, map[string]interface{}{
		"command": toList(args),
	})
}

// UnknownCommand records a command name that didn't resolve.
func (l *SessionLogger) UnknownCommand(args []string) error {
	return l.recordEvent(l.sessionID, EventUnknownCommand, map[string]interface{}{
		"command": toList(args),
	})
}

// CommandError records a command that failed with a user-facing error.
func (l *SessionLogger) CommandError(args []string, err error) error {
	return l.recordEvent(l.sessionID, EventCommandError, map[string]interface{}{
		"command": toList(args),
		"error":   err.Error(),
	})
}

// ShellCommand records a shell passthrough and its exit code.
func (l *SessionLogger) ShellCommand(command string, exitCode int) error {
	return l.recordEvent(l.sessionID, EventShellCommand, map[string]interface{}{
		"command":   []interface{}{command},
		"exit_code": exitCode,
	})
}

// structpb only accepts []interface{} for lists.
func toList(args []string) []interface{} {
	out := make([]interface{}, len(args))
	for i, arg := range args {
		out[i] = arg
	}
	return out
}
