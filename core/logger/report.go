package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Event is a decoded event log entry.
type Event struct {
	TimestampMicros int64
	SessionID       string
	Type            string
	Command         []string
	Error           string
	ExitCode        int
}

func eventFromStruct(s *structpb.Struct) *Event {
	fields := s.GetFields()
	event := &Event{
		TimestampMicros: int64(fields["timestamp_micros"].GetNumberValue()),
		SessionID:       fields["session_id"].GetStringValue(),
		Type:            fields["type"].GetStringValue(),
		Error:           fields["error"].GetStringValue(),
		ExitCode:        int(fields["exit_code"].GetNumberValue()),
	}
	for _, v := range fields["command"].GetListValue().GetValues() {
		event.Command = append(event.Command, v.GetStringValue())
	}
	return event
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(e *Event)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry structpb.Struct
		if err := protojson.Unmarshal([]byte(line), &entry); err != nil {
			return err
		}

		handler(eventFromStruct(&entry))
	}
	return scanner.Err()
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       int        `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	RunCommand     StrCounter   `json:"run_command_report"`
	UnknownCommand StrCounter   `json:"unknown_command_report"`
	CommandErrors  *PathCounter `json:"command_error_report"`
	ShellCommand   ShellReport  `json:"shell_command_report"`

	sessions map[string]bool
}

func NewReport() *Report {
	return &Report{
		CommandErrors: NewPathCounter("command", "error"),
		sessions:      make(map[string]bool),
	}
}

func (r *Report) Update(e *Event) {
	r.LogEntries++

	if e.SessionID != "" && !r.sessions[e.SessionID] {
		r.sessions[e.SessionID] = true
		r.Sessions++
	}

	name := ""
	if len(e.Command) > 0 {
		name = e.Command[0]
	}

	switch e.Type {
	case EventRunCommand:
		r.RunCommand.Increment(name)
	case EventUnknownCommand:
		r.UnknownCommand.Increment(name)
	case EventCommandError:
		// Only the first line of a syntax error identifies it.
		msg := strings.SplitN(e.Error, "\n", 2)[0]
		r.CommandErrors.Increment(name, msg)
	case EventShellCommand:
		r.ShellCommand.update(e)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%q", e.Type))
	}
}

type ShellReport struct {
	Count    int        `json:"count"`
	Failures int        `json:"failures"`
	Commands StrCounter `json:"commands"`
}

func (r *ShellReport) update(e *Event) {
	r.Count++
	if e.ExitCode != 0 {
		r.Failures++
	}
	if len(e.Command) > 0 {
		r.Commands.Increment(e.Command[0])
	}
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for the given key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of column tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the given tuple.
func (ctr *PathCounter) Get(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
