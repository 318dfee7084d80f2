package recorder

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogEventType identifies the type of logged event
type LogEventType string

const (
	LogEventKeyPress LogEventType = "key_press"
	LogEventState    LogEventType = "state_change"
	LogEventAction   LogEventType = "action"
	LogEventUndo     LogEventType = "undo"
	LogEventReset    LogEventType = "reset"
	LogEventPhase    LogEventType = "phase_change"
	LogEventError    LogEventType = "error"
)

// LogEvent represents a single logged event
type LogEvent struct {
	Timestamp   time.Time    `json:"timestamp"`
	ElapsedMs   int64        `json:"elapsed_ms"`
	EventType   LogEventType `json:"event_type"`
	KeyPress    string       `json:"key_press,omitempty"`
	From        string       `json:"from,omitempty"`
	To          string       `json:"to,omitempty"`
	Phase       string       `json:"phase,omitempty"`
	Description string       `json:"description,omitempty"`
}

// SessionLog represents a complete session log
type SessionLog struct {
	Version   string     `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	SessionID string     `json:"session_id,omitempty"`
	Events    []LogEvent `json:"events"`
}

// SessionLogger writes one JSON object per line: a header, then events.
type SessionLogger struct {
	startTime time.Time
	file      *os.File
	enabled   bool
}

// NewSessionLogger creates a new logger. It logs nothing until Start.
func NewSessionLogger() *SessionLogger {
	return &SessionLogger{}
}

// Start begins logging to a new file in logDir.
func (l *SessionLogger) Start(logDir, sessionID string) error {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := fmt.Sprintf("session_%s.jsonl", time.Now().Format("20060102_150405.000"))
	path := filepath.Join(logDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	l.file = file
	l.startTime = time.Now()
	l.enabled = true

	header := map[string]any{
		"version":    "1.0",
		"created_at": l.startTime,
		"type":       "header",
	}
	if sessionID != "" {
		header["session_id"] = sessionID
	}
	return l.writeJSON(header)
}

func (l *SessionLogger) log(event LogEvent) {
	if l == nil || !l.enabled || l.file == nil {
		return
	}
	event.Timestamp = time.Now()
	event.ElapsedMs = time.Since(l.startTime).Milliseconds()
	l.writeJSON(event)
}

// LogKeyPress logs a key press
func (l *SessionLogger) LogKeyPress(key string) {
	l.log(LogEvent{EventType: LogEventKeyPress, KeyPress: key})
}

// LogStateChange logs a machine state transition
func (l *SessionLogger) LogStateChange(from, to string) {
	l.log(LogEvent{EventType: LogEventState, From: from, To: to})
}

// LogAction logs a recorded action
func (l *SessionLogger) LogAction(description string) {
	l.log(LogEvent{EventType: LogEventAction, Description: description})
}

// LogUndo logs an undone action
func (l *SessionLogger) LogUndo(description string) {
	l.log(LogEvent{EventType: LogEventUndo, Description: description})
}

// LogReset logs a puzzle reset
func (l *SessionLogger) LogReset() {
	l.log(LogEvent{EventType: LogEventReset})
}

// LogPhaseChange logs a phase change
func (l *SessionLogger) LogPhaseChange(phase string) {
	l.log(LogEvent{EventType: LogEventPhase, Phase: phase})
}

// LogError logs a non-fatal error
func (l *SessionLogger) LogError(err error) {
	if err == nil {
		return
	}
	l.log(LogEvent{EventType: LogEventError, Description: err.Error()})
}

func (l *SessionLogger) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = l.file.Write(append(data, '\n'))
	return err
}

// Close closes the log file
func (l *SessionLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.enabled = false
	return l.file.Close()
}

// FilePath returns the current log file path
func (l *SessionLogger) FilePath() string {
	if l == nil || l.file == nil {
		return ""
	}
	return l.file.Name()
}

// LoadSessionLog loads a session log from a JSONL file
func LoadSessionLog(path string) (*SessionLog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	log := &SessionLog{
		Events: make([]LogEvent, 0),
	}

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		// First line is the header
		if lineNum == 1 {
			var header struct {
				Version   string    `json:"version"`
				CreatedAt time.Time `json:"created_at"`
				SessionID string    `json:"session_id"`
			}
			if err := json.Unmarshal(line, &header); err != nil {
				return nil, fmt.Errorf("failed to parse header: %w", err)
			}
			log.Version = header.Version
			log.CreatedAt = header.CreatedAt
			log.SessionID = header.SessionID
			continue
		}

		var event LogEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("failed to parse event at line %d: %w", lineNum, err)
		}
		log.Events = append(log.Events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	return log, nil
}
