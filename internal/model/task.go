package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is a single transcript entry. The id is unique within a task and is
// always present; it is generated when a caller or record omits it.
type Message struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Task is one conversation thread with iteration and duration tracking.
// CompletedAt and EndTS are set if and only if IsActive is false.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Messages    []Message `json:"messages"`
	Iterations  int       `json:"iterations"`
	IsActive    bool      `json:"is_active"`
	StartedAt   string    `json:"started_at"`
	CompletedAt *string   `json:"completed_at"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	StartTS     float64   `json:"start_ts"`
	EndTS       *float64  `json:"end_ts"`
}

// TaskView is the full read view, as persisted and returned by the API.
type TaskView struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"task_id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Messages    []Message `json:"messages"`
	Iterations  int       `json:"iterations"`
	Duration    int       `json:"duration"`
	IsActive    bool      `json:"is_active"`
	StartedAt   string    `json:"started_at"`
	CompletedAt *string   `json:"completed_at"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	StartTS     float64   `json:"start_ts"`
	EndTS       *float64  `json:"end_ts"`
}

// TaskSummary is the lightweight listing view.
type TaskSummary struct {
	ID           string  `json:"id"`
	TaskID       string  `json:"task_id"`
	UserID       string  `json:"user_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Iterations   int     `json:"iterations"`
	Duration     int     `json:"duration"`
	LastActivity string  `json:"last_activity"`
	IsActive     bool    `json:"is_active"`
	StartedAt    string  `json:"started_at"`
	CompletedAt  *string `json:"completed_at"`
}

// isoLayout is RFC 3339 with fixed six-digit fractional seconds. The fixed
// width keeps timestamps lexicographically ordered, which last_activity
// sorting relies on.
const isoLayout = "2006-01-02T15:04:05.000000Z07:00"

// NowISO formats the current local time in RFC 3339 with microsecond
// precision, the timestamp form used across all persisted records.
func NowISO() string {
	return time.Now().Format(isoLayout)
}

// parseTS converts an RFC 3339 timestamp to epoch seconds, or fallback when
// the value is empty or unparseable.
func parseTS(value string, fallback float64) float64 {
	if value == "" {
		return fallback
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return float64(t.UnixNano()) / float64(time.Second)
	}
	return fallback
}

// NewTask creates an active task with a time-based identifier.
func NewTask(userID, name, category string) *Task {
	now := NowISO()
	if category == "" {
		category = "General"
	}
	return &Task{
		ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
		UserID:    userID,
		Name:      name,
		Category:  category,
		Messages:  []Message{},
		IsActive:  true,
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
		StartTS:   float64(time.Now().UnixNano()) / float64(time.Second),
	}
}

// taskRecord mirrors a persisted task document, tolerant of legacy fields and
// loosely-typed message entries.
type taskRecord struct {
	ID          string            `json:"id"`
	TaskID      string            `json:"task_id"`
	UserID      string            `json:"user_id"`
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Category    string            `json:"category"`
	Messages    []json.RawMessage `json:"messages"`
	Iterations  int               `json:"iterations"`
	IsActive    *bool             `json:"is_active"`
	StartedAt   string            `json:"started_at"`
	CompletedAt *string           `json:"completed_at"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
	StartTS     *float64          `json:"start_ts"`
	EndTS       *float64          `json:"end_ts"`
}

// TaskFromRecord rebuilds a Task from a persisted document. Missing names and
// categories default to "Untitled Task" and "General"; an error is returned
// when the record is not a JSON object.
func TaskFromRecord(raw json.RawMessage) (*Task, error) {
	var rec taskRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("invalid task record: %w", err)
	}

	now := NowISO()
	id := rec.ID
	if id == "" {
		id = rec.TaskID
	}
	if id == "" {
		id = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	name := rec.Name
	if name == "" {
		name = rec.Title
	}
	if name == "" {
		name = "Untitled Task"
	}
	category := rec.Category
	if category == "" {
		category = "General"
	}
	startedAt := rec.StartedAt
	if startedAt == "" {
		startedAt = now
	}
	createdAt := rec.CreatedAt
	if createdAt == "" {
		createdAt = startedAt
	}
	updatedAt := rec.UpdatedAt
	if updatedAt == "" {
		updatedAt = now
	}
	isActive := true
	if rec.IsActive != nil {
		isActive = *rec.IsActive
	}

	task := &Task{
		ID:          id,
		UserID:      rec.UserID,
		Name:        name,
		Category:    category,
		Messages:    normalizeMessages(rec.Messages),
		Iterations:  rec.Iterations,
		IsActive:    isActive,
		StartedAt:   startedAt,
		CompletedAt: rec.CompletedAt,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if rec.StartTS != nil {
		task.StartTS = *rec.StartTS
	} else {
		task.StartTS = parseTS(startedAt, float64(time.Now().UnixNano())/float64(time.Second))
	}
	if rec.EndTS != nil {
		task.EndTS = rec.EndTS
	} else if rec.CompletedAt != nil {
		if ts := parseTS(*rec.CompletedAt, -1); ts >= 0 {
			task.EndTS = &ts
		}
	}
	return task, nil
}

// normalizeMessages decodes stored entries, skipping anything that is not an
// object, dropping non-object metadata, and filling in missing ids.
func normalizeMessages(entries []json.RawMessage) []Message {
	normalized := make([]Message, 0, len(entries))
	for _, raw := range entries {
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			var loose struct {
				ID        string `json:"id"`
				Role      string `json:"role"`
				Content   string `json:"content"`
				Timestamp string `json:"timestamp"`
			}
			if err := json.Unmarshal(raw, &loose); err != nil {
				continue
			}
			msg = Message{ID: loose.ID, Role: loose.Role, Content: loose.Content, Timestamp: loose.Timestamp}
		}
		if msg.ID == "" {
			msg.ID = newMessageID()
		}
		normalized = append(normalized, msg)
	}
	return normalized
}

func newMessageID() string {
	return "msg-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// AddMessage appends a normalized message. A "message_id" metadata key
// overrides the generated id. The iteration counter moves only on user
// messages.
func (t *Task) AddMessage(role, content string, metadata map[string]any) {
	var metaCopy map[string]any
	messageID := ""
	if len(metadata) > 0 {
		metaCopy = make(map[string]any, len(metadata))
		for k, v := range metadata {
			metaCopy[k] = v
		}
		if v, ok := metaCopy["message_id"].(string); ok {
			messageID = v
		}
		delete(metaCopy, "message_id")
		if len(metaCopy) == 0 {
			metaCopy = nil
		}
	}
	if messageID == "" {
		messageID = newMessageID()
	}
	entry := Message{
		ID:        messageID,
		Role:      role,
		Content:   content,
		Timestamp: NowISO(),
		Metadata:  metaCopy,
	}
	t.Messages = append(t.Messages, entry)
	if role == "user" {
		t.Iterations++
	}
	t.UpdatedAt = entry.Timestamp
}

// RemoveLast pops the newest message when its role matches, undoing the
// iteration increment for user messages. Used to roll back failed exchanges.
func (t *Task) RemoveLast(role string) bool {
	if len(t.Messages) == 0 || t.Messages[len(t.Messages)-1].Role != role {
		return false
	}
	t.Messages = t.Messages[:len(t.Messages)-1]
	if role == "user" && t.Iterations > 0 {
		t.Iterations--
	}
	return true
}

// MessageIndex returns the position of the message with the given id, or -1.
func (t *Task) MessageIndex(messageID string) int {
	if messageID == "" {
		return -1
	}
	for i, msg := range t.Messages {
		if msg.ID == messageID {
			return i
		}
	}
	return -1
}

// Duration reports elapsed seconds: the stored span once completed, the live
// clock while active, floored at zero.
func (t *Task) Duration() int {
	if t.StartTS == 0 {
		return 0
	}
	if t.EndTS != nil {
		return max(0, int(*t.EndTS-t.StartTS))
	}
	if !t.IsActive {
		return 0
	}
	now := float64(time.Now().UnixNano()) / float64(time.Second)
	return max(0, int(now-t.StartTS))
}

// MarkCompleted flips the task inactive and stops the duration clock.
func (t *Task) MarkCompleted() {
	t.IsActive = false
	completedAt := NowISO()
	t.CompletedAt = &completedAt
	endTS := float64(time.Now().UnixNano()) / float64(time.Second)
	t.EndTS = &endTS
	t.UpdatedAt = completedAt
}

// View builds the full read view.
func (t *Task) View() TaskView {
	messages := make([]Message, len(t.Messages))
	copy(messages, t.Messages)
	return TaskView{
		ID:          t.ID,
		TaskID:      t.ID,
		UserID:      t.UserID,
		Name:        t.Name,
		Category:    t.Category,
		Messages:    messages,
		Iterations:  t.Iterations,
		Duration:    t.Duration(),
		IsActive:    t.IsActive,
		StartedAt:   t.StartedAt,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		StartTS:     t.StartTS,
		EndTS:       t.EndTS,
	}
}

// Summary builds the listing view. Last activity is the newest message
// timestamp, falling back to the task's own updated_at.
func (t *Task) Summary() TaskSummary {
	lastActivity := t.UpdatedAt
	if len(t.Messages) > 0 {
		lastActivity = t.Messages[len(t.Messages)-1].Timestamp
	}
	return TaskSummary{
		ID:           t.ID,
		TaskID:       t.ID,
		UserID:       t.UserID,
		Name:         t.Name,
		Category:     t.Category,
		Iterations:   t.Iterations,
		Duration:     t.Duration(),
		LastActivity: lastActivity,
		IsActive:     t.IsActive,
		StartedAt:    t.StartedAt,
		CompletedAt:  t.CompletedAt,
	}
}
