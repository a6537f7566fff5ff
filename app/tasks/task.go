package tasks

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TaskType string

const (
	TaskTypeUpdateFeed TaskType = "update_feed"
)

const (
	DefaultMaxRetries = 3
)

type Status int

const (
	StatusUnchanged Status = iota
	StatusUpdated
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusUpdated:
		return "updated"
	case StatusError:
		return "error"
	default:
		return "unchanged"
	}
}

// Outcome is the result of one feed update. Err is set only for StatusError.
type Outcome struct {
	URL        string
	Status     Status
	NewEntries int
	Err        error
}

func Failed(url string, err error) Outcome {
	return Outcome{URL: url, Status: StatusError, Err: err}
}

type TaskInterface interface {
	Execute(ctx context.Context) Outcome
	GetID() string
	GetType() TaskType
	GetFeedURL() string
	Start()
	GetDuration() time.Duration
}

type Task struct {
	ID         string
	Type       TaskType
	FeedURL    string
	MaxRetries int
	StartedAt  *time.Time
}

func (t *Task) GetID() string {
	return t.ID
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) GetFeedURL() string {
	return t.FeedURL
}

func (t *Task) Start() {
	now := time.Now()
	t.StartedAt = &now
}

func (t *Task) GetDuration() time.Duration {
	if t.StartedAt == nil {
		return 0
	}
	return time.Since(*t.StartedAt)
}

func NewTask(taskType TaskType, feedURL string) Task {
	return Task{
		ID:         uuid.NewString(),
		Type:       taskType,
		FeedURL:    feedURL,
		MaxRetries: DefaultMaxRetries,
	}
}
