package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/geoquiz/internal/questionbank"
)

var (
	// ErrSetNotFound is returned when no question set has the given name.
	ErrSetNotFound = errors.New("question set not found")

	// ErrSetExists is returned when saving a set whose name is taken.
	ErrSetExists = errors.New("question set already exists")
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact purpose match ("" = any)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose, ordered by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)
}

// LLMUsageStat is the aggregated usage of one purpose.
type LLMUsageStat struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// SetRepo stores question sets. Quiz sessions themselves are never stored.
type SetRepo interface {
	// Save stores a new set. It assigns an ID and CreatedAt when missing
	// and returns ErrSetExists if the name is taken.
	Save(ctx context.Context, set *questionbank.Set) error

	// Get returns the set with the given name or ErrSetNotFound.
	Get(ctx context.Context, name string) (*questionbank.Set, error)

	// List returns all stored sets ordered by name, without questions
	// loaded beyond their count.
	List(ctx context.Context) ([]SetInfo, error)

	// Delete removes the named set or returns ErrSetNotFound.
	Delete(ctx context.Context, name string) error
}

// SetInfo summarizes a stored set for listings.
type SetInfo struct {
	ID            string
	Name          string
	Description   string
	Source        string
	QuestionCount int
	CreatedAt     time.Time
}
