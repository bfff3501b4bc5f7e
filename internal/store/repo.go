package store

import (
	"context"
	"time"

	"github.com/abhisek/lingua/internal/learner"
	"github.com/abhisek/lingua/internal/proficiency"
	"github.com/abhisek/lingua/internal/review"
	"github.com/abhisek/lingua/internal/vocab"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit          int       // max results (0 = unlimited)
	After          int64     // sequence > After
	Purpose        string    // exact purpose match
	ConversationID string    // exact conversation match
	From           time.Time // timestamp >= From
}

// NewLearner describes a learner to register.
type NewLearner struct {
	Name           string
	TargetLanguage string
	Level          proficiency.Tier
	PasswordHash   string
}

// LearnerRepo persists learner profiles and their practice history.
type LearnerRepo interface {
	// Create registers a learner. Returns ErrDuplicate if the name is taken.
	Create(ctx context.Context, nl NewLearner) (*learner.Profile, error)

	// Get returns the learner with id, or nil if there is none.
	Get(ctx context.Context, id int) (*learner.Profile, error)

	// ByName returns the learner called name, or nil if there is none.
	ByName(ctx context.Context, name string) (*learner.Profile, error)

	// List returns all learners ordered by name.
	List(ctx context.Context) ([]*learner.Profile, error)

	// Count returns the number of registered learners.
	Count(ctx context.Context) (int, error)

	// Delete removes a learner with their sessions and review items.
	Delete(ctx context.Context, name string) error

	// RecordSession persists rec, which the caller has already appended
	// to p, and stores p's recomputed tier.
	RecordSession(ctx context.Context, p *learner.Profile, rec learner.PracticeRecord) (int, error)

	SetPassword(ctx context.Context, id int, hash string) error
	PasswordHash(ctx context.Context, id int) (string, error)
}

// WordRepo persists vocabulary.
type WordRepo interface {
	Create(ctx context.Context, w vocab.Word) (vocab.Word, error)

	// Upsert inserts w or updates the existing word with the same term.
	// created reports which happened.
	Upsert(ctx context.Context, w vocab.Word) (saved vocab.Word, created bool, err error)

	// List returns all words in insertion order.
	List(ctx context.Context) ([]vocab.Word, error)

	// ByTerm returns the word for term, or nil if there is none.
	ByTerm(ctx context.Context, term string) (*vocab.Word, error)
}

// LessonRepo persists lessons and their word associations.
type LessonRepo interface {
	// Create stores l and links it to the word ids in l.Words.
	Create(ctx context.Context, l vocab.Lesson) (vocab.Lesson, error)

	// Get returns the lesson with its words, or nil if there is none.
	Get(ctx context.Context, id int) (*vocab.Lesson, error)

	// List returns lessons without their words.
	List(ctx context.Context) ([]vocab.Lesson, error)

	// Words returns the words linked to a lesson.
	Words(ctx context.Context, lessonID int) ([]vocab.Word, error)
}

// ReviewItem is a persisted review queue entry.
type ReviewItem struct {
	ID           int       `db:"id"`
	Term         string    `db:"term"`
	Position     int64     `db:"position"`
	MissCount    int       `db:"miss_count"`
	LastMissedAt time.Time `db:"last_missed_at"`
}

// ReviewRepo persists each learner's review queue.
type ReviewRepo interface {
	// Add appends term to the end of the learner's queue.
	Add(ctx context.Context, learnerID int, term string) error

	// Miss moves the first item for term to the end of the queue and bumps
	// its miss count, adding it if absent.
	Miss(ctx context.Context, learnerID int, term string) error

	// Items returns the learner's items in queue order.
	Items(ctx context.Context, learnerID int) ([]ReviewItem, error)

	// Queue loads the learner's items into a review.Queue.
	Queue(ctx context.Context, learnerID int) (*review.Queue, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider       string
	Model          string
	Purpose        string
	ConversationID string
	InputTokens    int
	OutputTokens   int
	LatencyMs      int64
	Success        bool
	ErrorMessage   string
	RequestBody    string
	ResponseBody   string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID             int       `db:"id"`
	Sequence       int64     `db:"sequence"`
	Timestamp      time.Time `db:"timestamp"`
	Provider       string    `db:"provider"`
	Model          string    `db:"model"`
	Purpose        string    `db:"purpose"`
	ConversationID string    `db:"conversation_id"`
	InputTokens    int       `db:"input_tokens"`
	OutputTokens   int       `db:"output_tokens"`
	LatencyMs      int64     `db:"latency_ms"`
	Success        bool      `db:"success"`
	ErrorMessage   string    `db:"error_message"`
	RequestBody    string    `db:"request_body"`
	ResponseBody   string    `db:"response_body"`
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event, or nil if there is none.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
