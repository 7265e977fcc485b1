package report

import (
	"context"
	"time"
)

// CompletionRequest is one text-completion call. The pipeline issues exactly
// two per report, sequentially, with distinct system prompts and budgets.
type CompletionRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// CompletionClient abstracts the LLM endpoint so the pipeline is unit-testable
// without network access.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Repository persists report rows.
type Repository interface {
	Create(ctx context.Context, rec Record) error
	FindByTokenDigest(ctx context.Context, digest string) (Record, bool, error)
}

// ObjectStorage holds the rendered HTML documents.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// HTMLCache fronts object storage on the fetch path. Both methods are
// best-effort; cache failures must never fail a request.
type HTMLCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, html string, ttl time.Duration) error
}

// JobGenerate names the queued generation job.
const JobGenerate = "report.generate"

// JobQueue defers report generation off the request path.
type JobQueue interface {
	Enqueue(ctx context.Context, name string, payload any) error
}

// Mailer delivers the secure access link after the report is persisted.
type Mailer interface {
	SendAccessLink(ctx context.Context, email, firstName, link string, expiresAt time.Time) error
}
