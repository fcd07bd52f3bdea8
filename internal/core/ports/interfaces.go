package ports

import (
	"context"
	"scamshield/internal/core/domain"
)

// KeyValueStore is the local persistent store: string values under string keys.
// Writes replace the whole value under a key.
type KeyValueStore interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
}

// Analyzer produces security verdicts. Implementations never fail; they degrade to a
// fallback result instead.
type Analyzer interface {
	Analyze(ctx context.Context, input string, kind domain.ScanKind) domain.AnalysisResult
	CheckPasswordStrength(ctx context.Context, password string) domain.AnalysisResult
}

// Replier writes the moderator reply to a community post.
type Replier interface {
	GenerateReply(ctx context.Context, postContent string) string
}

// Brain is the full AI gateway.
type Brain interface {
	Analyzer
	Replier
}

// Notifier delivers operator alerts.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
