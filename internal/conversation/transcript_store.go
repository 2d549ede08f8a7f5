package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/GautamArjun/packrat-demo/pkg/logging"
)

const (
	transcriptKeyPrefix     = "chat_transcript:"
	defaultTranscriptMax    = 250
	defaultTranscriptTTL    = 24 * time.Hour
	transcriptMirrorTimeout = 2 * time.Second
)

// TranscriptStore mirrors session messages into a capped, expiring redis list
// so support can read a conversation after the session is swept.
type TranscriptStore struct {
	redis       *redis.Client
	tracer      trace.Tracer
	maxMessages int64
	ttl         time.Duration
}

// NewTranscriptStore returns nil for a nil client; a nil store is a no-op.
func NewTranscriptStore(redisClient *redis.Client, maxMessages int64, ttl time.Duration) *TranscriptStore {
	if redisClient == nil {
		return nil
	}
	if maxMessages <= 0 {
		maxMessages = defaultTranscriptMax
	}
	if ttl <= 0 {
		ttl = defaultTranscriptTTL
	}
	return &TranscriptStore{
		redis:       redisClient,
		tracer:      otel.Tracer("packrat.internal.conversation.transcript"),
		maxMessages: maxMessages,
		ttl:         ttl,
	}
}

func (s *TranscriptStore) Append(ctx context.Context, sessionID string, msg Message) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if sessionID == "" {
		return errors.New("conversation: transcript sessionID required")
	}

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("conversation: marshal transcript message: %w", err)
	}

	ctx, span := s.tracer.Start(ctx, "conversation.transcript.append")
	defer span.End()

	key := transcriptKey(sessionID)
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.ttl)
	pipe.LTrim(ctx, key, -s.maxMessages, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: append transcript message: %w", err)
	}
	return nil
}

// List returns the last limit messages, or all of them for limit <= 0.
func (s *TranscriptStore) List(ctx context.Context, sessionID string, limit int64) ([]Message, error) {
	if s == nil || s.redis == nil {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if sessionID == "" {
		return nil, errors.New("conversation: transcript sessionID required")
	}

	ctx, span := s.tracer.Start(ctx, "conversation.transcript.list")
	defer span.End()

	start := int64(0)
	if limit > 0 {
		start = -limit
	}

	raw, err := s.redis.LRange(ctx, transcriptKey(sessionID), start, -1).Result()
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, redis.Nil) {
			return []Message{}, nil
		}
		return nil, fmt.Errorf("conversation: list transcript: %w", err)
	}

	out := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			span.RecordError(err)
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

// Mirror returns a session listener that appends every message. Failures are
// logged; they never interrupt the conversation.
func (s *TranscriptStore) Mirror(logger *logging.Logger) Listener {
	if logger == nil {
		logger = logging.Default()
	}
	return func(ctx context.Context, u Update) {
		if s == nil || u.Kind != UpdateMessage || u.Message == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), transcriptMirrorTimeout)
		defer cancel()
		if err := s.Append(ctx, u.SessionID, *u.Message); err != nil {
			logger.Warn("failed to mirror transcript message", "session_id", u.SessionID, "error", err)
		}
	}
}

func transcriptKey(sessionID string) string {
	return transcriptKeyPrefix + sessionID
}
