package document

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// Key prefixes for Redis
	documentKeyPrefix    = "document:"
	changesChannelPrefix = "document_changes:"
)

// Config holds configuration for the Redis document repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface with a Redis hash per
// document (one field per mode) and a pub/sub channel announcing writes
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed document repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RedisClient == nil {
		return nil, ErrNilRedisClient
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func documentKey(documentID string) string {
	return documentKeyPrefix + documentID
}

func changesChannel(documentID string) string {
	return changesChannelPrefix + documentID
}

// Write stores the fields and announces the change in a single transaction
func (r *redisRepository) Write(ctx context.Context, input *WriteInput) error {
	if input == nil || input.DocumentID == "" {
		return ErrMissingDocumentID
	}
	if len(input.Fields) == 0 {
		return ErrNoFields
	}

	values := make(map[string]interface{}, len(input.Fields))
	for mode, list := range input.Fields {
		if list == nil {
			list = models.OptionList{}
		}
		listJSON, err := json.Marshal(list)
		if err != nil {
			return fmt.Errorf("failed to marshal %s options: %w", mode, err)
		}
		values[string(mode)] = listJSON
	}

	noticeJSON, err := json.Marshal(changeNotice{
		WriteID: input.WriteID,
		Origin:  input.Origin,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal change notice: %w", err)
	}

	key := documentKey(input.DocumentID)

	pipe := r.client.TxPipeline()
	if !input.Merge {
		pipe.Del(ctx, key)
	}
	pipe.HSet(ctx, key, values)
	pipe.Publish(ctx, changesChannel(input.DocumentID), noticeJSON)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	return nil
}

// GetDocument reads every mode field of the document
func (r *redisRepository) GetDocument(ctx context.Context, input *GetDocumentInput) (*Snapshot, error) {
	if input == nil || input.DocumentID == "" {
		return nil, ErrMissingDocumentID
	}

	fields, err := r.client.HGetAll(ctx, documentKey(input.DocumentID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	snapshot := &Snapshot{
		Exists:   len(fields) > 0,
		Document: models.SharedDocument{},
	}

	for field, value := range fields {
		mode := models.Mode(field)
		if !mode.IsValid() {
			continue
		}

		var list models.OptionList
		if err := json.Unmarshal([]byte(value), &list); err != nil {
			log.Warn().Err(err).
				Str("document_id", input.DocumentID).
				Str("mode", field).
				Msg("ignoring malformed option list")
			list = models.OptionList{}
		}
		if list == nil {
			list = models.OptionList{}
		}
		snapshot.Document[mode] = list
	}

	return snapshot, nil
}

// Subscribe listens for change notices and delivers a fresh snapshot for each.
// The callback runs on the subscription goroutine and must not call Unsubscribe.
func (r *redisRepository) Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error) {
	if input == nil || input.DocumentID == "" {
		return nil, ErrMissingDocumentID
	}
	if input.Callback == nil {
		return nil, ErrMissingCallback
	}

	pubsub := r.client.Subscribe(ctx, changesChannel(input.DocumentID))

	// Wait for the subscription to be confirmed so no write slips in unseen
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%w: %w", ErrSubscriptionFailed, err)
	}

	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	messages := pubsub.Channel()
	done := make(chan struct{})

	go func() {
		defer close(done)

		r.deliver(subCtx, input, &changeNotice{})

		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var notice changeNotice
				if err := json.Unmarshal([]byte(msg.Payload), &notice); err != nil {
					log.Warn().Err(err).
						Str("document_id", input.DocumentID).
						Msg("unreadable change notice")
				}
				r.deliver(subCtx, input, &notice)
			}
		}
	}()

	unsubscribe := sync.OnceValue(func() error {
		cancel()
		err := pubsub.Close()
		<-done
		return err
	})

	return &SubscribeOutput{
		Unsubscribe: unsubscribe,
	}, nil
}

func (r *redisRepository) deliver(ctx context.Context, input *SubscribeInput, notice *changeNotice) {
	snapshot, err := r.GetDocument(ctx, &GetDocumentInput{
		DocumentID: input.DocumentID,
	})
	if err != nil {
		if ctx.Err() == nil {
			log.Error().Err(err).
				Str("document_id", input.DocumentID).
				Msg("failed to read document after change")
		}
		return
	}

	snapshot.WriteID = notice.WriteID
	snapshot.Origin = notice.Origin
	input.Callback(snapshot)
}
