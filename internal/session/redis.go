package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists sessions in Redis so conversations survive process
// restarts. Layout per session id:
//
//	coach:session:<id>          JSON-encoded session metadata (profile, job)
//	coach:session:<id>:history  list of JSON-encoded messages
//	coach:session:<id>:results  hash advisorType -> JSON result
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// TTL bounds session lifetime; zero keeps sessions forever.
	TTL time.Duration `mapstructure:"ttl"`
}

func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

func metaKey(id string) string    { return "coach:session:" + id }
func historyKey(id string) string { return "coach:session:" + id + ":history" }
func resultsKey(id string) string { return "coach:session:" + id + ":results" }

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	meta := *sess
	meta.History = nil
	meta.Results = nil

	data, err := json.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ok, err := s.client.SetNX(ctx, metaKey(sess.ID), data, s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("session %s already exists", sess.ID)
	}

	for _, msg := range sess.History {
		if err := s.AppendMessage(ctx, sess.ID, msg); err != nil {
			return err
		}
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, metaKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	raw, err := s.client.LRange(ctx, historyKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	for _, entry := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			return nil, fmt.Errorf("unmarshal history entry: %w", err)
		}
		sess.History = append(sess.History, msg)
	}

	results, err := s.client.HGetAll(ctx, resultsKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		sess.Results = make(map[string]json.RawMessage, len(results))
		for advisor, value := range results {
			sess.Results[advisor] = json.RawMessage(value)
		}
	}

	return &sess, nil
}

func (s *RedisStore) AppendMessage(ctx context.Context, id string, msg Message) error {
	if err := s.ensureExists(ctx, id); err != nil {
		return err
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, historyKey(id), data)
	if s.ttl > 0 {
		pipe.Expire(ctx, historyKey(id), s.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) PutResult(ctx context.Context, id, advisorType string, result json.RawMessage) error {
	if err := s.ensureExists(ctx, id); err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, resultsKey(id), advisorType, string(result))
	if s.ttl > 0 {
		pipe.Expire(ctx, resultsKey(id), s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) ensureExists(ctx context.Context, id string) error {
	n, err := s.client.Exists(ctx, metaKey(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
