package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"fastenhub/internal/domain"
)

const (
	categoriesKey     = "fastenhub:categories"
	categoriesChannel = "fastenhub:categories:changed"
	inquiriesKey      = "fastenhub:inquiries"
	inquiriesChannel  = "fastenhub:inquiries:changed"
)

// RedisStore keeps the catalog as a single JSON array value and inquiries as
// a hash keyed by inquiry id. Every write publishes on a notification
// channel so all subscribers re-read; a re-read per notification gives the
// at-least-once, in-order delivery the subscription contract asks for.
type RedisStore struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewRedisStore(client *redis.Client, logger *logrus.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

// Categories reads the current remote catalog; an absent key is an empty
// catalog, not an error.
func (s *RedisStore) Categories(ctx context.Context) ([]domain.Category, error) {
	raw, err := s.client.Get(ctx, categoriesKey).Result()
	if errors.Is(err, redis.Nil) {
		return []domain.Category{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}
	var cats []domain.Category
	if err := json.Unmarshal([]byte(raw), &cats); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	return cats, nil
}

func (s *RedisStore) SyncCategories(ctx context.Context, cats []domain.Category) error {
	if cats == nil {
		cats = []domain.Category{}
	}
	data, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	if err := s.client.Set(ctx, categoriesKey, data, 0).Err(); err != nil {
		return fmt.Errorf("write categories: %w", err)
	}
	if err := s.client.Publish(ctx, categoriesChannel, "sync").Err(); err != nil {
		return fmt.Errorf("notify categories: %w", err)
	}
	return nil
}

func (s *RedisStore) SubscribeCategories(ctx context.Context, fn CategoriesFunc) (func(), error) {
	return s.subscribe(ctx, categoriesChannel, func(ctx context.Context) {
		cats, err := s.Categories(ctx)
		if err != nil {
			// An erroring read counts as "no data"; report and move on.
			s.logger.WithError(err).Error("categories subscription read failed")
			cats = []domain.Category{}
		}
		fn(cats)
	})
}

func (s *RedisStore) Inquiries(ctx context.Context) ([]domain.Inquiry, error) {
	entries, err := s.client.HGetAll(ctx, inquiriesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read inquiries: %w", err)
	}
	out := make([]domain.Inquiry, 0, len(entries))
	for id, raw := range entries {
		var inq domain.Inquiry
		if err := json.Unmarshal([]byte(raw), &inq); err != nil {
			s.logger.WithError(err).WithField("inquiry_id", id).Warn("skipping undecodable inquiry")
			continue
		}
		inq.ID = id // the hash field is authoritative
		out = append(out, inq)
	}
	// Ids are timestamp-derived, so this yields chronological order.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *RedisStore) SaveInquiry(ctx context.Context, inq domain.Inquiry) error {
	data, err := json.Marshal(inq)
	if err != nil {
		return fmt.Errorf("encode inquiry: %w", err)
	}
	if err := s.client.HSet(ctx, inquiriesKey, inq.ID, data).Err(); err != nil {
		return fmt.Errorf("write inquiry: %w", err)
	}
	if err := s.client.Publish(ctx, inquiriesChannel, inq.ID).Err(); err != nil {
		return fmt.Errorf("notify inquiry: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteInquiry(ctx context.Context, id string) error {
	if err := s.client.HDel(ctx, inquiriesKey, id).Err(); err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	if err := s.client.Publish(ctx, inquiriesChannel, id).Err(); err != nil {
		return fmt.Errorf("notify inquiry delete: %w", err)
	}
	return nil
}

func (s *RedisStore) SubscribeInquiries(ctx context.Context, fn InquiriesFunc) (func(), error) {
	return s.subscribe(ctx, inquiriesChannel, func(ctx context.Context) {
		inqs, err := s.Inquiries(ctx)
		if err != nil {
			s.logger.WithError(err).Error("inquiries subscription read failed")
			inqs = []domain.Inquiry{}
		}
		fn(inqs)
	})
}

// subscribe wires a notification channel to a reload callback. The initial
// read and every subsequent reload run on one goroutine, so callbacks are
// delivered in the order changes occurred.
func (s *RedisStore) subscribe(ctx context.Context, channel string, reload func(context.Context)) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)
	pubsub := s.client.Subscribe(subCtx, channel)

	// Wait for subscription confirmation so no change slips between the
	// initial read and the first notification.
	if _, err := pubsub.Receive(subCtx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	ch := pubsub.Channel()
	go func() {
		defer func() { _ = pubsub.Close() }()
		reload(subCtx)
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				reload(subCtx)
			}
		}
	}()

	return cancel, nil
}
