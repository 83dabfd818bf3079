package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"bankportal-backend/internal/domain/event"
)

// RedisPublisher pushes committed loan changes onto the redis change feed.
// One publish fans out to the per-user topic and the per-loan topic.
type RedisPublisher struct{ rdb *redis.Client }

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher { return &RedisPublisher{rdb: rdb} }

func (p *RedisPublisher) PublishLoanChanged(ctx context.Context, ev event.LoanChanged) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode loan event: %w", err)
	}
	if err := p.rdb.Publish(ctx, event.UserTopic(ev.UserID), payload).Err(); err != nil {
		return fmt.Errorf("publish user topic: %w", err)
	}
	if err := p.rdb.Publish(ctx, event.LoanTopic(ev.LoanID), payload).Err(); err != nil {
		return fmt.Errorf("publish loan topic: %w", err)
	}
	return nil
}

// Subscription is one dashboard session's view of a topic. Deltas arrive on
// Events in commit order per loan; anything stale is dropped before delivery.
type Subscription struct {
	ps *redis.PubSub
	ch chan event.LoanChanged
}

// Subscribe opens a change-feed subscription on a topic (use event.UserTopic
// or event.LoanTopic). The returned subscription drains until Close or until
// ctx ends.
func Subscribe(ctx context.Context, rdb *redis.Client, topic string) (*Subscription, error) {
	ps := rdb.Subscribe(ctx, topic)
	// force the SUBSCRIBE round trip so a failed connection surfaces here
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	s := &Subscription{ps: ps, ch: make(chan event.LoanChanged, 16)}
	tracker := event.NewTracker()
	go func() {
		defer close(s.ch)
		for msg := range ps.Channel() {
			var ev event.LoanChanged
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("change feed %s: bad payload: %v", topic, err)
				continue
			}
			if !tracker.Apply(ev) {
				continue // stale delta, a newer version was already delivered
			}
			select {
			case s.ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return s, nil
}

func (s *Subscription) Events() <-chan event.LoanChanged { return s.ch }

func (s *Subscription) Close() error { return s.ps.Close() }
