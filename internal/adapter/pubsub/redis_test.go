package pubsub

import (
	"context"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"bankportal-backend/internal/domain/event"
	"bankportal-backend/internal/domain/loan"
)

func newMiniRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run: %v", err)
	}
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func sampleEvent(version uint64) event.LoanChanged {
	return event.LoanChanged{
		LoanID:        strings.Repeat("1", 32),
		UserID:        strings.Repeat("a", 32),
		Status:        loan.StatusUnderReview,
		DepositPaid:   true,
		DepositStatus: loan.DepositCompleted,
		Version:       version,
		CommittedAt:   time.Now().UTC(),
	}
}

func receive(t *testing.T, sub *Subscription) event.LoanChanged {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		if !ok {
			t.Fatal("subscription closed unexpectedly")
		}
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return event.LoanChanged{}
}

func TestPublishReachesBothTopics(t *testing.T) {
	rdb := newMiniRedis(t)
	ctx := context.Background()

	ev := sampleEvent(1)
	userSub, err := Subscribe(ctx, rdb, event.UserTopic(ev.UserID))
	if err != nil {
		t.Fatalf("Subscribe user topic: %v", err)
	}
	defer userSub.Close()

	loanSub, err := Subscribe(ctx, rdb, event.LoanTopic(ev.LoanID))
	if err != nil {
		t.Fatalf("Subscribe loan topic: %v", err)
	}
	defer loanSub.Close()

	if err := NewRedisPublisher(rdb).PublishLoanChanged(ctx, ev); err != nil {
		t.Fatalf("PublishLoanChanged: %v", err)
	}

	got := receive(t, userSub)
	if got.LoanID != ev.LoanID || got.Status != ev.Status || got.Version != 1 {
		t.Fatalf("user topic event mismatch: %+v", got)
	}
	got = receive(t, loanSub)
	if got.LoanID != ev.LoanID || got.Version != 1 {
		t.Fatalf("loan topic event mismatch: %+v", got)
	}
}

func TestSubscriptionDropsStaleVersions(t *testing.T) {
	rdb := newMiniRedis(t)
	ctx := context.Background()

	ev3 := sampleEvent(3)
	sub, err := Subscribe(ctx, rdb, event.LoanTopic(ev3.LoanID))
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Close()

	pub := NewRedisPublisher(rdb)
	if err := pub.PublishLoanChanged(ctx, ev3); err != nil {
		t.Fatalf("publish v3: %v", err)
	}
	if got := receive(t, sub); got.Version != 3 {
		t.Fatalf("version = %d, want 3", got.Version)
	}

	// an out-of-order older delta must never be delivered
	ev2 := sampleEvent(2)
	if err := pub.PublishLoanChanged(ctx, ev2); err != nil {
		t.Fatalf("publish v2: %v", err)
	}
	ev4 := sampleEvent(4)
	ev4.Status = loan.StatusActive
	if err := pub.PublishLoanChanged(ctx, ev4); err != nil {
		t.Fatalf("publish v4: %v", err)
	}

	got := receive(t, sub)
	if got.Version != 4 || got.Status != loan.StatusActive {
		t.Fatalf("expected v4 next, got %+v", got)
	}
}

func TestSubscribe_ConnectFailure(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	if _, err := Subscribe(context.Background(), rdb, "loans:loan:x"); err == nil {
		t.Fatal("expected connection error")
	}
}
