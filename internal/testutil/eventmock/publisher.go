package eventmock

import (
	"context"
	"sync"

	"bankportal-backend/internal/domain/event"
)

// Publisher records every published event for assertions.
type Publisher struct {
	mu     sync.Mutex
	Events []event.LoanChanged
	Err    error
}

func (p *Publisher) PublishLoanChanged(_ context.Context, ev event.LoanChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, ev)
	return nil
}

func (p *Publisher) Published() []event.LoanChanged {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.LoanChanged, len(p.Events))
	copy(out, p.Events)
	return out
}
