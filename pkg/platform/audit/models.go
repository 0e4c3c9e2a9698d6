// Package audit captures the query audit trail: who asked for which funds,
// which domains, and as of which date. Events are emitted from domain logic
// and kept transport-agnostic so stores and sinks can fan out. Publishing is
// best-effort; an audit failure never fails the request that produced it.
package audit

import (
	"context"
	"time"
)

// Action names the operation that produced an event.
type Action string

const (
	ActionAggregate  Action = "funds_aggregated"
	ActionListFunds  Action = "funds_listed"
	ActionFundDetail Action = "fund_detail_read"
)

// Outcome classifies how the operation ended.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeInvalid Outcome = "invalid_request"
	OutcomeFailed  Outcome = "failed"
)

// Event is one audited read against the fund warehouse.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Action    Action    `json:"action"`
	Outcome   Outcome   `json:"outcome"`
	// AsOf and Domains describe aggregation events; both empty for
	// catalog reads.
	AsOf      string   `json:"asof_date,omitempty"`
	Domains   []string `json:"domains,omitempty"`
	FundCount int      `json:"fund_count,omitempty"`
	// FailedDomain names the domain whose resolution failed the request.
	FailedDomain string `json:"failed_domain,omitempty"`
}

// Publisher delivers events to wherever the trail is kept.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Store persists events. The worker drains its inbox into one.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// ChannelPublisher feeds an in-process worker through a buffered channel,
// dropping events when the buffer is full rather than blocking the request
// path.
type ChannelPublisher struct {
	inbox chan<- Event
}

// NewChannelPublisher wraps an inbox channel shared with a worker.
func NewChannelPublisher(inbox chan<- Event) *ChannelPublisher {
	return &ChannelPublisher{inbox: inbox}
}

// Publish implements Publisher.
func (p *ChannelPublisher) Publish(ctx context.Context, event Event) error {
	select {
	case p.inbox <- event:
		return nil
	default:
		return ErrInboxFull
	}
}
