package service

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"fundsight/internal/fund/models"
	"fundsight/pkg/apperrors"
	"fundsight/pkg/platform/audit"
	"fundsight/pkg/requestcontext"
)

// maxConcurrentResolves bounds the fan-out alongside the connection pool, so
// wide requests back-pressure instead of racing for every connection at
// once.
const maxConcurrentResolves = 4

// Aggregate resolves, independently per requested domain, the most recent
// observation known to be true as of the request date, and merges the
// results into one composite record per fund.
//
// Failure policy is fail-fast: if any domain's resolution fails or the
// fan-out deadline expires, the whole aggregation fails with an unavailable
// error and already-resolved domains are discarded. A silently partial
// financial record reads as truth; an error does not.
func (s *Service) Aggregate(ctx context.Context, req models.AggregateRequest) (*models.Aggregation, error) {
	parsed, err := req.Validate()
	if err != nil {
		s.countAggregation("invalid")
		s.emitAuditEvent(ctx, req, audit.OutcomeInvalid, "")
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "fund.aggregate", trace.WithAttributes(
		attribute.String("asof", parsed.AsOf.String()),
		attribute.Int("funds", len(parsed.FundIDs)),
		attribute.Int("domains", len(parsed.Domains)),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Each domain task writes only its own slot; the merge happens
	// single-threaded after the join. No mutable state is shared between
	// resolutions.
	results := make([]map[string]models.Observation, len(parsed.Domains))

	var (
		failOnce     sync.Once
		failedDomain models.Domain
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentResolves)
	for i, domain := range parsed.Domains {
		g.Go(func() error {
			start := time.Now()
			resolved, err := s.resolveDomain(gctx, domain, parsed.FundIDs, parsed.AsOf)
			if s.metrics != nil {
				s.metrics.ObserveResolve(domain.String(), time.Since(start))
			}
			if err != nil {
				failOnce.Do(func() { failedDomain = domain })
				if s.metrics != nil {
					s.metrics.IncResolveFailure(domain.String())
				}
				s.logger.ErrorContext(gctx, "domain resolution failed",
					"domain", domain,
					"asof", parsed.AsOf,
					"funds", len(parsed.FundIDs),
					"error", err,
				)
				return apperrors.Wrap(err, apperrors.CodeUnavailable, domain.String()+" resolution failed")
			}
			results[i] = resolved
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.countAggregation("failed")
		s.emitAuditEvent(ctx, req, audit.OutcomeFailed, failedDomain)
		return nil, err
	}

	aggregation := assemble(parsed, results)
	s.countAggregation("ok")
	s.emitAuditEvent(ctx, req, audit.OutcomeOK, "")
	return aggregation, nil
}

func (s *Service) resolveDomain(ctx context.Context, domain models.Domain, fundIDs []string, asof models.Date) (map[string]models.Observation, error) {
	ctx, span := s.tracer.Start(ctx, "fund.resolve", trace.WithAttributes(
		attribute.String("domain", domain.String()),
	))
	defer span.End()
	return s.resolver.ResolveAt(ctx, domain, fundIDs, asof)
}

func (s *Service) countAggregation(outcome string) {
	if s.metrics != nil {
		s.metrics.IncAggregation(outcome)
	}
}

// emitAuditEvent records the aggregation in the query audit trail.
// Best-effort: a full inbox or broker hiccup is logged, never surfaced.
func (s *Service) emitAuditEvent(ctx context.Context, req models.AggregateRequest, outcome audit.Outcome, failedDomain models.Domain) {
	if s.audit == nil {
		return
	}
	event := audit.Event{
		Timestamp:    requestcontext.Now(ctx).UTC(),
		RequestID:    requestcontext.RequestID(ctx),
		ClientIP:     requestcontext.ClientIP(ctx),
		UserAgent:    requestcontext.UserAgent(ctx),
		Action:       audit.ActionAggregate,
		Outcome:      outcome,
		AsOf:         req.AsOfDate,
		Domains:      req.Domains,
		FundCount:    len(req.FundIDs),
		FailedDomain: failedDomain.String(),
	}
	if err := s.audit.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish audit event", "action", event.Action, "error", err)
	}
}
