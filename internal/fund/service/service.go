// Package service orchestrates point-in-time aggregation and the browsing
// surface over the fund warehouse.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	fundmetrics "fundsight/internal/fund/metrics"
	"fundsight/internal/fund/models"
	"fundsight/internal/fund/store"
	"fundsight/pkg/apperrors"
	"fundsight/pkg/platform/audit"
)

const defaultAggregateTimeout = 10 * time.Second

// Service exposes fund aggregation and catalog reads. It is stateless; all
// state lives in the stores, so every call is an independent snapshot.
type Service struct {
	resolver store.Resolver
	catalog  store.Catalog
	logger   *slog.Logger
	metrics  *fundmetrics.Metrics
	audit    audit.Publisher
	timeout  time.Duration
	tracer   trace.Tracer
}

// Option configures optional collaborators.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *fundmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

// WithAggregateTimeout bounds the whole domain fan-out per request.
func WithAggregateTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// New wires a service over its stores.
func New(resolver store.Resolver, catalog store.Catalog, opts ...Option) *Service {
	s := &Service{
		resolver: resolver,
		catalog:  catalog,
		timeout:  defaultAggregateTimeout,
		tracer:   otel.Tracer("fundsight/fund"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// ListFunds serves the paginated browsing surface.
func (s *Service) ListFunds(ctx context.Context, req models.ListRequest) (*models.FundPage, error) {
	page, err := s.catalog.List(ctx, req)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeBadRequest) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "list funds failed", "error", err)
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "fund listing failed")
	}
	return page, nil
}

// GetFund serves the detail page for one fund.
func (s *Service) GetFund(ctx context.Context, id string) (*models.FundDetail, error) {
	detail, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "fund not found")
		}
		s.logger.ErrorContext(ctx, "get fund failed", "fund_id", id, "error", err)
		return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "fund lookup failed")
	}
	return detail, nil
}
