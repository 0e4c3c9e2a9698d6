package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"fundsight/internal/fund/models"
	"fundsight/pkg/apperrors"
	"fundsight/pkg/requestcontext"
)

// MemoryStore is the in-process bitemporal store. It carries full system
// validity semantics so the resolution algorithm is testable without a
// warehouse: "now" comes from requestcontext, letting tests replay
// correction history at pinned instants.
type MemoryStore struct {
	mu sync.RWMutex
	// observations per domain per fund, append-only like the warehouse.
	data map[models.Domain]map[string][]models.Observation
	// basic-info summaries for the catalog surface.
	funds []models.FundSummary
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[models.Domain]map[string][]models.Observation),
	}
}

// Put appends an observation with explicit system validity. Rows are
// immutable once written; use Correct to supersede one.
func (s *MemoryStore) Put(domain models.Domain, obs models.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byFund := s.data[domain]
	if byFund == nil {
		byFund = make(map[string][]models.Observation)
		s.data[domain] = byFund
	}
	byFund[obs.FundID] = append(byFund[obs.FundID], obs)
}

// Record appends an observation valid from the given instant with an open
// validity interval.
func (s *MemoryStore) Record(domain models.Domain, fundID string, effective models.Date, validFrom time.Time, payload json.RawMessage) {
	s.Put(domain, models.Observation{
		FundID:          fundID,
		EffectiveDate:   effective,
		SystemValidFrom: validFrom,
		Payload:         payload,
	})
}

// Correct closes the currently-open observation for (fundID, effective) at
// the given instant and appends the replacement. The superseded row stays in
// history.
func (s *MemoryStore) Correct(domain models.Domain, fundID string, effective models.Date, at time.Time, payload json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byFund := s.data[domain]
	if byFund != nil {
		rows := byFund[fundID]
		for i := range rows {
			if rows[i].SystemValidTo == nil && rows[i].EffectiveDate.Equal(effective) {
				to := at
				rows[i].SystemValidTo = &to
			}
		}
	} else {
		byFund = make(map[string][]models.Observation)
		s.data[domain] = byFund
	}
	byFund[fundID] = append(byFund[fundID], models.Observation{
		FundID:          fundID,
		EffectiveDate:   effective,
		SystemValidFrom: at,
		Payload:         payload,
	})
}

// ResolveAt implements Resolver. Validity is filtered before effective dates
// are compared; among qualifying rows the latest effective date wins, and an
// effective-date tie (a store-consistency defect) is broken by the latest
// SystemValidFrom so the most recent correction prevails.
func (s *MemoryStore) ResolveAt(ctx context.Context, domain models.Domain, fundIDs []string, asof models.Date) (map[string]models.Observation, error) {
	if _, ok := pointInTimeFunctions[domain]; !ok {
		return nil, apperrors.Newf(apperrors.CodeInternal, "no resolver registered for domain %q", domain)
	}
	if len(fundIDs) == 0 || len(fundIDs) > models.MaxFundBatch {
		return nil, apperrors.Newf(apperrors.CodeInternal, "resolver batch must hold 1..%d fund IDs", models.MaxFundBatch)
	}

	now := requestcontext.Now(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]models.Observation, len(fundIDs))
	byFund := s.data[domain]
	if byFund == nil {
		return result, nil
	}
	for _, id := range fundIDs {
		var best models.Observation
		found := false
		for _, obs := range byFund[id] {
			if !obs.ValidAt(now) || obs.EffectiveDate.After(asof) {
				continue
			}
			if !found || better(obs, best) {
				best = obs
				found = true
			}
		}
		if found {
			result[id] = best
		}
	}
	return result, nil
}

// better reports whether a should replace b as the resolved observation.
func better(a, b models.Observation) bool {
	if c := a.EffectiveDate.Compare(b.EffectiveDate); c != 0 {
		return c > 0
	}
	return a.SystemValidFrom.After(b.SystemValidFrom)
}

// AddFund registers a basic-info summary for the catalog surface.
func (s *MemoryStore) AddFund(f models.FundSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funds = append(s.funds, f)
}

// List implements Catalog over the registered summaries, matching the
// warehouse ordering (fund name ascending).
func (s *MemoryStore) List(ctx context.Context, req models.ListRequest) (*models.FundPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.FundSummary, 0, len(s.funds))
	for _, f := range s.funds {
		if matches(f, req) {
			matched = append(matched, f)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].FundName < matched[j].FundName })

	total := len(matched)
	start := req.Offset()
	if start > total {
		start = total
	}
	end := min(start+req.Limit, total)

	page := make([]models.FundSummary, end-start)
	copy(page, matched[start:end])

	return &models.FundPage{
		Data: page,
		Pagination: models.Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: (total + req.Limit - 1) / req.Limit,
		},
	}, nil
}

// GetByID implements Catalog.
func (s *MemoryStore) GetByID(ctx context.Context, id string) (*models.FundDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.funds {
		if f.ID == id {
			raw, err := json.Marshal(f)
			if err != nil {
				return nil, err
			}
			return &models.FundDetail{Data: raw}, nil
		}
	}
	return nil, ErrNotFound
}

func matches(f models.FundSummary, req models.ListRequest) bool {
	if req.Search != "" {
		needle := strings.ToLower(req.Search)
		if !strings.Contains(strings.ToLower(f.FundName), needle) &&
			!strings.Contains(strings.ToLower(f.LegalName), needle) &&
			!strings.Contains(strings.ToLower(f.Name), needle) &&
			!(f.Ticker != nil && strings.Contains(strings.ToLower(*f.Ticker), needle)) {
			return false
		}
	}
	if req.Type != "" {
		if !(deref(f.SecurityType) == req.Type || deref(f.LegalStructure) == req.Type) {
			return false
		}
	}
	if req.Category != "" && deref(f.CategoryName) != req.Category {
		return false
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
