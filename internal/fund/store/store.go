// Package store provides point-in-time access to the fund warehouse.
//
// Resolution is one reusable algorithm parameterized per domain: keep only
// rows that are system-valid right now, drop rows whose effective date is
// after the query date, and take the latest surviving effective date. Both
// implementations (warehouse SQL functions, in-memory) follow it exactly.
package store

import (
	"context"
	"errors"

	"fundsight/internal/fund/models"
)

// ErrNotFound is returned by catalog lookups for unknown fund IDs.
var ErrNotFound = errors.New("fund not found")

// Resolver resolves, per domain, the most recent observation known to be
// true as of a calendar date.
//
// The result holds at most one observation per requested fund; funds with no
// qualifying observation are absent from the map, which is a normal sparse
// result and never an error. Each call is a single batched query, never one
// query per fund.
type Resolver interface {
	ResolveAt(ctx context.Context, domain models.Domain, fundIDs []string, asof models.Date) (map[string]models.Observation, error)
}

// Catalog serves the browsing surface over current basic info.
type Catalog interface {
	List(ctx context.Context, req models.ListRequest) (*models.FundPage, error)
	GetByID(ctx context.Context, id string) (*models.FundDetail, error)
}

// pointInTimeFunctions binds each domain to its warehouse resolution
// function. The closed map doubles as the domain registry: a domain missing
// here is a programming error caught at startup, not a runtime dispatch
// fallthrough.
var pointInTimeFunctions = map[models.Domain]string{
	models.DomainBasicInfo:   "ms.fn_get_basic_info_at_date",
	models.DomainPerformance: "ms.fn_get_performance_at_date",
	models.DomainFees:        "ms.fn_get_fees_at_date",
	models.DomainRatings:     "ms.fn_get_ratings_at_date",
	models.DomainRisk:        "ms.fn_get_risk_at_date",
	models.DomainFlows:       "ms.fn_get_flows_at_date",
	models.DomainAssets:      "ms.fn_get_assets_at_date",
}
