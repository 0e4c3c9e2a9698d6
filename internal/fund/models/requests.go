package models

import (
	"strings"

	"fundsight/pkg/apperrors"
	pstrings "fundsight/pkg/platform/strings"
)

// MaxFundBatch caps the number of fund IDs per aggregation so one request
// cannot turn into an unbounded warehouse scan.
const MaxFundBatch = 100

// Pagination bounds for the listing endpoint.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AggregateRequest is the wire shape of the multi-domain aggregation call.
type AggregateRequest struct {
	FundIDs  []string `json:"fundIds"`
	AsOfDate string   `json:"asofDate"`
	Domains  []string `json:"domains"`
}

// ParsedAggregateRequest is the validated form the executor works with:
// deduplicated IDs in first-occurrence order, a real calendar date, and a
// domain set drawn from the closed enum.
type ParsedAggregateRequest struct {
	FundIDs []string
	AsOf    Date
	Domains []Domain
}

// Validate checks the request and returns its parsed form. All failures are
// caller errors; no store query is issued for an invalid request.
func (r AggregateRequest) Validate() (ParsedAggregateRequest, error) {
	if len(r.FundIDs) == 0 {
		return ParsedAggregateRequest{}, apperrors.New(apperrors.CodeBadRequest, "fundIds must be a non-empty array")
	}
	if len(r.FundIDs) > MaxFundBatch {
		return ParsedAggregateRequest{}, apperrors.Newf(apperrors.CodeBadRequest, "fundIds cannot exceed %d entries", MaxFundBatch)
	}
	for _, id := range r.FundIDs {
		if strings.TrimSpace(id) == "" {
			return ParsedAggregateRequest{}, apperrors.New(apperrors.CodeBadRequest, "fundIds must not contain blank entries")
		}
	}

	asof, err := ParseDate(r.AsOfDate)
	if err != nil {
		return ParsedAggregateRequest{}, err
	}

	if len(r.Domains) == 0 {
		return ParsedAggregateRequest{}, apperrors.New(apperrors.CodeBadRequest, "domains must be a non-empty array")
	}
	domains := make([]Domain, 0, len(r.Domains))
	seen := make(map[Domain]bool, len(r.Domains))
	for _, name := range r.Domains {
		d, err := ParseDomain(name)
		if err != nil {
			return ParsedAggregateRequest{}, err
		}
		if !seen[d] {
			seen[d] = true
			domains = append(domains, d)
		}
	}

	return ParsedAggregateRequest{
		FundIDs: pstrings.DedupeAndTrim(r.FundIDs),
		AsOf:    asof,
		Domains: domains,
	}, nil
}

// ListRequest carries the parsed listing query: pagination plus optional
// search and filters over current basic info.
type ListRequest struct {
	Page     int
	Limit    int
	Search   string
	Type     string
	Category string
}

// Validate applies defaults and rejects out-of-range pagination.
func (r *ListRequest) Validate() error {
	if r.Page == 0 {
		r.Page = 1
	}
	if r.Limit == 0 {
		r.Limit = DefaultPageSize
	}
	if r.Page < 1 {
		return apperrors.New(apperrors.CodeBadRequest, "page must be a positive integer")
	}
	if r.Limit < 1 {
		return apperrors.New(apperrors.CodeBadRequest, "limit must be a positive integer")
	}
	if r.Limit > MaxPageSize {
		return apperrors.Newf(apperrors.CodeBadRequest, "limit cannot exceed %d", MaxPageSize)
	}
	return nil
}

// Offset converts page/limit into a row offset.
func (r ListRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}
