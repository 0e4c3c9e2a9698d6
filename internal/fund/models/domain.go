package models

import (
	"fundsight/pkg/apperrors"
)

// Domain is one categorical slice of fund data with its own backing table
// and payload shape. The set is closed: resolvers are bound per domain at
// startup and an unrecognized name is a request error, never a dispatch
// fallthrough.
type Domain string

const (
	DomainBasicInfo   Domain = "basicInfo"
	DomainPerformance Domain = "performance"
	DomainFees        Domain = "fees"
	DomainRatings     Domain = "ratings"
	DomainRisk        Domain = "risk"
	DomainFlows       Domain = "flows"
	DomainAssets      Domain = "assets"
)

// allDomains is the canonical order, used for deterministic serialization.
var allDomains = []Domain{
	DomainBasicInfo,
	DomainPerformance,
	DomainFees,
	DomainRatings,
	DomainRisk,
	DomainFlows,
	DomainAssets,
}

// AllDomains returns the closed domain set in canonical order.
func AllDomains() []Domain {
	out := make([]Domain, len(allDomains))
	copy(out, allDomains)
	return out
}

// ParseDomain validates a caller-supplied domain name.
func ParseDomain(s string) (Domain, error) {
	for _, d := range allDomains {
		if string(d) == s {
			return d, nil
		}
	}
	return "", apperrors.Newf(apperrors.CodeBadRequest, "unknown domain %q", s)
}

func (d Domain) String() string { return string(d) }
