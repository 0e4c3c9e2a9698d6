// Package models defines the temporal data model shared by the fund stores,
// services, and handlers.
//
// Every warehouse row lives on two independent time axes. The business
// effective date says which real-world period a value describes (the
// month-end a return covers, the day a rating was assigned). The system
// validity interval says when the warehouse considered that row its
// authoritative value; corrections close one interval and open another, so
// history is never lost. Resolution filters on validity first and only then
// picks by effective date. Collapsing the two axes into "latest row wins" is
// a correctness bug.
package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Observation is one bitemporal warehouse row for a single fund in a single
// domain. Payload carries the domain-shaped columns verbatim; this core
// never interprets them.
type Observation struct {
	FundID          string
	EffectiveDate   Date
	SystemValidFrom time.Time
	// SystemValidTo is nil while the row is the current truth. A correction
	// sets it and inserts a replacement row; payloads are never mutated.
	SystemValidTo *time.Time
	Payload       json.RawMessage
}

// ValidAt reports whether the observation was the warehouse's authoritative
// value at the given instant.
func (o Observation) ValidAt(now time.Time) bool {
	if o.SystemValidFrom.After(now) {
		return false
	}
	return o.SystemValidTo == nil || o.SystemValidTo.After(now)
}

// CompositeRecord is the sparse per-fund merge across requested domains. A
// missing domain key means the fund had no qualifying observation there as
// of the query date; it is never null-filled, so callers can distinguish
// "nothing known" from "not requested".
type CompositeRecord struct {
	FundID  string
	Domains map[Domain]json.RawMessage
}

// MarshalJSON emits the fundId followed by present domains in canonical
// order. Map iteration would randomize key order; aggregation responses must
// be byte-identical across identical calls.
func (r CompositeRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"fundId":`)
	id, err := json.Marshal(r.FundID)
	if err != nil {
		return nil, err
	}
	buf.Write(id)
	for _, d := range allDomains {
		payload, ok := r.Domains[d]
		if !ok {
			continue
		}
		buf.WriteByte(',')
		key, err := json.Marshal(string(d))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(payload)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores the sparse shape; any key other than fundId is
// treated as a domain payload.
func (r *CompositeRecord) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Domains = make(map[Domain]json.RawMessage)
	for k, v := range raw {
		if k == "fundId" {
			if err := json.Unmarshal(v, &r.FundID); err != nil {
				return err
			}
			continue
		}
		if d, err := ParseDomain(k); err == nil {
			r.Domains[d] = v
		}
	}
	return nil
}

// Aggregation is the assembled point-in-time snapshot: one composite record
// per requested fund, in request order, plus the echoed as-of date.
// Constructed fresh per request and never cached.
type Aggregation struct {
	AsOf  Date              `json:"asofDate"`
	Funds []CompositeRecord `json:"funds"`
}
