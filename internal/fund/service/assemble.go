package service

import (
	"encoding/json"

	"fundsight/internal/fund/models"
)

// assemble merges per-domain resolution results into one composite record
// per fund, in request order. Runs strictly after the fan-out join, single
// writer.
//
// Funds with no data in a domain get no key for it, and funds empty across
// every requested domain still appear as bare records: dropping them would
// be indistinguishable from a transport bug on the caller's side.
func assemble(req models.ParsedAggregateRequest, perDomain []map[string]models.Observation) *models.Aggregation {
	funds := make([]models.CompositeRecord, 0, len(req.FundIDs))
	for _, id := range req.FundIDs {
		record := models.CompositeRecord{
			FundID:  id,
			Domains: make(map[models.Domain]json.RawMessage, len(req.Domains)),
		}
		for i, domain := range req.Domains {
			if obs, ok := perDomain[i][id]; ok {
				record.Domains[domain] = obs.Payload
			}
		}
		funds = append(funds, record)
	}
	return &models.Aggregation{AsOf: req.AsOf, Funds: funds}
}
