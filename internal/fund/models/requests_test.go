package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundsight/pkg/apperrors"
)

func TestAggregateRequestValidate(t *testing.T) {
	t.Run("valid request parses", func(t *testing.T) {
		req := AggregateRequest{
			FundIDs:  []string{"F1", "F2"},
			AsOfDate: "2024-06-30",
			Domains:  []string{"performance", "fees"},
		}
		parsed, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, []string{"F1", "F2"}, parsed.FundIDs)
		assert.Equal(t, "2024-06-30", parsed.AsOf.String())
		assert.Equal(t, []Domain{DomainPerformance, DomainFees}, parsed.Domains)
	})

	t.Run("duplicate IDs collapse, first occurrence order kept", func(t *testing.T) {
		req := AggregateRequest{
			FundIDs:  []string{"F2", "F1", "F2", " F1 "},
			AsOfDate: "2024-06-30",
			Domains:  []string{"assets"},
		}
		parsed, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, []string{"F2", "F1"}, parsed.FundIDs)
	})

	t.Run("duplicate domains collapse", func(t *testing.T) {
		req := AggregateRequest{
			FundIDs:  []string{"F1"},
			AsOfDate: "2024-06-30",
			Domains:  []string{"fees", "performance", "fees"},
		}
		parsed, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, []Domain{DomainFees, DomainPerformance}, parsed.Domains)
	})

	t.Run("rejections", func(t *testing.T) {
		base := func() AggregateRequest {
			return AggregateRequest{
				FundIDs:  []string{"F1"},
				AsOfDate: "2024-06-30",
				Domains:  []string{"performance"},
			}
		}

		tests := []struct {
			name   string
			mutate func(*AggregateRequest)
		}{
			{"empty fund IDs", func(r *AggregateRequest) { r.FundIDs = nil }},
			{"blank fund ID", func(r *AggregateRequest) { r.FundIDs = []string{"F1", "  "} }},
			{"over batch cap", func(r *AggregateRequest) {
				ids := make([]string, MaxFundBatch+1)
				for i := range ids {
					ids[i] = "F1"
				}
				r.FundIDs = ids
			}},
			{"missing date", func(r *AggregateRequest) { r.AsOfDate = "" }},
			{"malformed date", func(r *AggregateRequest) { r.AsOfDate = "June 30, 2024" }},
			{"calendar-invalid date", func(r *AggregateRequest) { r.AsOfDate = "2024-02-30" }},
			{"empty domains", func(r *AggregateRequest) { r.Domains = nil }},
			{"unknown domain", func(r *AggregateRequest) { r.Domains = []string{"performance", "rankings"} }},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				req := base()
				tc.mutate(&req)
				_, err := req.Validate()
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, apperrors.CodeBadRequest))
			})
		}
	})

	t.Run("batch cap counts raw entries, duplicates included", func(t *testing.T) {
		// 101 copies of one ID still exceed the cap; dedupe runs after the check.
		ids := make([]string, MaxFundBatch+1)
		for i := range ids {
			ids[i] = "F1"
		}
		req := AggregateRequest{FundIDs: ids, AsOfDate: "2024-06-30", Domains: []string{"fees"}}
		_, err := req.Validate()
		require.Error(t, err)
	})
}

func TestListRequestValidate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := ListRequest{}
		require.NoError(t, req.Validate())
		assert.Equal(t, 1, req.Page)
		assert.Equal(t, DefaultPageSize, req.Limit)
		assert.Equal(t, 0, req.Offset())
	})

	t.Run("offset", func(t *testing.T) {
		req := ListRequest{Page: 3, Limit: 25}
		require.NoError(t, req.Validate())
		assert.Equal(t, 50, req.Offset())
	})

	t.Run("bounds", func(t *testing.T) {
		req := ListRequest{Page: -1}
		assert.Error(t, req.Validate())

		req = ListRequest{Limit: -5}
		assert.Error(t, req.Validate())

		req = ListRequest{Limit: MaxPageSize + 1}
		assert.Error(t, req.Validate())
	})
}
