package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"fundsight/internal/fund/models"
	"fundsight/pkg/apperrors"
)

// decodeJSON parses a request body, mapping malformed JSON to a caller
// error.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Wrap(err, apperrors.CodeBadRequest, "request body must be valid JSON")
	}
	return nil
}

// parseListRequest reads the listing query parameters, applying the same
// bounds the web client relies on.
func parseListRequest(r *http.Request) (models.ListRequest, error) {
	q := r.URL.Query()
	req := models.ListRequest{
		Search:   q.Get("search"),
		Type:     q.Get("type"),
		Category: q.Get("category"),
	}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return models.ListRequest{}, apperrors.New(apperrors.CodeBadRequest, "page must be a positive integer")
		}
		req.Page = page
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return models.ListRequest{}, apperrors.New(apperrors.CodeBadRequest, "limit must be a positive integer")
		}
		req.Limit = limit
	}

	if err := req.Validate(); err != nil {
		return models.ListRequest{}, err
	}
	return req, nil
}

// parseFundID reads and checks the detail-path fund ID.
func parseFundID(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		return "", apperrors.New(apperrors.CodeBadRequest, "fund ID must be a non-empty string")
	}
	return id, nil
}
