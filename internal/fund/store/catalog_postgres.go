package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fundsight/internal/fund/models"
)

const basicInfoTable = "ms.fund_share_class_basic_info_ca_openend"

const summaryColumns = `_id, _name, fundname, legalname, ticker, categoryname,
	globalcategoryname, broadassetclass, currency, domicile, inceptiondate,
	providercompanyname, legalstructure, securitytype`

// currentlyValid keeps browsing on the same system-validity footing as
// resolution: superseded rows never surface.
const currentlyValid = "sys_valid_from <= now() AND (sys_valid_to IS NULL OR sys_valid_to > now())"

// PostgresCatalog serves the browsing surface directly from the current
// basic-info table. Listing reads only the currently system-valid rows; the
// temporal axes matter for as-of resolution, not for browsing.
type PostgresCatalog struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalog creates a warehouse-backed catalog over the shared pool.
func NewPostgresCatalog(pool *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{pool: pool}
}

// List implements Catalog with search over fund name, legal name, short name
// and ticker plus type/category filters, ordered by fund name.
func (c *PostgresCatalog) List(ctx context.Context, req models.ListRequest) (*models.FundPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	where, args := listPredicates(req)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", basicInfoTable, where)
	var total int
	if err := c.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count funds: %w", err)
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM %s%s ORDER BY fundname ASC LIMIT $%d OFFSET $%d",
		summaryColumns, basicInfoTable, where, len(args)+1, len(args)+2)
	args = append(args, req.Limit, req.Offset())

	rows, err := c.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list funds: %w", err)
	}
	defer rows.Close()

	data := make([]models.FundSummary, 0, req.Limit)
	for rows.Next() {
		var (
			f         models.FundSummary
			inception *time.Time
		)
		if err := rows.Scan(
			&f.ID, &f.Name, &f.FundName, &f.LegalName, &f.Ticker,
			&f.CategoryName, &f.GlobalCategoryName, &f.BroadAssetClass,
			&f.Currency, &f.Domicile, &inception,
			&f.ProviderCompanyName, &f.LegalStructure, &f.SecurityType,
		); err != nil {
			return nil, fmt.Errorf("scan fund summary: %w", err)
		}
		if inception != nil {
			d := models.DateOf(*inception)
			f.InceptionDate = &d
		}
		data = append(data, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list funds: %w", err)
	}

	return &models.FundPage{
		Data: data,
		Pagination: models.Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: (total + req.Limit - 1) / req.Limit,
		},
	}, nil
}

// GetByID implements Catalog, returning the full row as JSON.
func (c *PostgresCatalog) GetByID(ctx context.Context, id string) (*models.FundDetail, error) {
	query := fmt.Sprintf(
		"SELECT to_jsonb(t) - 'sys_valid_from' - 'sys_valid_to' FROM %s t WHERE t._id = $1 AND %s",
		basicInfoTable, currentlyValid)
	var raw []byte
	if err := c.pool.QueryRow(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get fund %s: %w", id, err)
	}
	return &models.FundDetail{Data: raw}, nil
}

// listPredicates builds the WHERE clause shared by the count and page
// queries so both always agree.
func listPredicates(req models.ListRequest) (string, []any) {
	clauses := []string{currentlyValid}
	var args []any
	if req.Search != "" {
		args = append(args, "%"+req.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(fundname ILIKE $%d OR legalname ILIKE $%d OR ticker ILIKE $%d OR _name ILIKE $%d)", n, n, n, n))
	}
	if req.Type != "" {
		args = append(args, req.Type)
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(securitytype = $%d OR legalstructure = $%d)", n, n))
	}
	if req.Category != "" {
		args = append(args, req.Category)
		clauses = append(clauses, fmt.Sprintf("categoryname = $%d", len(args)))
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
