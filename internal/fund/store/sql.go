package store

import (
	"embed"
	"fmt"
)

//go:embed sql/*.sql
var functionsFS embed.FS

// functionFiles lists the resolution function definitions in deployment
// order.
var functionFiles = []string{
	"01_basic_info_at_date.sql",
	"02_performance_at_date.sql",
	"03_fees_at_date.sql",
	"04_ratings_at_date.sql",
	"05_risk_at_date.sql",
	"06_flows_at_date.sql",
	"07_assets_at_date.sql",
}

// FunctionDefinition is one deployable point-in-time SQL function.
type FunctionDefinition struct {
	Name string
	SQL  string
}

// FunctionDefinitions returns the embedded resolution functions in
// deployment order for cmd/deployfn and integration tests.
func FunctionDefinitions() ([]FunctionDefinition, error) {
	defs := make([]FunctionDefinition, 0, len(functionFiles))
	for _, name := range functionFiles {
		body, err := functionsFS.ReadFile("sql/" + name)
		if err != nil {
			return nil, fmt.Errorf("read embedded function %s: %w", name, err)
		}
		defs = append(defs, FunctionDefinition{Name: name, SQL: string(body)})
	}
	return defs, nil
}
