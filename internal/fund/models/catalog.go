package models

import "encoding/json"

// FundSummary is the listing projection over the current basic-info table.
// JSON field names mirror the warehouse columns the web client binds to.
type FundSummary struct {
	ID                  string  `json:"_id"`
	Name                string  `json:"_name"`
	FundName            string  `json:"fundname"`
	LegalName           string  `json:"legalname"`
	Ticker              *string `json:"ticker"`
	CategoryName        *string `json:"categoryname"`
	GlobalCategoryName  *string `json:"globalcategoryname"`
	BroadAssetClass     *string `json:"broadassetclass"`
	Currency            *string `json:"currency"`
	Domicile            *string `json:"domicile"`
	InceptionDate       *Date   `json:"inceptiondate"`
	ProviderCompanyName *string `json:"providercompanyname"`
	LegalStructure      *string `json:"legalstructure"`
	SecurityType        *string `json:"securitytype"`
}

// Pagination describes the listing page window.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// FundPage is one page of the fund listing.
type FundPage struct {
	Data       []FundSummary `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// FundDetail is the full current basic-info row for one fund, passed through
// column-for-column.
type FundDetail struct {
	Data json.RawMessage `json:"data"`
}
