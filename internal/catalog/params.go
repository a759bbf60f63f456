package catalog

import (
	"net/url"
	"strconv"
)

// FilterParams describes a product listing query against the catalog API.
// Zero values and nil pointers mean the corresponding filter is omitted.
type FilterParams struct {
	Page      int
	Limit     int
	Brand     string
	Condition string
	InStock   *bool
	MinPrice  *int64
	MaxPrice  *int64
	RAMGb     *int
	Storage   string
}

// Encode renders the params as a catalog API query string.
func (p FilterParams) Encode() string {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Brand != "" {
		q.Set("brand", p.Brand)
	}
	if p.Condition != "" {
		q.Set("condition", p.Condition)
	}
	if p.InStock != nil {
		q.Set("inStock", strconv.FormatBool(*p.InStock))
	}
	if p.MinPrice != nil {
		q.Set("minPrice", strconv.FormatInt(*p.MinPrice, 10))
	}
	if p.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatInt(*p.MaxPrice, 10))
	}
	if p.RAMGb != nil {
		q.Set("ramGb", strconv.Itoa(*p.RAMGb))
	}
	if p.Storage != "" {
		q.Set("storage", p.Storage)
	}
	return q.Encode()
}
