package k2

import (
	"net/url"
	"strconv"
)

// ListParams expresses the query options shared by list endpoints. The API
// paginates with limit/offset; everything else is an endpoint-specific
// filter (e.g. corpus_id, status).
type ListParams struct {
	Limit   int
	Offset  int
	Filters map[string]string
}

// NewListParams creates empty list params.
func NewListParams() *ListParams {
	return &ListParams{
		Filters: make(map[string]string),
	}
}

// WithLimit sets the page size.
func (p *ListParams) WithLimit(limit int) *ListParams {
	p.Limit = limit

	return p
}

// WithOffset sets the number of items to skip.
func (p *ListParams) WithOffset(offset int) *ListParams {
	p.Offset = offset

	return p
}

// WithFilter sets an endpoint-specific filter. Setting the same key twice
// replaces the earlier value.
func (p *ListParams) WithFilter(key, value string) *ListParams {
	if p.Filters == nil {
		p.Filters = make(map[string]string)
	}

	p.Filters[key] = value

	return p
}

// ToValues converts the params to URL query values. Zero limit and offset are
// omitted so endpoint defaults apply.
func (p *ListParams) ToValues() url.Values {
	values := url.Values{}

	if p == nil {
		return values
	}

	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}

	if p.Offset > 0 {
		values.Set("offset", strconv.Itoa(p.Offset))
	}

	for key, value := range p.Filters {
		if value != "" {
			values.Set(key, value)
		}
	}

	return values
}
