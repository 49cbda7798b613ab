package query

import "strings"

// SortField is one sort criterion in evaluation order.
type SortField struct {
	Field      string
	Descending bool
}

// Options holds retrieval options derived from pagination and sort input.
type Options struct {
	Skip  int
	Limit int
	Sort  []SortField
}

// Pagination is the request-scoped paging and sorting input.
type Pagination struct {
	Page  int
	Limit int
	Sort  string
}

// DefaultLimit is used when the caller does not supply a page size.
const DefaultLimit = 10

// ToOptions computes retrieval options. Page defaults to 1 and limit to
// DefaultLimit; limit is capped at maxLimit to bound result size. Skip is
// only set when positive.
func (p Pagination) ToOptions(maxLimit int) Options {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	page := p.Page
	if page < 1 {
		page = 1
	}

	opts := Options{Limit: limit, Sort: ParseSort(p.Sort)}
	if skip := (page - 1) * limit; skip > 0 {
		opts.Skip = skip
	}
	return opts
}

// ParseSort parses a comma-separated sort specification where each field may
// be prefixed with "+" (ascending, the default) or "-" (descending).
// Example: "price_per_day,-year_of_production" sorts by price ascending,
// then year descending. Unknown fields are passed through uninterpreted.
func ParseSort(spec string) []SortField {
	if spec == "" {
		return nil
	}
	var fields []SortField
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch {
		case strings.HasPrefix(part, "-"):
			if name := part[1:]; name != "" {
				fields = append(fields, SortField{Field: name, Descending: true})
			}
		case strings.HasPrefix(part, "+"):
			if name := part[1:]; name != "" {
				fields = append(fields, SortField{Field: name})
			}
		default:
			fields = append(fields, SortField{Field: part})
		}
	}
	return fields
}
