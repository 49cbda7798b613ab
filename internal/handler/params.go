package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nimbus-rentals/service-rental/internal/query"
)

// parsePagination extracts page, limit and sort query parameters. Defaults
// and caps are applied downstream by the query options builder.
func parsePagination(c *gin.Context) (query.Pagination, error) {
	page, err := intQuery(c, "page")
	if err != nil {
		return query.Pagination{}, err
	}
	limit, err := intQuery(c, "limit")
	if err != nil {
		return query.Pagination{}, err
	}
	return query.Pagination{Page: page, Limit: limit, Sort: c.Query("sort")}, nil
}

// intQuery parses a single optional integer query parameter. An absent
// parameter yields zero.
func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return v, nil
}

// csvParam splits a comma-separated query parameter into its non-empty
// trimmed parts. An absent parameter yields nil.
func csvParam(c *gin.Context, name string) []string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// parsedParam parses each part of a comma-separated query parameter with
// the given parser. A malformed part fails the whole parameter, naming it.
func parsedParam[T any](c *gin.Context, name string, parse func(string) (T, error)) ([]T, error) {
	parts := csvParam(c, name)
	if len(parts) == 0 {
		return nil, nil
	}
	values := make([]T, len(parts))
	for i, part := range parts {
		v, err := parse(part)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %s", name, part)
		}
		values[i] = v
	}
	return values, nil
}

func uintParam[T uint8 | uint32](c *gin.Context, name string, bits int) ([]T, error) {
	return parsedParam(c, name, func(s string) (T, error) {
		v, err := strconv.ParseUint(s, 10, bits)
		return T(v), err
	})
}

func intParam(c *gin.Context, name string) ([]int, error) {
	return parsedParam(c, name, strconv.Atoi)
}

// boolParam parses an optional boolean query parameter. Absent means
// unfiltered.
func boolParam(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return &v, nil
}

// floatParam parses an optional float query parameter.
func floatParam(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return &v, nil
}

// timeParam parses an optional timestamp query parameter, accepting
// RFC 3339 or a bare calendar date.
func timeParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return &t, nil
}
