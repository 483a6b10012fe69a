// Package pagination reads page/limit query parameters and pages in-memory listings.
package pagination

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1
	// MaxPage keeps (page-1)*limit within int for any accepted limit
	MaxPage = math.MaxInt / MaxLimit
)

// Params holds validated pagination parameters
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse extracts page and limit from the query. Bad or missing values fall
// back to the defaults and limit is capped at MaxLimit.
func Parse(c *gin.Context) Params {
	page := queryInt(c, "page", DefaultPage)
	limit := queryInt(c, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)
	page = min(page, MaxPage)

	return Params{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// Slice returns the rows of a 1-based page. Pages past the end are empty.
func Slice[T any](rows []T, page, limit int) []T {
	if limit < 1 {
		return []T{}
	}
	page = max(page, 1)
	pages := (len(rows) + limit - 1) / limit
	if page > pages {
		return []T{}
	}
	offset := (page - 1) * limit
	return rows[offset:min(offset+limit, len(rows))]
}
