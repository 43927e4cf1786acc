package paging

import (
	"fmt"
	"strings"
)

// Page bounds a list query. Offset and limit apply after ordering, so pages
// over a stable data set never overlap and never skip rows.
type Page struct {
	Offset int
	Limit  int
}

// NewPage panics on negative offset or limit: that is a caller bug, not a
// runtime condition.
func NewPage(offset, limit int) Page {
	if offset < 0 || limit < 0 {
		panic(fmt.Sprintf("paging: invalid page offset=%d limit=%d", offset, limit))
	}
	return Page{Offset: offset, Limit: limit}
}

// NormalizeFilter trims the free-text filter and reduces blank input to the
// empty string, which means "match everything".
func NormalizeFilter(filter string) string {
	return strings.TrimSpace(filter)
}

// LikePattern turns a normalized filter into a lowercased substring pattern
// for use with LOWER(column) LIKE ?. Returns "" when no filtering applies.
func LikePattern(filter string) string {
	normalized := NormalizeFilter(filter)
	if normalized == "" {
		return ""
	}
	return "%" + strings.ToLower(normalized) + "%"
}
