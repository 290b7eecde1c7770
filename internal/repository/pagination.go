package repository

import "strings"

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// normalizePage clamps page/limit to sane values
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func offset(page, limit int) int {
	page, limit = normalizePage(page, limit)
	return (page - 1) * limit
}

// orderClause builds an ORDER BY from a whitelisted sort key so request
// parameters never reach the SQL text directly.
func orderClause(columns map[string]string, sortBy, sortOrder, fallback string) string {
	column, ok := columns[sortBy]
	if !ok {
		column = columns[fallback]
	}
	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}
	return column + " " + direction
}
