package store

import "strings"

// QueryBuilder rewrites queries written with ? parameters into the
// dialect's own parameter syntax. Run queries never contain a literal ?.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder creates a QueryBuilder for the given dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build numbers the parameters of query from 1, so
// "WHERE id = ? AND phase = ?" becomes "WHERE id = $1 AND phase = $2" on
// Postgres and stays as written on SQLite.
func (qb *QueryBuilder) Build(query string) string {
	var b strings.Builder
	b.Grow(len(query) + strings.Count(query, "?"))
	rest := query
	for n := 1; ; n++ {
		before, after, found := strings.Cut(rest, "?")
		b.WriteString(before)
		if !found {
			return b.String()
		}
		b.WriteString(qb.dialect.Placeholder(n))
		rest = after
	}
}
