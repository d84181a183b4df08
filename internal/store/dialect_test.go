package store

import "testing"

func TestNewDialect(t *testing.T) {
	if _, ok := NewDialect(DialectSQLite).(*SQLiteDialect); !ok {
		t.Error("Expected *SQLiteDialect for sqlite")
	}
	if _, ok := NewDialect(DialectPostgres).(*PostgresDialect); !ok {
		t.Error("Expected *PostgresDialect for postgres")
	}
	// Unknown dialect should default to SQLite
	if _, ok := NewDialect("unknown").(*SQLiteDialect); !ok {
		t.Error("Expected default *SQLiteDialect")
	}
}

func TestDialectDriverNames(t *testing.T) {
	if got := (&SQLiteDialect{}).DriverName(); got != "sqlite" {
		t.Errorf("SQLite DriverName() = %q, want sqlite", got)
	}
	if got := (&PostgresDialect{}).DriverName(); got != "postgres" {
		t.Errorf("Postgres DriverName() = %q, want postgres", got)
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		position int
		sqlite   string
		postgres string
	}{
		{1, "?", "$1"},
		{2, "?", "$2"},
		{10, "?", "$10"},
	}

	for _, tt := range tests {
		if got := (&SQLiteDialect{}).Placeholder(tt.position); got != tt.sqlite {
			t.Errorf("SQLite Placeholder(%d) = %q, want %q", tt.position, got, tt.sqlite)
		}
		if got := (&PostgresDialect{}).Placeholder(tt.position); got != tt.postgres {
			t.Errorf("Postgres Placeholder(%d) = %q, want %q", tt.position, got, tt.postgres)
		}
	}
}

func TestQueryBuilder(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{"sqlite untouched", &SQLiteDialect{}, "SELECT * FROM runs WHERE id = ? AND phase = ?", "SELECT * FROM runs WHERE id = ? AND phase = ?"},
		{"postgres numbered", &PostgresDialect{}, "SELECT * FROM runs WHERE id = ? AND phase = ?", "SELECT * FROM runs WHERE id = $1 AND phase = $2"},
		{"postgres none", &PostgresDialect{}, "SELECT COUNT(*) FROM runs", "SELECT COUNT(*) FROM runs"},
		{"postgres trailing", &PostgresDialect{}, "DELETE FROM runs WHERE id = ?", "DELETE FROM runs WHERE id = $1"},
		{"postgres upsert", &PostgresDialect{}, "VALUES (?, ?, ?) ON CONFLICT", "VALUES ($1, $2, $3) ON CONFLICT"},
	}

	for _, tt := range tests {
		if got := NewQueryBuilder(tt.dialect).Build(tt.query); got != tt.want {
			t.Errorf("%s: Build() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
