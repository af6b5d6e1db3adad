package repositories

import (
	"fish-logistics-service/internal/platform/db"
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects placeholder syntax for the SQL catalog.
// Queries are written with '?' placeholders and rebound for PostgreSQL.
type Dialect string

const (
	DialectSQLite   Dialect = db.DriverSQLite
	DialectPostgres Dialect = db.DriverPostgres
)

func ParseDialect(driver string) (Dialect, error) {
	switch Dialect(driver) {
	case DialectSQLite, "":
		return DialectSQLite, nil
	case DialectPostgres:
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("parse dialect: unsupported driver %q", driver)
}

func (d Dialect) rebind(q string) string {
	if d != DialectPostgres {
		return q
	}

	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
