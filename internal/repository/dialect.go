package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
)

func init() {
	// go-ora registers as "oracle", which sqlx does not know as a named-bind driver
	sqlx.BindDriver("oracle", sqlx.NAMED)
}

// dialect hides the SQL differences between the supported drivers.
type dialect struct {
	oracle bool
}

func dialectOf(db DBTX) dialect {
	return dialect{oracle: db.DriverName() == "oracle"}
}

// paginate appends a row-limiting clause and its arguments.
// Oracle has no LIMIT; the standard OFFSET/FETCH form is used there.
func (d dialect) paginate(query string, args []any, offset, limit int) (string, []any) {
	if d.oracle {
		return query + " OFFSET ? ROWS FETCH NEXT ? ROWS ONLY", append(args, offset, limit)
	}
	return query + " LIMIT ? OFFSET ?", append(args, limit, offset)
}

// insertReturningID runs an INSERT and returns the generated id column.
func (d dialect) insertReturningID(ctx context.Context, db DBTX, insert string, args ...any) (int64, error) {
	var id int64
	if d.oracle {
		args = append(args, sql.Out{Dest: &id})
		_, err := db.ExecContext(ctx, db.Rebind(insert+" RETURNING id INTO ?"), args...)
		return id, err
	}
	err := db.GetContext(ctx, &id, db.Rebind(insert+" RETURNING id"), args...)
	return id, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching term anywhere,
// with LIKE wildcards in term matched literally (ESCAPE '\').
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
