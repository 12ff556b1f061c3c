package store

import (
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

func init() {
	// SQLite's lower() and LIKE only fold ASCII letters, fold registers the
	// Unicode aware version used by SearchBooks.
	sqlite.MustRegisterDeterministicScalarFunction("fold", 1, func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case nil:
			return "", nil
		case string:
			return strings.ToLower(v), nil
		case []byte:
			return strings.ToLower(string(v)), nil
		default:
			return v, nil
		}
	})
}
