// Package repository contains the MySQL data access layer. Each
// resource gets its own repo holding a *sql.DB; all repos translate
// driver failures into the shared store sentinels so handlers never
// see MySQL error codes.
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/concrem/helpdesk/internal/store"
)

// translateErr maps MySQL driver errors onto store sentinels.
// 1062 = duplicate entry on a unique key, 1054 = unknown column in a
// statement (schema predates the timestamp/duration migration).
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "1062") {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	if strings.Contains(msg, "1054") || strings.Contains(msg, "unknown column") {
		return fmt.Errorf("%w: %v", store.ErrUnknownColumn, err)
	}
	return err
}

// setClause accumulates "col = ?" pairs for a partial UPDATE.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, v any) {
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, v)
}

func (s *setClause) empty() bool { return len(s.cols) == 0 }

func (s *setClause) sql() string { return strings.Join(s.cols, ", ") }
