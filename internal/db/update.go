package db

import (
	"fmt"
	"strings"

	"github.com/pathsapp/backend/internal/model"
)

// Assignment is one column change in a partial update. Callers state the
// value's shape explicitly through Set or SetLocation instead of having the
// builder inspect it at runtime.
type Assignment struct {
	column   string
	scalar   any
	location *model.Location
}

// Column reports which column the assignment targets.
func (a Assignment) Column() string {
	return a.column
}

// Set assigns a scalar value to a column.
func Set(column string, value any) Assignment {
	return Assignment{column: column, scalar: value}
}

// SetLocation assigns a composite location value to a column. It occupies
// two parameter slots, flattened in (latitude, longitude) order.
func SetLocation(column string, loc model.Location) Assignment {
	return Assignment{column: column, location: &loc}
}

// buildUpdate synthesizes a parameterized partial-update statement:
//
//	UPDATE <table> SET col=$2, loc=ROW($3,$4), ... WHERE id=$1
//
// The identifier is always parameter 1; slots from 2 on are consumed in
// assignment order, one per scalar and two per location. Column names are
// taken verbatim from the assignments: the request schema at the HTTP
// boundary is the only safeguard against a hostile column name, so no
// payload field may ever be mapped to a column without a schema behind it.
//
// fields must not be empty; an empty list produces invalid SQL. Callers
// reject empty partial-update payloads before getting here.
func buildUpdate(table string, id any, fields []Assignment) (string, []any) {
	parts := make([]string, 0, len(fields))
	args := make([]any, 0, 1+2*len(fields))
	args = append(args, id)

	slot := 2
	for _, f := range fields {
		if f.location != nil {
			parts = append(parts, fmt.Sprintf("%s=ROW($%d,$%d)", f.column, slot, slot+1))
			lat, lon := f.location.Flatten()
			args = append(args, lat, lon)
			slot += 2
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=$%d", f.column, slot))
		args = append(args, f.scalar)
		slot++
	}

	query := "UPDATE " + table + " SET " + strings.Join(parts, ", ") + " WHERE id=$1"
	return query, args
}

// execUpdate runs a synthesized partial update. The affected-row count is
// the success signal: zero rows means the entity does not exist.
func (s *pgStore) execUpdate(table string, id any, fields []Assignment) (bool, error) {
	query, args := buildUpdate(table, id, fields)
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows != 0, nil
}
