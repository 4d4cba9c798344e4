package models

import "time"

// ColumnRole is a semantic field purpose, independent of how the source
// spreadsheet names its columns.
type ColumnRole string

const (
	RoleDate        ColumnRole = "fecha"
	RoleCustomer    ColumnRole = "cliente"
	RoleEmail       ColumnRole = "correo"
	RoleProduct     ColumnRole = "producto"
	RoleErrorType   ColumnRole = "tipo_error"
	RoleDescription ColumnRole = "descripcion"
	RoleResponse    ColumnRole = "respuesta"
)

// Table holds one raw spreadsheet load: normalized headers plus string cells.
// All rows have len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the trimmed value at (row, col), "" when out of range.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ResolvedColumn is one role assignment produced by the column resolver.
// Fallback marks the date role falling back to the first column when no
// header matched, so callers can warn instead of silently misrouting data.
type ResolvedColumn struct {
	Column   string
	Index    int
	Present  bool
	Fallback bool
}

type RoleMap map[ColumnRole]ResolvedColumn

// Record is one complaint row after role resolution and classification.
// Date is nil when the source value did not parse; text fields carry
// placeholders instead of empty strings.
type Record struct {
	Date                *time.Time
	Customer            string
	Email               string
	Product             string
	Description         string
	ErrorType           string
	Response            string
	State               string
	SatisfactionInitial int
	SatisfactionFinal   *int
}

// Criteria filters a record set. A nil slice leaves that dimension
// unfiltered; a nil From and To disables the date predicate entirely.
type Criteria struct {
	From       *time.Time
	To         *time.Time
	ErrorTypes []string
	States     []string
	Products   []string
}

type ValueCount struct {
	Value   string
	Count   int
	Percent float64
}

type DateCount struct {
	Date  string
	Count int
}

// Summary is the aggregate snapshot over a (filtered) record set. It is
// recomputed in full on every filter change and never cached.
type Summary struct {
	Total          int
	Resolved       int
	InProgress     int
	Pending        int
	ResolutionRate float64

	ByErrorType []ValueCount
	ByState     []ValueCount
	ByProduct   []ValueCount
	ByDay       []DateCount

	AvgSatisfactionInitial float64
	AvgSatisfactionFinal   float64
	FinalScored            int
}
