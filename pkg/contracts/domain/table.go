package domain

// Table is one geography level's rows for a single service type and
// reporting period, together with the set of source columns the loader
// actually mapped. Suppression entry points check their required
// columns against that set before computing anything; a silently
// skipped check is a disclosure defect, so absence is always an error
// at the call site.
type Table struct {
	Level   Level       `json:"level"`
	Service ServiceType `json:"service"`
	Period  string      `json:"period"` // e.g. "2026-07"
	Rows    []Row       `json:"rows"`

	columns map[string]struct{}
}

// NewTable builds a table and records which source columns are
// present.
func NewTable(level Level, service ServiceType, period string, rows []Row, columns ...string) *Table {
	t := &Table{
		Level:   level,
		Service: service,
		Period:  period,
		Rows:    rows,
		columns: make(map[string]struct{}, len(columns)),
	}
	for _, c := range columns {
		t.columns[c] = struct{}{}
	}
	return t
}

// HasColumn reports whether the named source column was mapped.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Columns returns the mapped column names. Order is unspecified.
func (t *Table) Columns() []string {
	out := make([]string, 0, len(t.columns))
	for c := range t.columns {
		out = append(out, c)
	}
	return out
}

// Clone returns a deep copy sharing no row storage with the receiver.
// The engine's passes never mutate their input table.
func (t *Table) Clone() *Table {
	rows := make([]Row, len(t.Rows))
	copy(rows, t.Rows)
	cols := make(map[string]struct{}, len(t.columns))
	for c := range t.columns {
		cols[c] = struct{}{}
	}
	return &Table{
		Level:   t.Level,
		Service: t.Service,
		Period:  t.Period,
		Rows:    rows,
		columns: cols,
	}
}
