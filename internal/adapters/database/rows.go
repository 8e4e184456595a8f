package database

import "database/sql"

// RowSet is a fully-drained tabular result: column names plus positional
// rows. Values are whatever the driver produced; interpretation is the
// caller's job.
type RowSet struct {
	Columns []string
	Rows    [][]any
}

// ScanRows drains rows into a RowSet and closes them. Driver []byte values
// are copied to strings since drivers may reuse the backing buffer between
// scans.
func ScanRows(rows *sql.Rows) (*RowSet, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := &RowSet{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out.Rows = append(out.Rows, values)
	}
	return out, rows.Err()
}
