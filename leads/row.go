package leads

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Columns is the fixed header and column order of the export.
var Columns = []string{
	"submissionId",
	"submittedAt",
	"firstName",
	"lastName",
	"email",
	"phone",
	"careerStage",
	"sport",
	"referral",
	"message",
	"source",
}

// Row is one submission projected onto Columns.
type Row map[string]string

// Values returns the cells in column order; missing columns are "".
func (r Row) Values() []string {
	out := make([]string, len(Columns))
	for i, col := range Columns {
		out[i] = r[col]
	}
	return out
}

func (r Row) SubmittedAt() string {
	return r["submittedAt"]
}

// emptyRow has every column set to "".
func emptyRow() Row {
	row := make(Row, len(Columns))
	for _, col := range Columns {
		row[col] = ""
	}
	return row
}

// NormalizeRecord projects a stored submission document onto the export
// columns. Missing keys and nulls become ""; extra keys are dropped. It fails
// only when doc is not a JSON object.
func NormalizeRecord(doc []byte) (Row, error) {
	var record map[string]any
	if err := json.Unmarshal(doc, &record); err != nil {
		return nil, fmt.Errorf("stored document is not a JSON object: %w", err)
	}
	if record == nil {
		return nil, errors.New("stored document is null")
	}

	row := emptyRow()
	for _, col := range Columns {
		row[col] = cellText(record[col])
	}
	return row, nil
}

func cellText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}
