package report

import (
	"bytes"
	"encoding/csv"

	"github.com/mamadbah2/sarpras/internal/domain/models"
)

// writeCSV serializes the table as UTF-8 CSV. The BOM prefix keeps
// locale-sensitive spreadsheet applications from mangling the Indonesian
// headers when the file is double-clicked open.
func writeCSV(tbl *table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(models.UTF8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(tbl.headers); err != nil {
		return nil, err
	}
	for _, row := range tbl.rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
