package ingest

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
)

// ReadXLSX parses the first sheet of an XLSX workbook into raw records. The
// first row is the header.
func ReadXLSX(ctx context.Context, path string, _ Options) ([]model.RawRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("ingest: xlsx %s has no sheets", path)
	}
	sheet := f.Sheets[0]

	var header []string
	var rows [][]string
	for i, row := range sheet.Rows {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "ingest: xlsx read cancelled")
		}
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		if i == 0 {
			header = cells
			continue
		}
		rows = append(rows, cells)
	}

	if header == nil {
		return nil, nil
	}
	return buildRecords(header, rows)
}
