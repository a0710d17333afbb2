package ingest

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
)

// ReadCSV parses CSV data from r into raw records. The first row is the
// header. Quoting is lazy and rows may have variable field counts; short
// rows null-fill their missing columns.
func ReadCSV(ctx context.Context, r io.Reader, opts Options) ([]model.RawRecord, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read csv header")
	}

	var rows [][]string
	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "ingest: csv read cancelled")
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "ingest: read csv row")
		}
		rows = append(rows, row)
	}

	return buildRecords(header, rows)
}
