// Package ingest turns delimited country-indicator source files (CSV, TSV,
// XLSX) into the normalized per-country-year record sequence the clustering
// pipeline consumes. Malformed numeric cells coerce to null, aggregate
// pseudo-rows and rows without a country or year are dropped, and file row
// order is preserved.
package ingest

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
)

// Options configures ingestion.
type Options struct {
	// Latin1 decodes the source as ISO 8859-1 before parsing, for legacy
	// exports that are not UTF-8.
	Latin1 bool
	// Delimiter overrides the CSV field delimiter (default ',', '\t' for
	// .tsv files).
	Delimiter rune
}

// ReadFile parses the file at path into raw records, dispatching on the
// file extension (.csv, .tsv, .xlsx).
func ReadFile(ctx context.Context, path string, opts Options) ([]model.RawRecord, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv", ".txt":
		if ext == ".tsv" && opts.Delimiter == 0 {
			opts.Delimiter = '\t'
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: open %s", path)
		}
		defer f.Close() //nolint:errcheck
		return ReadCSV(ctx, decodeReader(f, opts), opts)
	case ".xlsx":
		return ReadXLSX(ctx, path, opts)
	default:
		return nil, eris.Errorf("ingest: unsupported file type %q", ext)
	}
}

// decodeReader wraps r with a Latin-1 decoder when requested.
func decodeReader(r io.Reader, opts Options) io.Reader {
	if opts.Latin1 {
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	return r
}

// buildRecords converts a header plus data rows into raw records, applying
// the shared filtering and coercion rules. Row order is preserved: the
// clustering engine seeds centroids from first-seen country order.
func buildRecords(header []string, rows [][]string) ([]model.RawRecord, error) {
	layout, ok := resolveLayout(header)
	if !ok {
		return nil, eris.Errorf("ingest: header missing country or year column (saw %d columns)", len(header))
	}
	if len(layout.indicators) == 0 {
		return nil, eris.New("ingest: header matched no registered indicators")
	}

	var records []model.RawRecord
	var skipped int

	for _, row := range rows {
		country := strings.TrimSpace(trimQuotes(cellAt(row, layout.country)))
		if country == "" || isSummaryRow(country) {
			skipped++
			continue
		}

		year, ok := parseYear(cellAt(row, layout.year))
		if !ok {
			skipped++
			continue
		}

		values := make(map[string]float64, len(layout.indicators))
		for key, idx := range layout.indicators {
			if v, ok := parseNumeric(cellAt(row, idx)); ok {
				values[key] = v
			}
		}

		records = append(records, model.RawRecord{
			Country: country,
			Year:    year,
			Values:  values,
		})
	}

	zap.L().Info("ingest: parsed source rows",
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped),
		zap.Int("indicator_columns", len(layout.indicators)),
	)

	return records, nil
}
