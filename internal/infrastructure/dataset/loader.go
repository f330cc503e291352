// Package dataset reads NFHS survey extracts into survey.Dataset values.
package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/turtacn/NFHS-Explorer/internal/domain/survey"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

const utf8BOM = "\uFEFF"

// Options controls parsing and validation.
type Options struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
	// RequiredColumns must all be present in the header, in addition to the
	// three key columns.
	RequiredColumns []string
	// StrictUnique fails the load when two rows share a key triple.
	StrictUnique bool
}

// Loader parses extracts from a Source.
type Loader struct {
	opts    Options
	metrics *prometheus.AppMetrics
	logger  logging.Logger
}

// NewLoader creates a Loader. metrics and logger may be nil.
func NewLoader(opts Options, metrics *prometheus.AppMetrics, logger logging.Logger) *Loader {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{opts: opts, metrics: metrics, logger: logger.Named("dataset")}
}

// Load opens src, parses it and validates the result.
func (l *Loader) Load(ctx context.Context, src Source) (*survey.Dataset, error) {
	start := time.Now()
	log := l.logger.With(logging.String("source", src.Kind()), logging.String("location", src.Location()))

	rc, err := src.Open(ctx)
	if err != nil {
		prometheus.RecordError(l.metrics, "dataset", string(errors.GetCode(err)))
		return nil, err
	}
	defer rc.Close()

	ds, err := l.Parse(rc)
	if err != nil {
		prometheus.RecordError(l.metrics, "dataset", string(errors.GetCode(err)))
		log.Error("Dataset rejected", logging.Err(err))
		return nil, err
	}

	elapsed := time.Since(start)
	prometheus.RecordDatasetLoad(l.metrics, src.Kind(), ds.Len(), len(ds.Columns()), elapsed)
	log.Info("Dataset loaded",
		logging.Int("rows", ds.Len()),
		logging.Int("columns", len(ds.Columns())),
		logging.Duration("duration", elapsed))
	return ds, nil
}

// Parse reads delimited text from r.
func (l *Loader) Parse(r io.Reader) (*survey.Dataset, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = l.opts.Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeDatasetSchemaInvalid, "dataset has no header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetLoadFailed, "failed to read dataset header")
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = NormalizeHeader(h)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatasetLoadFailed, "failed to read dataset row")
		}
		rows = append(rows, rec)
	}

	ds, err := survey.NewDataset(columns, rows)
	if err != nil {
		return nil, err
	}
	if missing := ds.MissingColumns(l.opts.RequiredColumns); len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeDatasetSchemaInvalid, "dataset is missing required columns").
			WithDetail(strings.Join(missing, "; "))
	}

	if dups := ds.DuplicateKeys(); len(dups) > 0 {
		if l.opts.StrictUnique {
			return nil, errors.Newf(errors.ErrCodeDatasetDuplicateKey, "%d state/survey/area triples occur more than once", len(dups)).
				WithDetail(dups[0].String())
		}
		l.logger.Warn("Dataset has duplicate state/survey/area rows; first match is used for KPIs",
			logging.Int("duplicates", len(dups)),
			logging.String("example", dups[0].String()))
	}
	return ds, nil
}

// NormalizeHeader applies NFC normalisation and trims surrounding space.
func NormalizeHeader(h string) string {
	if !utf8.ValidString(h) {
		h = strings.ToValidUTF8(h, "\uFFFD")
	}
	return strings.TrimSpace(norm.NFC.String(h))
}

//Personal.AI order the ending
