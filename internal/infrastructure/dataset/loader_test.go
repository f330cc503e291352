package dataset_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NFHS-Explorer/internal/application/explorer"
	"github.com/turtacn/NFHS-Explorer/internal/config"
	"github.com/turtacn/NFHS-Explorer/internal/domain/survey"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/dataset"
	"github.com/turtacn/NFHS-Explorer/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NFHS-Explorer/internal/testutil"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

func newLoader(strict bool, logger logging.Logger) *dataset.Loader {
	return dataset.NewLoader(dataset.Options{
		RequiredColumns: explorer.RequiredColumns(),
		StrictUnique:    strict,
	}, nil, logger)
}

func TestLoad_File(t *testing.T) {
	logger := testutil.NewMockLogger()
	ds, err := newLoader(false, logger).Load(context.Background(), dataset.FileSource{Path: testutil.WriteSampleCSV(t)})
	require.NoError(t, err)

	assert.Equal(t, 9, ds.Len())
	assert.True(t, ds.HasColumn(survey.ColumnState))

	msg, ok := logger.Find("info", "Dataset loaded")
	require.True(t, ok)
	assert.Equal(t, "dataset", msg.Logger)
	rows, _ := msg.Field("rows")
	assert.Equal(t, 9, rows)
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := newLoader(false, nil).Load(context.Background(), dataset.FileSource{Path: "does-not-exist.csv"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetLoadFailed))
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/nfhs.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(testutil.SampleCSV))
	}))
	defer srv.Close()

	l := newLoader(false, nil)
	ds, err := l.Load(context.Background(), dataset.HTTPSource{URL: srv.URL + "/nfhs.csv"})
	require.NoError(t, err)
	assert.Equal(t, 9, ds.Len())

	_, err = l.Load(context.Background(), dataset.HTTPSource{URL: srv.URL + "/other.csv"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetLoadFailed))
	assert.Contains(t, err.Error(), "404")
}

func TestLoad_HTTPRespectsMaxBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/chunked" {
			// No Content-Length, so the cap is enforced while reading.
			w.(http.Flusher).Flush()
		}
		_, _ = w.Write([]byte(testutil.SampleCSV))
	}))
	defer srv.Close()

	l := newLoader(false, nil)
	limit := int64(len(testutil.SampleCSV) / 2)

	for _, path := range []string{"/sized", "/chunked"} {
		_, err := l.Load(context.Background(), dataset.HTTPSource{URL: srv.URL + path, MaxBytes: limit})
		require.Error(t, err, path)
		assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetLoadFailed), path)
		assert.Contains(t, err.Error(), "dataset download exceeds", path)
	}

	ds, err := l.Load(context.Background(), dataset.HTTPSource{URL: srv.URL + "/chunked", MaxBytes: int64(len(testutil.SampleCSV))})
	require.NoError(t, err)
	assert.Equal(t, 9, ds.Len())
}

type stubFetcher struct {
	data map[string]string
}

func (f stubFetcher) Fetch(_ context.Context, bucket, object string) ([]byte, error) {
	v, ok := f.data[bucket+"/"+object]
	if !ok {
		return nil, errors.NotFound("object not found")
	}
	return []byte(v), nil
}

func TestLoad_Object(t *testing.T) {
	fetcher := stubFetcher{data: map[string]string{"surveys/nfhs.csv": testutil.SampleCSV}}
	l := newLoader(false, nil)

	ds, err := l.Load(context.Background(), dataset.ObjectSource{Fetcher: fetcher, Bucket: "surveys", Object: "nfhs.csv"})
	require.NoError(t, err)
	assert.Equal(t, 9, ds.Len())

	_, err = l.Load(context.Background(), dataset.ObjectSource{Fetcher: fetcher, Bucket: "surveys", Object: "gone.csv"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetLoadFailed))
}

func TestParse_BOMAndHeaderNormalisation(t *testing.T) {
	// Decomposed "e" + combining acute in the input header.
	csv := "\uFEFF India/States/UTs ,Survey,Area,Cafe\u0301 (%)\n" +
		"Kerala,NFHS-5,Total,1\n"
	ds, err := dataset.NewLoader(dataset.Options{RequiredColumns: []string{"Caf\u00e9 (%)"}}, nil, nil).
		Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{survey.ColumnState, survey.ColumnSurvey, survey.ColumnArea, "Caf\u00e9 (%)"}, ds.Columns())
}

func TestParse_Delimiter(t *testing.T) {
	csv := "India/States/UTs;Survey;Area;X\nGoa;NFHS-5;Total;4,5\n"
	ds, err := dataset.NewLoader(dataset.Options{Delimiter: ';'}, nil, nil).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	cell, ok := ds.Row(0).Cell("X")
	require.True(t, ok)
	assert.Equal(t, "4,5", cell.String())
}

func TestParse_ShortRowsArePadded(t *testing.T) {
	csv := "India/States/UTs,Survey,Area,X,Y\nGoa,NFHS-5,Total\n"
	ds, err := dataset.NewLoader(dataset.Options{}, nil, nil).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	cell, ok := ds.Row(0).Cell("Y")
	require.True(t, ok)
	assert.True(t, cell.IsNull())
}

func TestParse_SchemaErrors(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{"empty input", ""},
		{"missing key column", "India/States/UTs,Area\nGoa,Total\n"},
		{"duplicate header", "India/States/UTs,Survey,Area,Area\nGoa,NFHS-5,Total,Total\n"},
		{"missing catalog column", "India/States/UTs,Survey,Area\nGoa,NFHS-5,Total\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newLoader(false, nil).Parse(strings.NewReader(tc.csv))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetSchemaInvalid), err.Error())
		})
	}
}

func TestParse_MissingCatalogColumnNamesIt(t *testing.T) {
	header := strings.SplitN(testutil.SampleCSV, "\n", 2)[0]
	header = strings.Replace(header, `,"`+testutil.ColImprovedWater+`"`, "", 1)
	_, err := newLoader(false, nil).Parse(strings.NewReader(header + "\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), testutil.ColImprovedWater)
}

func TestParse_Duplicates(t *testing.T) {
	dup := testutil.SampleCSV + "Goa,NFHS-5,Total,80.0,1000,99.0,99.0,90.0,95.0\n"

	logger := testutil.NewMockLogger()
	ds, err := newLoader(false, logger).Parse(strings.NewReader(dup))
	require.NoError(t, err)
	assert.Equal(t, 10, ds.Len())
	msg, ok := logger.Find("warn", "Dataset has duplicate state/survey/area rows; first match is used for KPIs")
	require.True(t, ok)
	n, _ := msg.Field("duplicates")
	assert.Equal(t, 1, n)

	_, err = newLoader(true, nil).Parse(strings.NewReader(dup))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetDuplicateKey))
	assert.Contains(t, err.Error(), "Goa / NFHS-5 / Total")
}

func TestNewSource(t *testing.T) {
	cfg := config.NewDefaultConfig()

	src, err := dataset.NewSource(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, config.SourceFile, src.Kind())
	assert.Equal(t, config.DefaultDatasetPath, src.Location())

	cfg.Dataset.Source = config.SourceHTTP
	cfg.Dataset.URL = "https://example.org/nfhs.csv"
	src, err = dataset.NewSource(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, config.SourceHTTP, src.Kind())
	assert.Equal(t, int64(config.DefaultDatasetMaxBytes), src.(dataset.HTTPSource).MaxBytes)

	cfg.Dataset.Source = config.SourceMinIO
	_, err = dataset.NewSource(cfg, nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetSourceUnsupported))

	cfg.MinIO.Bucket, cfg.MinIO.Object = "surveys", "nfhs.csv"
	src, err = dataset.NewSource(cfg, stubFetcher{})
	require.NoError(t, err)
	assert.Equal(t, "surveys/nfhs.csv", src.Location())

	cfg.Dataset.Source = "ftp"
	_, err = dataset.NewSource(cfg, nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetSourceUnsupported))
}

//Personal.AI order the ending
