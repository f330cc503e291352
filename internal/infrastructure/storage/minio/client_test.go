package minio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/NFHS-Explorer/internal/testutil"
	"github.com/turtacn/NFHS-Explorer/pkg/errors"
)

const noSuchKeyXML = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message><Key>missing.csv</Key><BucketName>surveys</BucketName></Error>`

// fakeS3 serves a single bucket "surveys" holding "nfhs.csv".
func fakeS3(t *testing.T) *httptest.Server {
	t.Helper()
	body := []byte(testutil.SampleCSV)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodHead && r.URL.Path == "/surveys/":
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodHead:
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodGet && r.URL.Path == "/surveys/nfhs.csv":
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Length", strconv.Itoa(len(body)))
			w.Header().Set("Last-Modified", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Format(http.TimeFormat))
			w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
			_, _ = w.Write(body)
		default:
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(noSuchKeyXML))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type ClientTestSuite struct {
	suite.Suite
	client *Client
}

func (s *ClientTestSuite) SetupTest() {
	srv := fakeS3(s.T())
	u, err := url.Parse(srv.URL)
	s.Require().NoError(err)

	c, err := NewClient(Config{Endpoint: u.Host, AccessKey: "minio", SecretKey: "minio123"}, testutil.NewMockLogger())
	s.Require().NoError(err)
	s.client = c
}

func (s *ClientTestSuite) TestFetch() {
	data, err := s.client.Fetch(context.Background(), "surveys", "nfhs.csv")
	s.Require().NoError(err)
	s.Equal(testutil.SampleCSV, string(data))
}

func (s *ClientTestSuite) TestFetch_MissingObject() {
	_, err := s.client.Fetch(context.Background(), "surveys", "missing.csv")
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *ClientTestSuite) TestPing() {
	s.NoError(s.client.Ping(context.Background(), "surveys"))

	err := s.client.Ping(context.Background(), "archive")
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *ClientTestSuite) TestClosed() {
	s.Require().NoError(s.client.Close())
	_, err := s.client.Fetch(context.Background(), "surveys", "nfhs.csv")
	s.ErrorIs(err, ErrClientClosed)
	s.ErrorIs(s.client.Ping(context.Background(), "surveys"), ErrClientClosed)
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := NewClient(Config{}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	applyDefaults(&cfg)
	assert.Equal(t, "us-east-1", cfg.Region)

	cfg = Config{Region: "ap-south-1"}
	applyDefaults(&cfg)
	assert.Equal(t, "ap-south-1", cfg.Region)
}

//Personal.AI order the ending
