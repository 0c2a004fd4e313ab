package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/blogfiles/internal/authorservice"
	"github.com/sushihentaime/blogfiles/internal/blogservice"
	"github.com/sushihentaime/blogfiles/internal/mediaservice"
	"github.com/sushihentaime/blogfiles/internal/store"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func newTestConfig(publicDir string) *Config {
	return &Config{
		Port:           "3002",
		Environment:    "testing",
		Version:        "test",
		StoreDriver:    "memory",
		PublicDir:      publicDir,
		PublicURL:      "http://localhost:3002",
		MaxUploadBytes: 1 << 20,
		RateLimitRPS:   10,
		RateLimitBurst: 20,
	}
}

// newTestApplication returns an application backed by an in-memory store whose
// covers are written to a temporary public directory.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := newTestConfig(t.TempDir())
	s := store.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &application{
		config:        cfg,
		logger:        logger,
		blogService:   blogservice.NewBlogService(s, mediaservice.NewDiskStorage(cfg.PublicDir, cfg.PublicURL), nil, logger),
		authorService: authorservice.NewAuthorService(s),
	}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, []byte) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, responseBody
}

// decode unmarshals a response body into dst and fails the test otherwise.
func decode(t *testing.T, body []byte, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, dst), string(body))
}

func (ts *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string) (int, http.Header, []byte) {
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) send(t *testing.T, method, path string, data any) (int, http.Header, []byte) {
	var body io.Reader

	switch v := data.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(v)
	default:
		jsonPayload, err := json.Marshal(data)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	return ts.do(t, method, path, body, "application/json")
}

func (ts *testServer) post(t *testing.T, path string, data any) (int, http.Header, []byte) {
	return ts.send(t, http.MethodPost, path, data)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, []byte) {
	return ts.send(t, http.MethodGet, path, nil)
}

func (ts *testServer) put(t *testing.T, path string, data any) (int, http.Header, []byte) {
	return ts.send(t, http.MethodPut, path, data)
}

func (ts *testServer) delete(t *testing.T, path string) (int, http.Header, []byte) {
	return ts.send(t, http.MethodDelete, path, nil)
}

// upload posts content as the multipart file field, or an empty form when
// field is empty.
func (ts *testServer) upload(t *testing.T, path, field, filename string, content []byte) (int, http.Header, []byte) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file"))
	}
	require.NoError(t, mw.Close())

	return ts.do(t, http.MethodPost, path, &buf, mw.FormDataContentType())
}
