package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/culinary/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage("")

	key := "proformas/SO-00001/Proforma_MUTFAKMITTE-00001.json"
	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Upload(ctx, key, strings.NewReader(`{"name":"PRO-00001"}`), "application/json", -1))

	exists, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "application/json", s.ContentType(key))

	rc, err := s.Download(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"PRO-00001"}`, string(body))

	link, err := s.DownloadURL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "memory://documents/proformas%2FSO-00001"))

	_, err = s.Download(ctx, "missing")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	_, err = s.DownloadURL(ctx, "missing", time.Minute)
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.ErrorIs(t, s.Upload(ctx, "", strings.NewReader("x"), "text/plain", 1), errKeyRequired)

	require.NoError(t, s.Delete(ctx, key))
	exists, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, s.Delete(ctx, key), "deleting a missing key is a no-op")
	assert.ErrorIs(t, s.Delete(ctx, ""), errKeyRequired)
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := NewS3ObjectStorage(ctx, nil)
	assert.ErrorContains(t, err, "configuration is required")

	_, err = NewS3ObjectStorage(ctx, &config.StorageConfig{AccessKey: "k", SecretKey: "s"})
	assert.ErrorContains(t, err, "bucket is required")

	_, err = NewS3ObjectStorage(ctx, &config.StorageConfig{Bucket: "docs", AccessKey: "k"})
	assert.ErrorContains(t, err, "must be set together")

	s, err := NewS3ObjectStorage(ctx, &config.StorageConfig{
		Bucket:    "docs",
		AccessKey: "k",
		SecretKey: "s",
		Endpoint:  "localhost:9000",
	})
	require.NoError(t, err)
	assert.Equal(t, "docs", s.Bucket())
	assert.Equal(t, 15*time.Minute, s.presignExpiration)
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in     string
		ssl    bool
		expect string
	}{
		{"", false, ""},
		{"minio:9000", false, "http://minio:9000"},
		{"s3.example.com", true, "https://s3.example.com"},
		{"https://s3.example.com", false, "https://s3.example.com"},
	}
	for _, tt := range tests {
		got, err := normalizeEndpoint(tt.in, tt.ssl)
		require.NoError(t, err)
		assert.Equal(t, tt.expect, got)
	}
}

// newFakeS3 serves HEAD and GET for the objects map in path-style layout
func newFakeS3(t *testing.T, objects map[string]string) *S3ObjectStorage {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := objects[strings.TrimPrefix(r.URL.Path, "/docs/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			if r.Method != http.MethodHead {
				_, _ = io.WriteString(w, `<Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			}
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, body)
		}
	}))
	t.Cleanup(srv.Close)

	s, err := NewS3ObjectStorage(context.Background(), &config.StorageConfig{
		Bucket:       "docs",
		AccessKey:    "k",
		SecretKey:    "s",
		Endpoint:     srv.URL,
		UsePathStyle: true,
	}, WithLogger(zap.NewNop()))
	require.NoError(t, err)
	return s
}

func TestS3ObjectStorage_ExistsAndDownload(t *testing.T) {
	s := newFakeS3(t, map[string]string{"proformas/Proforma_A.json": `{"name":"PRO-00001"}`})
	ctx := context.Background()

	exists, err := s.Exists(ctx, "proformas/Proforma_A.json")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.Exists(ctx, "proformas/Proforma_B.json")
	require.NoError(t, err)
	assert.False(t, exists)

	rc, err := s.Download(ctx, "proformas/Proforma_A.json")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"PRO-00001"}`, string(body))

	_, err = s.Download(ctx, "proformas/Proforma_B.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	link, err := s.DownloadURL(ctx, "proformas/Proforma_A.json", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, link, "/docs/proformas/Proforma_A.json")
	assert.Contains(t, link, "X-Amz-Expires=60")
}

// TestS3ObjectStorage_Integration runs against a real S3-compatible server when
// CULINARY_TEST_S3_ENDPOINT is set, e.g. a local MinIO.
func TestS3ObjectStorage_Integration(t *testing.T) {
	endpoint := os.Getenv("CULINARY_TEST_S3_ENDPOINT")
	if endpoint == "" {
		t.Skip("set CULINARY_TEST_S3_ENDPOINT to run against a live S3-compatible server")
	}
	ctx := context.Background()
	s, err := NewS3ObjectStorage(ctx, &config.StorageConfig{
		Bucket:       "culinary-test",
		AccessKey:    os.Getenv("CULINARY_TEST_S3_ACCESS_KEY"),
		SecretKey:    os.Getenv("CULINARY_TEST_S3_SECRET_KEY"),
		Endpoint:     endpoint,
		UsePathStyle: true,
	})
	require.NoError(t, err)
	require.NoError(t, s.EnsureBucket(ctx))

	key := "integration/Proforma_TEST.json"
	require.NoError(t, s.Upload(ctx, key, strings.NewReader(`{"ok":true}`), "application/json", 11))
	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, s.Delete(ctx, key))
}
