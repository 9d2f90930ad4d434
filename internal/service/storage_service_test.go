package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ruhienterprises/careers-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T, h http.HandlerFunc) *StorageService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewStorageService(&config.StorageConfig{URL: srv.URL, ServiceKey: "service-key", Bucket: "resumes"})
}

func TestStorageUpload(t *testing.T) {
	var gotPath, gotBody string
	var gotHeader http.Header
	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Clone()
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Key":"resumes/1-abc.pdf"}`))
	})

	err := s.Upload(context.Background(), "1-abc.pdf", strings.NewReader("%PDF-1.4"), UploadOptions{
		ContentType:  "application/pdf",
		CacheControl: "3600",
	})
	require.NoError(t, err)
	assert.Equal(t, "/storage/v1/object/resumes/1-abc.pdf", gotPath)
	assert.Equal(t, "%PDF-1.4", gotBody)
	assert.Equal(t, "false", gotHeader.Get("x-upsert"))
	assert.Equal(t, "max-age=3600", gotHeader.Get("Cache-Control"))
	assert.Equal(t, "application/pdf", gotHeader.Get("Content-Type"))
	assert.Equal(t, "Bearer service-key", gotHeader.Get("Authorization"))
	assert.Equal(t, "service-key", gotHeader.Get("apikey"))
}

func TestStorageUploadDuplicate(t *testing.T) {
	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"statusCode":"409","error":"Duplicate","message":"The resource already exists"}`))
	})

	err := s.Upload(context.Background(), "1-abc.pdf", strings.NewReader("x"), UploadOptions{})
	assert.True(t, errors.Is(err, ErrObjectExists))
}

func TestStorageUploadFailure(t *testing.T) {
	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"bucket unavailable"}`))
	})

	err := s.Upload(context.Background(), "1-abc.pdf", strings.NewReader("x"), UploadOptions{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrObjectExists))
	assert.Contains(t, err.Error(), "bucket unavailable")
}

func TestStoragePublicURL(t *testing.T) {
	s := NewStorageService(&config.StorageConfig{URL: "https://project.storage.test", Bucket: "resumes"})
	assert.Equal(t, "https://project.storage.test/storage/v1/object/public/resumes/1-abc.pdf", s.PublicURL("1-abc.pdf"))
}

func TestStorageDownload(t *testing.T) {
	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/storage/v1/object/resumes/1-abc.pdf" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4"))
	})

	body, contentType, err := s.Download(context.Background(), "1-abc.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), body)
	assert.Equal(t, "application/pdf", contentType)

	_, _, err = s.Download(context.Background(), "missing.pdf")
	assert.Error(t, err)
}

func TestStorageDownloadRejectsPathKeys(t *testing.T) {
	var hits int
	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
	})

	for _, key := range []string{"", "..", "../secrets", "a/b.pdf", "https://evil.test/cv.pdf", "cv.pdf?x=1"} {
		_, _, err := s.Download(context.Background(), key)
		assert.Error(t, err, key)
	}
	assert.Zero(t, hits)
}

func TestStorageObjectKey(t *testing.T) {
	s := NewStorageService(&config.StorageConfig{URL: "https://project.storage.test", ServiceKey: "service-key", Bucket: "resumes"})

	key, ok := s.ObjectKey(s.PublicURL("1700000000000-abc.pdf"))
	require.True(t, ok)
	assert.Equal(t, "1700000000000-abc.pdf", key)

	tests := []string{
		"http://127.0.0.1:9999/cv.pdf",
		"http://127.0.0.1:9999/storage/v1/object/public/resumes/1-abc.pdf",
		"https://project.storage.test.evil.test/storage/v1/object/public/resumes/1-abc.pdf",
		"https://project.storage.test/storage/v1/object/public/other/1-abc.pdf",
		"https://project.storage.test/storage/v1/object/public/resumes/",
		"https://project.storage.test/storage/v1/object/public/resumes/a%2F..%2Fb.pdf",
		"https://project.storage.test/storage/v1/object/public/resumes/1-abc.pdf?download=1",
	}
	for _, u := range tests {
		_, ok := s.ObjectKey(u)
		assert.False(t, ok, u)
	}
}

func TestStorageListPages(t *testing.T) {
	var offsets []float64
	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/list/resumes", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		offset := body["offset"].(float64)
		offsets = append(offsets, offset)
		if offset == 0 {
			_, _ = w.Write([]byte(`[
				{"name":"a.pdf","created_at":"2024-03-01T10:00:00Z","metadata":{"size":10}},
				{"name":"b.pdf","created_at":"2024-03-02T10:00:00Z","metadata":{"size":20}}
			]`))
			return
		}
		_, _ = w.Write([]byte(`[{"name":"c.docx","created_at":"2024-03-03T10:00:00Z","metadata":{"size":30}}]`))
	})
	s.PageSize = 2

	objects, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2}, offsets)
	require.Len(t, objects, 3)
	assert.Equal(t, "c.docx", objects[2].Name)
	assert.Equal(t, int64(20), objects[1].Size)
	assert.True(t, objects[0].CreatedAt.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
}

func TestStorageRemove(t *testing.T) {
	var method string
	var body map[string][]string
	s := newTestStorage(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`[]`))
	})

	require.NoError(t, s.Remove(context.Background(), []string{"a.pdf", "b.pdf"}))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, body["prefixes"])
	assert.NoError(t, s.Remove(context.Background(), nil))
}
