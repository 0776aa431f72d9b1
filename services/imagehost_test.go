package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lseungyeop/portfolio-admin/errs"
	"github.com/lseungyeop/portfolio-admin/models"
)

func pngUpload(size int64) models.Upload {
	return models.Upload{
		Name:        "photo.png",
		ContentType: "image/png",
		Size:        size,
		Reader:      strings.NewReader("pngbytes"),
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	host := NewImageHost(server.URL, "key")
	_, err := host.Upload(context.Background(), models.Upload{
		Name:        "notes.pdf",
		ContentType: "application/pdf",
		Size:        100,
		Reader:      strings.NewReader("%PDF"),
	})

	require.Error(t, err)
	assert.True(t, errs.IsInvalidFileType(err))
	assert.Equal(t, 0, requests, "rejected file must not produce a network call")
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	host := NewImageHost(server.URL, "key")
	_, err := host.Upload(context.Background(), pngUpload(10*1024*1024))

	require.Error(t, err)
	assert.True(t, errs.IsFileTooLarge(err))
	assert.Equal(t, 0, requests)
}

func TestUploadTypeCheckedBeforeSize(t *testing.T) {
	host := NewImageHost("http://unreachable.invalid", "key")
	_, err := host.Upload(context.Background(), models.Upload{
		Name:        "big.pdf",
		ContentType: "application/pdf",
		Size:        10 * 1024 * 1024,
		Reader:      strings.NewReader("x"),
	})

	require.Error(t, err)
	assert.True(t, errs.IsInvalidFileType(err), "validation is ordered: type first")
}

func TestUploadReturnsHostedURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.URL.Query().Get("key"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "photo.png", header.Filename)

		w.Write([]byte(`{"success": true, "data": {"url": "https://img.example/abc.png"}}`))
	}))
	defer server.Close()

	host := NewImageHost(server.URL, "secret-key")
	url, err := host.Upload(context.Background(), pngUpload(8))

	require.NoError(t, err)
	assert.Equal(t, "https://img.example/abc.png", url)
}

func TestUploadFailureEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	}))
	defer server.Close()

	host := NewImageHost(server.URL, "key")
	_, err := host.Upload(context.Background(), pngUpload(8))

	require.Error(t, err)
	assert.True(t, errs.IsUploadFailed(err))
}

func TestUploadTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	host := NewImageHost(server.URL, "key")
	_, err := host.Upload(context.Background(), pngUpload(8))

	require.Error(t, err)
	assert.True(t, errs.IsUploadFailed(err))
}
