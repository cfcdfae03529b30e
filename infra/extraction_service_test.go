package infra

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextPostsDocumentURL(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Write([]byte("extracted document text"))
	}))
	defer server.Close()

	service := &ExtractionService{
		ServiceURL: server.URL,
		AuthToken:  "service-token",
		HTTPClient: &http.Client{Timeout: time.Second},
	}

	contents, err := service.ExtractText(t.Context(), "https://storage.test/projects/p/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "extracted document text", contents)
	assert.Equal(t, "Bearer service-token", gotAuth)
	assert.Equal(t, "https://storage.test/projects/p/doc.pdf", gotPayload["document_url"])
}

func TestExtractTextRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	service := &ExtractionService{
		ServiceURL: server.URL,
		HTTPClient: &http.Client{Timeout: time.Second},
	}

	_, err := service.ExtractText(t.Context(), "https://storage.test/doc.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestExtractTextUnreachableService(t *testing.T) {
	service := &ExtractionService{
		ServiceURL: "http://127.0.0.1:1",
		HTTPClient: &http.Client{Timeout: time.Second},
	}

	_, err := service.ExtractText(t.Context(), "https://storage.test/doc.pdf")
	assert.Error(t, err)
}
