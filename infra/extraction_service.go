package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/atlashq/atlas-project-service/config"
)

// DocumentExtractor turns a downloadable document into raw text.
type DocumentExtractor interface {
	ExtractText(ctx context.Context, documentURL string) (string, error)
}

// ExtractionService calls the external document-extraction endpoint with a
// bearer credential. The round trip is bounded at 60 seconds.
type ExtractionService struct {
	ServiceURL string
	AuthToken  string
	HTTPClient *http.Client
}

func InitExtractionService(cfg *config.EnvConfig) *ExtractionService {
	if cfg.Extraction.ServiceURL == "" {
		panic("Extraction service URL is not configured")
	}

	return &ExtractionService{
		ServiceURL: cfg.Extraction.ServiceURL,
		AuthToken:  cfg.Extraction.AuthToken,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *ExtractionService) ExtractText(ctx context.Context, documentURL string) (string, error) {
	payload, err := json.Marshal(map[string]string{"document_url": documentURL})
	if err != nil {
		return "", fmt.Errorf("failed to marshal extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ServiceURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.AuthToken)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read extraction response: %w", err)
	}

	return string(body), nil
}
