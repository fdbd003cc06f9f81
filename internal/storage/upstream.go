package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// MaxPayloadBytes caps the size of an upstream response body.
const MaxPayloadBytes = 16 << 20

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPSource issues a plain GET against the listing endpoint.
type HTTPSource struct {
	Client HTTPClient
	URL    string
}

func NewHTTPSource(client HTTPClient, url string) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{Client: client, URL: url}
}

func (s *HTTPSource) Describe() string {
	return s.URL
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > MaxPayloadBytes {
		return nil, fmt.Errorf("upstream payload exceeds %d bytes", MaxPayloadBytes)
	}
	return body, nil
}

// FileSource serves a payload from disk, for offline runs against recorded data.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Describe() string {
	return "file://" + s.Path
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path)
}
