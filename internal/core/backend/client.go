// Package backend is the typed boundary to the video-RAG backend. All
// JSON decoding happens here: callers get typed records or a classified
// error (*APIError for non-2xx, *ParseError for unexpected shapes),
// never raw payloads.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTopK matches the backend's retrieval default.
const DefaultTopK = 5

// VideoRecord is one entry from GET /list-videos.
type VideoRecord struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// IngestResult is the response to POST /ingest-video. VideoURL is the
// backend-assigned identifier for the video; it may differ from the
// submitted URL and is treated as opaque from here on.
type IngestResult struct {
	VideoURL    string `json:"video_url"`
	Description string `json:"video_description"`
}

type ingestRequest struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

type queryRequest struct {
	Question string `json:"question"`
	VideoURL string `json:"video_url"`
	TopK     int    `json:"top_k"`
}

type queryResponse struct {
	Response string `json:"response"`
}

// Client talks to the backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	topK    int
}

// New creates a Client for the given base URL. topK <= 0 falls back to
// DefaultTopK; timeout <= 0 means no client-side timeout.
func New(baseURL string, topK int, timeout time.Duration) *Client {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		topK:    topK,
	}
}

// ListVideos fetches the backend's list of previously ingested videos.
// A payload that is valid JSON but not an array yields a *ParseError;
// hydration maps that to an empty list, one-shot commands surface it.
func (c *Client) ListVideos(ctx context.Context) ([]VideoRecord, error) {
	body, err := c.do(ctx, http.MethodGet, "/list-videos", nil)
	if err != nil {
		return nil, err
	}

	var videos []VideoRecord
	if err := json.Unmarshal(body, &videos); err != nil {
		return nil, &ParseError{Endpoint: "/list-videos", Err: err}
	}
	return videos, nil
}

// Ingest submits a video URL for download, transcription and embedding.
// This is a long call: the backend processes the video synchronously.
func (c *Client) Ingest(ctx context.Context, url, description string) (IngestResult, error) {
	payload, err := json.Marshal(ingestRequest{URL: url, Description: description})
	if err != nil {
		return IngestResult{}, fmt.Errorf("encode ingest request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/ingest-video", payload)
	if err != nil {
		return IngestResult{}, err
	}

	var result IngestResult
	if err := json.Unmarshal(body, &result); err != nil {
		return IngestResult{}, &ParseError{Endpoint: "/ingest-video", Err: err}
	}
	if result.VideoURL == "" {
		return IngestResult{}, &ParseError{
			Endpoint: "/ingest-video",
			Err:      fmt.Errorf("response missing video_url"),
		}
	}
	return result, nil
}

// Query asks a question scoped to one video.
func (c *Client) Query(ctx context.Context, videoID, question string) (string, error) {
	payload, err := json.Marshal(queryRequest{
		Question: question,
		VideoURL: videoID,
		TopK:     c.topK,
	})
	if err != nil {
		return "", fmt.Errorf("encode query request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/query", payload)
	if err != nil {
		return "", err
	}

	var result queryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &ParseError{Endpoint: "/query", Err: err}
	}
	return result.Response, nil
}

// do issues one request and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Endpoint: endpoint, Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
