// Package httpgw provides the HTTP implementation of driven.Gateway.
// It speaks the ingestion service's JSON API: multipart uploads, job
// status polling, document listing/deletion and retrieval-augmented
// chat.
package httpgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.Gateway = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL           = "http://localhost:8000"
	DefaultTimeout           = 120 * time.Second
	DefaultRequestsPerSecond = 10.0
	DefaultBurstSize         = 20
)

// Config holds configuration for the HTTP gateway client.
type Config struct {
	// BaseURL is the gateway's base URL (default: http://localhost:8000).
	BaseURL string

	// Timeout is the transport-level request timeout (default: 120s).
	// Callers additionally bound individual calls via context.
	Timeout time.Duration

	// RequestsPerSecond is the sustained outbound rate limit.
	RequestsPerSecond float64

	// BurstSize is the maximum burst size.
	BurstSize int
}

// Client is the HTTP gateway adapter.
type Client struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates an HTTP gateway client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = DefaultBurstSize
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("gateway base URL: %w", err)
	}

	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}, nil
}

// uploadResponse is the upload acknowledgement wire format.
type uploadResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// jobStatusResponse is the job snapshot wire format. Optional fields
// are pointers so absence survives decoding.
type jobStatusResponse struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	Progress    *int    `json:"progress,omitempty"`
	DocumentID  *string `json:"document_id,omitempty"`
	ChunkCount  *int    `json:"chunk_count,omitempty"`
	Error       *string `json:"error,omitempty"`
	StartedAt   *string `json:"started_at,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

// documentResponse is the document wire format.
type documentResponse struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
	Pages      int    `json:"pages"`
	Language   string `json:"language"`
	Status     string `json:"status,omitempty"`
}

// chatRequest is the chat wire format.
type chatRequest struct {
	Message        string        `json:"message"`
	ContextFileIDs []string      `json:"context_file_ids,omitempty"`
	History        []chatHistory `json:"history,omitempty"`
}

type chatHistory struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the chat answer wire format.
type chatResponse struct {
	Response string `json:"response"`
	Sources  []struct {
		Filename   string  `json:"filename"`
		ChunkIndex int     `json:"chunk_index"`
		Score      float64 `json:"score"`
	} `json:"sources"`
	ContextUsed bool `json:"context_used"`
}

// Upload submits a file as multipart form data.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*domain.UploadAccepted, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-direct", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp uploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}
	return &domain.UploadAccepted{
		JobID:  resp.JobID,
		Status: domain.JobStatus(resp.Status),
	}, nil
}

// JobStatus fetches a job snapshot.
func (c *Client) JobStatus(ctx context.Context, jobID string) (*domain.JobSnapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL + "/job-status/" + url.PathEscape(jobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var resp jobStatusResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("job status %s: %w", jobID, err)
	}

	snap := &domain.JobSnapshot{
		Status:     domain.JobStatus(resp.Status),
		Progress:   resp.Progress,
		DocumentID: resp.DocumentID,
		ChunkCount: resp.ChunkCount,
		Error:      resp.Error,
	}
	snap.StartedAt = parseTimestamp(resp.StartedAt)
	snap.CompletedAt = parseTimestamp(resp.CompletedAt)
	return snap, nil
}

// parseTimestamp decodes an RFC 3339 timestamp, tolerating the bare
// ISO form the service emits without a zone offset.
func parseTimestamp(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	return nil
}

// ListDocuments fetches the full document list.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/documents", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var resp []documentResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]domain.Document, len(resp))
	for i, d := range resp {
		docs[i] = domain.Document{
			ID:         d.ID,
			Filename:   d.Filename,
			ChunkCount: d.ChunkCount,
			PageCount:  d.Pages,
			Language:   d.Language,
			Status:     d.Status,
		}
	}
	return docs, nil
}

// DeleteDocument removes an ingested document.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + "/documents/" + url.PathEscape(documentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("delete document %s: %w", documentID, err)
	}
	return nil
}

// Chat sends a chat request with scoping and history.
func (c *Client) Chat(ctx context.Context, chatReq domain.ChatRequest) (*domain.ChatResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body := chatRequest{
		Message:        chatReq.Message,
		ContextFileIDs: chatReq.ContextFileIDs,
	}
	for _, msg := range chatReq.History {
		body.History = append(body.History, chatHistory{Role: msg.Role, Content: msg.Content})
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp chatResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}

	out := &domain.ChatResponse{
		Response:    resp.Response,
		ContextUsed: resp.ContextUsed,
	}
	for _, s := range resp.Sources {
		out.Sources = append(out.Sources, domain.SourceRef{
			Filename:   s.Filename,
			ChunkIndex: s.ChunkIndex,
			Score:      s.Score,
		})
	}
	return out, nil
}

// do executes a request and decodes a JSON response into out. A nil
// out discards the body. Non-2xx statuses are returned as errors with
// the response body for context.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
