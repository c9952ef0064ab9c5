// Package api is the client for the remote document-QA service.
//
// The service owns indexing, retrieval and answer generation; this package
// only speaks its five endpoints. Responses with missing fields are
// default-valued, never errors — only transport failures and non-2xx
// statuses are reported.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joss/docchat/internal/domain"
	"github.com/joss/docchat/internal/logging"
	"github.com/joss/docchat/internal/registry"
)

// File is one upload payload: a display name plus raw bytes.
type File struct {
	Name string
	Data []byte
}

// UploadResult is the server's report for a batched upload.
type UploadResult struct {
	Message   string  `json:"message"`
	Chunks    int     `json:"chunks"`
	TimeTaken float64 `json:"time_taken"`
}

// Answer is the server's response to a question.
type Answer struct {
	Answer  string            `json:"answer"`
	Sources []domain.Citation `json:"sources"`
}

// Client talks to the remote service.
type Client struct {
	baseURL string
	http    HTTPClient
	log     *logging.Logger
}

// New creates a client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logging.New("api"),
	}
}

// NewWithHTTP creates a client with a custom HTTP client (for testing).
func NewWithHTTP(baseURL string, hc HTTPClient) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		log:     logging.New("api"),
	}
}

// ListDocuments fetches the authoritative document list.
func (c *Client) ListDocuments(ctx context.Context) ([]registry.Document, error) {
	var out struct {
		Documents []registry.Document `json:"documents"`
	}
	if err := c.call(ctx, http.MethodGet, "/list_documents", nil, "", &out); err != nil {
		return nil, err
	}
	if out.Documents == nil {
		out.Documents = []registry.Document{}
	}
	return out.Documents, nil
}

// Upload sends all files in one batched multipart request under the shared
// field name the server expects. Partial per-file failure is not modeled.
func (c *Client) Upload(ctx context.Context, files []File) (UploadResult, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return UploadResult{}, fmt.Errorf("build upload form: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return UploadResult{}, fmt.Errorf("build upload form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("build upload form: %w", err)
	}

	var out UploadResult
	err := c.call(ctx, http.MethodPost, "/upload_pdfs", body, w.FormDataContentType(), &out)
	return out, err
}

// DeleteDocument removes one document by ID. The response body is ignored;
// any 2xx is success.
func (c *Client) DeleteDocument(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/delete_document/%d", id), nil, "", nil)
}

// Ask submits a question with the reduced conversation history.
func (c *Client) Ask(ctx context.Context, question string, history []domain.HistoryEntry) (Answer, error) {
	if history == nil {
		history = []domain.HistoryEntry{}
	}
	payload, err := json.Marshal(struct {
		Question string                `json:"question"`
		History  []domain.HistoryEntry `json:"history"`
	}{Question: question, History: history})
	if err != nil {
		return Answer{}, fmt.Errorf("encode question: %w", err)
	}

	var out Answer
	err = c.call(ctx, http.MethodPost, "/ask", bytes.NewReader(payload), "application/json", &out)
	if out.Sources == nil {
		out.Sources = []domain.Citation{}
	}
	return out, err
}

// Summarize requests a summary for one document.
func (c *Client) Summarize(ctx context.Context, id int64) (string, error) {
	var out struct {
		Summary string `json:"summary"`
	}
	err := c.call(ctx, http.MethodPost, fmt.Sprintf("/summarize_document/%d", id), nil, "", &out)
	return out.Summary, err
}

// call performs one request and decodes a JSON body into out when given.
// A body that fails to decode is treated as absent, per the
// malformed-response policy.
func (c *Client) call(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	reqID := uuid.NewString()
	log := c.log.WithRequestID(reqID)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("request_failed", map[string]interface{}{"method": method, "path": path}, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	log.TimedEvent("request", start, map[string]interface{}{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s %s: server returned %s", method, path, resp.Status)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Warn("malformed_response", map[string]interface{}{"method": method, "path": path}, err)
	}
	return nil
}
