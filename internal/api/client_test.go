package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/docchat/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestListDocuments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/list_documents", r.URL.Path)
		w.Write([]byte(`{"documents":[{"id":1,"filename":"a.pdf"},{"id":2,"filename":"b.pdf"}]}`))
	})

	docs, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, int64(1), docs[0].ID)
	assert.Equal(t, "b.pdf", docs[1].Filename)
}

func TestListDocumentsMissingField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	docs, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestListDocumentsServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListDocuments(context.Background())
	assert.Error(t, err)
}

func TestUploadMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload_pdfs", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		parts := r.MultipartForm.File["files"]
		require.Len(t, parts, 2)
		assert.Equal(t, "a.pdf", parts[0].Filename)
		assert.Equal(t, "b.pdf", parts[1].Filename)

		w.Write([]byte(`{"message":"PDFs processed","chunks":12,"time_taken":3.5}`))
	})

	res, err := c.Upload(context.Background(), []File{
		{Name: "a.pdf", Data: []byte("%PDF-1.4 a")},
		{Name: "b.pdf", Data: []byte("%PDF-1.4 b")},
	})
	require.NoError(t, err)
	assert.Equal(t, "PDFs processed", res.Message)
	assert.Equal(t, 12, res.Chunks)
	assert.InDelta(t, 3.5, res.TimeTaken, 0.001)
}

func TestDeleteDocument(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteDocument(context.Background(), 42))
	assert.Equal(t, "/delete_document/42", gotPath)
}

func TestAskSendsHistory(t *testing.T) {
	var got struct {
		Question string                `json:"question"`
		History  []domain.HistoryEntry `json:"history"`
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ask", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"answer":"X is Y.","sources":[{"doc":"a.pdf","page":2}]}`))
	})

	history := []domain.HistoryEntry{
		{Role: domain.RoleUser, Text: "earlier question"},
		{Role: domain.RoleAssistant, Text: "earlier answer"},
	}
	ans, err := c.Ask(context.Background(), "What is X?", history)
	require.NoError(t, err)

	assert.Equal(t, "What is X?", got.Question)
	assert.Equal(t, history, got.History)
	assert.Equal(t, "X is Y.", ans.Answer)
	assert.Equal(t, []domain.Citation{{Doc: "a.pdf", Page: 2}}, ans.Sources)
}

func TestAskDefaultsMissingFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	ans, err := c.Ask(context.Background(), "What is X?", nil)
	require.NoError(t, err)
	assert.Equal(t, "", ans.Answer)
	assert.NotNil(t, ans.Sources)
	assert.Empty(t, ans.Sources)
}

func TestAskMalformedBodyIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	})

	ans, err := c.Ask(context.Background(), "What is X?", nil)
	require.NoError(t, err)
	assert.Equal(t, "", ans.Answer)
}

func TestSummarize(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/summarize_document/7", r.URL.Path)
		w.Write([]byte(`{"summary":"It is about X."}`))
	})

	sum, err := c.Summarize(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "It is about X.", sum)
}

type failingHTTP struct{}

func (failingHTTP) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestTransportError(t *testing.T) {
	c := NewWithHTTP("http://localhost:1", failingHTTP{})

	_, err := c.Ask(context.Background(), "q", nil)
	assert.Error(t, err)

	_, err = c.ListDocuments(context.Background())
	assert.Error(t, err)
}
