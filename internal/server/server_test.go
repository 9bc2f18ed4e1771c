// ABOUTME: HTTP API tests using httptest and fake services
// ABOUTME: Covers ingestion status codes, search payloads, and the SSE answer stream

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harper/ragpipe/internal/ingest"
	"github.com/harper/ragpipe/internal/models"
)

type fakeIngestor struct {
	doc       *models.Document
	ingestErr error
	deleteErr error
	deletedID string
	metadata  map[string]string
}

func (f *fakeIngestor) IngestText(ctx context.Context, content string, metadata map[string]string) (*models.Document, error) {
	f.metadata = metadata
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	return f.doc, nil
}

func (f *fakeIngestor) Delete(ctx context.Context, documentID string) error {
	f.deletedID = documentID
	return f.deleteErr
}

type fakeSearcher struct {
	results       []models.SearchResult
	searchErr     error
	deltas        []string
	askErr        error
	lastThreshold float32
}

func (f *fakeSearcher) Search(ctx context.Context, query string, limit int, threshold float32) ([]models.SearchResult, error) {
	f.lastThreshold = threshold
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *fakeSearcher) Ask(ctx context.Context, question string, limit int, onDelta func(delta string)) (string, error) {
	if f.askErr != nil {
		return "", f.askErr
	}
	var sb strings.Builder
	for _, d := range f.deltas {
		onDelta(d)
		sb.WriteString(d)
	}
	return sb.String(), nil
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv := New(&fakeIngestor{}, &fakeSearcher{})

	w := doRequest(t, srv.Handler(), http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestIngestDocument(t *testing.T) {
	ingestor := &fakeIngestor{doc: &models.Document{ID: "doc-1", ChunkCount: 3}}
	srv := New(ingestor, &fakeSearcher{})

	body := `{"content":"hello world","title":"Greetings","source":"hi.txt","type":"text"}`
	w := doRequest(t, srv.Handler(), http.MethodPost, "/api/documents", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	var doc models.Document
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if doc.ID != "doc-1" || doc.ChunkCount != 3 {
		t.Errorf("response document = %+v", doc)
	}

	want := map[string]string{"title": "Greetings", "source": "hi.txt", "type": "text"}
	for k, v := range want {
		if ingestor.metadata[k] != v {
			t.Errorf("metadata[%q] = %q, want %q", k, ingestor.metadata[k], v)
		}
	}
}

func TestIngestDocument_MissingContent(t *testing.T) {
	srv := New(&fakeIngestor{}, &fakeSearcher{})

	w := doRequest(t, srv.Handler(), http.MethodPost, "/api/documents", `{"title":"no content"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestIngestDocument_EmptyDocumentIsBadRequest(t *testing.T) {
	ingestor := &fakeIngestor{ingestErr: ingest.ErrEmptyDocument}
	srv := New(ingestor, &fakeSearcher{})

	w := doRequest(t, srv.Handler(), http.MethodPost, "/api/documents", `{"content":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestIngestDocument_InternalError(t *testing.T) {
	ingestor := &fakeIngestor{ingestErr: errors.New("store down")}
	srv := New(ingestor, &fakeSearcher{})

	w := doRequest(t, srv.Handler(), http.MethodPost, "/api/documents", `{"content":"hello"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestDeleteDocument(t *testing.T) {
	ingestor := &fakeIngestor{}
	srv := New(ingestor, &fakeSearcher{})

	w := doRequest(t, srv.Handler(), http.MethodDelete, "/api/documents/doc-42", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ingestor.deletedID != "doc-42" {
		t.Errorf("deleted id = %q, want doc-42", ingestor.deletedID)
	}
}

func TestSearch(t *testing.T) {
	searcher := &fakeSearcher{results: []models.SearchResult{
		{ID: "a", DocumentID: "doc-1", Content: "hit", Score: 0.9},
	}}
	srv := New(&fakeIngestor{}, searcher)

	w := doRequest(t, srv.Handler(), http.MethodPost, "/api/search", `{"query":"hit"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Results []models.SearchResult `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Content != "hit" {
		t.Errorf("results = %+v", resp.Results)
	}
}

func TestSearch_OmittedThresholdUsesServerDefault(t *testing.T) {
	searcher := &fakeSearcher{lastThreshold: 99}
	srv := New(&fakeIngestor{}, searcher)

	w := doRequest(t, srv.Handler(), http.MethodPost, "/api/search", `{"query":"hit"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if searcher.lastThreshold != -1 {
		t.Errorf("threshold = %v, want -1 so the configured default applies", searcher.lastThreshold)
	}
}

func TestSearch_ExplicitZeroThresholdDisablesFiltering(t *testing.T) {
	searcher := &fakeSearcher{lastThreshold: 99}
	srv := New(&fakeIngestor{}, searcher)

	w := doRequest(t, srv.Handler(), http.MethodPost, "/api/search", `{"query":"hit","threshold":0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if searcher.lastThreshold != 0 {
		t.Errorf("threshold = %v, want explicit 0 passed through", searcher.lastThreshold)
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	srv := New(&fakeIngestor{}, &fakeSearcher{})

	w := doRequest(t, srv.Handler(), http.MethodPost, "/api/search", `{"limit":3}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAsk_StreamsEvents(t *testing.T) {
	searcher := &fakeSearcher{deltas: []string{"The ", "answer."}}
	srv := New(&fakeIngestor{}, searcher)

	w := doRequest(t, srv.Handler(), http.MethodPost, "/api/ask", `{"question":"why?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	body := w.Body.String()
	if !strings.Contains(body, "event:delta") {
		t.Errorf("body missing delta events:\n%s", body)
	}
	if !strings.Contains(body, "event:done") {
		t.Errorf("body missing done event:\n%s", body)
	}
}

func TestAsk_ErrorEvent(t *testing.T) {
	searcher := &fakeSearcher{askErr: errors.New("no relevant chunks")}
	srv := New(&fakeIngestor{}, searcher)

	w := doRequest(t, srv.Handler(), http.MethodPost, "/api/ask", `{"question":"why?"}`)

	body := w.Body.String()
	if !strings.Contains(body, "event:error") {
		t.Errorf("body missing error event:\n%s", body)
	}
	if strings.Contains(body, "event:done") {
		t.Errorf("body has done event after error:\n%s", body)
	}
}
