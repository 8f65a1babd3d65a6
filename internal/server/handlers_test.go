package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/kotae/internal/cache"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/extract"
	"github.com/hyperjump/kotae/internal/indexer"
	"github.com/hyperjump/kotae/internal/keyword"
	"github.com/hyperjump/kotae/internal/llm"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/retrieval"
	"github.com/hyperjump/kotae/internal/search"
	"github.com/hyperjump/kotae/internal/storage"
	"go.uber.org/zap"
)

type stubClient struct {
	text string
}

func (c *stubClient) Complete(ctx context.Context, req *llm.CompletionRequest) (string, error) {
	return c.text, nil
}

func (c *stubClient) Deployment() string { return "test-gpt" }

type stubLLMService struct{}

func (stubLLMService) TestConnection(ctx context.Context) llm.ConnectionStatus {
	return llm.ConnectionStatus{Status: "success", Message: "ok", DeploymentName: "test-gpt"}
}

func (stubLLMService) ServiceInfo() llm.ServiceInfo {
	return llm.ServiceInfo{Service: "Azure OpenAI", ModelAvailable: true, DeploymentName: "test-gpt"}
}

// newTestServer wires a server over real storage, bleve, and a mock embedder
// in a temp dir. client may be nil to run without a completion backend.
func newTestServer(t *testing.T, client llm.Client) *Server {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewSQLiteStorage(dir + "/db.sqlite")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	embedder := embedding.NewMockEmbedder(4)
	t.Cleanup(func() { embedder.Close() })
	kwIdx, err := keyword.NewBleveIndex(dir + "/bleve")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { kwIdx.Close() })
	vc := cache.NewVectorCache()

	cfg := &config.Config{
		Server:    config.ServerConfig{Host: "127.0.0.1", Port: 8080},
		Storage:   config.StorageConfig{DatabasePath: dir + "/db.sqlite", BleveIndexPath: dir + "/bleve"},
		Embedding: config.EmbeddingConfig{Provider: "mock", Dimensions: 4},
		Cache:     config.CacheConfig{IndexType: "flat"},
		Search: config.SearchConfig{ChunkSize: 10, ChunkOverlap: 2, TopKCandidates: 20,
			KeywordWeight: 0.5, SemanticWeight: 0.5, SnippetLength: 200},
	}
	engine := search.NewEngine(store, embedder, vc, kwIdx, &cfg.Search)
	idx := indexer.NewIndexer(store, embedder, vc, kwIdx, &cfg.Search, extract.NewExtractor())
	answerer := retrieval.NewAnswerer(vc, embedder, client, store)
	return NewServer(answerer, engine, idx, store, vc, nil, cfg, zap.NewNop())
}

func indexTestDocument(t *testing.T, srv *Server, id, title, content string) {
	t.Helper()
	input := &models.DocumentInput{ID: id, Title: title, Content: content}
	if err := srv.indexer.IndexDocument(context.Background(), input); err != nil {
		t.Fatal(err)
	}
}

func jsonRequest(t *testing.T, method, path string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(method, path, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// withURLParam injects a chi URL parameter for direct handler invocation.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleAsk_NoCompletionBackend(t *testing.T) {
	srv := newTestServer(t, nil)
	indexTestDocument(t, srv, "d1", "Guide", "The deployment guide covers rollout and rollback procedures.")

	r := jsonRequest(t, http.MethodPost, "/api/v1/ask",
		map[string]string{"question": "What does the guide cover?", "document_id": "d1"})
	w := httptest.NewRecorder()
	srv.handleAsk(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var answer models.Answer
	if err := json.NewDecoder(w.Body).Decode(&answer); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(answer.Answer, "not available") {
		t.Errorf("answer: got %q, want service-unavailable text", answer.Answer)
	}
	if answer.Confidence != 0 {
		t.Errorf("confidence: got %f, want 0", answer.Confidence)
	}
	if answer.Sources == nil || len(answer.Sources) != 0 {
		t.Errorf("sources: got %v, want empty", answer.Sources)
	}
}

func TestHandleAsk_WithCompletion(t *testing.T) {
	srv := newTestServer(t, &stubClient{text: "Rollout and rollback procedures."})
	indexTestDocument(t, srv, "d1", "Guide", "The deployment guide covers rollout and rollback procedures.")

	r := jsonRequest(t, http.MethodPost, "/api/v1/ask",
		map[string]string{"question": "What does the guide cover?", "document_id": "d1"})
	w := httptest.NewRecorder()
	srv.handleAsk(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var answer models.Answer
	if err := json.NewDecoder(w.Body).Decode(&answer); err != nil {
		t.Fatal(err)
	}
	if answer.Answer != "Rollout and rollback procedures." {
		t.Errorf("answer: got %q", answer.Answer)
	}
	if answer.ModelUsed != "test-gpt" {
		t.Errorf("model_used: got %q", answer.ModelUsed)
	}
	if answer.ChunksRetrieved < 1 {
		t.Errorf("chunks_retrieved: got %d, want >= 1", answer.ChunksRetrieved)
	}
	if answer.Confidence < 0 || answer.Confidence > 1 {
		t.Errorf("confidence: got %f, want within [0, 1]", answer.Confidence)
	}
}

func TestHandleAsk_InvalidBody(t *testing.T) {
	srv := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	srv.handleAsk(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleAsk_MissingQuestion(t *testing.T) {
	srv := newTestServer(t, nil)
	r := jsonRequest(t, http.MethodPost, "/api/v1/ask", map[string]string{"document_id": "d1"})
	w := httptest.NewRecorder()
	srv.handleAsk(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleSearch(t *testing.T) {
	srv := newTestServer(t, nil)
	indexTestDocument(t, srv, "d1", "Hello", "hello world greeting text")

	r := jsonRequest(t, http.MethodPost, "/api/v1/search", map[string]string{"query": "hello"})
	w := httptest.NewRecorder()
	srv.handleSearch(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var out models.SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Total < 1 {
		t.Errorf("total: got %d, want >= 1", out.Total)
	}
}

func TestHandleSearch_EmptyQuery(t *testing.T) {
	srv := newTestServer(t, nil)
	r := jsonRequest(t, http.MethodPost, "/api/v1/search", map[string]string{"query": ""})
	w := httptest.NewRecorder()
	srv.handleSearch(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleListDocuments(t *testing.T) {
	srv := newTestServer(t, nil)
	indexTestDocument(t, srv, "d1", "First", "first document body")
	indexTestDocument(t, srv, "d2", "Second", "second document body")

	r := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	w := httptest.NewRecorder()
	srv.handleListDocuments(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var out struct {
		Documents []*models.Document `json:"documents"`
		Total     int64              `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Total != 2 {
		t.Errorf("total: got %d, want 2", out.Total)
	}
	if len(out.Documents) != 2 {
		t.Errorf("documents: got %d, want 2", len(out.Documents))
	}
}

func TestHandleListDocuments_Paginated(t *testing.T) {
	srv := newTestServer(t, nil)
	indexTestDocument(t, srv, "d1", "First", "first document body")
	indexTestDocument(t, srv, "d2", "Second", "second document body")

	r := httptest.NewRequest(http.MethodGet, "/api/v1/documents?limit=1", nil)
	w := httptest.NewRecorder()
	srv.handleListDocuments(w, r)
	var out struct {
		Documents []*models.Document `json:"documents"`
		Total     int64              `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Documents) != 1 {
		t.Errorf("documents: got %d, want 1", len(out.Documents))
	}
	if out.Total != 2 {
		t.Errorf("total: got %d, want 2", out.Total)
	}
}

func TestHandleCreateDocument_JSON(t *testing.T) {
	srv := newTestServer(t, nil)
	r := jsonRequest(t, http.MethodPost, "/api/v1/documents",
		models.DocumentInput{ID: "d1", Title: "Notes", Content: "meeting notes from april"})
	w := httptest.NewRecorder()
	srv.handleCreateDocument(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	doc, err := srv.storage.GetDocument(context.Background(), "d1")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Notes" {
		t.Errorf("title: got %q", doc.Title)
	}
	if !srv.cache.IsCached("d1") {
		t.Error("expected document in vector cache after ingest")
	}
}

func TestHandleCreateDocument_GeneratesID(t *testing.T) {
	srv := newTestServer(t, nil)
	r := jsonRequest(t, http.MethodPost, "/api/v1/documents",
		models.DocumentInput{Title: "Notes", Content: "body text"})
	w := httptest.NewRecorder()
	srv.handleCreateDocument(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var out map[string]string
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["id"] == "" {
		t.Error("expected generated document id in response")
	}
}

func TestHandleCreateDocument_MissingContent(t *testing.T) {
	srv := newTestServer(t, nil)
	r := jsonRequest(t, http.MethodPost, "/api/v1/documents", models.DocumentInput{Title: "Empty"})
	w := httptest.NewRecorder()
	srv.handleCreateDocument(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleCreateDocument_Upload(t *testing.T) {
	srv := newTestServer(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte("Uploaded meeting notes about the quarterly roadmap.")); err != nil {
		t.Fatal(err)
	}
	if err := mw.WriteField("id", "up1"); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.handleCreateDocument(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	doc, err := srv.storage.GetDocument(context.Background(), "up1")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "notes.txt" {
		t.Errorf("title: got %q, want filename", doc.Title)
	}
	if doc.Source != "upload" {
		t.Errorf("source: got %q, want upload", doc.Source)
	}
	if !strings.Contains(doc.Content, "quarterly roadmap") {
		t.Errorf("content: got %q", doc.Content)
	}
}

func TestHandleCreateDocument_UploadMissingFile(t *testing.T) {
	srv := newTestServer(t, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("title", "no file"); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.handleCreateDocument(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleGetDocument(t *testing.T) {
	srv := newTestServer(t, nil)
	indexTestDocument(t, srv, "d1", "First", "first document body")

	r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/documents/d1", nil), "id", "d1")
	w := httptest.NewRecorder()
	srv.handleGetDocument(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var doc models.Document
	if err := json.NewDecoder(w.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if doc.ID != "d1" {
		t.Errorf("id: got %q", doc.ID)
	}
}

func TestHandleGetDocument_NotFound(t *testing.T) {
	srv := newTestServer(t, nil)
	r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/documents/nope", nil), "id", "nope")
	w := httptest.NewRecorder()
	srv.handleGetDocument(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestHandleDeleteDocument(t *testing.T) {
	srv := newTestServer(t, nil)
	indexTestDocument(t, srv, "d1", "First", "first document body")

	r := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/documents/d1", nil), "id", "d1")
	w := httptest.NewRecorder()
	srv.handleDeleteDocument(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	if _, err := srv.storage.GetDocument(context.Background(), "d1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected document deleted, got err %v", err)
	}
	if srv.cache.IsCached("d1") {
		t.Error("expected document evicted from vector cache")
	}
}

func TestHandleCacheStats(t *testing.T) {
	srv := newTestServer(t, nil)
	indexTestDocument(t, srv, "d1", "First", "first document body")

	r := httptest.NewRequest(http.MethodGet, "/api/v1/cache/stats", nil)
	w := httptest.NewRecorder()
	srv.handleCacheStats(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var stats models.CacheStats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalDocuments != 1 {
		t.Errorf("total_documents: got %d, want 1", stats.TotalDocuments)
	}
	if stats.TotalChunks < 1 {
		t.Errorf("total_chunks: got %d, want >= 1", stats.TotalChunks)
	}
}

func TestHandleCacheDocuments(t *testing.T) {
	srv := newTestServer(t, nil)
	indexTestDocument(t, srv, "d1", "First", "first document body")

	r := httptest.NewRequest(http.MethodGet, "/api/v1/cache/documents", nil)
	w := httptest.NewRecorder()
	srv.handleCacheDocuments(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out struct {
		Documents []map[string]interface{} `json:"documents"`
		Total     int                      `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Total != 1 || len(out.Documents) != 1 {
		t.Fatalf("got %d documents, want 1", len(out.Documents))
	}
	if out.Documents[0]["title"] != "First" {
		t.Errorf("title: got %v", out.Documents[0]["title"])
	}
}

func TestHandleCacheRefresh(t *testing.T) {
	srv := newTestServer(t, nil)
	indexTestDocument(t, srv, "d1", "First", "first document body")
	indexTestDocument(t, srv, "d2", "Second", "second document body")
	srv.cache.Clear()

	r := httptest.NewRequest(http.MethodPost, "/api/v1/cache/refresh", nil)
	w := httptest.NewRecorder()
	srv.handleCacheRefresh(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var out struct {
		Status          string `json:"status"`
		DocumentsLoaded int    `json:"documents_loaded"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.DocumentsLoaded != 2 {
		t.Errorf("documents_loaded: got %d, want 2", out.DocumentsLoaded)
	}
	if !srv.cache.IsCached("d1") || !srv.cache.IsCached("d2") {
		t.Error("expected both documents cached after refresh")
	}
}

func TestHandleCacheClear(t *testing.T) {
	srv := newTestServer(t, nil)
	indexTestDocument(t, srv, "d1", "First", "first document body")

	r := httptest.NewRequest(http.MethodDelete, "/api/v1/cache", nil)
	w := httptest.NewRecorder()
	srv.handleCacheClear(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if srv.cache.Stats().TotalDocuments != 0 {
		t.Error("expected empty cache after clear")
	}
}

func TestHandleCacheEvict(t *testing.T) {
	srv := newTestServer(t, nil)
	indexTestDocument(t, srv, "d1", "First", "first document body")

	r := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/cache/d1", nil), "id", "d1")
	w := httptest.NewRecorder()
	srv.handleCacheEvict(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	if srv.cache.IsCached("d1") {
		t.Error("expected document evicted")
	}
}

func TestHandleCacheEvict_NotCached(t *testing.T) {
	srv := newTestServer(t, nil)
	r := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/cache/nope", nil), "id", "nope")
	w := httptest.NewRecorder()
	srv.handleCacheEvict(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestHandleLLMInfo_NotConfigured(t *testing.T) {
	srv := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodGet, "/api/v1/llm/info", nil)
	w := httptest.NewRecorder()
	srv.handleLLMInfo(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var info llm.ServiceInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if info.Service != "Azure OpenAI" {
		t.Errorf("service: got %q", info.Service)
	}
	if info.ModelAvailable {
		t.Error("expected model_available false without a configured client")
	}
}

func TestHandleLLMInfo_Configured(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.llm = stubLLMService{}
	r := httptest.NewRequest(http.MethodGet, "/api/v1/llm/info", nil)
	w := httptest.NewRecorder()
	srv.handleLLMInfo(w, r)
	var info llm.ServiceInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatal(err)
	}
	if !info.ModelAvailable || info.DeploymentName != "test-gpt" {
		t.Errorf("info: got %+v", info)
	}
}

func TestHandleLLMTest_NotConfigured(t *testing.T) {
	srv := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/llm/test", nil)
	w := httptest.NewRecorder()
	srv.handleLLMTest(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var status llm.ConnectionStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Status != "error" {
		t.Errorf("status: got %q, want error", status.Status)
	}
}

func TestHandleLLMTest_Configured(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.llm = stubLLMService{}
	r := httptest.NewRequest(http.MethodPost, "/api/v1/llm/test", nil)
	w := httptest.NewRecorder()
	srv.handleLLMTest(w, r)
	var status llm.ConnectionStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Status != "success" {
		t.Errorf("status: got %q, want success", status.Status)
	}
}

func TestHandleStatus(t *testing.T) {
	srv := newTestServer(t, nil)
	indexTestDocument(t, srv, "d1", "First", "first document body")

	r := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	srv.handleStatus(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body: %s", w.Code, w.Body.String())
	}
	var out struct {
		Documents      int64                  `json:"documents"`
		Chunks         int64                  `json:"chunks"`
		Cache          models.CacheStats      `json:"cache"`
		DiskUsageBytes *int64                 `json:"disk_usage_bytes"`
		Config         map[string]interface{} `json:"config"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Documents != 1 {
		t.Errorf("documents: got %d, want 1", out.Documents)
	}
	if out.Chunks < 1 {
		t.Errorf("chunks: got %d, want >= 1", out.Chunks)
	}
	if out.Cache.TotalDocuments != 1 {
		t.Errorf("cache.total_documents: got %d, want 1", out.Cache.TotalDocuments)
	}
	if out.DiskUsageBytes == nil || *out.DiskUsageBytes < 1 {
		t.Errorf("disk_usage_bytes: got %v, want >= 1", out.DiskUsageBytes)
	}
	if out.Config["embedding_provider"] != "mock" {
		t.Errorf("config.embedding_provider: got %v", out.Config["embedding_provider"])
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.handleHealth(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t, nil)
	router := srv.routes()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /health: got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("GET /api/v1/nope: got %d, want 404", w.Code)
	}
}
