package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenglaafi-be/internal/apperrors"
	"tenglaafi-be/internal/dto"
	"tenglaafi-be/internal/pkg/logger"
	"tenglaafi-be/internal/pkg/serverutils"
	"tenglaafi-be/pkg/store"
)

type stubQueryService struct {
	answer *store.Answer
	err    error
}

func (s *stubQueryService) Answer(ctx context.Context, question string, topK int) (*store.Answer, error) {
	return s.answer, s.err
}

func (s *stubQueryService) BatchAnswer(ctx context.Context, questions []string, topK int) (*dto.BatchQueryResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.BatchQueryResponse{}, nil
}

func (s *stubQueryService) SimilarTopics(ctx context.Context, question string, limit int) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []string{"En savoir plus sur: Paludisme"}, nil
}

func (s *stubQueryService) ClearCache(ctx context.Context) int { return 4 }

func (s *stubQueryService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.StatsResponse{DocumentCount: 12}, nil
}

func newTestApp(t *testing.T, svc *stubQueryService) *fiber.App {
	t.Helper()

	app := fiber.New()
	log := logger.NewZapLogger(t.TempDir()+"/test.log", false)
	app.Use(serverutils.ErrorHandlerMiddleware(log))

	NewQueryController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestQueryReturnsAnswerWithSources(t *testing.T) {
	svc := &stubQueryService{answer: &store.Answer{
		Text:    "Le neem est efficace.",
		Sources: []store.Source{{Title: "Neem", Similarity: 0.9}},
	}}
	app := newTestApp(t, svc)

	resp := postJSON(t, app, "/api/query/v1", dto.QueryRequest{Question: "comment soigner le paludisme ?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.QueryResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Le neem est efficace.", body.Answer)
	require.Len(t, body.Sources, 1)
	assert.Equal(t, "Neem", body.Sources[0].Title)
}

func TestQueryOmitsSourcesWhenOptedOut(t *testing.T) {
	svc := &stubQueryService{answer: &store.Answer{
		Text:    "Réponse.",
		Sources: []store.Source{{Title: "Neem"}},
	}}
	app := newTestApp(t, svc)

	noSources := false
	resp := postJSON(t, app, "/api/query/v1", dto.QueryRequest{
		Question:       "comment soigner le paludisme ?",
		IncludeSources: &noSources,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.QueryResponse
	decodeBody(t, resp, &body)
	assert.Empty(t, body.Sources)
}

func TestQueryMapsDomainErrorsToStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid query", err: apperrors.InvalidQuery("too short", nil), wantStatus: http.StatusBadRequest},
		{name: "embedding failure", err: apperrors.EmbeddingFailure("provider down", nil), wantStatus: http.StatusBadGateway},
		{name: "generation failure", err: apperrors.GenerationFailure("llm down", nil), wantStatus: http.StatusBadGateway},
		{name: "index unavailable", err: apperrors.IndexUnavailable("db down", nil), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, &stubQueryService{err: tt.err})

			resp := postJSON(t, app, "/api/query/v1", dto.QueryRequest{Question: "question"})
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestSuggestionsEndpoint(t *testing.T) {
	app := newTestApp(t, &stubQueryService{})

	req := httptest.NewRequest(http.MethodGet, "/api/query/v1/suggestions?question=paludisme&limit=3", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.SimilarTopicsResponse
	decodeBody(t, resp, &body)
	require.Len(t, body.Suggestions, 1)
	assert.Contains(t, body.Suggestions[0], "En savoir plus sur: ")
}

func TestClearCacheEndpoint(t *testing.T) {
	app := newTestApp(t, &stubQueryService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/query/v1/cache", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.ClearCacheResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, 4, body.Cleared)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t, &stubQueryService{})

	req := httptest.NewRequest(http.MethodGet, "/api/query/v1/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
