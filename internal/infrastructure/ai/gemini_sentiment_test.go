package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/intellicrm-core/internal/domain/entity"
)

// fakeGemini levanta un servidor httptest que responde como la API de Gemini
// con el JSON de sentimiento indicado.
func fakeGemini(t *testing.T, modelJSON string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents, "el request debe llevar el texto del comentario")
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)

		w.WriteHeader(status)
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": modelJSON}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

// newTestService apunta el adaptador al servidor fake.
func newTestService(srv *httptest.Server) *GeminiService {
	svc := NewGeminiService("test-key", "gemini-1.5-flash")
	// El modelo y la key se interpolan en la URL pero el fake los ignora.
	svc.baseURL = srv.URL + "/%s?key=%s"
	return svc
}

func TestAnalyzeRemark_ClasificaSentimiento(t *testing.T) {
	tests := []struct {
		name      string
		modelJSON string
		want      entity.Sentiment
	}{
		{"positivo", `{"sentiment":"Positive"}`, entity.SentimentPositive},
		{"neutral", `{"sentiment":"Neutral"}`, entity.SentimentNeutral},
		{"negativo", `{"sentiment":"Negative"}`, entity.SentimentNegative},
		{"tolerante a minúsculas", `{"sentiment":"negative"}`, entity.SentimentNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeGemini(t, tt.modelJSON, http.StatusOK)
			defer srv.Close()

			res, err := newTestService(srv).AnalyzeRemark(context.Background(), "Cliente al día con sus pagos")
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tt.want, res.Sentiment)
		})
	}
}

func TestAnalyzeRemark_SinAPIKeyDevuelveNil(t *testing.T) {
	svc := NewGeminiService("", "gemini-1.5-flash")

	res, err := svc.AnalyzeRemark(context.Background(), "cualquier texto")
	require.NoError(t, err, "sin API key no es un fallo, es ausencia de clasificación")
	assert.Nil(t, res)
}

func TestAnalyzeRemark_ValorFueraDeRangoDevuelveNil(t *testing.T) {
	srv := fakeGemini(t, `{"sentiment":"Ecstatic"}`, http.StatusOK)
	defer srv.Close()

	res, err := newTestService(srv).AnalyzeRemark(context.Background(), "texto")
	require.NoError(t, err)
	assert.Nil(t, res, "un sentimiento fuera del conjunto esperado se descarta")
}

func TestAnalyzeRemark_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	res, err := newTestService(srv).AnalyzeRemark(context.Background(), "texto")
	require.Error(t, err)
	assert.Nil(t, res)
}
