package ports

import (
	"context"

	"github.com/jhoicas/intellicrm-core/internal/domain/entity"
)

// SentimentResult resultado estructurado del análisis de sentimiento.
type SentimentResult struct {
	Sentiment entity.Sentiment
}

// SentimentService define el puerto de salida hacia el colaborador de análisis
// de sentimiento. Cualquier adaptador (Gemini, mock) debe implementar esta
// interfaz. El contrato es best-effort: un resultado nil sin error significa
// "sin clasificación", y el caller debe tolerar errores sin abortar la
// creación del comentario.
type SentimentService interface {
	// AnalyzeRemark clasifica el texto de un comentario. El contexto debe
	// llevar timeout para evitar bloqueos en la llamada externa.
	AnalyzeRemark(ctx context.Context, text string) (*SentimentResult, error)
}
