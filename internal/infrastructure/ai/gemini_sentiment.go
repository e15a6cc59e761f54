package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/intellicrm-core/internal/application/ports"
	"github.com/jhoicas/intellicrm-core/internal/domain/entity"
)

// Verificar en tiempo de compilación que GeminiService implementa SentimentService.
var _ ports.SentimentService = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// systemPrompt define el rol del modelo y el formato de salida.
	// Usar response_mime_type=application/json obliga a Gemini a devolver JSON puro,
	// eliminando la necesidad de limpiar bloques de markdown.
	systemPrompt = `Eres un analista de relaciones comerciales. Dado el texto de un comentario
sobre un cliente, devuelve ÚNICAMENTE un objeto JSON (sin texto adicional) con la estructura exacta:
{
  "sentiment": "<Positive | Neutral | Negative>"
}

Reglas:
- Positive: el comentario refleja satisfacción, pago puntual o buena relación.
- Negative: refleja queja, mora, riesgo o fricción con el cliente.
- Neutral: registro factual sin carga emocional (pagos, facturas, recordatorios).`
)

// GeminiService adaptador que implementa SentimentService llamando a la API
// REST de Google Gemini. Usa únicamente la librería estándar de Go (net/http)
// para no añadir dependencias externas.
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"` // "application/json" → JSON puro garantizado
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// sentimentPayload es el JSON que esperamos recibir del modelo.
type sentimentPayload struct {
	Sentiment string `json:"sentiment"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// AnalyzeRemark clasifica el sentimiento del texto de un comentario.
// Devuelve (nil, nil) cuando no hay API key configurada: el análisis es
// best-effort y la ausencia de clave no debe tratarse como fallo.
func (s *GeminiService) AnalyzeRemark(ctx context.Context, text string) (*ports.SentimentResult, error) {
	if s.apiKey == "" {
		return nil, nil
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: text}},
			},
		},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.2, // baja temperatura para respuestas más deterministas
			MaxOutputTokens:  64,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Intentar extraer el mensaje de error de Gemini
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}

	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	rawJSON := strings.TrimSpace(gemResp.Candidates[0].Content.Parts[0].Text)

	var classification sentimentPayload
	if err := json.Unmarshal([]byte(rawJSON), &classification); err != nil {
		return nil, fmt.Errorf("AI: respuesta del modelo no es JSON válido: %w (respuesta: %s)", err, rawJSON)
	}

	sentiment, ok := normalizeSentiment(classification.Sentiment)
	if !ok {
		// Valor fuera del conjunto esperado: mejor sin clasificación que una inventada.
		return nil, nil
	}

	return &ports.SentimentResult{Sentiment: sentiment}, nil
}

// normalizeSentiment fuerza el valor al conjunto {Positive, Neutral, Negative},
// tolerando diferencias de mayúsculas.
func normalizeSentiment(raw string) (entity.Sentiment, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive":
		return entity.SentimentPositive, true
	case "neutral":
		return entity.SentimentNeutral, true
	case "negative":
		return entity.SentimentNegative, true
	default:
		return "", false
	}
}
