package entity

import "time"

// Sentiment clasificación de sentimiento de un comentario, producida por el
// colaborador externo de análisis. Puede faltar: el análisis es best-effort.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Remark comentario libre sobre un cliente. Se crea directamente o como efecto
// secundario al registrar pagos y facturas.
type Remark struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customerId"`
	Remark     string     `json:"remark"`
	Timestamp  time.Time  `json:"timestamp"`
	User       string     `json:"user"`
	Sentiment  *Sentiment `json:"sentiment,omitempty"`
}
