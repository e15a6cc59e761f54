package crm

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/intellicrm-core/internal/domain"
	"github.com/jhoicas/intellicrm-core/internal/domain/entity"
)

// AddRemark crea un comentario sobre un cliente. Antes de guardarlo consulta
// al colaborador de sentimiento; si este falla o no clasifica, el comentario
// se guarda igual con el sentimiento sin definir — el análisis nunca bloquea
// la creación.
func (s *Store) AddRemark(ctx context.Context, customerID, text string) (*entity.Remark, error) {
	if customerID == "" || text == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.begin(ctx, "remarks.add", 200*time.Millisecond); err != nil {
		return nil, err
	}

	// La llamada externa ocurre fuera del lock: puede suspender un rato largo
	// y no toca las colecciones.
	var sentiment *entity.Sentiment
	if s.sentiment != nil {
		res, err := s.sentiment.AnalyzeRemark(ctx, text)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("análisis de sentimiento fallido; comentario sin clasificar")
		case res != nil:
			v := res.Sentiment
			sentiment = &v
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := entity.Remark{
		ID:         s.ids.next(kindRemark),
		CustomerID: customerID,
		Remark:     text,
		Timestamp:  s.now(),
		User:       authorLabel,
		Sentiment:  sentiment,
	}
	s.remarks = append([]entity.Remark{r}, s.remarks...)

	if err := saveCollection(s, keyRemarks, s.remarks); err != nil {
		return nil, err
	}
	if err := s.saveIDs(); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRemarksForCustomer filtra los comentarios de un cliente, ordenados por
// timestamp descendente (más recientes primero).
func (s *Store) ListRemarksForCustomer(ctx context.Context, customerID string) ([]entity.Remark, error) {
	if err := s.begin(ctx, "remarks.list_for_customer", 200*time.Millisecond); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Remark, 0)
	for _, r := range s.remarks {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}
