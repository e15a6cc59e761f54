package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/intellicrm-core/internal/application/crm"
	"github.com/jhoicas/intellicrm-core/internal/application/ports"
	"github.com/jhoicas/intellicrm-core/internal/domain/repository"
	infraai "github.com/jhoicas/intellicrm-core/internal/infrastructure/ai"
	"github.com/jhoicas/intellicrm-core/internal/infrastructure/kvstore"
	"github.com/jhoicas/intellicrm-core/pkg/config"
	"github.com/jhoicas/intellicrm-core/pkg/logger"
	"github.com/jhoicas/intellicrm-core/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	var kv repository.KeyValueStore
	switch cfg.Storage.Driver {
	case "memory":
		kv = kvstore.NewMemory()
	default:
		kv, err = kvstore.NewSQLite(cfg.Storage.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Storage.Path).Msg("abrir almacén sqlite")
		}
	}
	defer kv.Close()

	// Colaborador de sentimiento: solo si hay API key; sin ella los
	// comentarios se guardan sin clasificar.
	var sentiment ports.SentimentService
	if cfg.AI.GeminiAPIKey != "" {
		sentiment = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	} else {
		log.Warn().Msg("GEMINI_API_KEY no configurado; análisis de sentimiento desactivado")
	}

	met := metrics.New(prometheus.NewRegistry())

	store, err := crm.New(kv, crm.Options{
		Namespace:    cfg.Storage.Namespace,
		LatencyScale: cfg.Latency.Scale,
		Sentiment:    sentiment,
		Logger:       log,
		Metrics:      met,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar el store")
	}

	ctx := context.Background()

	customers, err := store.ListCustomers(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar clientes")
	}
	sales, err := store.ListSales(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar ventas")
	}
	tasks, err := store.ListTasks(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listar tareas")
	}

	log.Info().
		Int("customers", len(customers)).
		Int("sales", len(sales)).
		Int("tasks", len(tasks)).
		Msg("resumen del almacén")

	for _, c := range customers {
		log.Info().
			Str("id", c.ID).
			Str("name", c.Name).
			Str("tier", string(c.Tier)).
			Str("balance", c.OutstandingBalance.String()).
			Msg("cliente")
	}
}
