package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/doelab/doe-gateway/internal/config"
	"github.com/doelab/doe-gateway/internal/delivery"
	"github.com/doelab/doe-gateway/internal/domain"
	"github.com/doelab/doe-gateway/internal/infra"
	"github.com/doelab/doe-gateway/internal/metrics"
)

func main() {

	// ENV
	if err := godotenv.Load(); err != nil {
		log.Println("WARN: no .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	// LOGGER
	zl, _ := zap.NewProduction()
	defer zl.Sync()
	sl := zl.Sugar()

	// ADAPTERS
	oracle := infra.NewOracleClient(cfg.OracleURL, cfg.OracleAPIKey)
	stt := infra.NewWhisperSTTService(cfg.WhisperBaseURL, cfg.WhisperAPIKey, cfg.WhisperModel)

	scratch, err := infra.NewFileScratchStore(cfg.ScratchDir)
	if err != nil {
		panic("scratch store: " + err.Error())
	}

	// SERVICES
	assistantService := domain.NewAssistantService(oracle)
	transcribeService := domain.NewTranscribeService(stt, scratch, sl)

	// HANDLERS
	hAssistant := delivery.NewAssistantHandler(assistantService, sl)
	hSTT := delivery.NewSTTHandler(transcribeService, sl)
	hStatic := delivery.NewStaticHandler(cfg.FrontendDir)

	// METRICS
	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)

	// ROUTER
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(appMetrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, hAssistant, hSTT, hStatic)

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	sl.Infow("server started", "port", cfg.Port)

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		sl.Errorw("server crashed", "error", err)
	}
}
