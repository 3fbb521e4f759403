package rest

import (
	"log/slog"
	"net/http"

	"github.com/tuantran92/spelling-bee/internal/config"
	"github.com/tuantran92/spelling-bee/internal/transport/middleware"
)

// NewRouter mounts all REST endpoints behind the shared middleware chain.
func NewRouter(
	logger *slog.Logger,
	corsCfg config.CORSConfig,
	health *HealthHandler,
	prog *ProgressHandler,
	voc *VocabHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /health/live", health.Live)
	mux.HandleFunc("GET /health/ready", health.Ready)

	mux.HandleFunc("POST /v1/attempts", prog.ReportAttempt)

	mux.HandleFunc("GET /v1/review/queue", prog.DueWords)
	mux.HandleFunc("POST /v1/review/session", prog.StartReviewSession)
	mux.HandleFunc("GET /v1/review/session", prog.CurrentReviewWord)
	mux.HandleFunc("POST /v1/review/session/answer", prog.AnswerReviewCard)

	mux.HandleFunc("GET /v1/suggestions", prog.GetSuggestions)
	mux.HandleFunc("POST /v1/suggestions/session", prog.StartSuggestionSession)
	mux.HandleFunc("POST /v1/suggestions/session/advance", prog.AdvanceSuggestionSession)

	mux.HandleFunc("POST /v1/visits", prog.RecordVisit)
	mux.HandleFunc("POST /v1/minutes", prog.AddStudyMinutes)
	mux.HandleFunc("POST /v1/exams", prog.RecordExam)
	mux.HandleFunc("GET /v1/stats", prog.GetStats)

	mux.HandleFunc("GET /v1/words", voc.List)
	mux.HandleFunc("POST /v1/imports", voc.Import)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.CORS(corsCfg),
		middleware.Profile,
		middleware.Logger(logger),
	)

	return chain(mux)
}
