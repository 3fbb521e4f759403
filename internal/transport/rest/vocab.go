package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tuantran92/spelling-bee/internal/adapter/postgres/vocab"
	"github.com/tuantran92/spelling-bee/internal/domain"
	"github.com/tuantran92/spelling-bee/internal/vocabimport"
)

// vocabRepo defines the minimal interface needed by VocabHandler.
type vocabRepo interface {
	ListFiltered(ctx context.Context, f vocab.Filter) ([]domain.VocabWord, error)
	ReplaceAll(ctx context.Context, words []domain.VocabWord) error
}

// importNotifier lets the engine react to a finished import.
type importNotifier interface {
	NotifyVocabularyImported(ctx context.Context, profileID uuid.UUID) error
}

// VocabHandler serves the vocabulary sheet endpoints.
type VocabHandler struct {
	repo   vocabRepo
	engine importNotifier
	log    *slog.Logger
}

// NewVocabHandler creates a VocabHandler.
func NewVocabHandler(repo vocabRepo, engine importNotifier, logger *slog.Logger) *VocabHandler {
	return &VocabHandler{repo: repo, engine: engine, log: logger.With("handler", "vocab")}
}

// List handles GET /v1/words. Supports ?category= and ?difficulty= filters.
func (h *VocabHandler) List(w http.ResponseWriter, r *http.Request) {
	f := vocab.Filter{
		Category:   r.URL.Query().Get("category"),
		Difficulty: r.URL.Query().Get("difficulty"),
	}

	words, err := h.repo.ListFiltered(r.Context(), f)
	if err != nil {
		h.log.ErrorContext(r.Context(), "list vocab failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toWordList(words))
}

type importResponse struct {
	Rows     int      `json:"rows"`
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped,omitempty"`
}

// maxSheetSize bounds uploaded workbook size (8 MiB).
const maxSheetSize = 8 << 20

// Import handles POST /v1/imports: a multipart upload with a "sheet" file
// field. The uploaded sheet replaces the vocabulary wholesale; the caller's
// profile gets its records backfilled and the first-import badge checked.
func (h *VocabHandler) Import(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxSheetSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, _, err := r.FormFile("sheet")
	if err != nil {
		writeError(w, http.StatusBadRequest, "sheet file is required")
		return
	}
	defer file.Close()

	res, err := vocabimport.Parse(file)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if len(res.Words) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "sheet contains no words")
		return
	}

	if err := h.repo.ReplaceAll(r.Context(), res.Words); err != nil {
		h.log.ErrorContext(r.Context(), "vocab replace failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := h.engine.NotifyVocabularyImported(r.Context(), profileID); err != nil {
		h.log.ErrorContext(r.Context(), "import notification failed",
			slog.String("profile_id", profileID.String()),
			slog.String("error", err.Error()),
		)
	}

	h.log.InfoContext(r.Context(), "vocabulary imported",
		slog.String("profile_id", profileID.String()),
		slog.Int("words", len(res.Words)),
		slog.Int("skipped", len(res.Skipped)),
	)

	writeJSON(w, http.StatusCreated, importResponse{
		Rows:     res.Rows,
		Imported: len(res.Words),
		Skipped:  res.Skipped,
	})
}
