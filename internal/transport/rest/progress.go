package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tuantran92/spelling-bee/internal/domain"
	"github.com/tuantran92/spelling-bee/internal/service/progress"
	"github.com/tuantran92/spelling-bee/pkg/ctxutil"
)

// progressService defines the minimal interface needed by ProgressHandler.
type progressService interface {
	ReportAttempt(ctx context.Context, profileID uuid.UUID, word string, correct bool) error
	DueWords(ctx context.Context, profileID uuid.UUID) ([]domain.VocabWord, error)
	StartReviewSession(ctx context.Context, profileID uuid.UUID) ([]domain.VocabWord, error)
	CurrentReviewWord(ctx context.Context, profileID uuid.UUID) (domain.VocabWord, bool, error)
	AnswerReviewCard(ctx context.Context, profileID uuid.UUID, correct bool) (int, error)
	GetSuggestions(ctx context.Context, profileID uuid.UUID) (progress.Suggestions, error)
	StartSuggestionSession(ctx context.Context, profileID uuid.UUID, list progress.SuggestionList) ([]domain.VocabWord, error)
	AdvanceSuggestionSession(ctx context.Context, profileID uuid.UUID) (int, error)
	RecordVisit(ctx context.Context, profileID uuid.UUID) error
	AddStudyMinutes(ctx context.Context, profileID uuid.UUID, minutes int) error
	RecordExamResult(ctx context.Context, profileID uuid.UUID, correct, total int) (domain.ExamResult, error)
	GetStats(ctx context.Context, profileID uuid.UUID) (progress.Stats, error)
}

// ProgressHandler serves the spaced-repetition REST endpoints.
type ProgressHandler struct {
	svc progressService
	log *slog.Logger
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(svc progressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{svc: svc, log: logger.With("handler", "progress")}
}

type attemptRequest struct {
	Word    string `json:"word"`
	Correct bool   `json:"correct"`
}

type wordResponse struct {
	Word       string `json:"word"`
	Meaning    string `json:"meaning"`
	Example    string `json:"example,omitempty"`
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

type wordListResponse struct {
	Words []wordResponse `json:"words"`
}

type suggestionsResponse struct {
	Difficult []wordResponse `json:"difficult"`
	New       []wordResponse `json:"new"`
}

type remainingResponse struct {
	Remaining int `json:"remaining"`
}

func toWordResponse(w domain.VocabWord) wordResponse {
	return wordResponse{
		Word:       w.Word,
		Meaning:    w.Meaning,
		Example:    w.Example,
		Category:   w.Category,
		Difficulty: w.Difficulty,
	}
}

func toWordList(words []domain.VocabWord) wordListResponse {
	out := wordListResponse{Words: make([]wordResponse, len(words))}
	for i, w := range words {
		out.Words[i] = toWordResponse(w)
	}
	return out
}

// ReportAttempt handles POST /v1/attempts.
func (h *ProgressHandler) ReportAttempt(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	var req attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Word == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}

	if err := h.svc.ReportAttempt(r.Context(), profileID, req.Word, req.Correct); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DueWords handles GET /v1/review/queue.
func (h *ProgressHandler) DueWords(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	words, err := h.svc.DueWords(r.Context(), profileID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWordList(words))
}

// StartReviewSession handles POST /v1/review/session.
func (h *ProgressHandler) StartReviewSession(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	words, err := h.svc.StartReviewSession(r.Context(), profileID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWordList(words))
}

// CurrentReviewWord handles GET /v1/review/session.
func (h *ProgressHandler) CurrentReviewWord(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	word, active, err := h.svc.CurrentReviewWord(r.Context(), profileID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !active {
		writeError(w, http.StatusNotFound, "no active review session")
		return
	}
	writeJSON(w, http.StatusOK, toWordResponse(word))
}

type answerRequest struct {
	Correct bool `json:"correct"`
}

// AnswerReviewCard handles POST /v1/review/session/answer.
func (h *ProgressHandler) AnswerReviewCard(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	remaining, err := h.svc.AnswerReviewCard(r.Context(), profileID, req.Correct)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, remainingResponse{Remaining: remaining})
}

// GetSuggestions handles GET /v1/suggestions.
func (h *ProgressHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	sugg, err := h.svc.GetSuggestions(r.Context(), profileID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := suggestionsResponse{
		Difficult: make([]wordResponse, len(sugg.Difficult)),
		New:       make([]wordResponse, len(sugg.New)),
	}
	for i, w := range sugg.Difficult {
		resp.Difficult[i] = toWordResponse(w)
	}
	for i, w := range sugg.New {
		resp.New[i] = toWordResponse(w)
	}
	writeJSON(w, http.StatusOK, resp)
}

type suggestionSessionRequest struct {
	List string `json:"list"`
}

// StartSuggestionSession handles POST /v1/suggestions/session.
func (h *ProgressHandler) StartSuggestionSession(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	var req suggestionSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	words, err := h.svc.StartSuggestionSession(r.Context(), profileID, progress.SuggestionList(req.List))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toWordList(words))
}

// AdvanceSuggestionSession handles POST /v1/suggestions/session/advance.
func (h *ProgressHandler) AdvanceSuggestionSession(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	remaining, err := h.svc.AdvanceSuggestionSession(r.Context(), profileID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, remainingResponse{Remaining: remaining})
}

// RecordVisit handles POST /v1/visits.
func (h *ProgressHandler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	if err := h.svc.RecordVisit(r.Context(), profileID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type minutesRequest struct {
	Minutes int `json:"minutes"`
}

// AddStudyMinutes handles POST /v1/minutes.
func (h *ProgressHandler) AddStudyMinutes(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	var req minutesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.AddStudyMinutes(r.Context(), profileID, req.Minutes); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type examRequest struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

type examResponse struct {
	Score   float64 `json:"score"`
	Total   int     `json:"total"`
	Correct int     `json:"correct"`
}

// RecordExam handles POST /v1/exams.
func (h *ProgressHandler) RecordExam(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	var req examRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.RecordExamResult(r.Context(), profileID, req.Correct, req.Total)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, examResponse{
		Score:   result.Score,
		Total:   result.Total,
		Correct: result.Correct,
	})
}

type statsResponse struct {
	TotalWords    int     `json:"totalWords"`
	DueCount      int     `json:"dueCount"`
	LearnedCount  int     `json:"learnedCount"`
	MasteredCount int     `json:"masteredCount"`
	StreakDays    int     `json:"streakDays"`
	WordsToday    int     `json:"wordsToday"`
	MinutesToday  int     `json:"minutesToday"`
	GoalWords     int     `json:"goalWords"`
	GoalMinutes   int     `json:"goalMinutes"`
	BestExamScore float64 `json:"bestExamScore"`
}

// GetStats handles GET /v1/stats.
func (h *ProgressHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requireProfile(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.GetStats(r.Context(), profileID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		TotalWords:    stats.TotalWords,
		DueCount:      stats.DueCount,
		LearnedCount:  stats.LearnedCount,
		MasteredCount: stats.MasteredCount,
		StreakDays:    stats.StreakDays,
		WordsToday:    stats.WordsToday,
		MinutesToday:  stats.MinutesToday,
		GoalWords:     stats.GoalWords,
		GoalMinutes:   stats.GoalMinutes,
		BestExamScore: stats.BestExamScore,
	})
}

// writeServiceError maps service errors to HTTP statuses.
func (h *ProgressHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// requireProfile extracts the profile id from the context or rejects the
// request.
func requireProfile(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := ctxutil.ProfileIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "profile id required")
		return uuid.Nil, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
