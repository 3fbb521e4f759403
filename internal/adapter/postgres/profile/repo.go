// Package profile implements the profile aggregate repository using
// PostgreSQL. The aggregate spans several tables; Save writes all of them in
// one transaction so a reader never observes a half-flushed profile.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/tuantran92/spelling-bee/internal/adapter/postgres"
	"github.com/tuantran92/spelling-bee/internal/domain"
)

// Repo provides profile persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a new profile repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const upsertProfileSQL = `
INSERT INTO profiles (id, streak_days, last_visit_date, daily_date, words_today, minutes_today, best_exam_score, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
ON CONFLICT (id) DO UPDATE SET
  streak_days     = EXCLUDED.streak_days,
  last_visit_date = EXCLUDED.last_visit_date,
  daily_date      = EXCLUDED.daily_date,
  words_today     = EXCLUDED.words_today,
  minutes_today   = EXCLUDED.minutes_today,
  best_exam_score = EXCLUDED.best_exam_score,
  updated_at      = now()`

const upsertWordProgressSQL = `
INSERT INTO word_progress (profile_id, word, level, next_review_at, correct_attempts, wrong_attempts, history, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
ON CONFLICT (profile_id, word) DO UPDATE SET
  level            = EXCLUDED.level,
  next_review_at   = EXCLUDED.next_review_at,
  correct_attempts = EXCLUDED.correct_attempts,
  wrong_attempts   = EXCLUDED.wrong_attempts,
  history          = EXCLUDED.history,
  updated_at       = now()`

const upsertDailyActivitySQL = `
INSERT INTO daily_activity (profile_id, day, words)
VALUES ($1, $2, $3)
ON CONFLICT (profile_id, day) DO UPDATE SET words = EXCLUDED.words`

const insertAchievementSQL = `
INSERT INTO achievements (profile_id, id, unlocked_at)
VALUES ($1, $2, $3)
ON CONFLICT (profile_id, id) DO NOTHING`

const insertExamResultSQL = `
INSERT INTO exam_results (profile_id, taken_at, score, total, correct)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (profile_id, taken_at) DO NOTHING`

const selectProfileSQL = `
SELECT streak_days, last_visit_date, daily_date, words_today, minutes_today, best_exam_score
FROM profiles WHERE id = $1`

const selectWordProgressSQL = `
SELECT word, level, next_review_at, correct_attempts, wrong_attempts, history
FROM word_progress WHERE profile_id = $1`

const selectDailyActivitySQL = `
SELECT day, words FROM daily_activity WHERE profile_id = $1`

const selectAchievementsSQL = `
SELECT id, unlocked_at FROM achievements WHERE profile_id = $1`

const selectExamResultsSQL = `
SELECT taken_at, score, total, correct
FROM exam_results WHERE profile_id = $1
ORDER BY taken_at ASC`

// ---------------------------------------------------------------------------
// Save
// ---------------------------------------------------------------------------

// Save flushes the whole aggregate. Progress rows are upserted, never
// deleted: records only ever accumulate.
func (r *Repo) Save(ctx context.Context, p *domain.Profile) error {
	return r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		a := p.Activity
		_, err := q.Exec(ctx, upsertProfileSQL,
			p.ID, a.StreakDays, a.LastVisitDate,
			a.Daily.Date, a.Daily.WordsToday, a.Daily.MinutesToday,
			p.BestExam,
		)
		if err != nil {
			return mapError(err, "profile", p.ID.String())
		}

		batch := &pgx.Batch{}
		for _, rec := range p.Progress {
			history, err := json.Marshal(rec.History)
			if err != nil {
				return fmt.Errorf("marshal history for %q: %w", rec.Word, err)
			}
			batch.Queue(upsertWordProgressSQL,
				p.ID, rec.Word, rec.Level, nullableTime(rec.NextReviewAt),
				rec.CorrectAttempts, rec.WrongAttempts, history,
			)
		}
		for day, words := range a.DailyActivity {
			batch.Queue(upsertDailyActivitySQL, p.ID, day, words)
		}
		for id, at := range p.Achievements {
			batch.Queue(insertAchievementSQL, p.ID, string(id), at)
		}
		for _, exam := range p.ExamHistory {
			batch.Queue(insertExamResultSQL, p.ID, exam.TakenAt, exam.Score, exam.Total, exam.Correct)
		}

		if err := q.SendBatch(ctx, batch).Close(); err != nil {
			return mapError(err, "profile", p.ID.String())
		}
		return nil
	})
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

// Load reads the whole aggregate. An unknown id yields a fresh empty
// profile: the first Save creates its rows.
func (r *Repo) Load(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	p := domain.NewProfile(profileID)

	err := q.QueryRow(ctx, selectProfileSQL, profileID).Scan(
		&p.Activity.StreakDays, &p.Activity.LastVisitDate,
		&p.Activity.Daily.Date, &p.Activity.Daily.WordsToday, &p.Activity.Daily.MinutesToday,
		&p.BestExam,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return nil, mapError(err, "profile", profileID.String())
	}

	if err := r.loadProgress(ctx, q, p); err != nil {
		return nil, err
	}
	if err := r.loadActivity(ctx, q, p); err != nil {
		return nil, err
	}
	if err := r.loadAchievements(ctx, q, p); err != nil {
		return nil, err
	}
	if err := r.loadExams(ctx, q, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repo) loadProgress(ctx context.Context, q postgres.Querier, p *domain.Profile) error {
	rows, err := q.Query(ctx, selectWordProgressSQL, p.ID)
	if err != nil {
		return mapError(err, "word_progress", p.ID.String())
	}
	defer rows.Close()

	for rows.Next() {
		rec := &domain.WordRecord{}
		var next *time.Time
		var history []byte
		if err := rows.Scan(&rec.Word, &rec.Level, &next, &rec.CorrectAttempts, &rec.WrongAttempts, &history); err != nil {
			return mapError(err, "word_progress", p.ID.String())
		}
		if next != nil {
			rec.NextReviewAt = *next
		}
		if len(history) > 0 {
			if err := json.Unmarshal(history, &rec.History); err != nil {
				return fmt.Errorf("unmarshal history for %q: %w", rec.Word, err)
			}
		}
		p.Progress[rec.Word] = rec
	}
	return rows.Err()
}

func (r *Repo) loadActivity(ctx context.Context, q postgres.Querier, p *domain.Profile) error {
	rows, err := q.Query(ctx, selectDailyActivitySQL, p.ID)
	if err != nil {
		return mapError(err, "daily_activity", p.ID.String())
	}
	defer rows.Close()

	for rows.Next() {
		var day string
		var words int
		if err := rows.Scan(&day, &words); err != nil {
			return mapError(err, "daily_activity", p.ID.String())
		}
		p.Activity.DailyActivity[day] = words
	}
	return rows.Err()
}

func (r *Repo) loadAchievements(ctx context.Context, q postgres.Querier, p *domain.Profile) error {
	rows, err := q.Query(ctx, selectAchievementsSQL, p.ID)
	if err != nil {
		return mapError(err, "achievements", p.ID.String())
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return mapError(err, "achievements", p.ID.String())
		}
		p.Achievements[domain.AchievementID(id)] = at
	}
	return rows.Err()
}

func (r *Repo) loadExams(ctx context.Context, q postgres.Querier, p *domain.Profile) error {
	rows, err := q.Query(ctx, selectExamResultsSQL, p.ID)
	if err != nil {
		return mapError(err, "exam_results", p.ID.String())
	}
	defer rows.Close()

	var exams []domain.ExamResult
	for rows.Next() {
		var e domain.ExamResult
		if err := rows.Scan(&e.TakenAt, &e.Score, &e.Total, &e.Correct); err != nil {
			return mapError(err, "exam_results", p.ID.String())
		}
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(exams) > domain.ExamHistoryCap {
		exams = exams[len(exams)-domain.ExamHistoryCap:]
	}
	p.ExamHistory = exams
	return nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
