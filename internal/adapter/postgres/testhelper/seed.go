package testhelper

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedProfile creates an empty profile row and returns its id.
func SeedProfile(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO profiles (id) VALUES ($1)`, id,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile insert: %v", err)
	}
	return id
}

// SeedVocab inserts n vocabulary words with a unique prefix and returns their
// texts in sheet order.
func SeedVocab(t *testing.T, pool *pgxpool.Pool, n int) []string {
	t.Helper()
	ctx := context.Background()

	prefix := "word-" + uniqueSuffix()
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("%s-%02d", prefix, i)
		_, err := pool.Exec(ctx,
			`INSERT INTO vocab_words (word, meaning, position) VALUES ($1, $2, $3)`,
			words[i], "meaning of "+words[i], i,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedVocab insert %q: %v", words[i], err)
		}
	}
	return words
}
