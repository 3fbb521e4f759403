// Command import loads a vocabulary sheet (xlsx) into the database,
// replacing the current word list.
//
// Usage:
//
//	import -file words.xlsx
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuantran92/spelling-bee/internal/adapter/postgres"
	"github.com/tuantran92/spelling-bee/internal/adapter/postgres/vocab"
	"github.com/tuantran92/spelling-bee/internal/vocabimport"
)

func main() {
	file := flag.String("file", "", "path to the xlsx vocabulary sheet")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("open sheet: %v", err)
	}
	defer f.Close()

	res, err := vocabimport.Parse(f)
	if err != nil {
		log.Fatalf("parse sheet: %v", err)
	}
	if len(res.Words) == 0 {
		log.Fatal("sheet contains no words")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	repo := vocab.New(pool, postgres.NewTxManager(pool))
	if err := repo.ReplaceAll(ctx, res.Words); err != nil {
		log.Fatalf("replace vocabulary: %v", err)
	}

	fmt.Printf("Imported %d words (%d rows, %d skipped).\n", len(res.Words), res.Rows, len(res.Skipped))
	for _, s := range res.Skipped {
		fmt.Println("  skipped:", s)
	}
}
