package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/fatih/color"

	"tenglaafi-be/internal/bootstrap"
	"tenglaafi-be/internal/config"
	"tenglaafi-be/internal/repository/implementation"
	"tenglaafi-be/pkg/database"
)

const (
	pollInterval = 2 * time.Second
	indexTimeout = 30 * time.Minute
)

func main() {
	corpusPath := flag.String("corpus", "", "path to the corpus JSON file (defaults to CORPUS_PATH)")
	force := flag.Bool("force", false, "rebuild the index even when the corpus is unchanged")
	flag.Parse()

	cfg := config.Load()
	if *corpusPath == "" {
		*corpusPath = cfg.Corpus.Path
	}

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	// The consumer must subscribe before events are published: the
	// in-process bus does not buffer for absent subscribers.
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Fatalf("Failed to start consumer: %v", err)
	}

	color.Cyan("Synchronizing corpus from %s ...", *corpusPath)

	result, err := container.CorpusService.Sync(ctx, *corpusPath, *force)
	if err != nil {
		color.Red("✗ Corpus sync failed: %v", err)
		log.Fatal(err)
	}

	if !result.Synced {
		color.Green("✓ Corpus unchanged (%d documents, hash %.12s). Nothing to do.", result.DocumentCount, result.CorpusHash)
		return
	}

	color.Yellow("Corpus stored (%d documents). Waiting for embeddings ...", result.DocumentCount)

	embeddings := implementation.NewDocumentEmbeddingRepository(gormDB)
	target := int64(result.DocumentCount)

	for {
		select {
		case <-ctx.Done():
			color.Red("✗ Timed out waiting for the index to build")
			log.Fatal(ctx.Err())
		case <-time.After(pollInterval):
		}

		indexed, err := embeddings.CountIndexedDocuments(ctx)
		if err != nil {
			color.Red("✗ Failed to check indexing progress: %v", err)
			log.Fatal(err)
		}

		color.White("  indexed %d/%d documents", indexed, target)
		if indexed >= target {
			break
		}
	}

	color.Green("✓ Index built: %d documents, hash %.12s", result.DocumentCount, result.CorpusHash)
}
