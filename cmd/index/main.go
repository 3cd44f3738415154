package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/uniquest/uniquest-backend/internal/clients/openai"
	"github.com/uniquest/uniquest-backend/internal/clients/vectorindex"
	"github.com/uniquest/uniquest-backend/internal/data/repos"
	"github.com/uniquest/uniquest-backend/internal/db"
	"github.com/uniquest/uniquest-backend/internal/platform/envutil"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/services"
)

// Builds lecture embeddings, optionally pushes them to the remote
// vector index, and writes the index info artifact the server reads at
// startup.
func main() {
	infoPath := flag.String("info-path", "models/index_info.json", "path for the index info artifact")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()
	lectureRepo := repos.NewLectureRepo(thePG, log)

	embedder, err := openai.NewClient(log)
	if err != nil {
		log.Warn("Embeddings client unavailable; indexing text backends only", "error", err)
		embedder = nil
	}
	var store vectorindex.Store
	if url := envutil.Str("VECTOR_INDEX_URL", ""); url != "" {
		store, err = vectorindex.NewStore(log, vectorindex.Config{
			URL:        url,
			Collection: envutil.Str("VECTOR_INDEX_COLLECTION", "lectures"),
			VectorDim:  envutil.Int("VECTOR_INDEX_DIM", 1536),
		})
		if err != nil {
			log.Warn("Vector index unavailable", "error", err)
		}
	}

	indexer := services.NewIndexerService(thePG, log, lectureRepo, embedder, store)
	info, err := indexer.BuildIndex(ctx, nil, *infoPath)
	if err != nil {
		log.Error("Indexing failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Indexing done. Backend=%s, lectures=%d\n", info.Backend, info.NLectures)
}
