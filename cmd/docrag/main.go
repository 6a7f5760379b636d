package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"docrag/internal/config"
	"docrag/internal/embedding"
	"docrag/internal/extract"
	"docrag/internal/filestore"
	"docrag/internal/ingest"
	"docrag/internal/llmservice"
	"docrag/internal/rag"
	"docrag/internal/server"
	"docrag/internal/store"
	"docrag/internal/vectorindex"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", defaultConfigPath, "Path to the config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	ctx := context.Background()

	var metadata store.Store
	switch cfg.Database.Backend {
	case "memory":
		metadata = store.NewMemory()
	default:
		metadata = store.NewPostgres(&cfg.Database)
	}
	if err := metadata.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("Error initializing metadata store")
	}
	defer metadata.Close()

	files, err := filestore.New(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating file store")
	}

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	generator, err := llmservice.NewClient(&cfg.InferenceLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing generator")
	}

	index, err := vectorindex.New(cfg.Storage.VectorDBPath, cfg.Storage.Collection, embedder)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening vector index")
	}
	log.Info().Int("entries", index.Count()).Msg("Vector index loaded")

	ingestor := ingest.NewIngestor(metadata, files, extract.NewPDFExtractor(), index, &cfg.RAG)
	answerer := rag.NewRAG(index, generator, &cfg.RAG)

	srv := server.NewServer(ingestor, answerer, metadata, &cfg.Server, log.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}
}
