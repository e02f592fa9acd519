package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zebmuhammad/car-maintenance-chat-project/internal/chatstore"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/config"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/embedding"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/metrics"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/parser"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/rag"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/server"
)

const defaultConfigPath = "./configs/config.yaml"

var configPath string

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	// Load environment variables
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "carchat",
		Short: "Car-maintenance RAG chat service",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to the config file")
	rootCmd.AddCommand(serveCmd(), ingestCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP question-answering server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Make sure the chat_history table exists before serving.
			store, err := chatstore.Open(&cfg.Database)
			if err != nil {
				log.Fatal().Err(err).Msg("Error connecting to chat database")
			}
			if err := store.Init(cmd.Context()); err != nil {
				log.Fatal().Err(err).Msg("Error initializing chat database")
			}
			store.Close()

			metrics.Register()

			srv := &http.Server{
				Addr:    cfg.HTTP.Addr,
				Handler: server.New(cfg).Router(),
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

			go func() {
				log.Info().Str("addr", cfg.HTTP.Addr).Msg("Starting HTTP server")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("HTTP server error")
				}
			}()

			<-quit
			log.Info().Msg("Received shutdown signal")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>",
		Short: "Rebuild the vector index from a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Index-rebuild failures are logged, never fatal: a broken or
			// missing source leaves the previous run's behavior in place.
			filePath := args[0]
			records, err := parser.Load(filePath)
			if err != nil {
				log.Error().Err(err).Str("file", filePath).Msg("Error loading source file")
				return nil
			}
			log.Info().Int("rows", len(records)).Msg("Loaded source rows")

			embedder, err := embedding.NewEmbedder(&cfg.LLM)
			if err != nil {
				log.Error().Err(err).Msg("Error initializing embedder")
				return nil
			}

			if err := rag.RebuildIndex(cmd.Context(), cfg, embedder, records); err != nil {
				log.Error().Err(err).Msg("Error rebuilding index")
				return nil
			}

			log.Info().Msg("Index rebuild complete")
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug().Interface("config", cfg).Msg("Loaded config")
	return cfg, nil
}
