// Package server exposes the HTTP surface: the /ask question endpoint plus
// the chat-history reads recovered from the chat store.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zebmuhammad/car-maintenance-chat-project/internal/chatstore"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/chromemdb"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/config"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/embedding"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/metrics"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/rag"
)

// ChatStore is the per-request view of the chat cache.
type ChatStore interface {
	Lookup(ctx context.Context, question string) (*chatstore.ChatRecord, error)
	Insert(ctx context.Context, rec *chatstore.ChatRecord) error
	UserHistory(ctx context.Context, userID string) ([]chatstore.ChatRecord, error)
	AllChats(ctx context.Context) ([]chatstore.ChatSummary, error)
	Close() error
}

// Retriever returns passages similar to a query; failures surface as an
// empty slice.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) []string
}

// Generator produces an answer from a question and retrieved passages.
type Generator interface {
	Answer(ctx context.Context, question string, passages []string) (string, error)
}

// Server wires the handler chain. The factory fields exist so requests can
// open their own store connection and rebuild the embedding/index clients,
// and so tests can substitute counting doubles.
type Server struct {
	Config       *config.Config
	OpenStore    func() (ChatStore, error)
	NewRetriever func() (Retriever, error)
	Generator    Generator
}

// New builds a Server with the production wiring.
func New(cfg *config.Config) *Server {
	return &Server{
		Config: cfg,
		OpenStore: func() (ChatStore, error) {
			return chatstore.Open(&cfg.Database)
		},
		NewRetriever: func() (Retriever, error) {
			embedder, err := embedding.NewEmbedder(&cfg.LLM)
			if err != nil {
				return nil, err
			}
			store, err := chromemdb.NewVectorDBManager(cfg.Vector.Path, cfg.Vector.Collection)
			if err != nil {
				return nil, err
			}
			return rag.NewRetriever(store, embedder), nil
		},
		Generator: rag.NewGenerator(&cfg.LLM),
	}
}

// Router assembles the chi router: open CORS, request metrics, the ask
// endpoint, history reads, health and metrics.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(metrics.Middleware())

	r.Post("/ask", s.handleAsk)
	r.Get("/history/{user_id}", s.handleUserHistory)
	r.Get("/chats", s.handleAllChats)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
