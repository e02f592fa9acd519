package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/zebmuhammad/car-maintenance-chat-project/internal/chatstore"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/helper"
	"github.com/zebmuhammad/car-maintenance-chat-project/internal/metrics"
)

type askRequest struct {
	Question string `json:"question"`
	UserID   string `json:"user_id"`
	Stream   bool   `json:"stream"`
}

type askResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// handleAsk runs the question pipeline: cache lookup, then on a miss
// retrieval, generation and write-back. A cache hit never touches the
// retriever or the generator.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in askRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.fail(w, fmt.Errorf("decoding request body: %v", err))
		return
	}
	metrics.QuestionReceived()

	store, err := s.OpenStore()
	if err != nil {
		s.fail(w, err)
		return
	}
	defer store.Close()

	rec, err := store.Lookup(ctx, in.Question)
	if err == nil {
		metrics.CacheHit()
		s.respond(w, in.Stream, helper.CleanResponse(rec.Response))
		return
	}
	if !errors.Is(err, chatstore.ErrNotFound) {
		s.fail(w, err)
		return
	}
	metrics.CacheMiss()

	retriever, err := s.NewRetriever()
	if err != nil {
		s.fail(w, err)
		return
	}
	passages := retriever.Retrieve(ctx, in.Question, s.Config.Retrieval.TopK)

	answer, err := s.Generator.Answer(ctx, in.Question, passages)
	if err != nil {
		s.fail(w, err)
		return
	}
	cleaned := helper.CleanResponse(answer)

	err = store.Insert(ctx, &chatstore.ChatRecord{
		UserID:   in.UserID,
		Message:  in.Question,
		Response: cleaned,
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	s.respond(w, in.Stream, cleaned)
}

func (s *Server) handleUserHistory(w http.ResponseWriter, r *http.Request) {
	store, err := s.OpenStore()
	if err != nil {
		s.fail(w, err)
		return
	}
	defer store.Close()

	recs, err := store.UserHistory(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	if recs == nil {
		recs = []chatstore.ChatRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleAllChats(w http.ResponseWriter, r *http.Request) {
	store, err := s.OpenStore()
	if err != nil {
		s.fail(w, err)
		return
	}
	defer store.Close()

	chats, err := store.AllChats(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if chats == nil {
		chats = []chatstore.ChatSummary{}
	}
	writeJSON(w, http.StatusOK, chats)
}

// respond delivers the cleaned answer either as one JSON block or, when
// streaming was requested, line by line as plain text.
func (s *Server) respond(w http.ResponseWriter, stream bool, text string) {
	if !stream {
		writeJSON(w, http.StatusOK, askResponse{Response: text})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintln(w, line)
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Error processing question")
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Detail: fmt.Sprintf("Error processing question: %v", err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}
