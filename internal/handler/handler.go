package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vitormoschetta/chatshift/internal/model"
	"github.com/vitormoschetta/chatshift/internal/relay"
	"github.com/vitormoschetta/chatshift/internal/server"
)

const (
	defaultChatsLimit = 50
	maxChatsLimit     = 500
)

// Handler contém as dependências necessárias para os handlers HTTP
type Handler struct {
	server *server.Server
	mcp    *mcp.Server
}

// NewHandler cria uma nova instância do Handler
func NewHandler(srv *server.Server) *Handler {
	return &Handler{
		server: srv,
		mcp:    newMCPServer(srv.Dispatcher),
	}
}

// Routes retorna os handlers no formato esperado por Server.SetupRouter
func (h *Handler) Routes() server.Routes {
	return server.Routes{
		Root:       h.HandleRoot,
		Health:     h.HandleHealth,
		Chat:       h.HandleChat,
		Models:     h.HandleModels,
		Chats:      h.HandleChats,
		History:    h.HandleHistory,
		AddHistory: h.HandleAddHistory,
		MCP:        h.MCPHandler(),
	}
}

// HandleRoot confirma que o servidor está no ar
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("✅ Server is running! Use POST /api/chat to send requests.")); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// HandleHealth retorna o status de saúde do servidor
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

// HandleModels lista as tags de modelo aceitas em /api/chat
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"models": h.server.Dispatcher.Models(),
	})
}

// HandleChat envia o prompt ao provider escolhido e devolve o envelope
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	// Corpo vazio equivale a {} e cai na validação
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("Error parsing JSON: %v", err)
		writeJSON(w, http.StatusBadRequest, model.ChatResponse{Error: "Invalid JSON format"})
		return
	}

	reply, err := h.server.Dispatcher.Handle(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), model.ChatResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, model.ChatResponse{Response: reply})
}

// HandleChats lista as trocas persistidas, mais recentes primeiro
func (h *Handler) HandleChats(w http.ResponseWriter, r *http.Request) {
	limit := defaultChatsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, model.ChatResponse{Error: "Invalid limit"})
			return
		}
		limit = min(n, maxChatsLimit)
	}

	chats, err := h.server.Store.Chats(r.Context(), limit)
	if err != nil {
		log.Printf("❌ Error listing chats: %v", err)
		writeJSON(w, http.StatusInternalServerError, model.ChatResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"chats": chats})
}

// HandleHistory retorna o histórico do cliente para um modelo
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	modelName := chi.URLParam(r, "model")
	if !h.server.Dispatcher.Known(modelName) {
		writeJSON(w, http.StatusBadRequest, model.ChatResponse{Error: "Invalid model selection"})
		return
	}

	entries, err := h.server.Store.Entries(r.Context(), modelName)
	if err != nil {
		log.Printf("❌ Error reading history for %s: %v", modelName, err)
		writeJSON(w, http.StatusInternalServerError, model.ChatResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"model":   modelName,
		"entries": entries,
	})
}

// HandleAddHistory grava uma entrada {input, output} no histórico do modelo
func (h *Handler) HandleAddHistory(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	modelName := chi.URLParam(r, "model")
	if !h.server.Dispatcher.Known(modelName) {
		writeJSON(w, http.StatusBadRequest, model.ChatResponse{Error: "Invalid model selection"})
		return
	}

	var entry model.HistoryEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Printf("Error parsing JSON: %v", err)
		writeJSON(w, http.StatusBadRequest, model.ChatResponse{Error: "Invalid JSON format"})
		return
	}
	if entry.Input == "" || entry.Output == "" {
		writeJSON(w, http.StatusBadRequest, model.ChatResponse{Error: "Input and output are required"})
		return
	}

	if err := h.server.Store.AddEntry(r.Context(), modelName, entry); err != nil {
		log.Printf("❌ Error saving history for %s: %v", modelName, err)
		writeJSON(w, http.StatusInternalServerError, model.ChatResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// statusFor separa falhas do cliente (400) das falhas do servidor ou do provider (500)
func statusFor(err error) int {
	if errors.Is(err, relay.ErrValidation) || errors.Is(err, relay.ErrUnknownModel) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
