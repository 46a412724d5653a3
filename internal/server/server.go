package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/vitormoschetta/chatshift/internal/config"
	"github.com/vitormoschetta/chatshift/internal/provider"
	"github.com/vitormoschetta/chatshift/internal/relay"
	"github.com/vitormoschetta/chatshift/internal/service"
	"github.com/vitormoschetta/chatshift/internal/store"
)

// Server representa o servidor HTTP com todas as dependências
type Server struct {
	Config     *config.Config
	Providers  *provider.Registry
	Dispatcher *relay.Dispatcher
	Recorder   *service.Recorder
	Store      store.Store
	Router     chi.Router
}

// Routes agrupa os handlers registrados no router
type Routes struct {
	Root       http.HandlerFunc
	Health     http.HandlerFunc
	Chat       http.HandlerFunc
	Models     http.HandlerFunc
	Chats      http.HandlerFunc
	History    http.HandlerFunc
	AddHistory http.HandlerFunc
	MCP        http.Handler
}

// NewServer cria uma nova instância do servidor
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	st, err := store.Open(cfg.StoreDriver, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	log.Printf("💾 Chat store ready (driver: %s)", cfg.StoreDriver)

	// Um client por adapter, reutilizado entre requisições
	providers := provider.NewRegistry(
		provider.NewFalcon(provider.Config{APIKey: cfg.HuggingFaceAPIKey, URL: cfg.FalconURL, HTTPClient: &http.Client{}}),
		provider.NewGemini(provider.Config{APIKey: cfg.GeminiAPIKey, URL: cfg.GeminiURL, HTTPClient: &http.Client{}}),
		provider.NewMistral(provider.Config{APIKey: cfg.MistralAPIKey, URL: cfg.MistralURL, HTTPClient: &http.Client{}}),
	)

	for _, missing := range missingCredentials(cfg) {
		log.Printf("Warning: %s is not set - requests for that model will fail", missing)
	}

	recorder := service.NewRecorder(st, cfg.PersistTimeout)

	return &Server{
		Config:     cfg,
		Providers:  providers,
		Dispatcher: relay.NewDispatcher(providers, recorder),
		Recorder:   recorder,
		Store:      st,
	}, nil
}

func missingCredentials(cfg *config.Config) []string {
	var missing []string
	if cfg.HuggingFaceAPIKey == "" {
		missing = append(missing, provider.FalconEnvVar)
	}
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, provider.GeminiEnvVar)
	}
	if cfg.MistralAPIKey == "" {
		missing = append(missing, provider.MistralEnvVar)
	}
	return missing
}

// SetupRouter configura as rotas e middlewares do Chi
func (s *Server) SetupRouter(routes Routes) {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Rotas
	r.Get("/", routes.Root)
	r.Get("/health", routes.Health)

	// API Routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", routes.Chat)
		r.Get("/models", routes.Models)
		r.Get("/chats", routes.Chats)
		r.Get("/history/{model}", routes.History)
		r.Post("/history/{model}", routes.AddHistory)
	})

	if routes.MCP != nil {
		r.Handle("/mcp", routes.MCP)
	}

	s.Router = r
}

// Start inicia o servidor HTTP e faz o graceful shutdown quando ctx termina
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:        s.Config.Addr(),
		Handler:     s.Router,
		ReadTimeout: 15 * time.Second,
		// Maior que o timeout do router para a chamada ao provider caber
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)

	// Goroutine para iniciar o servidor
	go func() {
		log.Println("╔════════════════════════════════════════════════════╗")
		log.Println("║   ChatShift relay: Falcon, Gemini e Mistral        ║")
		log.Println("╚════════════════════════════════════════════════════╝")
		log.Println("")
		log.Printf("🚀 Servidor HTTP iniciado na porta %s", httpServer.Addr)
		log.Println("")
		log.Println("📌 Endpoints disponíveis:")
		log.Println("   • Status:    / (GET)")
		log.Println("   • Health:    /health (GET)")
		log.Println("   • Chat API:  /api/chat (POST)")
		log.Println("   • Models:    /api/models (GET)")
		log.Println("   • Chats:     /api/chats (GET)")
		log.Println("   • History:   /api/history/{model} (GET, POST)")
		log.Println("   • MCP:       /mcp")
		log.Println("")
		log.Println("💡 Exemplo de uso com curl:")
		log.Printf(`   curl -X POST http://localhost%s/api/chat \`, httpServer.Addr)
		log.Println(`        -H "Content-Type: application/json" \`)
		log.Println(`        -d '{"prompt":"Hello","model":"Gemini"}'`)
		log.Println("")
		log.Println("⚠️  Pressione Ctrl+C para parar o servidor")
		log.Println("")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Aguardar sinal de interrupção ou falha do listener
	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			s.close(context.Background())
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}
	log.Println("🛑 Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
	}
	s.close(shutdownCtx)
	log.Println("✅ Server stopped gracefully")
	return nil
}

// close espera as escritas pendentes e fecha o store
func (s *Server) close(ctx context.Context) {
	if err := s.Recorder.Flush(ctx); err != nil {
		log.Printf("❌ Pending chat writes were not flushed: %v", err)
	}
	if err := s.Store.Close(); err != nil {
		log.Printf("❌ Failed to close chat store: %v", err)
	}
}
