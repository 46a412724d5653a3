package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vitormoschetta/chatshift/internal/config"
	"github.com/vitormoschetta/chatshift/internal/handler"
	"github.com/vitormoschetta/chatshift/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded")
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chatshift",
		Short:         "Relay chat prompts to Falcon, Gemini or Mistral",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func run(parent context.Context, cmd *cobra.Command) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		log.Printf("Invalid configuration: %v", err)
		return err
	}

	// Criar servidor
	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		log.Printf("Failed to create server: %v", err)
		return err
	}

	// Criar handlers e configurar rotas
	h := handler.NewHandler(srv)
	srv.SetupRouter(h.Routes())

	// Iniciar servidor
	if err := srv.Start(ctx); err != nil {
		log.Printf("Server failed: %v", err)
		return err
	}
	return nil
}
