package handler

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vitormoschetta/chatshift/internal/model"
	"github.com/vitormoschetta/chatshift/internal/relay"
)

// chatToolInput é o argumento da ferramenta MCP "chat"
type chatToolInput struct {
	Prompt string `json:"prompt" jsonschema:"the prompt sent to the model"`
	Model  string `json:"model" jsonschema:"model tag: Falcon-7B-Instruct or Gemini or Mistral"`
}

// newMCPServer expõe o mesmo dispatcher do /api/chat como ferramenta MCP
func newMCPServer(d *relay.Dispatcher) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{Name: "chatshift", Version: "v1.0.0"}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "chat",
		Description: "Send a prompt to one of the hosted models (Falcon-7B-Instruct, Gemini, Mistral) and return its answer.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in chatToolInput) (*mcp.CallToolResult, model.ChatReply, error) {
		reply, err := d.Handle(ctx, model.ChatRequest{Prompt: in.Prompt, Model: in.Model})
		if err != nil {
			return nil, model.ChatReply{}, err
		}
		return nil, *reply, nil
	})

	return s
}

// MCPHandler retorna o handler streamable HTTP do servidor MCP
func (h *Handler) MCPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return h.mcp
	}, nil)
}
