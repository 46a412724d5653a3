package model

import "time"

// Tags dos modelos aceitos pelo relay
const (
	ModelFalcon  = "Falcon-7B-Instruct"
	ModelGemini  = "Gemini"
	ModelMistral = "Mistral"
)

// ChatRequest representa a requisição para o endpoint de chat
type ChatRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

// ChatReply é o texto normalizado retornado por qualquer provider.
// Raw hoje espelha Text.
type ChatReply struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Raw   string `json:"raw"`
}

// ChatResponse representa o envelope de resposta do endpoint de chat
type ChatResponse struct {
	Response *ChatReply `json:"response,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// ChatRecord é a troca persistida após uma chamada bem-sucedida ao provider
type ChatRecord struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	Model     string    `json:"model"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryEntry é o histórico leve gravado pelo cliente, particionado por modelo
type HistoryEntry struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}
