package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/ports"
)

// Verificar en tiempo de compilación que GroqService implementa LLMService.
var _ ports.LLMService = (*GroqService)(nil)

const (
	groqChatCompletionsURL = "https://api.groq.com/openai/v1/chat/completions"

	// DefaultModel modelo por defecto del asistente.
	DefaultModel = "llama3-70b-8192"
)

// GroqService adaptador que implementa LLMService usando la API REST de Groq
// (protocolo OpenAI chat completions). Usa net/http; no requiere SDK.
type GroqService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGroqService construye el adaptador.
// Si apiKey está vacío las llamadas devuelven ErrLLMUnavailable en lugar de panic.
func NewGroqService(apiKey, model string) *GroqService {
	if model == "" {
		model = DefaultModel
	}
	return &GroqService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el bridge impone además un context.WithTimeout más corto.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo chat completions ──────────────────────

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Ask envía el prompt de sistema y el texto del usuario al modelo y devuelve
// la respuesta cruda. Cualquier fallo de red, clave o protocolo se reporta
// envolviendo ports.ErrLLMUnavailable.
func (s *GroqService) Ask(ctx context.Context, systemPrompt, userText string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: GROQ_API_KEY no configurado", ports.ErrLLMUnavailable)
	}

	payload := groqRequest{
		Model: s.model,
		Messages: []groqMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userText},
		},
		// Temperatura baja: el modelo debe producir JSON estable, no prosa creativa.
		Temperature: 0.1,
		MaxTokens:   1024,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqChatCompletionsURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: timeout o cancelación: %v", ports.ErrLLMUnavailable, ctx.Err())
		}
		return "", fmt.Errorf("%w: llamada HTTP fallida: %v", ports.ErrLLMUnavailable, err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("%w: leer respuesta: %v", ports.ErrLLMUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp groqResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("%w: Groq error (%s): %s", ports.ErrLLMUnavailable, errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("%w: Groq HTTP %d", ports.ErrLLMUnavailable, resp.StatusCode)
	}

	var groqResp groqResponse
	if err := json.Unmarshal(rawBody, &groqResp); err != nil {
		return "", fmt.Errorf("%w: deserializar respuesta Groq: %v", ports.ErrLLMUnavailable, err)
	}

	if len(groqResp.Choices) == 0 {
		return "", fmt.Errorf("%w: el modelo devolvió respuesta vacía", ports.ErrLLMUnavailable)
	}

	return groqResp.Choices[0].Message.Content, nil
}
