package ports

import (
	"context"
	"errors"
)

// ErrLLMUnavailable indica que el asistente no puede atender la petición
// (API key ausente, fallo de red o timeout). El Bridge lo traduce en un
// mensaje degradado para el usuario, nunca en un crash.
var ErrLLMUnavailable = errors.New("asistente LLM no disponible")

// LLMService define el puerto de salida hacia el asistente LLM.
// Cualquier adaptador (Groq, OpenAI, mock) debe implementar esta interfaz.
// systemPrompt lleva el catálogo de comandos serializado más las
// instrucciones; la respuesta es texto crudo que interpreta el Bridge.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type LLMService interface {
	Ask(ctx context.Context, systemPrompt, userText string) (string, error)
}
