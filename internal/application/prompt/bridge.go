package prompt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/ports"
)

// DefaultLLMTimeout acota la única operación de red del pipeline; al agotarse
// se comporta igual que AssistantUnavailable.
const DefaultLLMTimeout = 10 * time.Second

// Bridge traduce texto libre en una respuesta conversacional o en un comando
// JSON vía el puerto LLMService. No reintenta ante salida malformada: texto
// no-JSON siempre se trata como respuesta en claro (fail-soft, nunca aflora
// un error de parseo al usuario).
type Bridge struct {
	llm     ports.LLMService
	timeout time.Duration
}

// NewBridge construye el bridge. llm puede ser nil (asistente no configurado):
// toda interpretación fallará con AssistantUnavailable sin tocar la red.
func NewBridge(llm ports.LLMService, timeout time.Duration) *Bridge {
	if timeout <= 0 {
		timeout = DefaultLLMTimeout
	}
	return &Bridge{llm: llm, timeout: timeout}
}

// Interpret envía el texto al LLM junto al catálogo de comandos y clasifica
// la respuesta: un objeto JSON con "action" vuelve como RawCommand para el
// pipeline Validator→Executor; cualquier otro texto vuelve literal como
// respuesta en claro.
func (b *Bridge) Interpret(ctx context.Context, text string) (*RawCommand, string, error) {
	if b.llm == nil {
		return nil, "", errAssistantUnavailable()
	}
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	reply, err := b.llm.Ask(ctx, SystemPrompt(), text)
	if err != nil {
		// Credenciales ausentes, fallo de red o timeout: modo degradado.
		return nil, "", errAssistantUnavailable()
	}
	if raw, ok := ParseDirectCommand(reply); ok {
		return raw, "", nil
	}
	return nil, strings.TrimSpace(reply), nil
}

// SystemPrompt serializa el catálogo de comandos (la misma tabla que responde
// el comando help) más las instrucciones para el modelo.
func SystemPrompt() string {
	var sb strings.Builder
	sb.WriteString("Eres el asistente de una tienda online. El usuario escribe en lenguaje natural.\n")
	sb.WriteString("Si su instrucción corresponde a una de las acciones listadas, responde ÚNICAMENTE con un objeto JSON ")
	sb.WriteString(`con la forma {"action": "<accion>", "data": {...}} sin explicaciones, sin markdown y sin texto adicional.`)
	sb.WriteString("\nSi es una pregunta o conversación, responde en texto plano en el idioma del usuario.\n")
	sb.WriteString("\nAcciones disponibles:\n")
	for _, spec := range Catalog() {
		sb.WriteString(fmt.Sprintf("- %s: %s.", spec.Action, spec.Description))
		if len(spec.Required) > 0 {
			sb.WriteString(fmt.Sprintf(" Campos obligatorios en data: %s.", strings.Join(spec.Required, ", ")))
		}
		if len(spec.Optional) > 0 {
			sb.WriteString(fmt.Sprintf(" Campos opcionales: %s.", strings.Join(spec.Optional, ", ")))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\nLos campos product_id y category_id aceptan id numérico, slug o nombre.\n")
	sb.WriteString("Las categorías referenciadas deben existir; ningún comando las crea implícitamente.\n")
	return sb.String()
}
