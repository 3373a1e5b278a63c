package prompt

import (
	"context"
	"strings"
)

// Service orquesta el pipeline completo del prompt por petición:
//
//	texto crudo → ¿objeto JSON con "action"? → Validator → Executor
//	            → si no                      → Bridge → (respuesta | comando)
//
// Sin estado mutable compartido entre peticiones: cada llamada es independiente.
type Service struct {
	validator *Validator
	executor  *Executor
	bridge    *Bridge
}

// Outcome es el desenlace de una petición de prompt: exactamente uno de los
// dos campos viene poblado.
type Outcome struct {
	Answer string  // respuesta conversacional del asistente
	Result *Result // resultado de un comando ejecutado
}

// NewService construye el servicio del prompt.
func NewService(validator *Validator, executor *Executor, bridge *Bridge) *Service {
	return &Service{validator: validator, executor: executor, bridge: bridge}
}

// Handle procesa el mensaje del usuario y devuelve el desenlace o un
// CommandError de la taxonomía del intérprete.
func (s *Service) Handle(ctx context.Context, message string) (*Outcome, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return nil, errMissingField("message")
	}

	// Atajo heredado del prompt original: "help"/"ayuda" en claro.
	switch strings.ToLower(text) {
	case "help", "ayuda":
		return s.run(ctx, RawCommand{Action: string(ActionHelp)})
	}

	if raw, ok := ParseDirectCommand(text); ok {
		return s.run(ctx, *raw)
	}

	raw, answer, err := s.bridge.Interpret(ctx, text)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return &Outcome{Answer: answer}, nil
	}
	return s.run(ctx, *raw)
}

func (s *Service) run(ctx context.Context, raw RawCommand) (*Outcome, error) {
	cmd, err := s.validator.Validate(raw)
	if err != nil {
		return nil, err
	}
	res, err := s.executor.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return &Outcome{Result: res}, nil
}
