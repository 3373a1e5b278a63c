package prompt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/prompt"
)

func newService(s *memCatalog, llm *fakeLLM) *prompt.Service {
	validator := newValidator(s)
	executor := newExecutor(s)
	var bridge *prompt.Bridge
	if llm != nil {
		bridge = prompt.NewBridge(llm, 0)
	} else {
		bridge = prompt.NewBridge(nil, 0)
	}
	return prompt.NewService(validator, executor, bridge)
}

func TestService_MensajeVacioFalta(t *testing.T) {
	svc := newService(newMemCatalog(), nil)
	_, err := svc.Handle(context.Background(), "   ")
	ce, ok := prompt.AsCommandError(err)
	require.True(t, ok)
	assert.Equal(t, prompt.KindMissingField, ce.Kind)
	assert.Equal(t, "message", ce.Field)
}

func TestService_AtajoAyudaNoPasaPorElLLM(t *testing.T) {
	llm := &fakeLLM{reply: "no debería llegar aquí"}
	svc := newService(newMemCatalog(), llm)

	out, err := svc.Handle(context.Background(), "Ayuda")
	require.NoError(t, err)
	require.NotNil(t, out.Result)
	assert.Equal(t, "help", out.Result.Kind)
	assert.False(t, llm.asked)
}

func TestService_ComandoJSONDirectoSeEjecutaSinLLM(t *testing.T) {
	s := newMemCatalog()
	llm := &fakeLLM{reply: "no debería llegar aquí"}
	svc := newService(s, llm)

	out, err := svc.Handle(context.Background(),
		`{"action": "create_category", "data": {"name": "Ropa"}}`)
	require.NoError(t, err)
	require.NotNil(t, out.Result)
	assert.Equal(t, "ropa", out.Result.Slug)
	assert.False(t, llm.asked)

	// Y quedó persistida.
	cat, err := s.categoryRepo().GetBySlug("ropa")
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, "Ropa", cat.Name)
}

func TestService_AccionDesconocidaEnJSONDirecto(t *testing.T) {
	svc := newService(newMemCatalog(), nil)
	_, err := svc.Handle(context.Background(), `{"action": "volar"}`)
	assert.Equal(t, prompt.KindUnknownAction, kindOf(t, err))
}

func TestService_TextoLibreSinAsistenteEsNoDisponible(t *testing.T) {
	svc := newService(newMemCatalog(), nil)
	_, err := svc.Handle(context.Background(), "crea la categoría ropa")
	assert.Equal(t, prompt.KindAssistantUnavailable, kindOf(t, err))
}

func TestService_TextoLibreConRespuestaConversacional(t *testing.T) {
	llm := &fakeLLM{reply: "Tenemos envíos a todo el país."}
	svc := newService(newMemCatalog(), llm)

	out, err := svc.Handle(context.Background(), "¿hacen envíos?")
	require.NoError(t, err)
	assert.Nil(t, out.Result)
	assert.Equal(t, "Tenemos envíos a todo el país.", out.Answer)
}

func TestService_ComandoEmitidoPorElLLMPasaPorElPipeline(t *testing.T) {
	s := newMemCatalog()
	llm := &fakeLLM{reply: `{"action": "create_category", "data": {"name": "Calzado"}}`}
	svc := newService(s, llm)

	out, err := svc.Handle(context.Background(), "crea la categoría calzado")
	require.NoError(t, err)
	require.NotNil(t, out.Result)
	assert.Equal(t, "calzado", out.Result.Slug)
	assert.True(t, llm.asked)
}

func TestService_ComandoDelLLMTambienSeValida(t *testing.T) {
	// El origen del comando no relaja la validación: un comando malformado
	// del LLM falla exactamente igual que uno tecleado por el usuario.
	llm := &fakeLLM{reply: `{"action": "create_category", "data": {}}`}
	svc := newService(newMemCatalog(), llm)

	_, err := svc.Handle(context.Background(), "crea una categoría")
	assert.Equal(t, prompt.KindMissingField, kindOf(t, err))
}
