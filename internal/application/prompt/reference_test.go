package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/prompt"
)

func TestParseReference_NumeroEnteroEsID(t *testing.T) {
	// Los números JSON llegan como float64.
	ref, ok := prompt.ParseReference(float64(42))
	require.True(t, ok)
	assert.Equal(t, prompt.ByID, ref.Kind)
	assert.Equal(t, int64(42), ref.ID)
	assert.Equal(t, "42", ref.String())
}

func TestParseReference_NumeroConDecimalesNoEsReferencia(t *testing.T) {
	_, ok := prompt.ParseReference(3.5)
	assert.False(t, ok, "un número con fracción no identifica nada")
}

func TestParseReference_CadenaNumericaEsID(t *testing.T) {
	ref, ok := prompt.ParseReference(" 7 ")
	require.True(t, ok)
	assert.Equal(t, prompt.ByID, ref.Kind)
	assert.Equal(t, int64(7), ref.ID)
}

func TestParseReference_CadenaNoNumericaEsSlug(t *testing.T) {
	ref, ok := prompt.ParseReference("ropa-de-verano")
	require.True(t, ok)
	assert.Equal(t, prompt.BySlug, ref.Kind)
	assert.Equal(t, "ropa-de-verano", ref.Text)
}

func TestParseReference_CadenaVaciaFalla(t *testing.T) {
	_, ok := prompt.ParseReference("   ")
	assert.False(t, ok)
}

func TestParseReference_TipoNoSoportadoFalla(t *testing.T) {
	_, ok := prompt.ParseReference(map[string]any{"id": 1})
	assert.False(t, ok)
}

func TestParseReferenceList_ListaJSON(t *testing.T) {
	refs, err := prompt.ParseReferenceList([]any{float64(1), "ropa", "2"})
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, prompt.ByID, refs[0].Kind)
	assert.Equal(t, prompt.BySlug, refs[1].Kind)
	assert.Equal(t, prompt.ByID, refs[2].Kind)
}

func TestParseReferenceList_CadenaSeparadaPorComas(t *testing.T) {
	refs, err := prompt.ParseReferenceList("ropa, 3 , calzado")
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, "ropa", refs[0].Text)
	assert.Equal(t, int64(3), refs[1].ID)
	assert.Equal(t, "calzado", refs[2].Text)
}

func TestParseReferenceList_ElementoInvalidoFallaCompleto(t *testing.T) {
	_, err := prompt.ParseReferenceList([]any{float64(1), true})
	assert.Error(t, err, "fail-fast: un elemento malo invalida toda la lista")
}

func TestParseReferenceList_ValorSueltoSeEnvuelve(t *testing.T) {
	refs, err := prompt.ParseReferenceList(float64(9))
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, int64(9), refs[0].ID)
}
