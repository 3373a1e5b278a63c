package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/prompt"
)

func newResolver(s *memCatalog) *prompt.Resolver {
	return prompt.NewResolver(s.categoryRepo(), s.productRepo())
}

func kindOf(t *testing.T, err error) prompt.ErrorKind {
	t.Helper()
	ce, ok := prompt.AsCommandError(err)
	require.True(t, ok, "el error debe ser un CommandError tipado")
	return ce.Kind
}

func TestResolver_CategoriaPorID(t *testing.T) {
	s := newMemCatalog()
	seeded := s.seedCategory("Ropa", "ropa")

	ref, _ := prompt.ParseReference(float64(seeded.ID))
	cat, err := newResolver(s).Category(ref)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, cat.ID)
}

func TestResolver_CategoriaPorSlug(t *testing.T) {
	s := newMemCatalog()
	s.seedCategory("Ropa de verano", "ropa-de-verano")

	ref, _ := prompt.ParseReference("ropa-de-verano")
	cat, err := newResolver(s).Category(ref)
	require.NoError(t, err)
	assert.Equal(t, "Ropa de verano", cat.Name)
}

func TestResolver_SlugInexistenteCaeANombre(t *testing.T) {
	s := newMemCatalog()
	s.seedCategory("Ropa", "ropa-2024")

	// "Ropa" no es slug de nadie, pero sí nombre (sin distinguir mayúsculas).
	ref, _ := prompt.ParseReference("ropa")
	cat, err := newResolver(s).Category(ref)
	require.NoError(t, err)
	assert.Equal(t, "ropa-2024", cat.Slug)
}

func TestResolver_CategoriaInexistenteEsNotFound(t *testing.T) {
	s := newMemCatalog()
	ref, _ := prompt.ParseReference("fantasmas")
	_, err := newResolver(s).Category(ref)
	assert.Equal(t, prompt.KindNotFound, kindOf(t, err))
}

func TestResolver_ProductoPorNombreUnico(t *testing.T) {
	s := newMemCatalog()
	s.seedProduct("Camiseta básica", "camiseta-basica")

	ref, _ := prompt.ParseReference("Camiseta Básica")
	_, err := newResolver(s).Product(ref)
	// "Camiseta Básica" no coincide como slug; la caída a nombre es
	// case-insensitive y hay exactamente una fila.
	require.NoError(t, err)
}

func TestResolver_NombreDuplicadoEsAmbiguo(t *testing.T) {
	s := newMemCatalog()
	s.seedProduct("Camiseta", "camiseta")
	s.seedProduct("Camiseta", "camiseta-2")

	ref, _ := prompt.ParseReference("Camiseta")
	_, err := newResolver(s).Product(ref)
	assert.Equal(t, prompt.KindAmbiguous, kindOf(t, err))
}

func TestResolver_SlugExactoGanaAunConNombreDuplicado(t *testing.T) {
	s := newMemCatalog()
	s.seedProduct("Camiseta", "camiseta")
	s.seedProduct("Camiseta", "camiseta-2")

	ref, _ := prompt.ParseReference("camiseta-2")
	p, err := newResolver(s).Product(ref)
	require.NoError(t, err)
	assert.Equal(t, "camiseta-2", p.Slug)
}

func TestResolver_ListaDeCategoriasDeduplica(t *testing.T) {
	s := newMemCatalog()
	ropa := s.seedCategory("Ropa", "ropa")

	refs, err := prompt.ParseReferenceList([]any{float64(ropa.ID), "ropa", "Ropa"})
	require.NoError(t, err)
	cats, err := newResolver(s).Categories(refs)
	require.NoError(t, err)
	assert.Len(t, cats, 1, "tres referencias a la misma categoría colapsan en una")
}

func TestResolver_ListaFallaEnLaPrimeraIrresoluble(t *testing.T) {
	s := newMemCatalog()
	s.seedCategory("Ropa", "ropa")

	refs, err := prompt.ParseReferenceList([]any{"ropa", "inexistente"})
	require.NoError(t, err)
	_, err = newResolver(s).Categories(refs)
	assert.Equal(t, prompt.KindNotFound, kindOf(t, err))
}
