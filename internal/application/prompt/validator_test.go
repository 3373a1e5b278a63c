package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/prompt"
)

func newValidator(s *memCatalog) *prompt.Validator {
	return prompt.NewValidator(newResolver(s))
}

func TestValidator_AccionDesconocida(t *testing.T) {
	v := newValidator(newMemCatalog())
	_, err := v.Validate(prompt.RawCommand{Action: "destruir_todo"})
	assert.Equal(t, prompt.KindUnknownAction, kindOf(t, err))
}

func TestValidator_AccionEsCaseInsensitive(t *testing.T) {
	v := newValidator(newMemCatalog())
	cmd, err := v.Validate(prompt.RawCommand{Action: "  List_Categories "})
	require.NoError(t, err)
	assert.Equal(t, prompt.ActionListCategories, cmd.Action())
}

func TestValidator_CreateCategory_NombreObligatorio(t *testing.T) {
	v := newValidator(newMemCatalog())
	_, err := v.Validate(prompt.RawCommand{Action: "create_category", Data: map[string]any{}})
	ce, ok := prompt.AsCommandError(err)
	require.True(t, ok)
	assert.Equal(t, prompt.KindMissingField, ce.Kind)
	assert.Equal(t, "name", ce.Field)
}

func TestValidator_CreateCategory_NombreSoloEspaciosFalta(t *testing.T) {
	v := newValidator(newMemCatalog())
	_, err := v.Validate(prompt.RawCommand{
		Action: "create_category",
		Data:   map[string]any{"name": "   "},
	})
	assert.Equal(t, prompt.KindMissingField, kindOf(t, err))
}

func TestValidator_CreateProduct_PrecioComoCadena(t *testing.T) {
	v := newValidator(newMemCatalog())
	cmd, err := v.Validate(prompt.RawCommand{
		Action: "create_product",
		Data:   map[string]any{"name": "Camiseta", "price": "19.99"},
	})
	require.NoError(t, err)
	created := cmd.(prompt.CreateProductCmd)
	assert.Equal(t, "19.99", created.Price.StringFixed(2))
	assert.True(t, created.Active, "active por defecto es true")
}

func TestValidator_CreateProduct_PrecioSeRedondeaADosDecimales(t *testing.T) {
	v := newValidator(newMemCatalog())
	cmd, err := v.Validate(prompt.RawCommand{
		Action: "create_product",
		Data:   map[string]any{"name": "Camiseta", "price": 10.005},
	})
	require.NoError(t, err)
	assert.Equal(t, "10.01", cmd.(prompt.CreateProductCmd).Price.StringFixed(2))
}

func TestValidator_CreateProduct_PrecioNegativoInvalido(t *testing.T) {
	v := newValidator(newMemCatalog())
	_, err := v.Validate(prompt.RawCommand{
		Action: "create_product",
		Data:   map[string]any{"name": "Camiseta", "price": -5},
	})
	// -5 llega como float64
	_, err2 := v.Validate(prompt.RawCommand{
		Action: "create_product",
		Data:   map[string]any{"name": "Camiseta", "price": float64(-5)},
	})
	assert.Equal(t, prompt.KindInvalidValue, kindOf(t, err))
	assert.Equal(t, prompt.KindInvalidValue, kindOf(t, err2))
}

func TestValidator_CreateProduct_StockComoCadena(t *testing.T) {
	v := newValidator(newMemCatalog())
	cmd, err := v.Validate(prompt.RawCommand{
		Action: "create_product",
		Data:   map[string]any{"name": "Camiseta", "price": float64(10), "stock": "3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, cmd.(prompt.CreateProductCmd).Stock)
}

func TestValidator_CreateProduct_StockNegativoInvalido(t *testing.T) {
	v := newValidator(newMemCatalog())
	_, err := v.Validate(prompt.RawCommand{
		Action: "create_product",
		Data:   map[string]any{"name": "Camiseta", "price": float64(10), "stock": float64(-1)},
	})
	assert.Equal(t, prompt.KindInvalidValue, kindOf(t, err))
}

func TestValidator_CreateProduct_ActiveAceptaVariantes(t *testing.T) {
	v := newValidator(newMemCatalog())
	for _, raw := range []any{"sí", "si", "yes", "1", "on", true, float64(1)} {
		cmd, err := v.Validate(prompt.RawCommand{
			Action: "create_product",
			Data:   map[string]any{"name": "X", "price": float64(1), "active": raw},
		})
		require.NoError(t, err, "variante %v", raw)
		assert.True(t, cmd.(prompt.CreateProductCmd).Active, "variante %v", raw)
	}
	cmd, err := v.Validate(prompt.RawCommand{
		Action: "create_product",
		Data:   map[string]any{"name": "X", "price": float64(1), "active": "no"},
	})
	require.NoError(t, err)
	assert.False(t, cmd.(prompt.CreateProductCmd).Active)
}

func TestValidator_CreateProduct_CategoriasSeResuelvenAIDs(t *testing.T) {
	s := newMemCatalog()
	ropa := s.seedCategory("Ropa", "ropa")
	calzado := s.seedCategory("Calzado", "calzado")

	cmd, err := newValidator(s).Validate(prompt.RawCommand{
		Action: "create_product",
		Data: map[string]any{
			"name":       "Camiseta",
			"price":      float64(10),
			"categories": "ropa, calzado",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{ropa.ID, calzado.ID}, cmd.(prompt.CreateProductCmd).CategoryIDs)
}

func TestValidator_CreateProduct_CategoriaInexistenteFalla(t *testing.T) {
	s := newMemCatalog()
	s.seedCategory("Ropa", "ropa")

	_, err := newValidator(s).Validate(prompt.RawCommand{
		Action: "create_product",
		Data: map[string]any{
			"name":       "Camiseta",
			"price":      float64(10),
			"categories": []any{"ropa", "inexistente"},
		},
	})
	assert.Equal(t, prompt.KindNotFound, kindOf(t, err),
		"ningún comando crea categorías implícitamente")
}

func TestValidator_UpdateProduct_AliasDeReferencia(t *testing.T) {
	s := newMemCatalog()
	p := s.seedProduct("Camiseta", "camiseta")

	// product_id, product_slug y product_name son alias aceptados.
	for _, data := range []map[string]any{
		{"product_id": float64(p.ID), "price": float64(5)},
		{"product_slug": "camiseta", "price": float64(5)},
		{"product_name": "Camiseta", "price": float64(5)},
	} {
		cmd, err := newValidator(s).Validate(prompt.RawCommand{Action: "update_product", Data: data})
		require.NoError(t, err)
		assert.Equal(t, p.ID, cmd.(prompt.UpdateProductCmd).ProductID)
	}
}

func TestValidator_UpdateProduct_SinReferenciaFalta(t *testing.T) {
	_, err := newValidator(newMemCatalog()).Validate(prompt.RawCommand{
		Action: "update_product",
		Data:   map[string]any{"price": float64(5)},
	})
	ce, ok := prompt.AsCommandError(err)
	require.True(t, ok)
	assert.Equal(t, prompt.KindMissingField, ce.Kind)
	assert.Equal(t, "product_id", ce.Field)
}

func TestValidator_UpdateProduct_CategoriesVacioEsSetExplicito(t *testing.T) {
	s := newMemCatalog()
	p := s.seedProduct("Camiseta", "camiseta")

	cmd, err := newValidator(s).Validate(prompt.RawCommand{
		Action: "update_product",
		Data:   map[string]any{"product_id": float64(p.ID), "categories": []any{}},
	})
	require.NoError(t, err)
	up := cmd.(prompt.UpdateProductCmd)
	assert.True(t, up.SetCategories, "un set vacío explícito desvincula todo")
	assert.Empty(t, up.CategoryIDs)
}

func TestValidator_AssignCategory_RequiereAmbasReferencias(t *testing.T) {
	s := newMemCatalog()
	p := s.seedProduct("Camiseta", "camiseta")

	_, err := newValidator(s).Validate(prompt.RawCommand{
		Action: "assign_category",
		Data:   map[string]any{"product_id": float64(p.ID)},
	})
	ce, ok := prompt.AsCommandError(err)
	require.True(t, ok)
	assert.Equal(t, prompt.KindMissingField, ce.Kind)
	assert.Equal(t, "category_id", ce.Field)
}

func TestValidator_ListProducts_FiltroPorNombreDeCategoria(t *testing.T) {
	s := newMemCatalog()
	ropa := s.seedCategory("Ropa", "ropa")

	cmd, err := newValidator(s).Validate(prompt.RawCommand{
		Action: "list_products",
		Data:   map[string]any{"category": "Ropa", "active": "no"},
	})
	require.NoError(t, err)
	lp := cmd.(prompt.ListProductsCmd)
	require.NotNil(t, lp.CategoryID)
	assert.Equal(t, ropa.ID, *lp.CategoryID)
	require.NotNil(t, lp.Active)
	assert.False(t, *lp.Active)
}

func TestValidator_CamposNoReconocidosSeIgnoran(t *testing.T) {
	v := newValidator(newMemCatalog())
	_, err := v.Validate(prompt.RawCommand{
		Action: "create_category",
		Data:   map[string]any{"name": "Ropa", "color": "azul"},
	})
	assert.NoError(t, err)
}

func TestParseDirectCommand_JSONEstricto(t *testing.T) {
	// Texto completo como objeto JSON: ok.
	raw, ok := prompt.ParseDirectCommand(`  {"action": "help"}  `)
	require.True(t, ok)
	assert.Equal(t, "help", raw.Action)

	// JSON embebido en prosa: NO se extrae (parse estricto).
	_, ok = prompt.ParseDirectCommand(`ejecuta esto: {"action": "help"}`)
	assert.False(t, ok)

	// Objeto sin action: no es comando.
	_, ok = prompt.ParseDirectCommand(`{"data": {}}`)
	assert.False(t, ok)

	// JSON malformado: no es comando.
	_, ok = prompt.ParseDirectCommand(`{"action": `)
	assert.False(t, ok)
}
