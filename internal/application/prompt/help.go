package prompt

// CommandSpec describe una acción del catálogo de comandos: es la misma
// tabla que consume el Validator, la respuesta del comando help y el
// system prompt del Bridge.
type CommandSpec struct {
	Action      Action   `json:"action"`
	Required    []string `json:"required"`
	Optional    []string `json:"optional"`
	Description string   `json:"description"`
}

// Catalog devuelve el catálogo completo de comandos reconocidos.
// Los campos *_id aceptan cualquier referencia (id numérico, slug o nombre);
// el nombre del campo es histórico.
func Catalog() []CommandSpec {
	return []CommandSpec{
		{
			Action:      ActionListCategories,
			Description: "Lista todas las categorías del catálogo",
		},
		{
			Action:      ActionListProducts,
			Optional:    []string{"category", "active"},
			Description: "Lista productos, con filtros opcionales por categoría y estado",
		},
		{
			Action:      ActionCreateCategory,
			Required:    []string{"name"},
			Optional:    []string{"slug"},
			Description: "Crea una categoría (el slug se deriva del nombre si no se indica)",
		},
		{
			Action:      ActionUpdateCategory,
			Required:    []string{"category_id"},
			Optional:    []string{"name", "slug"},
			Description: "Renombra o cambia el slug de una categoría existente",
		},
		{
			Action:      ActionDeleteCategory,
			Required:    []string{"category_id"},
			Description: "Elimina una categoría desvinculando sus productos (no los borra)",
		},
		{
			Action:      ActionCreateProduct,
			Required:    []string{"name", "price"},
			Optional:    []string{"stock", "categories", "active"},
			Description: "Crea un producto; las categorías referenciadas deben existir",
		},
		{
			Action:      ActionUpdateProduct,
			Required:    []string{"product_id"},
			Optional:    []string{"name", "price", "stock", "active", "categories"},
			Description: "Actualiza solo los campos presentes de un producto",
		},
		{
			Action:      ActionDeleteProduct,
			Required:    []string{"product_id"},
			Description: "Elimina un producto y sus asociaciones de categoría",
		},
		{
			Action:      ActionAssignCategory,
			Required:    []string{"product_id", "category_id"},
			Description: "Añade una categoría al set de un producto (idempotente)",
		},
		{
			Action:      ActionHelp,
			Description: "Devuelve este catálogo de comandos",
		},
	}
}
