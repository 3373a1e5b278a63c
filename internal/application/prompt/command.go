package prompt

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Action enumera el set cerrado de acciones reconocidas.
type Action string

const (
	ActionListCategories Action = "list_categories"
	ActionListProducts   Action = "list_products"
	ActionCreateCategory Action = "create_category"
	ActionUpdateCategory Action = "update_category"
	ActionDeleteCategory Action = "delete_category"
	ActionCreateProduct  Action = "create_product"
	ActionUpdateProduct  Action = "update_product"
	ActionDeleteProduct  Action = "delete_product"
	ActionAssignCategory Action = "assign_category"
	ActionHelp           Action = "help"
)

// RawCommand es el comando tal como llega: JSON directo del usuario o el
// objeto emitido por el LLM. Es un valor efímero, nunca se persiste.
type RawCommand struct {
	Action string         `json:"action"`
	Data   map[string]any `json:"data"`
}

// ParseDirectCommand intenta interpretar el texto completo (recortado) como
// un objeto JSON con campo "action". Parse estricto: sin extracción difusa
// de subcadenas JSON, para mantener el comportamiento determinista.
func ParseDirectCommand(text string) (*RawCommand, bool) {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "{") {
		return nil, false
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(t), &payload); err != nil {
		return nil, false
	}
	action, ok := payload["action"].(string)
	if !ok || strings.TrimSpace(action) == "" {
		return nil, false
	}
	data, _ := payload["data"].(map[string]any)
	return &RawCommand{Action: action, Data: data}, true
}

// Command es un comando ya validado y con referencias resueltas: el Executor
// solo recibe variantes tipadas, nunca vuelve a inspeccionar JSON suelto.
type Command interface {
	Action() Action
}

// ListCategoriesCmd enumera las categorías (solo lectura).
type ListCategoriesCmd struct{}

func (ListCategoriesCmd) Action() Action { return ActionListCategories }

// ListProductsCmd enumera productos con filtros opcionales (solo lectura).
type ListProductsCmd struct {
	CategoryID *int64
	Active     *bool
}

func (ListProductsCmd) Action() Action { return ActionListProducts }

// CreateCategoryCmd crea una categoría. Slug vacío = derivar del nombre.
type CreateCategoryCmd struct {
	Name string
	Slug string
}

func (CreateCategoryCmd) Action() Action { return ActionCreateCategory }

// UpdateCategoryCmd renombra o re-slugifica una categoría existente.
type UpdateCategoryCmd struct {
	CategoryID int64
	Name       *string
	Slug       *string
}

func (UpdateCategoryCmd) Action() Action { return ActionUpdateCategory }

// DeleteCategoryCmd elimina la categoría desvinculando sus productos.
type DeleteCategoryCmd struct {
	CategoryID int64
}

func (DeleteCategoryCmd) Action() Action { return ActionDeleteCategory }

// CreateProductCmd crea un producto con su set de categorías ya resuelto.
type CreateProductCmd struct {
	Name        string
	Price       decimal.Decimal
	Stock       int
	Active      bool
	CategoryIDs []int64
}

func (CreateProductCmd) Action() Action { return ActionCreateProduct }

// UpdateProductCmd muta solo los campos presentes; SetCategories marca que el
// comando traía el campo categories (un set vacío explícito desvincula todo).
type UpdateProductCmd struct {
	ProductID     int64
	Name          *string
	Price         *decimal.Decimal
	Stock         *int
	Active        *bool
	CategoryIDs   []int64
	SetCategories bool
}

func (UpdateProductCmd) Action() Action { return ActionUpdateProduct }

// DeleteProductCmd elimina el producto y sus asociaciones.
type DeleteProductCmd struct {
	ProductID int64
}

func (DeleteProductCmd) Action() Action { return ActionDeleteProduct }

// AssignCategoryCmd añade una categoría al set de un producto (idempotente).
type AssignCategoryCmd struct {
	ProductID  int64
	CategoryID int64
}

func (AssignCategoryCmd) Action() Action { return ActionAssignCategory }

// HelpCmd devuelve el catálogo de comandos como datos estructurados.
type HelpCmd struct{}

func (HelpCmd) Action() Action { return ActionHelp }
