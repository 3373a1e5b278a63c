package prompt

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// Alias históricos con los que el LLM (y el frontend antiguo) identifican
// entidades: se acepta el primero presente.
var (
	productRefKeys  = []string{"product_id", "product_slug", "product_name"}
	categoryRefKeys = []string{"category_id", "category_slug", "category_name"}
)

// Validator valida la forma y los tipos de un RawCommand y resuelve sus
// referencias. La validación ocurre completa antes de cualquier mutación:
// el Executor recibe solo comandos tipados con referencias resueltas.
type Validator struct {
	resolver *Resolver
}

// NewValidator construye el validador sobre el resolver de referencias.
func NewValidator(resolver *Resolver) *Validator {
	return &Validator{resolver: resolver}
}

// Validate convierte un RawCommand en su variante tipada o falla con un
// CommandError (UnknownAction, MissingField, InvalidValue, NotFound,
// Ambiguous). Los campos no reconocidos de data se ignoran.
func (v *Validator) Validate(raw RawCommand) (Command, error) {
	action := Action(strings.ToLower(strings.TrimSpace(raw.Action)))
	data := raw.Data
	if data == nil {
		data = map[string]any{}
	}

	switch action {
	case ActionListCategories:
		return ListCategoriesCmd{}, nil
	case ActionListProducts:
		return v.validateListProducts(data)
	case ActionCreateCategory:
		return v.validateCreateCategory(data)
	case ActionUpdateCategory:
		return v.validateUpdateCategory(data)
	case ActionDeleteCategory:
		return v.validateDeleteCategory(data)
	case ActionCreateProduct:
		return v.validateCreateProduct(data)
	case ActionUpdateProduct:
		return v.validateUpdateProduct(data)
	case ActionDeleteProduct:
		return v.validateDeleteProduct(data)
	case ActionAssignCategory:
		return v.validateAssignCategory(data)
	case ActionHelp:
		return HelpCmd{}, nil
	default:
		return nil, errUnknownAction(string(raw.Action))
	}
}

func (v *Validator) validateListProducts(data map[string]any) (Command, error) {
	cmd := ListProductsCmd{}
	if raw, ok := fieldValue(data, "category"); ok {
		ref, ok := ParseReference(raw)
		if !ok {
			return nil, errInvalidValue("category", "se esperaba un id, slug o nombre")
		}
		cat, err := v.resolver.Category(ref)
		if err != nil {
			return nil, err
		}
		cmd.CategoryID = &cat.ID
	}
	if raw, ok := fieldValue(data, "active"); ok {
		active, err := parseBool(raw)
		if err != nil {
			return nil, errInvalidValue("active", "se esperaba un booleano")
		}
		cmd.Active = &active
	}
	return cmd, nil
}

func (v *Validator) validateCreateCategory(data map[string]any) (Command, error) {
	name, err := requiredString(data, "name")
	if err != nil {
		return nil, err
	}
	cmd := CreateCategoryCmd{Name: name}
	if slug, ok, err := optionalString(data, "slug"); err != nil {
		return nil, err
	} else if ok {
		cmd.Slug = slug
	}
	return cmd, nil
}

func (v *Validator) validateUpdateCategory(data map[string]any) (Command, error) {
	cat, err := v.resolveCategoryField(data)
	if err != nil {
		return nil, err
	}
	cmd := UpdateCategoryCmd{CategoryID: cat.ID}
	if name, ok, err := optionalString(data, "name"); err != nil {
		return nil, err
	} else if ok {
		cmd.Name = &name
	}
	if slug, ok, err := optionalString(data, "slug"); err != nil {
		return nil, err
	} else if ok {
		cmd.Slug = &slug
	}
	return cmd, nil
}

func (v *Validator) validateDeleteCategory(data map[string]any) (Command, error) {
	cat, err := v.resolveCategoryField(data)
	if err != nil {
		return nil, err
	}
	return DeleteCategoryCmd{CategoryID: cat.ID}, nil
}

func (v *Validator) validateCreateProduct(data map[string]any) (Command, error) {
	name, err := requiredString(data, "name")
	if err != nil {
		return nil, err
	}
	rawPrice, ok := fieldValue(data, "price")
	if !ok {
		return nil, errMissingField("price")
	}
	price, err := parsePrice(rawPrice)
	if err != nil {
		return nil, err
	}
	cmd := CreateProductCmd{Name: name, Price: price, Active: true}
	if raw, ok := fieldValue(data, "stock"); ok {
		stock, err := parseStock(raw)
		if err != nil {
			return nil, err
		}
		cmd.Stock = stock
	}
	if raw, ok := fieldValue(data, "active"); ok {
		active, err := parseBool(raw)
		if err != nil {
			return nil, errInvalidValue("active", "se esperaba un booleano")
		}
		cmd.Active = active
	}
	if raw, ok := fieldValue(data, "categories"); ok {
		ids, err := v.resolveCategorySet(raw)
		if err != nil {
			return nil, err
		}
		cmd.CategoryIDs = ids
	}
	return cmd, nil
}

func (v *Validator) validateUpdateProduct(data map[string]any) (Command, error) {
	product, err := v.resolveProductField(data)
	if err != nil {
		return nil, err
	}
	cmd := UpdateProductCmd{ProductID: product.ID}
	if name, ok, err := optionalString(data, "name"); err != nil {
		return nil, err
	} else if ok {
		cmd.Name = &name
	}
	if raw, ok := fieldValue(data, "price"); ok {
		price, err := parsePrice(raw)
		if err != nil {
			return nil, err
		}
		cmd.Price = &price
	}
	if raw, ok := fieldValue(data, "stock"); ok {
		stock, err := parseStock(raw)
		if err != nil {
			return nil, err
		}
		cmd.Stock = &stock
	}
	if raw, ok := fieldValue(data, "active"); ok {
		active, err := parseBool(raw)
		if err != nil {
			return nil, errInvalidValue("active", "se esperaba un booleano")
		}
		cmd.Active = &active
	}
	if raw, ok := fieldValue(data, "categories"); ok {
		ids, err := v.resolveCategorySet(raw)
		if err != nil {
			return nil, err
		}
		cmd.CategoryIDs = ids
		cmd.SetCategories = true
	}
	return cmd, nil
}

func (v *Validator) validateDeleteProduct(data map[string]any) (Command, error) {
	product, err := v.resolveProductField(data)
	if err != nil {
		return nil, err
	}
	return DeleteProductCmd{ProductID: product.ID}, nil
}

func (v *Validator) validateAssignCategory(data map[string]any) (Command, error) {
	product, err := v.resolveProductField(data)
	if err != nil {
		return nil, err
	}
	cat, err := v.resolveCategoryField(data)
	if err != nil {
		return nil, err
	}
	return AssignCategoryCmd{ProductID: product.ID, CategoryID: cat.ID}, nil
}

// ── Resolución de campos de referencia ────────────────────────────────────────

func (v *Validator) resolveCategoryField(data map[string]any) (*entity.Category, error) {
	raw, ok := firstValue(data, categoryRefKeys)
	if !ok {
		return nil, errMissingField("category_id")
	}
	ref, ok := ParseReference(raw)
	if !ok {
		return nil, errInvalidValue("category_id", "se esperaba un id, slug o nombre")
	}
	return v.resolver.Category(ref)
}

func (v *Validator) resolveProductField(data map[string]any) (*entity.Product, error) {
	raw, ok := firstValue(data, productRefKeys)
	if !ok {
		return nil, errMissingField("product_id")
	}
	ref, ok := ParseReference(raw)
	if !ok {
		return nil, errInvalidValue("product_id", "se esperaba un id, slug o nombre")
	}
	return v.resolver.Product(ref)
}

func (v *Validator) resolveCategorySet(raw any) ([]int64, error) {
	refs, err := ParseReferenceList(raw)
	if err != nil {
		return nil, errInvalidValue("categories", err.Error())
	}
	cats, err := v.resolver.Categories(refs)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// ── Helpers de parseo ─────────────────────────────────────────────────────────

// fieldValue devuelve el valor si la clave está presente y no es null.
func fieldValue(data map[string]any, key string) (any, bool) {
	v, ok := data[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func firstValue(data map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := fieldValue(data, k); ok {
			return v, true
		}
	}
	return nil, false
}

func requiredString(data map[string]any, field string) (string, error) {
	raw, ok := fieldValue(data, field)
	if !ok {
		return "", errMissingField(field)
	}
	s, ok := raw.(string)
	if !ok {
		return "", errInvalidValue(field, "se esperaba una cadena de texto")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errMissingField(field)
	}
	return s, nil
}

func optionalString(data map[string]any, field string) (string, bool, error) {
	raw, ok := fieldValue(data, field)
	if !ok {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, errInvalidValue(field, "se esperaba una cadena de texto")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false, errInvalidValue(field, "no puede estar vacío")
	}
	return s, true, nil
}

// parsePrice acepta número JSON o cadena decimal, exige valor no negativo y
// normaliza a escala fija de 2 decimales.
func parsePrice(raw any) (decimal.Decimal, error) {
	var d decimal.Decimal
	switch t := raw.(type) {
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero, errInvalidValue("price", "se esperaba un decimal no negativo")
		}
		d = parsed
	case float64:
		d = decimal.NewFromFloat(t)
	default:
		return decimal.Zero, errInvalidValue("price", "se esperaba un decimal no negativo")
	}
	if d.IsNegative() {
		return decimal.Zero, errInvalidValue("price", "no puede ser negativo")
	}
	return d.Round(2), nil
}

// parseStock acepta entero JSON o cadena numérica, exige valor no negativo.
func parseStock(raw any) (int, error) {
	switch t := raw.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0, errInvalidValue("stock", "se esperaba un entero no negativo")
		}
		if t < 0 {
			return 0, errInvalidValue("stock", "no puede ser negativo")
		}
		return int(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, errInvalidValue("stock", "se esperaba un entero no negativo")
		}
		if n < 0 {
			return 0, errInvalidValue("stock", "no puede ser negativo")
		}
		return n, nil
	default:
		return 0, errInvalidValue("stock", "se esperaba un entero no negativo")
	}
}

// parseBool tolera las variantes que emiten usuarios y LLMs: booleanos,
// números y cadenas tipo "si"/"no".
func parseBool(raw any) (bool, error) {
	switch t := raw.(type) {
	case bool:
		return t, nil
	case float64:
		return t != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes", "y", "si", "sí", "on":
			return true, nil
		case "false", "0", "no", "off":
			return false, nil
		}
	}
	return false, errInvalidValue("bool", "no interpretable")
}
