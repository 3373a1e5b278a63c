package prompt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RefKind distingue las tres formas de referirse a una entidad del catálogo.
type RefKind int

const (
	// ByID referencia por clave primaria numérica.
	ByID RefKind = iota
	// BySlug referencia por slug exacto. Si no hay coincidencia el Resolver
	// reintenta el mismo texto como ByName.
	BySlug
	// ByName referencia por nombre exacto sin distinguir mayúsculas.
	ByName
)

// Reference es el valor suelto (id / slug / nombre) con el que un comando
// denota una Category o un Product existente. Se parsea una sola vez en la
// frontera del Validator; nunca se vuelve a adivinar el tipo aguas abajo.
type Reference struct {
	Kind RefKind
	ID   int64
	Text string
	raw  string
}

// String devuelve la representación original, para mensajes de error.
func (r Reference) String() string { return r.raw }

// ParseReference convierte un valor JSON suelto en una Reference.
// Números y cadenas numéricas son ByID; el resto de cadenas arranca como
// BySlug (el Resolver cae a ByName si el slug no existe).
func ParseReference(v any) (Reference, bool) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return Reference{}, false
		}
		id := int64(t)
		return Reference{Kind: ByID, ID: id, raw: strconv.FormatInt(id, 10)}, true
	case int:
		return Reference{Kind: ByID, ID: int64(t), raw: strconv.Itoa(t)}, true
	case int64:
		return Reference{Kind: ByID, ID: t, raw: strconv.FormatInt(t, 10)}, true
	case string:
		text := strings.TrimSpace(t)
		if text == "" {
			return Reference{}, false
		}
		if id, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Reference{Kind: ByID, ID: id, raw: text}, true
		}
		return Reference{Kind: BySlug, Text: text, raw: text}, true
	default:
		return Reference{}, false
	}
}

// ParseReferenceList acepta una lista JSON de referencias o una cadena
// separada por comas (formato que suele emitir el LLM) y devuelve las
// referencias en orden. Falla al primer elemento no parseable.
func ParseReferenceList(v any) ([]Reference, error) {
	switch t := v.(type) {
	case []any:
		refs := make([]Reference, 0, len(t))
		for _, item := range t {
			ref, ok := ParseReference(item)
			if !ok {
				return nil, fmt.Errorf("elemento de lista no interpretable: %v", item)
			}
			refs = append(refs, ref)
		}
		return refs, nil
	case string:
		parts := strings.Split(t, ",")
		refs := make([]Reference, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			ref, ok := ParseReference(part)
			if !ok {
				return nil, fmt.Errorf("elemento no interpretable: %q", part)
			}
			refs = append(refs, ref)
		}
		return refs, nil
	default:
		ref, ok := ParseReference(v)
		if !ok {
			return nil, fmt.Errorf("se esperaba una lista de referencias o una cadena separada por comas")
		}
		return []Reference{ref}, nil
	}
}
