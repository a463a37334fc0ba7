package formdef

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formgroup/pkg/attrs"
)

// RequiredClass is added to the container options of required properties.
const RequiredClass = "required"

// FromOpenAPI builds a form from the request body schema of operationID.
// Object properties become groups (sorted by name), nested objects become
// nested groups named with array syntax ("owner[email]"). Labels come from
// the schema title, falling back to the property name. Controls are left
// empty for the caller to fill in.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (Form, error) {
	if err := ctx.Err(); err != nil {
		return Form{}, err
	}
	if len(data) == 0 {
		return Form{}, errors.New("formdef: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return Form{}, fmt.Errorf("formdef: load openapi document: %w", err)
	}

	operation, err := findOperation(spec, operationID)
	if err != nil {
		return Form{}, err
	}

	schema := requestSchema(operation.RequestBody)
	if schema == nil {
		return Form{}, fmt.Errorf("formdef: operation %q has no request body schema", operationID)
	}

	title := strings.TrimSpace(operation.Summary)
	if title == "" {
		title = strings.TrimSpace(schema.Title)
	}
	return Form{
		ID:     operationID,
		Title:  title,
		Groups: groupsFromSchema(schema, "", 0),
	}, nil
}

// OperationIDs lists the operation ids of a document, sorted.
func OperationIDs(ctx context.Context, data []byte) ([]string, error) {
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("formdef: load openapi document: %w", err)
	}
	var ids []string
	if spec.Paths != nil {
		for _, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for _, op := range item.Operations() {
				if op != nil && op.OperationID != "" {
					ids = append(ids, op.OperationID)
				}
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func findOperation(spec *openapi3.T, operationID string) (*openapi3.Operation, error) {
	operationID = strings.TrimSpace(operationID)
	if operationID == "" {
		return nil, errors.New("formdef: operation id is required")
	}
	if spec.Paths != nil {
		for _, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for _, op := range item.Operations() {
				if op != nil && op.OperationID == operationID {
					return op, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("formdef: operation %q not found", operationID)
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "multipart/form-data", "application/json"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// maxDepth bounds recursion through self-referencing schemas.
const maxDepth = 8

func groupsFromSchema(schema *openapi3.Schema, prefix string, depth int) []Group {
	if schema == nil || len(schema.Properties) == 0 || depth >= maxDepth {
		return nil
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		property := ref.Value
		if property.ReadOnly {
			continue
		}

		fieldName := name
		if prefix != "" {
			fieldName = prefix + "[" + name + "]"
		}

		group := Group{
			Name:  fieldName,
			Label: FormatLabel(name, property.Title),
		}
		if _, ok := required[name]; ok {
			group.Options = attrs.AppendClass(RequiredClass, group.Options)
		}
		if desc := strings.TrimSpace(property.Description); desc != "" {
			group.Options = group.Options.Set("title", desc)
		}
		if property.Type != nil && property.Type.Is(openapi3.TypeObject) {
			group.Groups = groupsFromSchema(property, fieldName, depth+1)
		}
		groups = append(groups, group)
	}
	return groups
}

// FormatLabel returns title when set, otherwise name with underscores and
// dashes turned into spaces and each word capitalised.
func FormatLabel(name, title string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + word[size:]
	}
	return strings.Join(words, " ")
}
