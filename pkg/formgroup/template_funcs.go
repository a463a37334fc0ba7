package formgroup

import (
	"fmt"

	"github.com/goliatone/go-formgroup/pkg/attrs"
)

// Template helper names registered by TemplateFuncs.
const (
	FuncOpenGroup       = "open_group"
	FuncCloseGroup      = "close_group"
	FuncCloseGroupNamed = "close_group_named"
)

// TemplateFuncs exposes r to template engines:
//
//	open_group(name, [label], [options], [labelOptions]) string
//	close_group() (string, error)
//	close_group_named(name) (string, error)
//
// options and labelOptions accept attrs.Attributes or map[string]any. The
// functions share r's stack, so the map must be built per render pass.
func TemplateFuncs(r *Renderer) map[string]any {
	return map[string]any{
		FuncOpenGroup: func(name string, args ...any) (string, error) {
			var (
				labelValue   any
				options      attrs.Attributes
				labelOptions attrs.Attributes
				err          error
			)
			if len(args) > 3 {
				return "", fmt.Errorf("formgroup: %s accepts at most 4 arguments, got %d", FuncOpenGroup, len(args)+1)
			}
			if len(args) > 0 {
				labelValue = args[0]
			}
			if len(args) > 1 {
				if options, err = coerceAttributes(args[1]); err != nil {
					return "", fmt.Errorf("formgroup: %s options: %w", FuncOpenGroup, err)
				}
			}
			if len(args) > 2 {
				if labelOptions, err = coerceAttributes(args[2]); err != nil {
					return "", fmt.Errorf("formgroup: %s label options: %w", FuncOpenGroup, err)
				}
			}
			return r.OpenGroup(name, labelValue, options, labelOptions), nil
		},
		FuncCloseGroup: func() (string, error) {
			return r.CloseGroup()
		},
		FuncCloseGroupNamed: func(name string) (string, error) {
			return r.CloseGroupNamed(name)
		},
	}
}

func coerceAttributes(value any) (attrs.Attributes, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case attrs.Attributes:
		return v, nil
	case map[string]any:
		return attrs.FromMap(v), nil
	case map[string]string:
		converted := make(map[string]any, len(v))
		for key, item := range v {
			converted[key] = item
		}
		return attrs.FromMap(converted), nil
	default:
		return nil, fmt.Errorf("unsupported attributes type %T", value)
	}
}
