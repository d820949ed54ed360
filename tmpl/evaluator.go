package tmpl

import (
	"context"
	"strings"
	"text/template"
)

// Vars are the variables a template is evaluated against.
type Vars map[string]any

// Evaluator renders one template field.
type Evaluator interface {
	Evaluate(ctx context.Context, name, source string, vars Vars) (string, error)
}

// TextEvaluator evaluates with text/template. Variables are the dot, so plain
// names work as {{.code}}, and the var function reaches dotted names such as
// {{var "to.name"}}. A missing name is an error with the dot and empty text
// with var.
type TextEvaluator struct {
	// Funcs are added to every template.
	Funcs template.FuncMap
}

// Evaluate parses and executes source.
func (e TextEvaluator) Evaluate(_ context.Context, name, source string, vars Vars) (string, error) {
	if !strings.Contains(source, "{{") {
		return source, nil
	}

	t := template.New(name).
		Option("missingkey=error").
		Funcs(template.FuncMap{
			"var": func(key string) any {
				if v, ok := vars[key]; ok {
					return v
				}
				return ""
			},
		}).
		Funcs(e.Funcs)

	t, err := t.Parse(source)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := t.Execute(&sb, map[string]any(vars)); err != nil {
		return "", err
	}

	return sb.String(), nil
}
