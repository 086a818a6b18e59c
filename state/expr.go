package state

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
)

// evaluate computes an indirect handler's argument. Inputs are read from the
// tree now, not when the handler was declared.
func (e *emitter) evaluate(data HandlerData, evt *Event) (any, error) {
	if strings.TrimSpace(data.Expression) == "" {
		return evt.Data, nil
	}

	env := map[string]any{
		"evt": evt.Data,
		"pass": func() bool {
			evt.Pass()
			return true
		},
		"terminate": func() bool {
			evt.Terminate()
			return true
		},
	}
	for name, path := range data.Input {
		env[name] = e.lookup(path)
	}

	program, err := expr.Compile(data.Expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		e.logger.Error("[emit] expression compilation error",
			"expression", data.Expression,
			"error", err)
		return nil, fmt.Errorf("expression compilation failed: %w", err)
	}
	result, err := expr.Run(program, env)
	if err != nil {
		e.logger.Error("[emit] expression evaluation error",
			"expression", data.Expression,
			"event", evt.Name,
			"error", err)
		return nil, fmt.Errorf("expression evaluation failed: %w", err)
	}
	return result, nil
}

// lookup reads "key.field" from the tree. Missing keys and fields read as nil.
func (e *emitter) lookup(path string) any {
	key, field, ok := strings.Cut(path, ".")
	if !ok {
		e.logger.Debug("input path has no field", "path", path)
		return nil
	}
	m, ok := e.tree.GetByName(key)
	if !ok {
		return nil
	}
	v, _ := m.Get(field)
	return v
}
