// Package derive compiles derived-field rules into a projection hook.
//
// A rule maps a target field name to an expression evaluated against the
// untouched source element, e.g.
//
//	fullName: firstName + " " + lastName
//
// Expressions use the expr language (github.com/expr-lang/expr).  Rules are
// compiled once; evaluation happens per element inside the projection
// pipeline.
package derive

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/davrell/jsonsift/project"
)

type rule struct {
	field   string
	program *vm.Program
}

// Compile turns the rules into a project.Hook.  A rule whose expression
// cannot be compiled is a configuration error; a rule whose evaluation
// fails on a particular element is skipped for that element (the same soft
// miss treatment field specs get).
func Compile(rules map[string]string) (project.Hook, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	compiled := make([]rule, 0, len(rules))
	for field, src := range rules {
		program, err := expr.Compile(src, expr.AllowUndefinedVariables())
		if err != nil {
			return nil, fmt.Errorf("derived field %q: %w", field, err)
		}
		compiled = append(compiled, rule{field: field, program: program})
	}
	// Deterministic application order.
	sort.Slice(compiled, func(i, j int) bool {
		return compiled[i].field < compiled[j].field
	})
	return func(source, target any) any {
		env, ok := source.(map[string]any)
		if !ok {
			return target
		}
		m, ok := target.(map[string]any)
		if !ok {
			return target
		}
		for _, r := range compiled {
			result, err := expr.Run(r.program, env)
			if err != nil {
				continue
			}
			m[r.field] = result
		}
		return m
	}, nil
}
