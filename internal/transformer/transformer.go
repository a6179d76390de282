// Package transformer applies an ordered chain of table transformations
// between the loader and the sink.
package transformer

import (
	"fmt"

	"trackseed/internal/config"
	"trackseed/internal/table"
	"trackseed/internal/transformer/builtin"
)

// Transformer mutates a table in place.
type Transformer interface {
	Apply(t *table.Table) error
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs each transformer in order and stops at the first error.
func (c Chain) Apply(t *table.Table) error {
	for i, tr := range c {
		if err := tr.Apply(t); err != nil {
			return fmt.Errorf("transform[%d]: %w", i, err)
		}
	}
	return nil
}

// FromConfig builds a Chain from the pipeline's transform list.
func FromConfig(ts []config.Transform) (Chain, error) {
	chain := make(Chain, 0, len(ts))
	for i, t := range ts {
		switch t.Kind {
		case "add_column":
			ac, err := builtin.AddColumnFromOptions(t.Options)
			if err != nil {
				return nil, fmt.Errorf("transform[%d]: %w", i, err)
			}
			chain = append(chain, ac)
		default:
			return nil, fmt.Errorf("transform[%d]: unknown kind %q", i, t.Kind)
		}
	}
	return chain, nil
}
