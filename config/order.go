package config

import (
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2/unstable"
	"github.com/samber/lo"
)

// tableOrder returns the distinct top-level table names in the order they first appear.
// Decoding into a map loses that order, so the document is walked expression by expression.
func tableOrder(data []byte) ([]string, error) {
	var (
		p       unstable.Parser
		order   []string
		inTable bool
	)

	p.Reset(data)
	for p.NextExpression() {
		expr := p.Expression()

		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			inTable = true
		case unstable.KeyValue:
			// dotted keys before the first header define tables too
			if inTable {
				continue
			}
		default:
			continue
		}

		it := expr.Key()
		if !it.Next() {
			continue
		}
		order = append(order, string(it.Node().Data))
	}

	if err := p.Error(); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return lo.Uniq(order), nil
}

// sortedKeys is the fallback order used for tables the walk did not see.
func sortedKeys(m map[string]any) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
