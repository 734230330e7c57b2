package project

// pruneValue builds a pruned copy of a projected value: objects that ended
// up with no properties, empty arrays, and arrays whose elements are all
// null or empty are all dropped.  This is what keeps specs that matched
// nothing from leaving dangling empty containers in the output.
//
// It returns the pruned value and whether the enclosing container should
// keep it.  Pruning copies containers instead of deleting in place, so
// sub-structures assigned from the source by reference are never mutated.
func pruneValue(v any) (any, bool) {
	switch x := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			if pv, keep := pruneValue(val); keep {
				m[k] = pv
			}
		}
		return m, len(m) > 0
	case []any:
		if len(x) == 0 {
			return nil, false
		}
		a := make([]any, len(x))
		nonEmpty := false
		for i, el := range x {
			pv, keep := pruneValue(el)
			if keep {
				a[i] = pv
				if pv != nil {
					nonEmpty = true
				}
			}
		}
		if !nonEmpty {
			return nil, false
		}
		return a, true
	default:
		return v, true
	}
}
