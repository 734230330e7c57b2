package project

// A Hook is called once per projected value, after the specs have been
// applied and before pruning.  It receives the untouched source value and
// the target built so far, and may mutate the target in place or return a
// replacement for it.  This is how derived fields and structural rewrites
// are layered on top of plain field selection.
type Hook func(source, target any) any

// An Option configures a Projector.
type Option func(*Projector)

// WithHook installs a projection hook.
func WithHook(h Hook) Option {
	return func(p *Projector) {
		p.hook = h
	}
}

// A Projector reduces values to the fields named by its specs.  It is
// immutable once constructed and safe to reuse across values; each call to
// Project builds a fresh target.
type Projector struct {
	specs []Spec
	hook  Hook
}

func New(specs []Spec, opts ...Option) *Projector {
	p := &Projector{specs: specs}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Project builds the reduced copy of src.  Values that are not objects or
// arrays pass through unchanged.  The source is never mutated: all writes
// go to the freshly built target.  Leaf values are assigned by reference,
// which is safe as long as the caller treats the source as read-only from
// here on.
func (p *Projector) Project(src any) any {
	switch src.(type) {
	case map[string]any, []any:
	default:
		return src
	}
	var target any
	for _, spec := range p.specs {
		target = applyTokens(spec.Tokens, src, target)
	}
	if p.hook != nil {
		target = p.hook(src, p.emptyIfNil(src, target))
	}
	target, _ = pruneValue(target)
	return p.emptyIfNil(src, target)
}

// emptyIfNil replaces an absent target with an empty container of the same
// kind as the source, so callers always get a structured value back.
func (p *Projector) emptyIfNil(src, target any) any {
	if target != nil {
		return target
	}
	if _, ok := src.([]any); ok {
		return []any{}
	}
	return map[string]any{}
}

// applyTokens advances one token at a time, walking src and tgt together.
// It returns the (possibly newly created) target node, or tgt unchanged when
// the spec branch matches nothing in the source: a soft miss, never an
// error.
func applyTokens(tokens []Token, src, tgt any) any {
	if len(tokens) == 0 {
		return tgt
	}
	tok, rest := tokens[0], tokens[1:]
	switch tok.Kind {
	case Literal:
		obj, ok := src.(map[string]any)
		if !ok {
			return tgt
		}
		val, ok := obj[tok.Name]
		if !ok {
			return tgt
		}
		m, ok := tgt.(map[string]any)
		if !ok {
			m = make(map[string]any)
		}
		if len(rest) == 0 {
			m[tok.Name] = val
		} else if child := applyTokens(rest, val, m[tok.Name]); child != nil {
			m[tok.Name] = child
		}
		return m

	case Wildcard:
		arr, ok := src.([]any)
		if !ok {
			return tgt
		}
		ta := targetArray(tgt, len(arr))
		for i, el := range arr {
			if len(rest) == 0 {
				ta[i] = el
			} else if child := applyTokens(rest, el, ta[i]); child != nil {
				ta[i] = child
			}
		}
		return ta

	case Index:
		arr, ok := src.([]any)
		if !ok || tok.Pos >= len(arr) {
			return tgt
		}
		ta := targetArray(tgt, tok.Pos+1)
		if len(rest) == 0 {
			ta[tok.Pos] = arr[tok.Pos]
		} else if child := applyTokens(rest, arr[tok.Pos], ta[tok.Pos]); child != nil {
			ta[tok.Pos] = child
		}
		return ta

	default:
		panic("invalid token kind")
	}
}

// targetArray reuses the target node as an array when an earlier spec
// already created one, extending it to the required size; otherwise it
// makes a fresh one.  Positions not touched by any spec stay nil and are
// cleaned up by pruning.
func targetArray(tgt any, size int) []any {
	ta, ok := tgt.([]any)
	if !ok {
		ta = make([]any, 0, size)
	}
	for len(ta) < size {
		ta = append(ta, nil)
	}
	return ta
}
