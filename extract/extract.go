package extract

import (
	"github.com/davrell/jsonsift/iterator"
	"github.com/davrell/jsonsift/token"
)

// A Transformer re-emits the elements of the array designated by its Path,
// back to back, and drops everything else in the document.  Downstream, an
// iterator over the transformed stream yields exactly one value per array
// element, in document order.
//
// E.g. with path "items[*]":
//
//	{"total": 2, "items": [{"id": 1}, {"id": 2}]} -> {"id": 1} {"id": 2}
//	{"total": 0}                                  -> <empty stream>
//	{"items": {"id": 1}}                          -> <empty stream>
//
// Values outside the path are skipped without being materialized, so memory
// usage is bounded by the size of one element, not of the document.
type Transformer struct {
	Path Path
}

var _ token.StreamTransformer = &Transformer{}

func NewTransformer(path Path) *Transformer {
	return &Transformer{Path: path}
}

// Transform implements the element extraction.  The input may hold several
// concatenated documents; each one is processed in turn.
func (t *Transformer) Transform(in <-chan token.Token, out token.WriteStream) {
	it := iterator.New(token.ChannelReadStream(in))
	for it.Advance() {
		emitElements(it.CurrentValue(), t.Path, out)
	}
}

// emitElements walks down the property chain and copies out every element
// of the array found at the end of it.  Any shape mismatch on the way (a
// non-object step, an absent property, a non-array at the end) produces no
// elements, which is not an error.
func emitElements(value iterator.Value, path []string, out token.WriteStream) {
	if len(path) == 0 {
		arr, ok := value.(*iterator.Array)
		if !ok {
			return
		}
		for arr.Advance() {
			arr.CurrentValue().Copy(out)
		}
		return
	}
	obj, ok := value.(*iterator.Object)
	if !ok {
		return
	}
	for obj.Advance() {
		key, val := obj.CurrentKeyVal()
		if key.EqualsString(path[0]) {
			emitElements(val, path[1:], out)
		}
	}
}
