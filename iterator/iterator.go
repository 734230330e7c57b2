package iterator

import (
	"fmt"

	"github.com/davrell/jsonsift/token"
)

// An Iterator reads consecutive JSON values off a token stream and presents
// each one as a lazy Value.  Advancing discards whatever is left of the
// current value, so a consumer can skip values it is not interested in
// without materializing them.
type Iterator struct {
	stream       token.ReadStream
	currentValue Value
}

func New(stream token.ReadStream) *Iterator {
	return &Iterator{stream: stream}
}

// Advance moves to the next value in the stream, returning false when the
// stream is exhausted.
func (i *Iterator) Advance() bool {
	if i.currentValue != nil {
		i.currentValue.Discard()
	}
	nextItem := i.stream.Next()
	if nextItem == nil {
		i.currentValue = nil
		return false
	}
	i.currentValue = nextStreamedValue(nextItem, i.stream)
	return true
}

func (i *Iterator) CurrentValue() Value {
	return i.currentValue
}

// A Value is a lazy view of one JSON value inside a token stream.  It is
// one of *Scalar, *Object or *Array.
//
// Values are consumed at most once: Copy re-emits the value's tokens,
// Discard skips them.  Collection values additionally allow iterating their
// contents, which also counts as consuming them.
type Value interface {
	Discard()
	Copy(out token.WriteStream)
}

type Scalar token.Scalar

var _ Value = &Scalar{}

func (s *Scalar) Discard() {}

func (s *Scalar) Copy(out token.WriteStream) {
	out.Put((*token.Scalar)(s))
}

func (s *Scalar) Scalar() *token.Scalar {
	return (*token.Scalar)(s)
}

// A Collection is an Object or an Array.
type Collection interface {
	Value
	Advance() bool
	CurrentValue() Value
}

type collectionBase struct {
	startItem token.Token
	stream    token.ReadStream

	started bool
	done    bool

	currentValue Value
}

// Discard consumes the rest of the collection's tokens without keeping
// them.  A stream that ends before the collection is closed (truncated
// input) just ends the collection; the decoder is responsible for reporting
// the truncation.
func (c *collectionBase) Discard() {
	if c.done {
		return
	}
	if c.started {
		c.currentValue.Discard()
	}
	c.done = true
	depth := 0
	for {
		item := c.stream.Next()
		if item == nil {
			return
		}
		switch item.(type) {
		case *token.StartArray, *token.StartObject:
			depth++
		case *token.EndArray, *token.EndObject:
			depth--
		}
		if depth < 0 {
			return
		}
	}
}

// Copy re-emits the whole collection to out.  The collection must not have
// been iterated yet.
func (c *collectionBase) Copy(out token.WriteStream) {
	if c.started {
		panic("cannot copy a started iterator")
	}
	out.Put(c.startItem)
	c.done = true
	depth := 0
	for {
		item := c.stream.Next()
		if item == nil {
			return
		}
		switch item.(type) {
		case *token.StartArray, *token.StartObject:
			depth++
		case *token.EndArray, *token.EndObject:
			depth--
		}
		out.Put(item)
		if depth < 0 {
			return
		}
	}
}

func (c *collectionBase) CurrentValue() Value {
	if c.done {
		panic("iterator done")
	}
	return c.currentValue
}

// An Object iterates over the key-value pairs of a streamed JSON object.
type Object struct {
	collectionBase
	currentKey *token.Scalar
}

var _ Collection = &Object{}

func (o *Object) CurrentKeyVal() (*token.Scalar, Value) {
	if o.done {
		panic("iterator done")
	}
	return o.currentKey, o.currentValue
}

func (o *Object) Advance() bool {
	if o.done {
		return false
	}
	if o.started {
		o.currentValue.Discard()
	}
	item := o.stream.Next()
	if item == nil {
		// Truncated stream: the object can't continue.
		o.done = true
		return false
	}
	switch v := item.(type) {
	case *token.Scalar:
		o.started = true
		o.currentKey = v
		item := o.stream.Next()
		if item == nil {
			o.done = true
			return false
		}
		o.currentValue = nextStreamedValue(item, o.stream)
		return true
	case *token.EndObject:
		o.done = true
		return false
	default:
		panic(fmt.Sprintf("invalid stream %#v", item))
	}
}

// An Array iterates over the elements of a streamed JSON array.
type Array struct {
	collectionBase
}

var _ Collection = &Array{}

func (a *Array) Advance() bool {
	if a.done {
		return false
	}
	if a.started {
		a.currentValue.Discard()
	}
	item := a.stream.Next()
	if item == nil {
		a.done = true
		return false
	}
	switch item.(type) {
	case *token.EndArray:
		a.done = true
		return false
	default:
		a.started = true
		a.currentValue = nextStreamedValue(item, a.stream)
		return true
	}
}

func nextStreamedValue(firstItem token.Token, stream token.ReadStream) Value {
	switch v := firstItem.(type) {
	case *token.StartArray:
		return &Array{
			collectionBase: collectionBase{startItem: firstItem, stream: stream},
		}
	case *token.StartObject:
		return &Object{
			collectionBase: collectionBase{startItem: firstItem, stream: stream},
		}
	case *token.Scalar:
		return (*Scalar)(v)
	default:
		panic(fmt.Sprintf("invalid stream %#v", firstItem))
	}
}

// ToGo materializes a Value into plain Go data: map[string]any for objects,
// []any for arrays, and string/float64/bool/nil for scalars.  This consumes
// the value.
func ToGo(v Value) any {
	switch x := v.(type) {
	case *Scalar:
		return x.Scalar().ToGo()
	case *Object:
		m := make(map[string]any)
		for x.Advance() {
			key, val := x.CurrentKeyVal()
			m[key.ToString()] = ToGo(val)
		}
		return m
	case *Array:
		a := make([]any, 0)
		for x.Advance() {
			a = append(a, ToGo(x.CurrentValue()))
		}
		return a
	default:
		panic(fmt.Sprintf("invalid value %#v", v))
	}
}
