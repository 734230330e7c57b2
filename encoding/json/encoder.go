package json

import (
	"fmt"
	"io"

	"github.com/davrell/jsonsift/internal/format"
	"github.com/davrell/jsonsift/iterator"
	"github.com/davrell/jsonsift/token"
)

// An Encoder outputs a stream encoding a (stream of) JSON values, one value
// per line group, pretty-printed according to its Printer.
type Encoder struct {
	Printer   format.Printer
	Colorizer *format.Colorizer
}

var _ token.StreamSink = &Encoder{}

// NewEncoder returns an Encoder writing to w, indented by indent spaces per
// level (negative indent puts each value on a single line).
func NewEncoder(w io.Writer, indent int) *Encoder {
	return &Encoder{
		Printer: &format.DefaultPrinter{Writer: w, IndentSize: indent},
	}
}

// Consume formats the JSON stream encoded in the given channel using the
// instance's Printer.  It assumes that the stream is well-formed, i.e. is a
// valid encoding for a stream of JSON values, and may panic if that is not
// the case.
//
// An error can be returned if the Printer could not perform some writing
// operation, e.g. when writing to a closed pipe.
func (e *Encoder) Consume(stream <-chan token.Token) (err error) {
	defer format.CatchPrinterError(&err)
	it := iterator.New(token.ChannelReadStream(stream))
	for it.Advance() {
		e.writeValue(it.CurrentValue())
		e.Printer.Reset()
	}
	return nil
}

func (e *Encoder) writeValue(value iterator.Value) {
	switch v := value.(type) {
	case *iterator.Scalar:
		e.Colorizer.PrintScalar(e.Printer, v.Scalar())
	case *iterator.Object:
		e.writeObject(v)
	case *iterator.Array:
		e.writeArray(v)
	default:
		panic(fmt.Sprintf("invalid stream item: %#v", value))
	}
}

func (e *Encoder) writeObject(obj *iterator.Object) {
	e.Printer.PrintBytes(openObjectBytes)
	firstItem := true
	for obj.Advance() {
		key, value := obj.CurrentKeyVal()
		if !firstItem {
			e.Printer.PrintBytes(itemSeparatorBytes)
			e.Printer.NewLine()
		} else {
			e.Printer.Indent()
			firstItem = false
		}
		e.Colorizer.PrintScalar(e.Printer, key)
		e.Printer.PrintBytes(keyValueSeparatorBytes)
		e.writeValue(value)
	}
	if !firstItem {
		e.Printer.Dedent()
	}
	e.Printer.PrintBytes(closeObjectBytes)
}

func (e *Encoder) writeArray(arr *iterator.Array) {
	e.Printer.PrintBytes(openArrayBytes)
	firstItem := true
	for arr.Advance() {
		value := arr.CurrentValue()
		if !firstItem {
			e.Printer.PrintBytes(itemSeparatorBytes)
			e.Printer.NewLine()
		} else {
			e.Printer.Indent()
			firstItem = false
		}
		e.writeValue(value)
	}
	if !firstItem {
		e.Printer.Dedent()
	}
	e.Printer.PrintBytes(closeArrayBytes)
}

var (
	openObjectBytes        = []byte("{")
	closeObjectBytes       = []byte("}")
	openArrayBytes         = []byte("[")
	closeArrayBytes        = []byte("]")
	itemSeparatorBytes     = []byte(",")
	keyValueSeparatorBytes = []byte(": ")
)
