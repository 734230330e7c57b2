package jsonsift

import (
	"fmt"
	"sort"

	"github.com/davrell/jsonsift/token"
)

// A ValueSource replays materialized Go values (such as the results of a
// Pipeline run) as a JSON token stream, so they can be fed to an encoder.
// Object keys are emitted in sorted order to keep the output deterministic.
type ValueSource struct {
	Values []any
}

var _ token.StreamSource = &ValueSource{}

func NewValueSource(values []any) *ValueSource {
	return &ValueSource{Values: values}
}

func (s *ValueSource) Produce(out chan<- token.Token) error {
	for _, value := range s.Values {
		if err := produceValue(value, out); err != nil {
			return err
		}
	}
	return nil
}

func produceValue(value any, out chan<- token.Token) error {
	switch x := value.(type) {
	case map[string]any:
		out <- &token.StartObject{}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			key := token.StringScalar(k)
			key.TypeAndFlags |= token.KeyMask
			out <- key
			if err := produceValue(x[k], out); err != nil {
				return err
			}
		}
		out <- &token.EndObject{}
		return nil
	case []any:
		out <- &token.StartArray{}
		for _, el := range x {
			if err := produceValue(el, out); err != nil {
				return err
			}
		}
		out <- &token.EndArray{}
		return nil
	default:
		scalar, err := token.ToScalar(value)
		if err != nil {
			return fmt.Errorf("cannot stream value of type %T", value)
		}
		out <- scalar
		return nil
	}
}
