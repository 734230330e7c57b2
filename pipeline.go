package jsonsift

import (
	"io"

	"github.com/davrell/jsonsift/encoding/json"
	"github.com/davrell/jsonsift/extract"
	"github.com/davrell/jsonsift/iterator"
	"github.com/davrell/jsonsift/project"
	"github.com/davrell/jsonsift/token"
)

// Config describes a pipeline: where the elements are in the document and
// which of their fields to keep.
type Config struct {
	// Path is the extraction path, e.g. "response[*]".  It must end in the
	// "[*]" array marker.
	Path string

	// Fields are the field path specs applied to each element.  If empty
	// and Hook is nil, elements are returned whole.
	Fields []string

	// Hook, if set, is called for each element with the untouched source
	// and the projected target (see project.Hook).
	Hook project.Hook
}

// A Pipeline drives a JSON byte stream through extraction and projection.
// It is immutable once built and can be reused: each Run or Each owns its
// parse state exclusively.
type Pipeline struct {
	path      extract.Path
	projector *project.Projector
}

// New validates the configuration and builds a Pipeline.  A path without
// the array marker or a malformed field spec is reported here, before any
// bytes are read.
func New(cfg Config) (*Pipeline, error) {
	path, err := extract.ParsePath(cfg.Path)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{path: path}
	if len(cfg.Fields) > 0 || cfg.Hook != nil {
		specs, err := project.ParseSpecs(cfg.Fields)
		if err != nil {
			return nil, err
		}
		var opts []project.Option
		if cfg.Hook != nil {
			opts = append(opts, project.WithHook(cfg.Hook))
		}
		p.projector = project.New(specs, opts...)
	}
	return p, nil
}

// Each streams the document from r and calls fn once per extracted element,
// in document order, with the projected value (or the raw element when no
// projection is configured).  Memory usage is bounded by the size of one
// element.
//
// A decode error aborts the run and is returned; elements already seen by
// fn before the error must be considered invalid by the caller.  If fn
// returns an error, processing stops and that error is returned.
func (p *Pipeline) Each(r io.Reader, fn func(any) error) error {
	var decodeErr error
	stream := token.StartStream(json.NewDecoder(r), func(err error) {
		decodeErr = err
	})
	elements := token.TransformStream(stream, extract.NewTransformer(p.path))
	it := iterator.New(token.ChannelReadStream(elements))
	var fnErr error
	for it.Advance() {
		if fnErr != nil {
			// Keep draining so the producing goroutines can finish.
			continue
		}
		value := iterator.ToGo(it.CurrentValue())
		if p.projector != nil {
			value = p.projector.Project(value)
		}
		fnErr = fn(value)
	}
	// The error callback runs before the source stream closes, which
	// happens before the element stream closes, so once the iterator is
	// exhausted decodeErr is settled.
	if decodeErr != nil {
		return decodeErr
	}
	return fnErr
}

// Run collects the projected elements of the document read from r.  The
// result is all-or-nothing: on a decode error no partial results are
// returned.
func (p *Pipeline) Run(r io.Reader) ([]any, error) {
	var results []any
	err := p.Each(r, func(value any) error {
		results = append(results, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
