package token

import (
	"errors"
	"testing"
)

func TestSliceReadStream(t *testing.T) {
	toks := []Token{&StartArray{}, Int64Scalar(1), &EndArray{}}
	stream := NewSliceReadStream(toks)
	for i, want := range toks {
		got := stream.Next()
		if got != want {
			t.Errorf("token %d: expected %s, got %s", i, want, got)
		}
	}
	if stream.Next() != nil {
		t.Error("exhausted stream should return nil")
	}
	if stream.Next() != nil {
		t.Error("exhausted stream should keep returning nil")
	}
}

func TestAccumulatorStream(t *testing.T) {
	acc := NewAccumulatorStream()
	acc.Put(&StartObject{})
	acc.Put(&EndObject{})
	toks := acc.GetTokens()
	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(toks))
	}
	if _, ok := toks[0].(*StartObject); !ok {
		t.Errorf("expected StartObject, got %s", toks[0])
	}
}

type sliceSource struct {
	toks []Token
	err  error
}

func (s *sliceSource) Produce(out chan<- Token) error {
	for _, tok := range s.toks {
		out <- tok
	}
	return s.err
}

func TestStartStream(t *testing.T) {
	source := &sliceSource{toks: []Token{Int64Scalar(1), Int64Scalar(2)}}
	stream := StartStream(source, nil)
	var got []Token
	for tok := range stream {
		got = append(got, tok)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(got))
	}
}

// The error callback must have run by the time the stream is closed.
func TestStartStreamError(t *testing.T) {
	wantErr := errors.New("boom")
	source := &sliceSource{toks: []Token{Int64Scalar(1)}, err: wantErr}
	var gotErr error
	stream := StartStream(source, func(err error) { gotErr = err })
	for range stream {
	}
	if gotErr != wantErr {
		t.Errorf("expected error %v, got %v", wantErr, gotErr)
	}
}

type doubler struct{}

func (doubler) Transform(in <-chan Token, out WriteStream) {
	for tok := range in {
		out.Put(tok)
		out.Put(tok)
	}
}

func TestTransformStream(t *testing.T) {
	source := &sliceSource{toks: []Token{Int64Scalar(1)}}
	stream := TransformStream(StartStream(source, nil), doubler{})
	var got []Token
	for tok := range stream {
		got = append(got, tok)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(got))
	}
}
