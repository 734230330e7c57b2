package jsonsift

// Package jsonsift extracts and filters elements from large JSON documents
// in a stream.
//
// The package is organized into several sub-packages:
//
// - encoding/json: streaming JSON decoder and encoder
// - extract: locating the configured element array inside a document
// - project: reducing each element to a set of requested field paths
// - derive: computed fields layered on projection via expressions
// - token: core token-based streaming infrastructure
// - iterator: value-based iteration over token streams
// - config: YAML pipeline configuration
//
// These are combined by the Pipeline in this package:
//
//	decode JSON -> extract elements -> project fields -> collect
//
// Each stage is a streaming operation, so a response body holding a hundred
// thousand records can be reduced to the handful of fields a sync job needs
// with memory usage bounded by the size of one record, not the size of the
// document.
//
// The CLI utility is in the directory cmd/jsift. You can install it with:
//
//	go install github.com/davrell/jsonsift/cmd/jsift
