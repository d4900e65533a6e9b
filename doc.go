// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jinto implements a JSON scanner and stream parser that converts
// parse events directly into typed Go values, without building an
// intermediate document tree.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON.  Construct a scanner
// from an io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s := jinto.NewScanner(input)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates an I/O or lexical error in the input.
//
// # Streaming
//
// The Stream type implements an event-driven stream parser for JSON.  The
// parser works by calling methods on a Handler value to report the structure
// of the input. In case of a syntax error, parsing is terminated and an error
// of concrete type *jinto.SyntaxError is returned. If a Handler method reports
// an error, parsing stops and that error is returned unmodified.
//
//	s := jinto.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// To parse a single value from the front of the input, call ParseOne. This
// method returns io.EOF if no further values are available.
//
// # Handlers
//
// The methods of a Handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods
//	---------- | ---------------------------------------------
//	document   | BeginDocument, EndDocument
//	object     | BeginObject, EndObject
//	array      | BeginArray, EndArray
//	key        | KeyPart, Key
//	string     | StringPart, StringValue
//	number     | NumberPart, Int64, Uint64, Float64
//	constant   | Bool, Null
//	comment    | CommentPart, Comment
//
// Long text may be delivered in fragments; see SetFragmentSize.
//
// # Conversion
//
// A Converter is a Handler that stores the value described by the events it
// receives into a Go variable:
//
//	var v struct {
//	   Name string   `json:"name"`
//	   Tags []string `json:"tags"`
//	}
//	c, err := jinto.NewConverter(&v)
//	...
//	err = jinto.NewStream(input).Parse(c)
//
// The shape of the value is determined statically by the type of the target:
//
//	Go type                       | JSON
//	----------------------------- | --------------------------------------
//	registered enum (RegisterEnum)| string naming an enumerator
//	signed and unsigned integers  | integer, in range for the type
//	float32, float64              | number
//	string                        | string
//	bool                          | true, false
//	jinto.NullValue               | null
//	*T                            | null, or a value of T
//	[]T                           | array of T
//	map[string]T                  | object with values of T
//	[N]T, struct embedding Tuple  | array of at most one value per position;
//	                              | positions not reached keep their values
//	other structs                 | object whose keys name fields
//
// Conversion failures are reported as values of type Error. Unmarshal and
// Decoder.Decode wrap them in a *DecodeError giving the input location.
package jinto
