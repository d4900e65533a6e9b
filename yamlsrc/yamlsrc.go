// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package yamlsrc implements a source of jinto parse events from YAML
// documents, using the node representation of gopkg.in/yaml.v3.
//
// Mappings are delivered as objects, sequences as arrays, and scalars
// according to their resolved tags: null, Boolean, integer, and float
// scalars are delivered as the corresponding events, and all others as
// strings. Aliases are replaced by the nodes they refer to. Comments attached
// to nodes are delivered as Comment events.
package yamlsrc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/creachadair/jinto"
	"go4.org/mem"
	"gopkg.in/yaml.v3"
)

// Parse decodes each YAML document of r, and delivers its events to h.
func Parse(r io.Reader, h jinto.Handler) error {
	dec := yaml.NewDecoder(r)
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := Walk(&doc, h); err != nil {
			return err
		}
	}
}

// Walk delivers the events for node to h, as a single document. If node is
// a document node, its content is the value of the document.
func Walk(node *yaml.Node, h jinto.Handler) error {
	w := walker{h: h}
	if node.Kind == yaml.DocumentNode {
		if err := w.comment(node.HeadComment); err != nil {
			return err
		} else if err := h.BeginDocument(); err != nil {
			return err
		}
		var err error
		if len(node.Content) == 0 {
			err = h.Null()
		} else {
			err = w.walk(node.Content[0])
		}
		if err != nil {
			return err
		} else if err := h.EndDocument(); err != nil {
			return err
		}
		return w.comment(node.LineComment, node.FootComment)
	}
	if err := h.BeginDocument(); err != nil {
		return err
	} else if err := w.walk(node); err != nil {
		return err
	}
	return h.EndDocument()
}

// Unmarshal converts the single YAML document in data into the value pointed
// to by v. An input with no document reports io.ErrUnexpectedEOF, and further
// documents are reported as jinto.ExtraData.
func Unmarshal(data []byte, v any) error {
	c, err := jinto.NewConverter(v)
	if err != nil {
		return err
	}
	if err := Parse(bytes.NewReader(data), c); err != nil {
		return err
	} else if !c.Done() {
		return io.ErrUnexpectedEOF
	}
	return nil
}

type walker struct {
	h jinto.Handler
}

func (w walker) comment(texts ...string) error {
	for _, text := range texts {
		if text == "" {
			continue
		}
		if err := w.h.Comment(mem.S(text)); err != nil {
			return err
		}
	}
	return nil
}

func (w walker) walk(node *yaml.Node) error {
	if err := w.comment(node.HeadComment); err != nil {
		return err
	}
	var err error
	switch node.Kind {
	case yaml.AliasNode:
		err = w.walk(node.Alias)
	case yaml.MappingNode:
		err = w.mapping(node)
	case yaml.SequenceNode:
		err = w.sequence(node)
	case yaml.ScalarNode:
		err = w.scalar(node)
	default:
		err = fmt.Errorf("line %d: unexpected node kind %v", node.Line, node.Kind)
	}
	if err != nil {
		return err
	}
	return w.comment(node.LineComment, node.FootComment)
}

func (w walker) mapping(node *yaml.Node) error {
	if len(node.Content)%2 != 0 {
		return fmt.Errorf("line %d: mapping has an odd number of nodes", node.Line)
	}
	if err := w.h.BeginObject(); err != nil {
		return err
	}
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i]
		for key.Kind == yaml.AliasNode {
			key = key.Alias
		}
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: mapping key is not a scalar", key.Line)
		}
		if err := w.comment(key.HeadComment); err != nil {
			return err
		} else if err := w.h.Key(mem.S(key.Value), len(key.Value)); err != nil {
			return err
		} else if err := w.comment(key.LineComment, key.FootComment); err != nil {
			return err
		} else if err := w.walk(node.Content[i+1]); err != nil {
			return err
		}
	}
	return w.h.EndObject(len(node.Content) / 2)
}

func (w walker) sequence(node *yaml.Node) error {
	if err := w.h.BeginArray(); err != nil {
		return err
	}
	for _, elt := range node.Content {
		if err := w.walk(elt); err != nil {
			return err
		}
	}
	return w.h.EndArray(len(node.Content))
}

func (w walker) scalar(node *yaml.Node) error {
	raw := mem.S(node.Value)
	switch node.ShortTag() {
	case "!!null":
		return w.h.Null()

	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		return w.h.Bool(b)

	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return w.h.Int64(i, raw)
		}
		var u uint64
		if err := node.Decode(&u); err == nil {
			return w.h.Uint64(u, raw)
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		return w.h.Float64(f, raw)

	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		return w.h.Float64(f, raw)
	}
	return w.h.StringValue(raw, len(node.Value))
}
