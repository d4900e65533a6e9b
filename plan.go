// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// NullValue is a target type that accepts only the JSON null constant.
type NullValue struct{}

// Tuple is a marker type. A struct type that embeds Tuple is converted from
// an array having one element for each of its exported fields, in the order
// of their declaration.
type Tuple struct{}

var (
	nullType  = reflect.TypeFor[NullValue]()
	tupleType = reflect.TypeFor[Tuple]()
)

// category identifies how values of a type are converted.
type category byte

const (
	catInvalid category = iota
	catEnum
	catInt
	catUint
	catFloat
	catString
	catBool
	catNull
	catOptional
	catSequence
	catMap
	catTuple
	catRecord
)

var categoryStr = [...]string{
	catInvalid:  "unsupported",
	catEnum:     "enum",
	catInt:      "integer",
	catUint:     "unsigned integer",
	catFloat:    "floating-point",
	catString:   "string",
	catBool:     "bool",
	catNull:     "null",
	catOptional: "optional",
	catSequence: "sequence",
	catMap:      "map",
	catTuple:    "tuple",
	catRecord:   "record",
}

func (c category) String() string {
	if int(c) >= len(categoryStr) {
		return "invalid category"
	}
	return categoryStr[c]
}

// A typePlan records the conversion category of a type and the information
// needed to construct converters for it.
type typePlan struct {
	cat    category
	fields []fieldPlan // tuple positions or record fields
	enum   *enumTable  // for catEnum
}

// A fieldPlan describes a struct field used as a record member or a tuple
// position.
type fieldPlan struct {
	name  string // object key (records only)
	index []int  // for reflect.Value.FieldByIndex
	typ   reflect.Type
}

// lookup returns the index of the first field named key, or -1.
func (p *typePlan) lookup(key string) int {
	for i, f := range p.fields {
		if f.name == key {
			return i
		}
	}
	return -1
}

var (
	// plans maps a reflect.Type to its *typePlan.
	plans sync.Map

	// checked maps a reflect.Type to the result of checkType, as an error
	// value (nil for a supported type).
	checked sync.Map

	// enums maps a reflect.Type to its *enumTable.
	enums sync.Map
)

// planFor returns the conversion plan for t.
func planFor(t reflect.Type) *typePlan {
	if p, ok := plans.Load(t); ok {
		return p.(*typePlan)
	}
	p, _ := plans.LoadOrStore(t, makePlan(t))
	return p.(*typePlan)
}

func makePlan(t reflect.Type) *typePlan {
	if e, ok := enums.Load(t); ok {
		return &typePlan{cat: catEnum, enum: e.(*enumTable)}
	} else if t == nullType {
		return &typePlan{cat: catNull}
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &typePlan{cat: catInt}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return &typePlan{cat: catUint}
	case reflect.Float32, reflect.Float64:
		return &typePlan{cat: catFloat}
	case reflect.String:
		return &typePlan{cat: catString}
	case reflect.Bool:
		return &typePlan{cat: catBool}
	case reflect.Pointer:
		return &typePlan{cat: catOptional}
	case reflect.Slice:
		return &typePlan{cat: catSequence}
	case reflect.Map:
		if t.Key().Kind() == reflect.String {
			return &typePlan{cat: catMap}
		}
	case reflect.Array:
		return &typePlan{cat: catTuple}
	case reflect.Struct:
		if isTupleStruct(t) {
			return &typePlan{cat: catTuple, fields: tupleFields(t)}
		}
		return &typePlan{cat: catRecord, fields: recordFields(t)}
	}
	return &typePlan{cat: catInvalid}
}

func isTupleStruct(t reflect.Type) bool {
	for i := range t.NumField() {
		if f := t.Field(i); f.Anonymous && f.Type == tupleType {
			return true
		}
	}
	return false
}

// tupleFields returns the exported fields of t in declaration order, omitting
// the Tuple marker.
func tupleFields(t reflect.Type) []fieldPlan {
	var out []fieldPlan
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() || f.Type == tupleType {
			continue
		}
		out = append(out, fieldPlan{index: f.Index, typ: f.Type})
	}
	return out
}

// recordFields returns the named fields of a record type t, in declaration
// order. Fields of embedded structs are promoted, as with encoding/json.
func recordFields(t reflect.Type) []fieldPlan {
	var out []fieldPlan
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || viaPointer(t, f.Index) {
			continue
		}
		if f.Tag.Get("json") == "-" {
			continue
		}
		name, tagged := fieldName(f)
		if f.Anonymous && !tagged && f.Type.Kind() == reflect.Struct {
			continue // promoted
		}
		out = append(out, fieldPlan{name: name, index: f.Index, typ: f.Type})
	}
	return out
}

// fieldName reports the object key for f and whether it was given by a tag.
// The tag "-," names the key "-".
func fieldName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return f.Name, false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name, false
	}
	return name, true
}

// viaPointer reports whether the field at index in t is reached through an
// embedded pointer.
func viaPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Pointer {
			return true
		}
		t = f.Type
	}
	return false
}

// checkType reports an *UnsupportedTypeError if any type reachable from t
// has no conversion category.
func checkType(t reflect.Type) error {
	if v, ok := checked.Load(t); ok {
		err, _ := v.(error)
		return err
	}
	err := checkTypeGraph(t, make(map[reflect.Type]bool))
	if err != nil {
		checked.Store(t, err)
	} else {
		checked.Store(t, true)
	}
	return err
}

func checkTypeGraph(t reflect.Type, seen map[reflect.Type]bool) error {
	if seen[t] {
		return nil
	}
	seen[t] = true
	p := planFor(t)
	switch p.cat {
	case catInvalid:
		return &UnsupportedTypeError{Type: t}
	case catOptional, catSequence, catMap:
		return checkTypeGraph(t.Elem(), seen)
	case catTuple, catRecord:
		if t.Kind() == reflect.Array {
			return checkTypeGraph(t.Elem(), seen)
		}
		for _, f := range p.fields {
			if err := checkTypeGraph(f.typ, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

// An enumTable maps enumerator names to values of the enum type.
type enumTable struct {
	values map[string]reflect.Value
}

// RegisterEnum registers E as an enumeration type whose values are converted
// from JSON strings giving their names. Once registered, E is converted by
// name regardless of its underlying type.
//
// RegisterEnum panics if names is empty or if E is already registered.
// It is safe to call RegisterEnum concurrently, though it is usually called
// during program initialization.
func RegisterEnum[E comparable](names map[string]E) {
	t := reflect.TypeFor[E]()
	if len(names) == 0 {
		panic(fmt.Sprintf("jinto: no names for enum type %v", t))
	}
	tab := &enumTable{values: make(map[string]reflect.Value, len(names))}
	for name, v := range names {
		tab.values[name] = reflect.ValueOf(v)
	}
	if _, dup := enums.LoadOrStore(t, tab); dup {
		panic(fmt.Sprintf("jinto: enum type %v is already registered", t))
	}

	// Plans and checks computed before registration are stale.
	plans.Delete(t)
	checked.Clear()
}
