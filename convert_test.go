// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jinto_test

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"testing"

	"github.com/creachadair/jinto"
	"github.com/creachadair/jinto/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

type color int

const (
	red color = iota
	green
	blue
)

func init() {
	jinto.RegisterEnum(map[string]color{"red": red, "green": green, "blue": blue})
}

type label string

type pair struct {
	jinto.Tuple
	Name  string
	Count int
}

type person struct {
	Name    string   `json:"name"`
	Age     int      `json:"age,omitempty"`
	Ignored int      `json:"-"`
	Tags    []string `json:"tags"`
	Email   *string
	Home    *address `json:"home"`
}

type dashed struct {
	Dash int `json:"-,"`
}

type address struct {
	City string `json:"city"`
	Zip  int    `json:"zip"`
}

type base struct {
	ID int `json:"id"`
}

type derived struct {
	base
	Kind string `json:"kind"`
}

type tree struct {
	Value int    `json:"value"`
	Kids  []tree `json:"kids"`
}

type list struct {
	V    int   `json:"v"`
	Next *list `json:"next"`
}

func ptr[T any](v T) *T { return &v }

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		target any // pointer to the target value
		script []string
		want   any // pointer to the expected value
		err    error
	}{
		// Integers
		{"Int", new(int), []string{"i:5"}, ptr(5), nil},
		{"IntUnsigned", new(int), []string{"u:5"}, ptr(5), nil},
		{"IntParts", new(int), []string{"np:12", "np:34", "i:5"}, ptr(5), nil},
		{"IntFloat", new(int), []string{"f:1.5"}, ptr(0), jinto.NotInteger},
		{"IntString", new(int), []string{"s:5"}, ptr(0), jinto.NotInteger},
		{"IntBool", new(int), []string{"true"}, ptr(0), jinto.NotInteger},
		{"IntNull", new(int), []string{"null"}, ptr(0), jinto.NotInteger},
		{"IntObject", new(int), []string{"{"}, ptr(0), jinto.NotInteger},
		{"IntArray", new(int), []string{"["}, ptr(0), jinto.NotInteger},
		{"Uint8", new(uint8), []string{"i:255"}, ptr(uint8(255)), nil},
		{"Uint8Negative", new(uint8), []string{"i:-1"}, ptr(uint8(0)), jinto.NotExact},

		// Floating-point
		{"Float", new(float64), []string{"f:2.5"}, ptr(2.5), nil},
		{"FloatInt", new(float64), []string{"i:-3"}, ptr(-3.0), nil},
		{"FloatUint", new(float64), []string{"u:18446744073709551615"}, ptr(1.8446744073709552e19), nil},
		{"Float32", new(float32), []string{"f:0.5"}, ptr(float32(0.5)), nil},
		{"FloatParts", new(float64), []string{"np:1.", "f:1.25"}, ptr(1.25), nil},
		{"FloatString", new(float64), []string{"s:1"}, ptr(0.0), jinto.NotDouble},
		{"FloatNull", new(float64), []string{"null"}, ptr(0.0), jinto.NotDouble},

		// Strings
		{"String", new(string), []string{"s:hello"}, ptr("hello"), nil},
		{"StringEmpty", ptr("old"), []string{"s:"}, ptr(""), nil},
		{"StringParts", new(string), []string{"sp:hel", "sp:l", "s:o"}, ptr("hello"), nil},
		{"StringReplace", ptr("old"), []string{"s:new"}, ptr("new"), nil},
		{"StringNamed", new(label), []string{"s:x"}, ptr(label("x")), nil},
		{"StringInt", new(string), []string{"i:1"}, ptr(""), jinto.NotString},
		{"StringObject", new(string), []string{"{"}, ptr(""), jinto.NotString},
		{"StringKey", new(string), []string{"k:a"}, ptr(""), jinto.NotString},

		// Booleans and null
		{"BoolTrue", new(bool), []string{"true"}, ptr(true), nil},
		{"BoolFalse", ptr(true), []string{"false"}, ptr(false), nil},
		{"BoolInt", new(bool), []string{"i:1"}, ptr(false), jinto.NotBool},
		{"BoolString", new(bool), []string{"s:true"}, ptr(false), jinto.NotBool},
		{"Null", new(jinto.NullValue), []string{"null"}, new(jinto.NullValue), nil},
		{"NullInt", new(jinto.NullValue), []string{"i:0"}, new(jinto.NullValue), jinto.NotNull},
		{"NullArray", new(jinto.NullValue), []string{"["}, new(jinto.NullValue), jinto.NotNull},

		// Enumerations
		{"Enum", new(color), []string{"s:green"}, ptr(green), nil},
		{"EnumParts", new(color), []string{"sp:gr", "sp:e", "s:en"}, ptr(green), nil},
		{"EnumUnknown", ptr(blue), []string{"s:purple"}, ptr(blue), jinto.UnknownName},
		{"EnumPrefix", new(color), []string{"sp:red", "s:dish"}, ptr(red), jinto.UnknownName},
		{"EnumInt", new(color), []string{"i:1"}, ptr(red), jinto.NotString},
		{"EnumSequence", new([]color), []string{"[", "s:red", "sp:bl", "s:ue", "s:red", "]"},
			ptr([]color{red, blue, red}), nil},

		// Sequences
		{"Sequence", new([]int), []string{"[", "i:1", "i:2", "i:3", "]"}, ptr([]int{1, 2, 3}), nil},
		{"SequenceEmpty", new([]int), []string{"[", "]"}, ptr([]int{}), nil},
		{"SequenceDuplicates", new([]int), []string{"[", "i:2", "i:2", "i:1", "]"}, ptr([]int{2, 2, 1}), nil},
		{"SequenceTruncate", ptr([]int{9, 9, 9}), []string{"[", "i:1", "]"}, ptr([]int{1}), nil},
		{"SequenceStrings", new([]string), []string{"[", "sp:a", "s:b", "s:c", "]"}, ptr([]string{"ab", "c"}), nil},
		{"SequenceNested", new([][]int), []string{
			"[", "[", "i:1", "i:2", "]", "[", "]", "[", "i:3", "]", "]",
		}, ptr([][]int{{1, 2}, {}, {3}}), nil},
		{"SequenceNestedEmpty", new([][]int), []string{"[", "]"}, ptr([][]int{}), nil},
		{"SequenceDeep", new([][][]string), []string{
			"[", "[", "[", "s:a", "]", "]", "[", "[", "]", "[", "s:b", "s:c", "]", "]", "]",
		}, ptr([][][]string{{{"a"}}, {{}, {"b", "c"}}}), nil},
		{"SequenceNotArray", new([]int), []string{"i:1"}, new([]int), jinto.NotArray},
		{"SequenceObject", new([]int), []string{"{"}, new([]int), jinto.NotArray},
		{"SequenceBadElement", new([]int), []string{"[", "i:1", "s:2"}, ptr([]int{1}), jinto.NotInteger},

		// Maps
		{"Map", new(map[string]int), []string{"{", "k:a", "i:1", "k:b", "i:2", "}"},
			ptr(map[string]int{"a": 1, "b": 2}), nil},
		{"MapLastWins", new(map[string]int), []string{"{", "k:a", "i:1", "k:a", "i:2", "}"},
			ptr(map[string]int{"a": 2}), nil},
		{"MapEmpty", new(map[string]int), []string{"{", "}"}, ptr(map[string]int{}), nil},
		{"MapKeep", ptr(map[string]int{"z": 26}), []string{"{", "k:a", "i:1", "}"},
			ptr(map[string]int{"a": 1, "z": 26}), nil},
		{"MapKeyParts", new(map[string]bool), []string{"{", "kp:al", "kp:ph", "k:a", "true", "k:b", "false", "}"},
			ptr(map[string]bool{"alpha": true, "b": false}), nil},
		{"MapNamedKey", new(map[label]string), []string{"{", "k:x", "s:y", "}"},
			ptr(map[label]string{"x": "y"}), nil},
		{"MapOfSequence", new(map[string][]int), []string{
			"{", "k:a", "[", "i:1", "i:2", "]", "k:b", "[", "]", "}",
		}, ptr(map[string][]int{"a": {1, 2}, "b": {}}), nil},
		{"MapOfMap", new(map[string]map[string]int), []string{
			"{", "k:a", "{", "k:x", "i:1", "}", "k:b", "{", "}", "}",
		}, ptr(map[string]map[string]int{"a": {"x": 1}, "b": {}}), nil},
		{"SequenceOfMap", new([]map[string]int), []string{
			"[", "{", "k:a", "i:1", "}", "{", "}", "{", "k:b", "i:2", "}", "]",
		}, ptr([]map[string]int{{"a": 1}, {}, {"b": 2}}), nil},
		{"SequenceOfMapEmpty", new([]map[string]int), []string{"[", "]"}, ptr([]map[string]int{}), nil},
		{"MapNotObject", new(map[string]int), []string{"["}, new(map[string]int), jinto.NotObject},
		{"MapString", new(map[string]int), []string{"s:x"}, new(map[string]int), jinto.NotObject},
		{"MapBadValue", new(map[string]int), []string{"{", "k:a", "s:x"}, ptr(map[string]int{}), jinto.NotInteger},

		// Tuples
		{"Array", new([3]int), []string{"[", "i:1", "i:2", "i:3", "]"}, ptr([3]int{1, 2, 3}), nil},
		{"ArrayShort", new([3]int), []string{"[", "i:1", "]"}, ptr([3]int{1, 0, 0}), nil},
		{"ArrayShortKeep", ptr([3]int{7, 8, 9}), []string{"[", "i:1", "]"}, ptr([3]int{1, 8, 9}), nil},
		{"ArrayEmpty", new([3]int), []string{"[", "]"}, new([3]int), nil},
		{"ArrayLong", new([3]int), []string{"[", "i:1", "i:2", "i:3", "i:4"}, ptr([3]int{1, 2, 3}), jinto.SizeMismatch},
		{"ArrayLongArray", new([2]int), []string{"[", "i:1", "i:2", "["}, ptr([2]int{1, 2}), jinto.SizeMismatch},
		{"ArrayZero", new([0]int), []string{"[", "]"}, new([0]int), nil},
		{"ArrayZeroLong", new([0]int), []string{"[", "i:1"}, new([0]int), jinto.SizeMismatch},
		{"ArrayNotArray", new([2]int), []string{"i:1"}, new([2]int), jinto.NotArray},
		{"ArrayObject", new([2]int), []string{"{"}, new([2]int), jinto.NotArray},
		{"ArrayBadElement", new([2]int), []string{"[", "s:x"}, new([2]int), jinto.NotInteger},
		{"Tuple", new(pair), []string{"[", "s:a", "i:2", "]"}, &pair{Name: "a", Count: 2}, nil},
		{"TupleShort", new(pair), []string{"[", "s:a", "]"}, &pair{Name: "a"}, nil},
		{"TupleShortKeep", &pair{Name: "x", Count: 4}, []string{"[", "s:a", "]"}, &pair{Name: "a", Count: 4}, nil},
		{"TupleLong", new(pair), []string{"[", "s:a", "i:2", "null"}, &pair{Name: "a", Count: 2}, jinto.SizeMismatch},
		{"TupleMismatch", new(pair), []string{"[", "i:2"}, new(pair), jinto.NotString},
		{"SequenceOfArray", new([][2]int), []string{
			"[", "[", "i:1", "i:2", "]", "[", "i:3", "]", "]",
		}, ptr([][2]int{{1, 2}, {3, 0}}), nil},
		{"SequenceOfArrayEmpty", new([][2]int), []string{"[", "]"}, ptr([][2]int{}), nil},
		{"ArrayOfSequence", new([2][]int), []string{
			"[", "[", "i:1", "]", "[", "]", "]",
		}, ptr([2][]int{{1}, {}}), nil},
		{"ArrayOfSequenceShort", new([2][]int), []string{
			"[", "[", "i:1", "i:2", "]", "]",
		}, ptr([2][]int{{1, 2}, nil}), nil},
		{"ArrayOfArray", new([2][2]string), []string{
			"[", "[", "s:a", "s:b", "]", "[", "s:c", "s:d", "]", "]",
		}, ptr([2][2]string{{"a", "b"}, {"c", "d"}}), nil},

		// Records
		{"Record", new(person), []string{
			"{", "k:name", "s:bob", "k:age", "i:37", "k:tags", "[", "s:x", "s:y", "]", "}",
		}, &person{Name: "bob", Age: 37, Tags: []string{"x", "y"}}, nil},
		{"RecordEmpty", &person{Name: "keep"}, []string{"{", "}"}, &person{Name: "keep"}, nil},
		{"RecordFieldName", new(person), []string{"{", "k:Email", "s:a@b", "}"},
			&person{Email: ptr("a@b")}, nil},
		{"RecordKeyParts", new(person), []string{"{", "kp:na", "k:me", "s:z", "}"}, &person{Name: "z"}, nil},
		{"RecordNested", new(person), []string{
			"{", "k:home", "{", "k:city", "s:Paris", "k:zip", "i:75001", "}", "k:name", "s:x", "}",
		}, &person{Name: "x", Home: &address{City: "Paris", Zip: 75001}}, nil},
		{"RecordNullField", &person{Home: &address{City: "Oslo"}}, []string{"{", "k:home", "null", "}"},
			new(person), nil},
		{"RecordUnknown", &person{Name: "a", Age: 1}, []string{"{", "k:nom", "s:b"},
			&person{Name: "a", Age: 1}, jinto.UnknownName},
		{"RecordGoName", new(person), []string{"{", "k:Name", "s:b"}, new(person), jinto.UnknownName},
		{"RecordSkipped", new(person), []string{"{", "k:Ignored", "i:1"}, new(person), jinto.UnknownName},
		{"RecordSkippedDash", new(person), []string{"{", "k:-", "i:1"}, new(person), jinto.UnknownName},
		{"RecordDashKey", new(dashed), []string{"{", "k:-", "i:3", "}"}, &dashed{Dash: 3}, nil},
		{"RecordDashGoName", new(dashed), []string{"{", "k:Dash", "i:3"}, new(dashed), jinto.UnknownName},
		{"RecordNotObject", new(person), []string{"["}, new(person), jinto.NotObject},
		{"RecordString", new(person), []string{"s:bob"}, new(person), jinto.NotObject},
		{"RecordBadField", new(person), []string{"{", "k:age", "s:old"}, new(person), jinto.NotInteger},
		{"RecordEmbedded", new(derived), []string{"{", "k:id", "i:7", "k:kind", "s:k", "}"},
			&derived{base: base{ID: 7}, Kind: "k"}, nil},
		{"SequenceOfRecord", new([]address), []string{
			"[", "{", "k:city", "s:A", "}", "{", "}", "{", "k:zip", "i:1", "}", "]",
		}, ptr([]address{{City: "A"}, {}, {Zip: 1}}), nil},
		{"SequenceOfRecordEmpty", new([]address), []string{"[", "]"}, ptr([]address{}), nil},
		{"MapOfRecord", new(map[string]address), []string{
			"{", "k:home", "{", "k:zip", "i:5", "}", "}",
		}, ptr(map[string]address{"home": {Zip: 5}}), nil},
		{"Recursive", new(tree), []string{
			"{", "k:value", "i:1", "k:kids", "[",
			"{", "k:value", "i:2", "}",
			"{", "k:value", "i:3", "k:kids", "[", "{", "k:value", "i:4", "}", "]", "}",
			"]", "}",
		}, &tree{Value: 1, Kids: []tree{{Value: 2}, {Value: 3, Kids: []tree{{Value: 4}}}}}, nil},
		{"RecursivePointer", new(list), []string{
			"{", "k:v", "i:1", "k:next", "{", "k:v", "i:2", "k:next", "null", "}", "}",
		}, &list{V: 1, Next: &list{V: 2}}, nil},

		// Optionals
		{"OptionalNull", ptr(ptr(5)), []string{"null"}, new(*int), nil},
		{"OptionalValue", new(*int), []string{"i:5"}, ptr(ptr(5)), nil},
		{"OptionalString", new(*string), []string{"sp:a", "s:b"}, ptr(ptr("ab")), nil},
		{"OptionalMismatch", new(*int), []string{"s:x"}, new(*int), jinto.NotInteger},
		{"OptionalSequence", new(*[]int), []string{"[", "i:1", "]"}, ptr(&[]int{1}), nil},
		{"OptionalSequenceEmpty", new(*[]int), []string{"[", "]"}, ptr(&[]int{}), nil},
		{"OptionalSequenceNull", new(*[]int), []string{"[", "null"}, new(*[]int), jinto.NotInteger},
		{"OptionalOfOptionals", new(*[]*int), []string{"[", "null", "i:1", "]"},
			ptr(&[]*int{nil, ptr(1)}), nil},
		{"SequenceOfOptional", new([]*int), []string{"[", "i:1", "null", "i:2", "]"},
			ptr([]*int{ptr(1), nil, ptr(2)}), nil},
		{"SequenceOfOptionalEmpty", new([]*int), []string{"[", "]"}, ptr([]*int{}), nil},
		{"OptionalRecord", new(*address), []string{"{", "k:zip", "i:9", "}"}, ptr(&address{Zip: 9}), nil},
		{"OptionalNullType", new(*jinto.NullValue), []string{"null"}, new(*jinto.NullValue), nil},
		{"OptionalTuple", new(*pair), []string{"[", "s:p", "i:1", "]"}, ptr(&pair{Name: "p", Count: 1}), nil},
		{"MapOfOptional", new(map[string]*bool), []string{"{", "k:a", "null", "k:b", "true", "}"},
			ptr(map[string]*bool{"a": nil, "b": ptr(true)}), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := jinto.NewConverter(tc.target)
			if err != nil {
				t.Fatalf("NewConverter: unexpected error: %v", err)
			}
			err = testutil.Feed(c, tc.script...)
			if !errors.Is(err, tc.err) {
				t.Errorf("Feed: got error %v, want %v", err, tc.err)
			}
			if diff := cmp.Diff(tc.want, tc.target, cmp.AllowUnexported(derived{})); diff != "" {
				t.Errorf("Result (-want, +got):\n%s", diff)
			}
			if tc.err == nil && !c.Done() {
				t.Error("Converter did not complete")
			}
		})
	}
}

func TestIntegerRange(t *testing.T) {
	type rangeCase struct {
		name   string
		target func() any
		event  string
		err    error
	}
	var tests []rangeCase

	// Events for the integer v as a stream would report it.
	intEvent := func(v int64) string { return "i:" + strconv.FormatInt(v, 10) }
	uintEvent := func(v uint64) string {
		if v <= math.MaxInt64 {
			return intEvent(int64(v))
		}
		return "u:" + strconv.FormatUint(v, 10)
	}

	signed := func(name string, target func() any, lo, hi int64) {
		tests = append(tests,
			rangeCase{name + "/min", target, intEvent(lo), nil},
			rangeCase{name + "/max", target, intEvent(hi), nil},
		)
		if lo > math.MinInt64 {
			tests = append(tests, rangeCase{name + "/min-1", target, intEvent(lo - 1), jinto.NotExact})
		}
		if hi < math.MaxInt64 {
			tests = append(tests, rangeCase{name + "/max+1", target, intEvent(hi + 1), jinto.NotExact})
		} else {
			tests = append(tests, rangeCase{name + "/max+1", target, uintEvent(uint64(hi) + 1), jinto.NotExact})
		}
	}
	unsigned := func(name string, target func() any, hi uint64) {
		tests = append(tests,
			rangeCase{name + "/min", target, intEvent(0), nil},
			rangeCase{name + "/min-1", target, intEvent(-1), jinto.NotExact},
			rangeCase{name + "/max", target, uintEvent(hi), nil},
		)
		if hi < math.MaxUint64 {
			tests = append(tests, rangeCase{name + "/max+1", target, uintEvent(hi + 1), jinto.NotExact})
		}
	}

	signed("int8", func() any { return new(int8) }, math.MinInt8, math.MaxInt8)
	signed("int16", func() any { return new(int16) }, math.MinInt16, math.MaxInt16)
	signed("int32", func() any { return new(int32) }, math.MinInt32, math.MaxInt32)
	signed("int64", func() any { return new(int64) }, math.MinInt64, math.MaxInt64)
	unsigned("uint8", func() any { return new(uint8) }, math.MaxUint8)
	unsigned("uint16", func() any { return new(uint16) }, math.MaxUint16)
	unsigned("uint32", func() any { return new(uint32) }, math.MaxUint32)
	unsigned("uint64", func() any { return new(uint64) }, math.MaxUint64)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target := tc.target()
			c, err := jinto.NewConverter(target)
			if err != nil {
				t.Fatalf("NewConverter: unexpected error: %v", err)
			}
			err = testutil.Feed(c, tc.event)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Feed %q: got error %v, want %v", tc.event, err, tc.err)
			}

			got := fmt.Sprint(reflect.ValueOf(target).Elem().Interface())
			want := tc.event[2:] // without the tag
			if tc.err != nil {
				want = "0"
			}
			if got != want {
				t.Errorf("Feed %q: got %s, want %s", tc.event, got, want)
			}
		})
	}
}

func TestConverterDocuments(t *testing.T) {
	tests := []struct {
		name   string
		script []string
		want   int
		err    error
	}{
		{"Framed", []string{"<", "i:1", ">"}, 1, nil},
		{"Unframed", []string{"i:1"}, 1, nil},
		{"Comments", []string{"c:// a", "<", "cp:/* b", "c: */", "i:2", "c:// c", ">", "c:// d"}, 2, nil},
		{"SecondDocument", []string{"<", "i:1", ">", "<", "i:2", ">"}, 1, jinto.ExtraData},
		{"SecondDocumentNull", []string{"<", "i:1", ">", "<", "null"}, 1, jinto.ExtraData},
		{"SecondValue", []string{"i:1", "i:2"}, 1, jinto.ExtraData},
		{"SecondValueFramed", []string{"<", "i:1", "i:2"}, 1, jinto.ExtraData},
		{"EmptyDocument", []string{"<", ">", "<", "i:3", ">"}, 0, jinto.ExtraData},
		{"AfterEnd", []string{"<", "i:1", ">", "["}, 1, jinto.ExtraData},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got int
			c, err := jinto.NewConverter(&got)
			if err != nil {
				t.Fatalf("NewConverter: unexpected error: %v", err)
			}
			if err := testutil.Feed(c, tc.script...); !errors.Is(err, tc.err) {
				t.Errorf("Feed: got error %v, want %v", err, tc.err)
			}
			if got != tc.want {
				t.Errorf("Result: got %d, want %d", got, tc.want)
			}
		})
	}

	t.Run("AfterComposite", func(t *testing.T) {
		var got []string
		c, err := jinto.NewConverter(&got)
		if err != nil {
			t.Fatalf("NewConverter: unexpected error: %v", err)
		}
		if err := testutil.Feed(c, "[", "s:a", "]"); err != nil {
			t.Fatalf("Feed: unexpected error: %v", err)
		}
		if !c.Done() {
			t.Error("Converter did not complete")
		}
		if err := testutil.Feed(c, "s:b"); err != jinto.ExtraData {
			t.Errorf("Feed: got error %v, want %v", err, jinto.ExtraData)
		}
		if diff := cmp.Diff([]string{"a"}, got); diff != "" {
			t.Errorf("Result (-want, +got):\n%s", diff)
		}
	})

	t.Run("Incomplete", func(t *testing.T) {
		var got map[string]int
		c, err := jinto.NewConverter(&got)
		if err != nil {
			t.Fatalf("NewConverter: unexpected error: %v", err)
		}
		if err := testutil.Feed(c, "{", "k:a", "i:1"); err != nil {
			t.Fatalf("Feed: unexpected error: %v", err)
		}
		if c.Done() {
			t.Error("Converter completed before the end of the object")
		}
	})
}

func TestNewConverter(t *testing.T) {
	t.Run("NotPointer", func(t *testing.T) {
		if c, err := jinto.NewConverter(5); err == nil {
			t.Errorf("NewConverter: got %v, want error", c)
		}
	})
	t.Run("NilPointer", func(t *testing.T) {
		if c, err := jinto.NewConverter((*int)(nil)); err == nil {
			t.Errorf("NewConverter: got %v, want error", c)
		}
	})

	type badField struct {
		OK  int
		Bad chan int
	}
	type hidden struct {
		OK  int
		bad func() // unexported fields are not converted
	}
	type badTuple struct {
		jinto.Tuple
		F func()
	}
	tests := []struct {
		target any
		bad    reflect.Type // nil if the target is supported
	}{
		{new(any), reflect.TypeFor[any]()},
		{new(chan int), reflect.TypeFor[chan int]()},
		{new(func()), reflect.TypeFor[func()]()},
		{new(complex128), reflect.TypeFor[complex128]()},
		{new(map[int]string), reflect.TypeFor[map[int]string]()},
		{new([]any), reflect.TypeFor[any]()},
		{new(map[string]complex64), reflect.TypeFor[complex64]()},
		{new(*[2]chan int), reflect.TypeFor[chan int]()},
		{new(badField), reflect.TypeFor[chan int]()},
		{new(badTuple), reflect.TypeFor[func()]()},

		{new(hidden), nil},
		{new(tree), nil},
		{new(list), nil},
		{new(map[label][]*pair), nil},
		{new(uintptr), nil},
	}
	for _, tc := range tests {
		typ := reflect.TypeOf(tc.target).Elem()
		_, err := jinto.NewConverter(tc.target)
		if tc.bad == nil {
			if err != nil {
				t.Errorf("NewConverter(%v): unexpected error: %v", typ, err)
			}
			continue
		}
		var uerr *jinto.UnsupportedTypeError
		if !errors.As(err, &uerr) {
			t.Errorf("NewConverter(%v): got error %v, want *UnsupportedTypeError", typ, err)
		} else if uerr.Type != tc.bad {
			t.Errorf("NewConverter(%v): got type %v, want %v", typ, uerr.Type, tc.bad)
		}
	}
}

func TestErrorStrings(t *testing.T) {
	for e := jinto.NotInteger; e <= jinto.ExtraData; e++ {
		if s := e.Error(); s == "" || s == fmt.Sprintf("conversion error %d", byte(e)) {
			t.Errorf("Error %d has no description: %q", byte(e), s)
		}
	}
	if got, want := jinto.Error(0).Error(), "conversion error 0"; got != want {
		t.Errorf("Error(0): got %q, want %q", got, want)
	}
}
