// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package trace_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jinto"
	"github.com/creachadair/jinto/internal/testutil"
	"github.com/creachadair/jinto/trace"
	"github.com/google/go-cmp/cmp"
)

func TestHandler(t *testing.T) {
	const input = `{"a": [1, -2.5, true, null], "bc": "xyz"} // done`
	const want = `BeginDocument
  BeginObject
    Key "a" (1)
    BeginArray
      Int64 1 <1>
      Float64 -2.5 <-2.5>
      Bool true
      Null
    EndArray 4
    Key "bc" (2)
    String "xyz" (3)
  EndObject 2
EndDocument
Comment "// done"
`
	var buf strings.Builder
	st := jinto.NewStream(strings.NewReader(input))
	st.AllowComments(true)
	if err := st.Parse(trace.New(&buf)); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Trace (-want, +got):\n%s", diff)
	}
}

func TestFragments(t *testing.T) {
	var buf strings.Builder
	if err := testutil.Feed(trace.New(&buf),
		"kp:ab", "k:c", "sp:de", "s:f", "np:12", "u:18446744073709551615", "cp:/* x", "c: */",
	); err != nil {
		t.Fatalf("Feed: unexpected error: %v", err)
	}
	want := `KeyPart "ab" (2)
Key "c" (3)
StringPart "de" (2)
String "f" (3)
NumberPart 12
Uint64 18446744073709551615 <18446744073709551615>
CommentPart "/* x"
Comment " */"
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Trace (-want, +got):\n%s", diff)
	}
}

func TestTee(t *testing.T) {
	const input = `[{"x": 1}, "y"] 3`
	var rec testutil.Recorder
	var buf strings.Builder
	if err := jinto.NewStream(strings.NewReader(input)).Parse(trace.Tee(&buf, &rec)); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	want := []string{
		"<", "[", "{", "k:x", "i:1", "}1", "s:y", "]2", ">",
		"<", "i:3", ">",
	}
	if diff := cmp.Diff(want, rec.Events); diff != "" {
		t.Errorf("Downstream events (-want, +got):\n%s", diff)
	}
	if got := strings.Count(buf.String(), "\n"); got != len(want) {
		t.Errorf("Trace has %d lines, want %d:\n%s", got, len(want), buf.String())
	}
}

func TestTeeError(t *testing.T) {
	var v []int
	c, err := jinto.NewConverter(&v)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	var buf strings.Builder
	err = jinto.NewStream(strings.NewReader(`[1, "two"]`)).Parse(trace.Tee(&buf, c))
	if !errors.Is(err, jinto.NotInteger) {
		t.Errorf("Parse: got %v, want %v", err, jinto.NotInteger)
	}
	if !strings.HasSuffix(buf.String(), `String "two" (3)`+"\n") {
		t.Errorf("Trace does not end with the failing event:\n%s", buf.String())
	}
}

func TestColor(t *testing.T) {
	var buf strings.Builder
	h := trace.New(&buf)
	h.SetColor(true)
	if err := testutil.Feed(h, "<", "true", ">"); err != nil {
		t.Fatalf("Feed: unexpected error: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "\x1b[") || !strings.Contains(got, "Bool true") {
		t.Errorf("Colored output %q lacks escapes", got)
	}

	buf.Reset()
	h.SetColor(false)
	if err := testutil.Feed(h, "<", "null", ">"); err != nil {
		t.Fatalf("Feed: unexpected error: %v", err)
	}
	if got, want := buf.String(), "BeginDocument\n  Null\nEndDocument\n"; got != want {
		t.Errorf("Uncolored output: got %q, want %q", got, want)
	}
}
