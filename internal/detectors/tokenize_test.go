package detectors

import (
	"reflect"
	"testing"
)

func TestTokenize_LinesAndTrimming(t *testing.T) {
	text := "TOKEN=sk_live_x\n  key: \"abc\",  'def';\n\n`ghi` = ;\r\nlast"
	got := Tokenize(text)
	want := []Token{
		{Line: 1, Value: "TOKEN=sk_live_x"},
		{Line: 2, Value: "key:"},
		{Line: 2, Value: "abc"},
		{Line: 2, Value: "def"},
		{Line: 4, Value: "ghi"},
		{Line: 5, Value: "last"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize mismatch\n got: %#v\nwant: %#v", got, want)
	}
}

func TestTokenize_TrimsOnlyOuterCharacters(t *testing.T) {
	got := Tokenize(`"a=b;c"`)
	if len(got) != 1 || got[0].Value != "a=b;c" {
		t.Fatalf("inner punctuation must be kept, got %#v", got)
	}
	got = Tokenize(`=="'x'"==`)
	if len(got) != 1 || got[0].Value != "x" {
		t.Fatalf("expected repeated outer trimming, got %#v", got)
	}
}

func TestTokenize_Empty(t *testing.T) {
	if got := Tokenize(""); len(got) != 0 {
		t.Fatalf("expected no tokens, got %#v", got)
	}
	if got := Tokenize("\n\n  \"\" ;; \n"); len(got) != 0 {
		t.Fatalf("expected no tokens, got %#v", got)
	}
}
