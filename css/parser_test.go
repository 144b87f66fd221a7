package css

import (
	"strings"
	"testing"
)

func TestParseSimpleRule(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte(".card { color: red; width: 10px; }"), "test.css")
	if len(sheet.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(sheet.Items))
	}
	rule := sheet.Items[0].Rule
	if rule == nil {
		t.Fatal("expected a qualified rule")
	}
	if got := Text(rule.Prelude); got != ".card" {
		t.Errorf("prelude = %q, want %q", got, ".card")
	}
	if len(rule.Body) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(rule.Body))
	}
	if rule.Body[0].Name != "color" || Text(rule.Body[0].Value) != "red" {
		t.Errorf("first declaration = %s: %s", rule.Body[0].Name, Text(rule.Body[0].Value))
	}
	if rule.Body[1].Name != "width" || Text(rule.Body[1].Value) != "10px" {
		t.Errorf("second declaration = %s: %s", rule.Body[1].Name, Text(rule.Body[1].Value))
	}
}

func TestParseCustomProperty(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte(":root { --main-color: #fff; }"), "test.css")
	if len(sheet.Items) != 1 || sheet.Items[0].Rule == nil {
		t.Fatal("expected a single rule")
	}
	body := sheet.Items[0].Rule.Body
	if len(body) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(body))
	}
	if body[0].Name != "--main-color" {
		t.Errorf("declaration name = %q, want %q", body[0].Name, "--main-color")
	}
	if !body[0].IsCustomProperty() {
		t.Error("expected IsCustomProperty() to be true")
	}
}

func TestParseLineNumbers(t *testing.T) {
	input := ".a {\n  color: red;\n}\n\n.b {\n  color: blue;\n}\n"
	sheet := NewParser(nil).Parse([]byte(input), "test.css")
	if len(sheet.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(sheet.Items))
	}
	if got := sheet.Items[0].Rule.Line; got != 1 {
		t.Errorf("first rule line = %d, want 1", got)
	}
	if got := sheet.Items[0].Rule.Body[0].Line; got != 2 {
		t.Errorf("first declaration line = %d, want 2", got)
	}
	if got := sheet.Items[1].Rule.Line; got != 5 {
		t.Errorf("second rule line = %d, want 5", got)
	}
}

func TestParseFunctionNesting(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte("a { width: calc(100% - var(--gap)); }"), "test.css")
	body := sheet.Items[0].Rule.Body
	if len(body) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(body))
	}
	var calc *Function
	for _, cv := range body[0].Value {
		if cv.Function != nil {
			calc = cv.Function
		}
	}
	if calc == nil || calc.Name != "calc" {
		t.Fatal("expected a calc() function in the value")
	}
	var inner *Function
	for _, cv := range calc.Args {
		if cv.Function != nil {
			inner = cv.Function
		}
	}
	if inner == nil || inner.Name != "var" {
		t.Fatal("expected a nested var() function")
	}
	if len(inner.Args) != 1 || inner.Args[0].Ident == nil || inner.Args[0].Ident.Name != "--gap" {
		t.Errorf("var() argument = %+v, want ident --gap", inner.Args)
	}
}

func TestParseSelectorFunction(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte(":not(.hidden) { display: block; }"), "test.css")
	prelude := sheet.Items[0].Rule.Prelude
	var fn *Function
	for _, cv := range prelude {
		if cv.Function != nil {
			fn = cv.Function
		}
	}
	if fn == nil || fn.Name != "not" {
		t.Fatalf("expected not() in prelude, got %q", Text(prelude))
	}
	if got := Text(fn.Args); got != ".hidden" {
		t.Errorf("not() arguments = %q, want %q", got, ".hidden")
	}
}

func TestParseAtRules(t *testing.T) {
	input := "@import url(base.css);\n@media screen {\n.a { color: red; }\n}\n@font-face { font-family: X; }"
	sheet := NewParser(nil).Parse([]byte(input), "test.css")
	if len(sheet.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(sheet.Items))
	}
	imp := sheet.Items[0].AtRule
	if imp == nil || imp.Name != "import" || imp.Block != nil {
		t.Fatalf("expected statement @import, got %+v", sheet.Items[0])
	}
	media := sheet.Items[1].AtRule
	if media == nil || media.Name != "media" || media.Block == nil {
		t.Fatal("expected block @media")
	}
	if got := Text(media.Prelude); got != "screen" {
		t.Errorf("@media prelude = %q, want %q", got, "screen")
	}
	if len(media.Block.Items) != 1 || media.Block.Items[0].Rule == nil {
		t.Fatal("expected one nested rule in @media")
	}
	face := sheet.Items[2].AtRule
	if face == nil || face.Block == nil || len(face.Block.Declarations) != 1 {
		t.Fatal("expected @font-face with one declaration")
	}
}

func TestParseHashSelector(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte("#app .item { color: red; }"), "test.css")
	prelude := sheet.Items[0].Rule.Prelude
	if len(prelude) == 0 || prelude[0].Hash == nil {
		t.Fatal("expected hash token first in prelude")
	}
	if prelude[0].Hash.Name != "app" {
		t.Errorf("hash name = %q, want %q", prelude[0].Hash.Name, "app")
	}
}

func TestParseWarnings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"top level declaration", "color: red;", "declaration outside of any rule"},
		{"unbalanced brace", "}", "unbalanced closing brace"},
		{"malformed declaration", "a { 12px; }", "dropping malformed declaration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := NewParser(nil).Parse([]byte(tt.input), "test.css")
			found := false
			for _, w := range sheet.Warnings {
				if strings.Contains(w, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("warnings = %v, want one containing %q", sheet.Warnings, tt.want)
			}
		})
	}
}

func TestParseSkipsComments(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte("/* header */\n.a { /* inline */ color: red; }"), "test.css")
	if len(sheet.Items) != 1 || sheet.Items[0].Rule == nil {
		t.Fatal("expected a single rule")
	}
	if got := sheet.Items[0].Rule.Line; got != 2 {
		t.Errorf("rule line = %d, want 2", got)
	}
	if got := sheet.String(); strings.Contains(got, "header") || strings.Contains(got, "inline") {
		t.Errorf("comments leaked into output:\n%s", got)
	}
}

func TestPrettyPrint(t *testing.T) {
	input := ".a{color:red}.b{color:blue}"
	want := ".a {\n  color: red;\n}\n\n.b {\n  color: blue;\n}\n"
	sheet := NewParser(nil).Parse([]byte(input), "test.css")
	if got := sheet.String(); got != want {
		t.Errorf("String():\n%q\nwant:\n%q", got, want)
	}
}

func TestPrettyPrintAtRule(t *testing.T) {
	input := "@media screen{.a{color:red}}"
	want := "@media screen {\n  .a {\n    color: red;\n  }\n}\n"
	sheet := NewParser(nil).Parse([]byte(input), "test.css")
	if got := sheet.String(); got != want {
		t.Errorf("String():\n%q\nwant:\n%q", got, want)
	}
}

func TestPrettyPrintStable(t *testing.T) {
	input := ".a {\n  color: red;\n}\n\n@media screen {\n  .b {\n    width: calc(100% - 2px);\n  }\n}\n"
	first := NewParser(nil).Parse([]byte(input), "test.css").String()
	second := NewParser(nil).Parse([]byte(first), "test.css").String()
	if first != second {
		t.Errorf("pretty-printing is not stable:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}
