package rewrite

import (
	"testing"

	"github.com/ocaml-wasm/ppx-css/css"
)

func parseSheet(t *testing.T, input, path string) *css.Stylesheet {
	t.Helper()
	return css.NewParser(nil).Parse([]byte(input), path)
}

func TestHashSuffixStable(t *testing.T) {
	sheet := parseSheet(t, ".card { color: red; }", "app.css")
	first := HashSuffix(sheet, "app.css")
	second := HashSuffix(sheet, "app.css")
	if first != second {
		t.Errorf("hash not stable: %s vs %s", first, second)
	}
	if len(first) != hashLen {
		t.Errorf("hash length = %d, want %d", len(first), hashLen)
	}
}

func TestHashSuffixIgnoresFormatting(t *testing.T) {
	a := parseSheet(t, ".card { color: red; }", "app.css")
	b := parseSheet(t, "/* hi */\n.card{color:red}", "app.css")
	if HashSuffix(a, "app.css") != HashSuffix(b, "app.css") {
		t.Error("formatting changed the hash")
	}
}

func TestHashSuffixDependsOnContent(t *testing.T) {
	a := parseSheet(t, ".card { color: red; }", "app.css")
	b := parseSheet(t, ".card { color: blue; }", "app.css")
	if HashSuffix(a, "app.css") == HashSuffix(b, "app.css") {
		t.Error("content change did not change the hash")
	}
}

func TestHashSuffixDependsOnPath(t *testing.T) {
	a := parseSheet(t, ".card { color: red; }", "a.css")
	b := parseSheet(t, ".card { color: red; }", "b.css")
	if HashSuffix(a, "a.css") == HashSuffix(b, "b.css") {
		t.Error("identical content from different units produced the same hash")
	}
}
