package anonymous

import (
	"testing"
)

func TestSubstituteNumbering(t *testing.T) {
	e := NewEngine(nil)
	text, vars := e.Substitute(ParseSegments("background-color: %{a}; color: %{b}"))
	want := "background-color: var(--anonymous_var_1); color: var(--anonymous_var_2)"
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
	if len(vars) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(vars))
	}
	if vars[0].Name != "anonymous_var_1" || vars[0].Ref != "a" {
		t.Errorf("first binding = %+v", vars[0])
	}
	if vars[1].Name != "anonymous_var_2" || vars[1].Ref != "b" {
		t.Errorf("second binding = %+v", vars[1])
	}
}

func TestSubstituteNumberingContinues(t *testing.T) {
	e := NewEngine(nil)
	first, _ := e.Substitute(ParseSegments("top: %{a}"))
	second, _ := e.Substitute(ParseSegments("left: %{b}"))
	if first != "top: var(--anonymous_var_1)" {
		t.Errorf("first = %q", first)
	}
	// numbering is per engine, not per call
	if second != "left: var(--anonymous_var_2)" {
		t.Errorf("second = %q", second)
	}
}

func TestSubstituteReset(t *testing.T) {
	e := NewEngine(nil)
	first, _ := e.Substitute(ParseSegments("top: %{a}"))
	e.Reset()
	second, _ := e.Substitute(ParseSegments("top: %{a}"))
	if first != second {
		t.Errorf("reset did not restart numbering: %q vs %q", first, second)
	}
}

func TestSubstituteDeclarations(t *testing.T) {
	e := NewEngine(nil)
	res, err := e.SubstituteDeclarations("background-color: %{c}", "test.css")
	if err != nil {
		t.Fatalf("SubstituteDeclarations() failed: %v", err)
	}
	if res.Text != "background-color: var(--anonymous_var_1)" {
		t.Errorf("text = %q", res.Text)
	}
	wantAlways := []string{"anonymous_class", "--anonymous_var_1"}
	if len(res.AlwaysHash) != len(wantAlways) {
		t.Fatalf("AlwaysHash = %v, want %v", res.AlwaysHash, wantAlways)
	}
	for i := range wantAlways {
		if res.AlwaysHash[i] != wantAlways[i] {
			t.Errorf("AlwaysHash[%d] = %q, want %q", i, res.AlwaysHash[i], wantAlways[i])
		}
	}
	if len(res.DontHash) != 0 {
		t.Errorf("DontHash = %v, want none", res.DontHash)
	}
}

func TestSubstituteDeclarationsExternalVariable(t *testing.T) {
	e := NewEngine(nil)
	res, err := e.SubstituteDeclarations("background-color: var(--foo)", "test.css")
	if err != nil {
		t.Fatalf("SubstituteDeclarations() failed: %v", err)
	}
	if len(res.DontHash) != 1 || res.DontHash[0] != "--foo" {
		t.Errorf("DontHash = %v, want [--foo]", res.DontHash)
	}
}

func TestSubstituteDeclarationsLocalVariable(t *testing.T) {
	e := NewEngine(nil)
	res, err := e.SubstituteDeclarations("--tom: tomato; background-color: var(--tom)", "test.css")
	if err != nil {
		t.Fatalf("SubstituteDeclarations() failed: %v", err)
	}
	if len(res.DontHash) != 0 {
		t.Errorf("DontHash = %v, want none for locally defined variable", res.DontHash)
	}
}

func TestSubstituteDeclarationsMintedNotExternal(t *testing.T) {
	e := NewEngine(nil)
	res, err := e.SubstituteDeclarations("width: %{w}; height: var(--outside)", "test.css")
	if err != nil {
		t.Fatalf("SubstituteDeclarations() failed: %v", err)
	}
	if len(res.DontHash) != 1 || res.DontHash[0] != "--outside" {
		t.Errorf("DontHash = %v, want [--outside]", res.DontHash)
	}
}

func TestSubstituteStylesheet(t *testing.T) {
	e := NewEngine(nil)
	res, err := e.SubstituteStylesheet(".a { width: %{w} }", "test.css")
	if err != nil {
		t.Fatalf("SubstituteStylesheet() failed: %v", err)
	}
	if res.Text != ".a { width: var(--anonymous_var_1) }" {
		t.Errorf("text = %q", res.Text)
	}
	// no synthetic wrapper class in stylesheet mode
	if len(res.AlwaysHash) != 1 || res.AlwaysHash[0] != "--anonymous_var_1" {
		t.Errorf("AlwaysHash = %v, want [--anonymous_var_1]", res.AlwaysHash)
	}
	if res.DontHash != nil {
		t.Errorf("DontHash = %v, want none", res.DontHash)
	}
}
