// Package anonymous extracts interpolated values out of CSS declaration and
// stylesheet strings into synthetic custom properties with deterministic,
// restartable naming.
package anonymous

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ocaml-wasm/ppx-css/css"
	"github.com/ocaml-wasm/ppx-css/rewrite"
)

// ClassName is the synthetic class an anonymous declaration block is later
// wrapped under. Compiler-synthesized, must always be hashed.
const ClassName = "anonymous_class"

const variablePrefix = "anonymous_var_"

// Minter mints sequential synthetic variable names. Scoped to one engine,
// never shared across unrelated invocations. Reset exists to produce
// deterministic fixtures only.
type Minter struct {
	n int
}

// Next returns the next synthetic variable name, without the leading "--".
func (m *Minter) Next() string {
	m.n++
	return fmt.Sprintf("%s%d", variablePrefix, m.n)
}

// Reset restarts numbering at 1.
func (m *Minter) Reset() {
	m.n = 0
}

// Binding pairs a minted variable with the interpolated value it carries.
type Binding struct {
	Name      string // variable name without leading "--"
	Ref       rewrite.Reference
	Formatter string
}

// Result is the outcome of substituting one interpolated string.
type Result struct {
	// Text is the input with every interpolated segment replaced by a
	// var(--anonymous_var_N) reference.
	Text string
	// Variables are the minted bindings in substitution order.
	Variables []Binding
	// AlwaysHash are identifiers that must be hashed unconditionally,
	// overriding any caller dont-hash policy.
	AlwaysHash []string
	// DontHash are variables referenced but not defined within the block,
	// assumed externally defined (declaration mode only). Raw names with
	// their leading "--".
	DontHash []string
}

// Engine substitutes interpolated CSS strings. Not safe for concurrent use;
// create one per compilation unit.
type Engine struct {
	minter Minter
	log    *zap.Logger
}

// NewEngine creates an anonymous-declaration engine.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log.Named("css-anonymous")}
}

// Reset restarts variable numbering. Test fixtures only.
func (e *Engine) Reset() {
	e.minter.Reset()
}

// Substitute replaces every interpreted segment with a fresh synthetic
// variable reference and returns the rewritten text with the bindings.
func (e *Engine) Substitute(segs []Segment) (string, []Binding) {
	var b strings.Builder
	var vars []Binding
	for _, s := range segs {
		switch {
		case s.Literal != nil:
			b.WriteString(*s.Literal)
		case s.Interp != nil:
			name := e.minter.Next()
			fmt.Fprintf(&b, "var(--%s)", name)
			vars = append(vars, Binding{Name: name, Ref: s.Interp.Ref, Formatter: s.Interp.Formatter})
		}
	}
	return b.String(), vars
}

// SubstituteDeclarations processes an interpolated declaration-list string
// (the body of one anonymous block). Besides substitution it infers which
// referenced variables are externally defined and must default to staying
// unhashed.
func (e *Engine) SubstituteDeclarations(input, path string) (*Result, error) {
	text, vars := e.Substitute(ParseSegments(input))
	res := &Result{
		Text:       text,
		Variables:  vars,
		AlwaysHash: alwaysHash(vars, true),
	}

	// Classify the substituted text as the body of a throwaway rule; every
	// variable referenced but never defined inside it points outside the
	// block.
	wrapped := fmt.Sprintf(".%s {\n%s\n}", ClassName, text)
	sheet := css.NewParser(e.log).Parse([]byte(wrapped), path)
	disc, err := rewrite.Discover(sheet, e.log)
	if err != nil {
		return nil, fmt.Errorf("infer do-not-hash: %w", err)
	}
	minted := make(map[string]struct{}, len(vars))
	for _, v := range vars {
		minted["--"+v.Name] = struct{}{}
	}
	for _, name := range disc.ExternalVariables {
		if _, ok := minted[name]; !ok {
			res.DontHash = append(res.DontHash, name)
		}
	}
	e.log.Debug("substituted anonymous declarations",
		zap.String("source", path),
		zap.Int("variables", len(vars)),
		zap.Strings("dont_hash", res.DontHash))
	return res, nil
}

// SubstituteStylesheet processes a full interpolated stylesheet string. Same
// segment parsing and minting, no wrapping and no inference.
func (e *Engine) SubstituteStylesheet(input, path string) (*Result, error) {
	text, vars := e.Substitute(ParseSegments(input))
	e.log.Debug("substituted anonymous stylesheet",
		zap.String("source", path),
		zap.Int("variables", len(vars)))
	return &Result{
		Text:       text,
		Variables:  vars,
		AlwaysHash: alwaysHash(vars, false),
	}, nil
}

func alwaysHash(vars []Binding, withClass bool) []string {
	var names []string
	if withClass {
		names = append(names, ClassName)
	}
	for _, v := range vars {
		names = append(names, "--"+v.Name)
	}
	return names
}
