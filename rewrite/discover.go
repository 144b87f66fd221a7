package rewrite

import (
	"go.uber.org/zap"

	"github.com/ocaml-wasm/ppx-css/css"
)

// IdentifierUsage is the discovery summary for one class/id target name.
type IdentifierUsage struct {
	Name  string
	Usage Usage
}

// Discovery reports what a stylesheet will declare, without rewriting it.
type Discovery struct {
	// Variables are custom-property target names (sanitized), first-use order.
	Variables []string
	// Identifiers are class/id target names with their usage, first-use order.
	Identifiers []IdentifierUsage
	// ExternalVariables are raw custom properties (with leading "--")
	// referenced via var() but never defined in this unit.
	ExternalVariables []string
}

// Discover runs the classification pass with hashing disabled: the same
// sanitizer and collision logic, no substitution. Used by tooling that needs
// to know what a stylesheet declares, and by the anonymous-declaration
// engine's do-not-hash inference.
func Discover(sheet *css.Stylesheet, log *zap.Logger) (*Discovery, error) {
	e := newEngine(modeCollect, sheet.Path, Options{Log: log})
	if err := e.walkSheet(sheet); err != nil {
		return nil, err
	}
	e.mode = modeDiscover
	if err := e.walkSheet(sheet); err != nil {
		return nil, err
	}

	d := &Discovery{Variables: e.varOrder}
	for _, target := range e.identOrder {
		kinds := e.identKinds[target]
		usage := UsageClassOnly
		switch {
		case kinds.Has(KindClass) && kinds.Has(KindID):
			usage = UsageBoth
		case kinds.Has(KindID):
			usage = UsageIDOnly
		}
		d.Identifiers = append(d.Identifiers, IdentifierUsage{Name: target, Usage: usage})
	}
	for _, raw := range e.varRefOrder {
		if _, ok := e.varDefs[raw]; !ok {
			d.ExternalVariables = append(d.ExternalVariables, "--"+raw)
		}
	}
	return d, nil
}
