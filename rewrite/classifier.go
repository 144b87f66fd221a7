package rewrite

import (
	"strings"

	"github.com/ocaml-wasm/ppx-css/css"
)

// lookback is the classifier state: the previous significant delimiter.
// Any non-delimiter token resets it after being consumed.
type lookback int

const (
	lookOther lookback = iota
	lookDot
	lookColon
)

// selectorFunctions are the pseudo-class functions whose arguments are
// themselves selectors and must be recursively classified.
var selectorFunctions = map[string]struct{}{
	"not":   {},
	"has":   {},
	"where": {},
	"is":    {},
}

func (e *engine) walkSheet(sheet *css.Stylesheet) error {
	e.path = sheet.Path
	return e.walkItems(sheet.Items)
}

func (e *engine) walkItems(items []css.StylesheetItem) error {
	for i := range items {
		item := items[i]
		switch {
		case item.Rule != nil:
			if err := e.walkPrelude(item.Rule.Prelude, false); err != nil {
				return err
			}
			if err := e.walkDeclarations(item.Rule.Body); err != nil {
				return err
			}
		case item.AtRule != nil && item.AtRule.Block != nil:
			// At-rule preludes (media queries etc.) carry no renameable
			// identifiers, only their blocks do.
			if err := e.walkDeclarations(item.AtRule.Block.Declarations); err != nil {
				return err
			}
			if err := e.walkItems(item.AtRule.Block.Items); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkPrelude classifies and rewrites a selector token sequence. The
// insideFunc flag marks recursion into a selector function's arguments,
// where hashing is guarded (see resolve).
func (e *engine) walkPrelude(cvs []css.ComponentValue, insideFunc bool) error {
	state := lookOther
	for i := range cvs {
		cv := &cvs[i]
		switch {
		case cv.Delim != nil:
			switch cv.Delim.Value {
			case '.':
				state = lookDot
			case ':':
				state = lookColon
			default:
				state = lookOther
			}
			continue
		case cv.Ident != nil:
			if state == lookDot {
				name, err := e.observe(KindClass, cv.Ident.Name, cv.Line, insideFunc)
				if err != nil {
					return err
				}
				cv.Ident.Name = name
			}
		case cv.Hash != nil:
			name, err := e.observe(KindID, cv.Hash.Name, cv.Line, insideFunc)
			if err != nil {
				return err
			}
			cv.Hash.Name = name
		case cv.Function != nil:
			if state == lookColon {
				if _, ok := selectorFunctions[cv.Function.Name]; ok {
					if err := e.walkPrelude(cv.Function.Args, true); err != nil {
						return err
					}
				}
			}
		}
		state = lookOther
	}
	return nil
}

func (e *engine) walkDeclarations(decls []css.Declaration) error {
	for i := range decls {
		d := &decls[i]
		if d.IsCustomProperty() {
			raw := strings.TrimPrefix(d.Name, "--")
			e.noteVarDef(raw)
			name, err := e.observe(KindVariable, raw, d.Line, false)
			if err != nil {
				return err
			}
			d.Name = "--" + name
		}
		if err := e.walkValues(d.Value); err != nil {
			return err
		}
	}
	return nil
}

// walkValues finds var() references anywhere inside a declaration value,
// descending into nested functions like calc().
func (e *engine) walkValues(cvs []css.ComponentValue) error {
	for i := range cvs {
		cv := &cvs[i]
		if cv.Function == nil {
			continue
		}
		if cv.Function.Name == "var" {
			if err := e.rewriteVarReference(cv.Function); err != nil {
				return err
			}
			continue
		}
		if err := e.walkValues(cv.Function.Args); err != nil {
			return err
		}
	}
	return nil
}

// rewriteVarReference rewrites the first argument of var(); fallback
// arguments stay untouched.
func (e *engine) rewriteVarReference(fn *css.Function) error {
	for i := range fn.Args {
		a := &fn.Args[i]
		if a.Other != nil && a.Other.IsWhitespace() {
			continue
		}
		if a.Ident != nil && strings.HasPrefix(a.Ident.Name, "--") {
			raw := strings.TrimPrefix(a.Ident.Name, "--")
			e.noteVarRef(raw)
			name, err := e.observe(KindVariable, raw, a.Line, false)
			if err != nil {
				return err
			}
			a.Ident.Name = "--" + name
		}
		return nil
	}
	return nil
}
