package css

import "strings"

// Normalized returns a canonical serialization of the stylesheet that is
// insensitive to the formatting of the source text: comments are gone (the
// parser never keeps them) and every whitespace run collapses to a single
// space. Two sources that tokenize to the same stream normalize identically.
// Used as hash input by the rewrite engine.
func (s *Stylesheet) Normalized() string {
	var b strings.Builder
	for _, item := range s.Items {
		normalizeItem(&b, item)
	}
	return b.String()
}

func normalizeItem(b *strings.Builder, item StylesheetItem) {
	switch {
	case item.Rule != nil:
		normalizeComponents(b, item.Rule.Prelude)
		b.WriteByte('{')
		normalizeDeclarations(b, item.Rule.Body)
		b.WriteByte('}')
	case item.AtRule != nil:
		b.WriteByte('@')
		b.WriteString(item.AtRule.Name)
		b.WriteByte(' ')
		normalizeComponents(b, item.AtRule.Prelude)
		if item.AtRule.Block == nil {
			b.WriteByte(';')
			return
		}
		b.WriteByte('{')
		normalizeDeclarations(b, item.AtRule.Block.Declarations)
		for _, nested := range item.AtRule.Block.Items {
			normalizeItem(b, nested)
		}
		b.WriteByte('}')
	}
}

func normalizeDeclarations(b *strings.Builder, decls []Declaration) {
	for _, d := range decls {
		b.WriteString(d.Name)
		b.WriteByte(':')
		normalizeComponents(b, d.Value)
		b.WriteByte(';')
	}
}

// normalizeComponents writes tokens with whitespace runs collapsed to a
// single interior space.
func normalizeComponents(b *strings.Builder, cvs []ComponentValue) {
	pendingSpace := false
	wrote := false
	for _, cv := range cvs {
		if cv.Other != nil && cv.Other.IsWhitespace() {
			pendingSpace = wrote
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		switch {
		case cv.Delim != nil:
			b.WriteRune(cv.Delim.Value)
		case cv.Ident != nil:
			b.WriteString(cv.Ident.Name)
		case cv.Hash != nil:
			b.WriteByte('#')
			b.WriteString(cv.Hash.Name)
		case cv.Function != nil:
			b.WriteString(cv.Function.Name)
			b.WriteByte('(')
			normalizeComponents(b, cv.Function.Args)
			b.WriteByte(')')
		case cv.Other != nil:
			b.WriteString(cv.Other.Raw)
		}
		wrote = true
	}
}
