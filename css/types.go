package css

import (
	"fmt"
	"io"
	"strings"
)

// Loc identifies a place in parsed source for error reporting.
type Loc struct {
	Path string // source identifier (usually a file path)
	Line int    // 1-based line number, 0 when unknown
}

func (l Loc) String() string {
	if l.Path == "" {
		return fmt.Sprintf("line %d", l.Line)
	}
	return fmt.Sprintf("%s:%d", l.Path, l.Line)
}

// Delim is a single delimiter character token (".", ":", ">", ...).
type Delim struct {
	Value rune
}

// Ident is an identifier token. Custom property names keep their leading "--".
type Ident struct {
	Name string
}

// Hash is a "#name" token with the leading "#" stripped.
type Hash struct {
	Name string
}

// Function is a "name(...)" token with its argument tokens nested.
type Function struct {
	Name string // function name without the opening parenthesis
	Args []ComponentValue
}

// Other is any token the traversal treats as opaque: whitespace, numbers,
// dimensions, strings, urls and everything else, kept as raw text.
type Other struct {
	Raw string
}

// IsWhitespace reports whether this opaque token is pure whitespace.
func (o Other) IsWhitespace() bool {
	return strings.TrimSpace(o.Raw) == ""
}

// ComponentValue is a single prelude or declaration-value token.
// Exactly one of Delim, Ident, Hash, Function or Other is non-nil.
type ComponentValue struct {
	Delim    *Delim
	Ident    *Ident
	Hash     *Hash
	Function *Function
	Other    *Other

	Line int // line the token started on
}

// Declaration is a single "name: value" pair inside a rule body.
// Name may be a custom property (leading "--").
type Declaration struct {
	Name  string
	Value []ComponentValue
	Line  int
}

// IsCustomProperty reports whether the declaration defines a CSS variable.
func (d Declaration) IsCustomProperty() bool {
	return strings.HasPrefix(d.Name, "--")
}

// Rule is a qualified rule: selector prelude plus declaration body.
type Rule struct {
	Prelude []ComponentValue
	Body    []Declaration
	Line    int
}

// AtRule is an "@name prelude;" statement or an "@name prelude { ... }" block.
type AtRule struct {
	Name    string // without the leading "@"
	Prelude []ComponentValue
	Block   *Block // nil for statement at-rules
	Line    int
}

// Block holds the contents of a braced block: nested items plus any
// declarations appearing directly in it (e.g. @font-face bodies).
type Block struct {
	Items        []StylesheetItem
	Declarations []Declaration
}

// StylesheetItem is a single top-level item. Exactly one of Rule or AtRule is
// non-nil.
type StylesheetItem struct {
	Rule   *Rule
	AtRule *AtRule
}

// Stylesheet is a parsed CSS compilation unit.
type Stylesheet struct {
	Items    []StylesheetItem
	Path     string   // source identifier the unit was parsed from
	Warnings []string // non-fatal notes collected while parsing
}

// writeComponent appends the raw text of a single component value.
func writeComponent(b *strings.Builder, cv ComponentValue) {
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
		for _, a := range cv.Function.Args {
			writeComponent(b, a)
		}
		b.WriteByte(')')
	case cv.Other != nil:
		b.WriteString(cv.Other.Raw)
	}
}

// Text renders a component value sequence verbatim, trimmed at both ends.
func Text(cvs []ComponentValue) string {
	var b strings.Builder
	for _, cv := range cvs {
		writeComponent(&b, cv)
	}
	return strings.TrimSpace(b.String())
}

// WriteTo writes the stylesheet to w in pretty-printed form, implementing
// io.WriterTo. Item and declaration order is source order.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		n, err := writeItem(w, item, 0)
		total += int64(n)
		if err != nil {
			return total, err
		}
		// Blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the pretty-printed CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeItem(w io.Writer, item StylesheetItem, depth int) (int, error) {
	switch {
	case item.Rule != nil:
		return writeRule(w, item.Rule, depth)
	case item.AtRule != nil:
		return writeAtRule(w, item.AtRule, depth)
	}
	return 0, nil
}

func indent(w io.Writer, depth int) (int, error) {
	return fmt.Fprint(w, strings.Repeat("  ", depth))
}

func writeRule(w io.Writer, rule *Rule, depth int) (int, error) {
	var total int
	n, err := indent(w, depth)
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprintf(w, "%s {\n", Text(rule.Prelude))
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeDeclarations(w, rule.Body, depth+1)
	total += n
	if err != nil {
		return total, err
	}
	n, err = indent(w, depth)
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

func writeDeclarations(w io.Writer, decls []Declaration, depth int) (int, error) {
	var total int
	for _, d := range decls {
		n, err := indent(w, depth)
		total += n
		if err != nil {
			return total, err
		}
		n, err = fmt.Fprintf(w, "%s: %s;\n", d.Name, Text(d.Value))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func writeAtRule(w io.Writer, at *AtRule, depth int) (int, error) {
	var total int
	n, err := indent(w, depth)
	total += n
	if err != nil {
		return total, err
	}
	prelude := Text(at.Prelude)
	if at.Block == nil {
		if prelude != "" {
			n, err = fmt.Fprintf(w, "@%s %s;\n", at.Name, prelude)
		} else {
			n, err = fmt.Fprintf(w, "@%s;\n", at.Name)
		}
		total += n
		return total, err
	}
	if prelude != "" {
		n, err = fmt.Fprintf(w, "@%s %s {\n", at.Name, prelude)
	} else {
		n, err = fmt.Fprintf(w, "@%s {\n", at.Name)
	}
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeDeclarations(w, at.Block.Declarations, depth+1)
	total += n
	if err != nil {
		return total, err
	}
	for _, item := range at.Block.Items {
		n, err = writeItem(w, item, depth+1)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = indent(w, depth)
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
