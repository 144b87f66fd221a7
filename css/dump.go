package css

import (
	"github.com/ocaml-wasm/ppx-css/utils/debug"
)

// Dump renders the stylesheet structure as an indented tree for debug
// reports.
func (s *Stylesheet) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "stylesheet %s: %d item(s)", s.Path, len(s.Items))
	for _, w := range s.Warnings {
		tw.TextBlock(1, "warning", w)
	}
	for _, item := range s.Items {
		dumpItem(tw, item, 1)
	}
	return tw.String()
}

func dumpItem(tw *debug.TreeWriter, item StylesheetItem, depth int) {
	switch {
	case item.Rule != nil:
		tw.Line(depth, "rule (line %d)", item.Rule.Line)
		tw.TextBlock(depth+1, "prelude", Text(item.Rule.Prelude))
		dumpComponents(tw, item.Rule.Prelude, depth+1)
		for _, d := range item.Rule.Body {
			tw.TextBlock(depth+1, d.Name, Text(d.Value))
		}
	case item.AtRule != nil:
		tw.Line(depth, "@%s (line %d)", item.AtRule.Name, item.AtRule.Line)
		if len(item.AtRule.Prelude) > 0 {
			tw.TextBlock(depth+1, "prelude", Text(item.AtRule.Prelude))
		}
		if item.AtRule.Block != nil {
			for _, d := range item.AtRule.Block.Declarations {
				tw.TextBlock(depth+1, d.Name, Text(d.Value))
			}
			for _, nested := range item.AtRule.Block.Items {
				dumpItem(tw, nested, depth+1)
			}
		}
	}
}

func dumpComponents(tw *debug.TreeWriter, cvs []ComponentValue, depth int) {
	for _, cv := range cvs {
		switch {
		case cv.Delim != nil:
			tw.Line(depth, "delim %q", cv.Delim.Value)
		case cv.Ident != nil:
			tw.Line(depth, "ident %s", cv.Ident.Name)
		case cv.Hash != nil:
			tw.Line(depth, "hash #%s", cv.Hash.Name)
		case cv.Function != nil:
			tw.Line(depth, "function %s", cv.Function.Name)
			dumpComponents(tw, cv.Function.Args, depth+1)
		case cv.Other != nil:
			if !cv.Other.IsWhitespace() {
				tw.TextBlock(depth, "other", cv.Other.Raw)
			}
		}
	}
}
