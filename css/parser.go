package css

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS text into a component-value Stylesheet.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. The path identifies the
// compilation unit and seeds error locations (and, downstream, the hash).
// Parsing is tolerant: malformed constructs are dropped with a warning.
func (p *Parser) Parse(data []byte, path string) *Stylesheet {
	sheet := &Stylesheet{Path: path}
	if path != "" {
		p.log.Debug("Parsing CSS", zap.String("source", path), zap.Int("bytes", len(data)))
	}

	ts := newTokenStream(data)
	block := p.parseBlock(ts, sheet, true)
	sheet.Items = block.Items
	for _, d := range block.Declarations {
		sheet.Warnings = append(sheet.Warnings, "declaration outside of any rule: "+d.Name)
		p.log.Debug("Dropping top-level declaration", zap.String("name", d.Name))
	}
	return sheet
}

// token is a single lexed token with its starting line.
type token struct {
	tt   css.TokenType
	data string
	line int
}

// tokenStream wraps the tdewolff lexer with one-token lookahead, comment
// skipping and line tracking.
type tokenStream struct {
	lex   *css.Lexer
	line  int
	tok   token
	ready bool
	done  bool
}

func newTokenStream(data []byte) *tokenStream {
	return &tokenStream{
		lex:  css.NewLexer(parse.NewInput(bytes.NewReader(data))),
		line: 1,
	}
}

func (ts *tokenStream) peek() token {
	for !ts.ready {
		tt, data := ts.lex.Next()
		switch tt {
		case css.ErrorToken:
			ts.done = true
			ts.tok = token{tt: css.ErrorToken, line: ts.line}
			ts.ready = true
		case css.CommentToken:
			ts.line += strings.Count(string(data), "\n")
		default:
			ts.tok = token{tt: tt, data: string(data), line: ts.line}
			ts.ready = true
		}
	}
	return ts.tok
}

func (ts *tokenStream) next() token {
	t := ts.peek()
	if t.tt != css.ErrorToken {
		ts.ready = false
		ts.line += strings.Count(t.data, "\n")
	}
	return t
}

func (ts *tokenStream) eof() bool {
	return ts.peek().tt == css.ErrorToken
}

// parseBlock parses items until the closing brace (or end of input at top
// level). It handles both rule-bearing blocks (stylesheet, @media) and
// declaration-bearing ones (rule bodies, @font-face) with one code path.
func (p *Parser) parseBlock(ts *tokenStream, sheet *Stylesheet, top bool) *Block {
	block := &Block{}
	for {
		t := ts.peek()
		switch t.tt {
		case css.ErrorToken:
			return block
		case css.RightBraceToken:
			ts.next()
			if top {
				sheet.Warnings = append(sheet.Warnings, "unbalanced closing brace")
				continue
			}
			return block
		case css.WhitespaceToken, css.SemicolonToken, css.CDOToken, css.CDCToken:
			ts.next()
		case css.AtKeywordToken:
			ts.next()
			block.Items = append(block.Items, StylesheetItem{
				AtRule: p.parseAtRule(ts, sheet, t),
			})
		default:
			p.parseEntry(ts, sheet, block)
		}
	}
}

// parseEntry reads component values until "{" (a nested rule), ";" or the end
// of the enclosing block (a declaration).
func (p *Parser) parseEntry(ts *tokenStream, sheet *Stylesheet, block *Block) {
	line := ts.peek().line
	var cvs []ComponentValue
	for {
		t := ts.peek()
		switch t.tt {
		case css.ErrorToken:
			p.finishDeclaration(sheet, block, cvs, line)
			return
		case css.LeftBraceToken:
			ts.next()
			inner := p.parseBlock(ts, sheet, false)
			rule := &Rule{Prelude: cvs, Body: inner.Declarations, Line: line}
			for range inner.Items {
				sheet.Warnings = append(sheet.Warnings, "nested rule dropped in: "+Text(cvs))
			}
			block.Items = append(block.Items, StylesheetItem{Rule: rule})
			return
		case css.SemicolonToken:
			ts.next()
			p.finishDeclaration(sheet, block, cvs, line)
			return
		case css.RightBraceToken:
			// Do not consume: the enclosing parseBlock ends on it.
			p.finishDeclaration(sheet, block, cvs, line)
			return
		default:
			cvs = append(cvs, p.readComponentValue(ts))
		}
	}
}

// finishDeclaration interprets collected component values as "name: value".
func (p *Parser) finishDeclaration(sheet *Stylesheet, block *Block, cvs []ComponentValue, line int) {
	i := 0
	for i < len(cvs) && cvs[i].Other != nil && cvs[i].Other.IsWhitespace() {
		i++
	}
	if i >= len(cvs) {
		return
	}
	name := cvs[i]
	if name.Ident == nil {
		sheet.Warnings = append(sheet.Warnings, "dropping malformed declaration: "+Text(cvs))
		return
	}
	i++
	for i < len(cvs) && cvs[i].Other != nil && cvs[i].Other.IsWhitespace() {
		i++
	}
	if i >= len(cvs) || cvs[i].Delim == nil || cvs[i].Delim.Value != ':' {
		sheet.Warnings = append(sheet.Warnings, "dropping malformed declaration: "+Text(cvs))
		return
	}
	i++
	value := trimWhitespace(cvs[i:])
	block.Declarations = append(block.Declarations, Declaration{
		Name:  name.Ident.Name,
		Value: value,
		Line:  line,
	})
}

func trimWhitespace(cvs []ComponentValue) []ComponentValue {
	start, end := 0, len(cvs)
	for start < end && cvs[start].Other != nil && cvs[start].Other.IsWhitespace() {
		start++
	}
	for end > start && cvs[end-1].Other != nil && cvs[end-1].Other.IsWhitespace() {
		end--
	}
	return cvs[start:end]
}

// parseAtRule parses "@name prelude;" or "@name prelude { ... }" after the
// at-keyword token has been consumed.
func (p *Parser) parseAtRule(ts *tokenStream, sheet *Stylesheet, at token) *AtRule {
	rule := &AtRule{
		Name: strings.TrimPrefix(at.data, "@"),
		Line: at.line,
	}
	for {
		t := ts.peek()
		switch t.tt {
		case css.ErrorToken, css.SemicolonToken:
			ts.next()
			rule.Prelude = trimWhitespace(rule.Prelude)
			return rule
		case css.LeftBraceToken:
			ts.next()
			rule.Prelude = trimWhitespace(rule.Prelude)
			rule.Block = p.parseBlock(ts, sheet, false)
			return rule
		case css.RightBraceToken:
			// Malformed; let the enclosing block close.
			rule.Prelude = trimWhitespace(rule.Prelude)
			return rule
		default:
			rule.Prelude = append(rule.Prelude, p.readComponentValue(ts))
		}
	}
}

// readComponentValue consumes one token and converts it, nesting function
// arguments up to the matching closing parenthesis.
func (p *Parser) readComponentValue(ts *tokenStream) ComponentValue {
	t := ts.next()
	cv := ComponentValue{Line: t.line}
	switch t.tt {
	case css.IdentToken, css.CustomPropertyNameToken:
		cv.Ident = &Ident{Name: t.data}
	case css.HashToken:
		cv.Hash = &Hash{Name: strings.TrimPrefix(t.data, "#")}
	case css.ColonToken:
		cv.Delim = &Delim{Value: ':'}
	case css.CommaToken:
		cv.Delim = &Delim{Value: ','}
	case css.DelimToken:
		r := []rune(t.data)
		if len(r) > 0 {
			cv.Delim = &Delim{Value: r[0]}
		} else {
			cv.Other = &Other{Raw: t.data}
		}
	case css.FunctionToken:
		fn := &Function{Name: strings.TrimSuffix(t.data, "(")}
		for {
			a := ts.peek()
			if a.tt == css.ErrorToken {
				break
			}
			if a.tt == css.RightParenthesisToken {
				ts.next()
				break
			}
			// Braces never appear inside function arguments in well-formed
			// CSS; stop rather than swallow the block structure.
			if a.tt == css.LeftBraceToken || a.tt == css.RightBraceToken {
				break
			}
			fn.Args = append(fn.Args, p.readComponentValue(ts))
		}
		cv.Function = fn
	default:
		cv.Other = &Other{Raw: t.data}
	}
	return cv
}
