// Package rewrite implements deterministic, collision-safe renaming of CSS
// classes, ids and custom properties for one compilation unit.
package rewrite

import (
	"strings"

	"go.uber.org/zap"

	"github.com/ocaml-wasm/ppx-css/css"
)

// mode selects what the traversal does with a classified identifier.
type mode int

const (
	modeCollect  mode = iota // record raw names only (shadow-check pre-pass)
	modeRewrite              // resolve and substitute in place
	modeDiscover             // record kinds, no substitution, no hashing
)

type engine struct {
	mode mode
	opts Options
	log  *zap.Logger
	path string

	suffix string
	san    *sanitizer

	idmap    IdentifierMap
	refOrder []Reference

	unusedRewrites map[string]struct{}
	unusedPrefixes map[string]struct{}

	// variables that fell through to hashing, in first-observation order
	newVars    []string
	newVarSeen map[string]struct{}
	newVarLoc  css.Loc

	// discovery bookkeeping
	varOrder    []string
	varSeen     map[string]struct{}
	identOrder  []string
	identKinds  map[string]KindSet
	varDefs     map[string]struct{}
	varRefOrder []string
	varRefSeen  map[string]struct{}
}

func newEngine(m mode, path string, opts Options) *engine {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	e := &engine{
		mode:           m,
		opts:           opts,
		log:            log.Named("css-rewrite"),
		path:           path,
		san:            newSanitizer(),
		idmap:          make(IdentifierMap),
		unusedRewrites: make(map[string]struct{}, len(opts.Rewrite)),
		unusedPrefixes: make(map[string]struct{}, len(opts.DontHashPrefixes)),
		newVarSeen:     make(map[string]struct{}),
		varSeen:        make(map[string]struct{}),
		identKinds:     make(map[string]KindSet),
		varDefs:        make(map[string]struct{}),
		varRefSeen:     make(map[string]struct{}),
	}
	for name := range opts.Rewrite {
		e.unusedRewrites[name] = struct{}{}
	}
	for _, p := range opts.DontHashPrefixes {
		e.unusedPrefixes[p] = struct{}{}
	}
	return e
}

// Apply rewrites every class, id and custom-property identifier of sheet in
// place and returns the identifier map. The sheet's Path seeds the hash.
// On error the sheet must be discarded: there is no partial output contract.
func Apply(sheet *css.Stylesheet, opts Options) (*Result, error) {
	e := newEngine(modeCollect, sheet.Path, opts)
	e.suffix = HashSuffix(sheet, sheet.Path)

	// Pre-pass records every raw identifier present verbatim so renames
	// cannot silently shadow one of them.
	if err := e.walkSheet(sheet); err != nil {
		return nil, err
	}
	e.mode = modeRewrite
	e.log.Debug("rewriting stylesheet",
		zap.String("source", sheet.Path),
		zap.String("hash", e.suffix),
		zap.Bool("permissive", opts.AllowPotentialAccidentalHashing))
	if err := e.walkSheet(sheet); err != nil {
		return nil, err
	}
	if err := e.finish(); err != nil {
		return nil, err
	}
	return &Result{
		Identifiers:    e.idmap,
		ReferenceOrder: e.refOrder,
		HashSuffix:     e.suffix,
	}, nil
}

// Process parses, rewrites and pretty-prints one unit in a single call.
func Process(data []byte, path string, opts Options) (string, *Result, error) {
	sheet := css.NewParser(opts.Log).Parse(data, path)
	res, err := Apply(sheet, opts)
	if err != nil {
		return "", nil, err
	}
	return sheet.String(), res, nil
}

// observe routes one classified identifier occurrence through the current
// mode and returns its replacement name (raw-name form, no "."/"#"/"--").
func (e *engine) observe(kind Kind, raw string, line int, insideFunc bool) (string, error) {
	switch e.mode {
	case modeCollect:
		e.san.addExisting(raw)
		return raw, nil
	case modeDiscover:
		return raw, e.record(kind, raw, line)
	default:
		return e.resolve(kind, raw, line, insideFunc)
	}
}

// resolve applies the resolution order: rewrite table, selector-function
// boundary, dont-hash prefixes, hash.
func (e *engine) resolve(kind Kind, raw string, line int, insideFunc bool) (string, error) {
	loc := css.Loc{Path: e.path, Line: line}
	target, err := e.san.target(raw)
	if err != nil {
		return "", err
	}

	if rep, ok := e.opts.Rewrite[raw]; ok {
		delete(e.unusedRewrites, raw)
		if rep.Literal != nil {
			e.log.Debug("rewrite table literal", zap.String("name", raw), zap.String("to", *rep.Literal))
			e.addEntry(target, kind, *rep.Literal, nil)
			return *rep.Literal, nil
		}
		e.refOrder = append(e.refOrder, rep.Ref)
		e.addEntry(target, kind, ReferencePlaceholder, rep.Ref)
		return ReferencePlaceholder, nil
	}

	if insideFunc && !e.opts.AllowPotentialAccidentalHashing {
		return "", &UnsafeHashingChangeError{Names: []string{raw}, Loc: loc}
	}

	for _, p := range e.opts.DontHashPrefixes {
		if strings.HasPrefix(raw, p) {
			delete(e.unusedPrefixes, p)
			e.addEntry(target, kind, raw, nil)
			return raw, nil
		}
	}

	hashed := raw + "_hash_" + e.suffix
	if kind == KindVariable {
		if _, ok := e.newVarSeen[raw]; !ok {
			e.newVarSeen[raw] = struct{}{}
			e.newVars = append(e.newVars, raw)
			if len(e.newVars) == 1 {
				e.newVarLoc = loc
			}
		}
	}
	e.addEntry(target, kind, hashed, nil)
	return hashed, nil
}

func (e *engine) addEntry(target string, kind Kind, replacement string, ref Reference) {
	entry := e.idmap[target]
	entry.Kinds = entry.Kinds.With(kind)
	entry.Replacement = replacement
	entry.Ref = ref
	e.idmap[target] = entry
}

// record is discovery-mode bookkeeping: kinds per target, no substitution.
func (e *engine) record(kind Kind, raw string, line int) error {
	target, err := e.san.target(raw)
	if err != nil {
		return err
	}
	if kind == KindVariable {
		if _, ok := e.varSeen[target]; !ok {
			e.varSeen[target] = struct{}{}
			e.varOrder = append(e.varOrder, target)
		}
		return nil
	}
	if _, ok := e.identKinds[target]; !ok {
		e.identOrder = append(e.identOrder, target)
	}
	e.identKinds[target] = e.identKinds[target].With(kind)
	return nil
}

func (e *engine) noteVarDef(raw string) {
	if e.mode == modeDiscover {
		e.varDefs[raw] = struct{}{}
	}
}

func (e *engine) noteVarRef(raw string) {
	if e.mode != modeDiscover {
		return
	}
	if _, ok := e.varRefSeen[raw]; !ok {
		e.varRefSeen[raw] = struct{}{}
		e.varRefOrder = append(e.varRefOrder, raw)
	}
}
