package rewrite

import (
	"fmt"
	"strings"

	"github.com/ocaml-wasm/ppx-css/css"
)

// UnsafeHashingChangeError reports identifiers that would silently become
// hashed where they previously were not: contents of selector functions
// absent from the rewrite table, or custom properties observed for the first
// time. Fatal unless allow_potential_accidental_hashing is set.
type UnsafeHashingChangeError struct {
	Names []string
	Loc   css.Loc
}

func (e *UnsafeHashingChangeError) Error() string {
	return fmt.Sprintf(
		"identifier(s) %s at %s would newly be hashed; add them to the rewrite table or dont_hash_prefixes, or enable allow_potential_accidental_hashing",
		strings.Join(e.Names, ", "), e.Loc)
}

// UnusedConfigurationError reports a rewrite key or dont-hash prefix that
// matched nothing, guarding against stale or mistyped configuration.
type UnusedConfigurationError struct {
	Kind string // "rewrite" or "dont_hash_prefix"
	Name string
}

func (e *UnusedConfigurationError) Error() string {
	return fmt.Sprintf("configured %s entry %q matched nothing in the stylesheet", e.Kind, e.Name)
}

// CollisionError reports two identifiers whose generated target names merge.
type CollisionError struct {
	Target   string
	First    string
	Second   string
	Existing bool // target collides with an identifier already present verbatim
}

func (e *CollisionError) Error() string {
	if e.Existing {
		return fmt.Sprintf("renaming %q to %q would shadow existing identifier %q", e.Second, e.Target, e.First)
	}
	return fmt.Sprintf("identifiers %q and %q both map to target name %q", e.First, e.Second, e.Target)
}
