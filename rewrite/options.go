package rewrite

import (
	"go.uber.org/zap"
)

// Reference is an opaque caller-supplied value substituted for an identifier
// by position. The engine treats it as a black box and only tracks first-use
// order; formatting references into final output text is the caller's job.
type Reference any

// ReferencePlaceholder is the text substituted into the rewritten stylesheet
// wherever an identifier resolves to an opaque reference. The caller formats
// the printed stylesheet as a template, consuming ReferenceOrder positionally.
const ReferencePlaceholder = "%s"

// Replacement is what a configured identifier rewrites to. Exactly one of
// Literal or Ref is set.
type Replacement struct {
	Literal *string
	Ref     Reference
}

// Literal builds a literal, unhashed replacement.
func Literal(s string) Replacement {
	return Replacement{Literal: &s}
}

// Opaque builds a replacement carrying an opaque caller reference.
func Opaque(ref Reference) Replacement {
	return Replacement{Ref: ref}
}

// Options is the caller configuration for one compilation unit.
type Options struct {
	// Rewrite maps raw identifiers (no leading "." / "#" / "--") to fixed
	// replacements.
	Rewrite map[string]Replacement

	// DontHashPrefixes pass identifiers through unhashed when their raw name
	// starts with one of the prefixes.
	DontHashPrefixes []string

	// AllowPotentialAccidentalHashing (permissive mode) hashes selector
	// function contents like top-level selectors and silences the
	// newly-hashed variable check.
	AllowPotentialAccidentalHashing bool

	Log *zap.Logger
}

// Entry records everything known about one target name.
type Entry struct {
	Kinds       KindSet
	Replacement string    // final CSS text substituted for the identifier
	Ref         Reference // set when the replacement is an opaque reference
}

// IdentifierMap maps final target names to their entries. Built once per
// compilation unit; keys are injective with respect to raw identifiers.
type IdentifierMap map[string]Entry

// Result is the outcome of rewriting one compilation unit.
type Result struct {
	Identifiers    IdentifierMap
	ReferenceOrder []Reference // opaque references in first-use order
	HashSuffix     string
}
