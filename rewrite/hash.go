package rewrite

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/ocaml-wasm/ppx-css/css"
)

// hashLen is the number of hex digits appended to hashed identifiers.
const hashLen = 10

// HashSuffix derives the per-unit hash appended to every hashed identifier:
// a fixed-length hex digest over the normalized stylesheet content and the
// unit's source path. Stable across re-runs on unchanged input, unique per
// source file, shared by all identifiers of the unit.
func HashSuffix(sheet *css.Stylesheet, path string) string {
	h := sha256.New()
	h.Write([]byte(sheet.Normalized()))
	h.Write([]byte{0})
	h.Write([]byte(path))
	return hex.EncodeToString(h.Sum(nil))[:hashLen]
}
