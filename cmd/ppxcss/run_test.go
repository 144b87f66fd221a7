package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ocaml-wasm/ppx-css/rewrite"
)

func TestMarshalIdentifierMap(t *testing.T) {
	text, res, err := rewrite.Process(
		[]byte(".card { color: red; }\n.nav-bar { color: blue; }"),
		"test.css", rewrite.Options{})
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}
	if text == "" {
		t.Fatal("empty rewritten output")
	}
	data, err := marshalIdentifierMap(res)
	if err != nil {
		t.Fatalf("marshalIdentifierMap() failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "hash_suffix: "+res.HashSuffix) {
		t.Errorf("missing hash suffix:\n%s", out)
	}
	// natural target order: card before nav_bar
	ci := strings.Index(out, "name: card")
	ni := strings.Index(out, "name: nav_bar")
	if ci < 0 || ni < 0 || ci > ni {
		t.Errorf("targets missing or out of order:\n%s", out)
	}
	if !strings.Contains(out, "replacement: card_hash_"+res.HashSuffix) {
		t.Errorf("missing replacement:\n%s", out)
	}
	if !strings.Contains(out, "kinds: class") {
		t.Errorf("missing kind set:\n%s", out)
	}
}

func TestMarshalIdentifierMapReferences(t *testing.T) {
	opts := rewrite.Options{Rewrite: map[string]rewrite.Replacement{"theme": rewrite.Opaque("Theme.color")}}
	_, res, err := rewrite.Process([]byte(".theme { color: red; }"), "test.css", opts)
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}
	data, err := marshalIdentifierMap(res)
	if err != nil {
		t.Fatalf("marshalIdentifierMap() failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "ref: Theme.color") {
		t.Errorf("missing reference in entry:\n%s", out)
	}
	if !strings.Contains(out, "references:") || !strings.Contains(out, "- Theme.color") {
		t.Errorf("missing reference order:\n%s", out)
	}
}

func TestWriteResultOverwriteGuard(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "out.css")
	if err := writeResult(fname, []byte("first"), false); err != nil {
		t.Fatalf("initial write failed: %v", err)
	}
	if err := writeResult(fname, []byte("second"), false); err == nil {
		t.Error("expected refusal to overwrite existing file")
	}
	if err := writeResult(fname, []byte("second"), true); err != nil {
		t.Errorf("overwrite failed: %v", err)
	}
	data, err := os.ReadFile(fname)
	if err != nil || string(data) != "second" {
		t.Errorf("file content = %q, %v", data, err)
	}
}
