package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"github.com/ocaml-wasm/ppx-css/anonymous"
	"github.com/ocaml-wasm/ppx-css/config"
	"github.com/ocaml-wasm/ppx-css/css"
	"github.com/ocaml-wasm/ppx-css/rewrite"
	"github.com/ocaml-wasm/ppx-css/state"
)

// writeResult stores produced data either in a file or on STDOUT, refusing to
// silently clobber existing files.
func writeResult(fname string, data []byte, overwrite bool) error {
	if len(fname) == 0 {
		_, err := os.Stdout.Write(data)
		return err
	}
	if !overwrite {
		if _, err := os.Stat(fname); err == nil {
			return fmt.Errorf("destination file '%s' already exists, use --overwrite to replace it", fname)
		}
	}
	if err := os.WriteFile(fname, data, 0644); err != nil {
		return fmt.Errorf("unable to write destination file '%s': %w", fname, err)
	}
	return nil
}

func readSource(cmd *cli.Command) (string, []byte, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return "", nil, fmt.Errorf("no source file specified")
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", nil, fmt.Errorf("unable to read source file '%s': %w", src, err)
	}
	return src, data, nil
}

// identifier map entry as emitted to YAML, in natural target order
type mappedIdentifier struct {
	Name        string `yaml:"name"`
	Kinds       string `yaml:"kinds"`
	Replacement string `yaml:"replacement"`
	Ref         string `yaml:"ref,omitempty"`
}

type identifierMapFile struct {
	HashSuffix  string             `yaml:"hash_suffix"`
	Identifiers []mappedIdentifier `yaml:"identifiers"`
	References  []string           `yaml:"references,omitempty"`
}

func marshalIdentifierMap(res *rewrite.Result) ([]byte, error) {
	out := identifierMapFile{HashSuffix: res.HashSuffix}
	for _, target := range res.Identifiers.Targets() {
		entry := res.Identifiers[target]
		m := mappedIdentifier{
			Name:        target,
			Kinds:       entry.Kinds.String(),
			Replacement: entry.Replacement,
		}
		if entry.Ref != nil {
			m.Ref = fmt.Sprint(entry.Ref)
		}
		out.Identifiers = append(out.Identifiers, m)
	}
	for _, ref := range res.ReferenceOrder {
		out.References = append(out.References, fmt.Sprint(ref))
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal identifier map: %w", err)
	}
	return data, nil
}

func rewriteStylesheet(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	src, data, err := readSource(cmd)
	if err != nil {
		return err
	}

	opts, err := env.Cfg.Rewriting.Options()
	if err != nil {
		return fmt.Errorf("bad rewriting configuration: %w", err)
	}
	opts.Log = env.Log
	if cmd.Bool("permissive") {
		opts.AllowPotentialAccidentalHashing = true
	}

	sheet := css.NewParser(env.Log).Parse(data, src)
	if env.Rpt != nil {
		env.Rpt.StoreData("rewrite/"+config.CleanFileName(filepath.Base(src)), data)
		env.Rpt.StoreData("rewrite/parsed.txt", []byte(sheet.Dump()))
	}

	res, err := rewrite.Apply(sheet, opts)
	if err != nil {
		return fmt.Errorf("unable to rewrite '%s': %w", src, err)
	}
	text := sheet.String()
	env.Log.Info("Stylesheet rewritten",
		zap.String("source", src),
		zap.String("hash", res.HashSuffix),
		zap.Int("identifiers", len(res.Identifiers)))

	if env.Rpt != nil {
		env.Rpt.StoreData("rewrite/output.css", []byte(text))
	}

	if err := writeResult(cmd.Args().Get(1), []byte(text), cmd.Bool("overwrite")); err != nil {
		return err
	}

	if fname := cmd.String("map"); len(fname) > 0 {
		mdata, err := marshalIdentifierMap(res)
		if err != nil {
			return err
		}
		if env.Rpt != nil {
			env.Rpt.StoreData("rewrite/map.yaml", mdata)
		}
		if err := writeResult(fname, mdata, cmd.Bool("overwrite")); err != nil {
			return err
		}
	}
	return nil
}

type discoverySummary struct {
	Variables         []string          `yaml:"variables,omitempty"`
	Identifiers       []identifierUsage `yaml:"identifiers,omitempty"`
	ExternalVariables []string          `yaml:"external_variables,omitempty"`
}

type identifierUsage struct {
	Name  string `yaml:"name"`
	Usage string `yaml:"usage"`
}

func discoverStylesheet(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	src, data, err := readSource(cmd)
	if err != nil {
		return err
	}

	sheet := css.NewParser(env.Log).Parse(data, src)
	disc, err := rewrite.Discover(sheet, env.Log)
	if err != nil {
		return fmt.Errorf("unable to discover identifiers in '%s': %w", src, err)
	}

	out := discoverySummary{
		Variables:         disc.Variables,
		ExternalVariables: disc.ExternalVariables,
	}
	for _, iu := range disc.Identifiers {
		out.Identifiers = append(out.Identifiers, identifierUsage{Name: iu.Name, Usage: iu.Usage.String()})
	}
	ydata, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("unable to marshal discovery summary: %w", err)
	}
	env.Log.Info("Identifiers discovered",
		zap.String("source", src),
		zap.Int("identifiers", len(disc.Identifiers)),
		zap.Int("variables", len(disc.Variables)))
	return writeResult(cmd.Args().Get(1), ydata, true)
}

type substitutionSummary struct {
	Text       string               `yaml:"text"`
	Variables  []substitutedBinding `yaml:"variables,omitempty"`
	AlwaysHash []string             `yaml:"always_hash,omitempty"`
	DontHash   []string             `yaml:"dont_hash,omitempty"`
}

type substitutedBinding struct {
	Name      string `yaml:"name"`
	Ref       string `yaml:"ref"`
	Formatter string `yaml:"formatter,omitempty"`
}

func substituteInterpolations(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	src, data, err := readSource(cmd)
	if err != nil {
		return err
	}

	eng := anonymous.NewEngine(env.Log)

	var res *anonymous.Result
	if cmd.Bool("stylesheet") {
		res, err = eng.SubstituteStylesheet(string(data), src)
	} else {
		res, err = eng.SubstituteDeclarations(string(data), src)
	}
	if err != nil {
		return fmt.Errorf("unable to substitute interpolations in '%s': %w", src, err)
	}

	out := substitutionSummary{
		Text:       res.Text,
		AlwaysHash: res.AlwaysHash,
		DontHash:   res.DontHash,
	}
	for _, v := range res.Variables {
		out.Variables = append(out.Variables, substitutedBinding{
			Name:      v.Name,
			Ref:       fmt.Sprint(v.Ref),
			Formatter: v.Formatter,
		})
	}
	ydata, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("unable to marshal substitution result: %w", err)
	}
	return writeResult(cmd.Args().Get(1), ydata, true)
}
