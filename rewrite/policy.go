package rewrite

import (
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// finish runs the post-pass policy checks. All findings are combined so one
// run reports every stale configuration entry at once.
func (e *engine) finish() error {
	var err error
	for _, name := range sortedNames(e.unusedRewrites) {
		e.log.Warn("unused rewrite entry", zap.String("name", name))
		err = multierr.Append(err, &UnusedConfigurationError{Kind: "rewrite", Name: name})
	}
	for _, name := range sortedNames(e.unusedPrefixes) {
		e.log.Warn("unused dont-hash prefix", zap.String("prefix", name))
		err = multierr.Append(err, &UnusedConfigurationError{Kind: "dont_hash_prefix", Name: name})
	}
	if len(e.newVars) > 0 && !e.opts.AllowPotentialAccidentalHashing {
		names := make([]string, 0, len(e.newVars))
		for _, v := range e.newVars {
			names = append(names, "--"+v)
		}
		err = multierr.Append(err, &UnsafeHashingChangeError{Names: names, Loc: e.newVarLoc})
	}
	return err
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}
