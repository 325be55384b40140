package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoUnitsFound is returned when every pattern matcher comes up empty.
// Discovery failure is run-fatal: it signals a misunderstanding of the
// input layout rather than a per-unit data problem.
var ErrNoUnitsFound = errors.New("no work units found")

// unclassifiedMarker excludes the basecaller's unassigned-read bins.
const unclassifiedMarker = "unclassified"

// patternMatcher is one typed directory-layout convention. Matchers are
// tried in priority order; a matcher both globs candidate directories and
// decides per-directory whether a candidate is a real unit.
type patternMatcher struct {
	name string
	glob string // joined under the input root
}

// matchers in priority order. The primary pattern expects a sequencer run
// folder between the library and the pass/ bin; the fallback handles trees
// where pass/ sits directly under the library.
var matchers = []patternMatcher{
	{name: "run-folder", glob: filepath.Join("*", "*", "pass", "*")},
	{name: "flat", glob: filepath.Join("*", "pass", "*")},
}

// Scan enumerates unit directories under root. It returns a deterministic
// (lexicographically sorted), duplicate-free sequence. The fallback matcher
// is consulted only when the primary matcher yields zero units anywhere
// under the root; when every matcher is empty the scan fails with
// [ErrNoUnitsFound], reporting the exact patterns searched.
func Scan(root string) ([]WorkUnit, error) {
	for _, m := range matchers {
		units, err := m.scan(root)
		if err != nil {
			return nil, err
		}
		if len(units) > 0 {
			return units, nil
		}
	}
	patterns := make([]string, len(matchers))
	for i, m := range matchers {
		patterns[i] = filepath.Join(root, m.glob)
	}
	return nil, fmt.Errorf("%w under %s (searched %s)",
		ErrNoUnitsFound, root, strings.Join(patterns, " and "))
}

// scan globs the matcher's pattern and keeps directories that pass Match.
func (m patternMatcher) scan(root string) ([]WorkUnit, error) {
	candidates, err := filepath.Glob(filepath.Join(root, m.glob))
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", m.glob, err)
	}

	seen := make(map[string]bool)
	var units []WorkUnit
	for _, dir := range candidates {
		u, ok := m.Match(root, dir)
		if !ok || seen[u.InputPath] {
			continue
		}
		seen[u.InputPath] = true
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool {
		return units[i].InputPath < units[j].InputPath
	})
	return units, nil
}

// Match decides whether dir is a work unit under this matcher and, if so,
// returns its derived identity. A candidate qualifies when it is a
// directory, its leaf name carries at least one "_" metadata delimiter,
// and no path segment contains the unclassified marker.
func (m patternMatcher) Match(root, dir string) (WorkUnit, bool) {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return WorkUnit{}, false
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return WorkUnit{}, false
	}
	if strings.Contains(strings.ToLower(rel), unclassifiedMarker) {
		return WorkUnit{}, false
	}
	for _, seg := range splitSegments(rel) {
		if strings.HasPrefix(seg, ".") {
			return WorkUnit{}, false
		}
	}
	if !strings.Contains(filepath.Base(dir), "_") {
		return WorkUnit{}, false
	}

	lib, batch, sample := Identify(rel)
	return WorkUnit{
		LibraryCode: lib,
		BatchCode:   batch,
		SampleName:  sample,
		InputPath:   dir,
	}, true
}

// ListRawFiles returns the unit's raw basecaller BAMs, sorted for a stable
// merge order. A missing or empty directory yields an empty slice.
func ListRawFiles(u WorkUnit) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(u.InputPath, "*.bam"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
