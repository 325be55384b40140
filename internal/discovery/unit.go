// Package discovery enumerates work units from the input directory tree and
// derives their identity from path structure. A unit is one sample's worth
// of raw basecaller output, addressed as (libraryCode, batchCode, sampleName).
package discovery

import "path/filepath"

// WorkUnit is the immutable identity of one sample directory. It is created
// at scan time and never mutated afterwards.
type WorkUnit struct {
	LibraryCode string // Top-level grouping key (e.g. a run accession).
	BatchCode   string // Date-like token from the path, or the second segment; may be empty.
	SampleName  string // Leaf directory name; doubles as output/log subdirectory name.
	InputPath   string // Absolute path of the sample directory.
}

// String renders the unit's identity tuple for log lines.
func (u WorkUnit) String() string {
	if u.BatchCode == "" {
		return u.LibraryCode + "/" + u.SampleName
	}
	return u.LibraryCode + "/" + u.BatchCode + "/" + u.SampleName
}

// OutputDir returns the unit's private output subtree under outputRoot.
// Keyed by the full identity tuple so no two units can interfere.
func (u WorkUnit) OutputDir(outputRoot string) string {
	return filepath.Join(outputRoot, u.LibraryCode, u.BatchCode, u.SampleName)
}
