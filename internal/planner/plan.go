// Package planner builds the per-unit execution plan: where the unit's
// artifacts live under the output root and the exact argv for each of the
// four external-tool stages. Plans are pure data; nothing here touches the
// filesystem or runs a process.
package planner

import (
	"path/filepath"
	"strconv"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/config"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/discovery"
)

// Stage indices, in pipeline order.
const (
	StageMerge = iota
	StageAlign
	StageCallMods
	StageQC
	StageCount
)

// StageNames maps stage indices to their log labels.
var StageNames = [StageCount]string{"merge", "align", "call-modifications", "quality-report"}

// Stage is one planned external-tool invocation together with the artifact
// that proves its completion.
type Stage struct {
	Index   int
	Name    string
	Command []string

	// StdoutPath routes the tool's stdout into the artifact (align stage).
	StdoutPath string

	// Artifact is the output file, or the report directory for the QC
	// stage. Marker, when non-empty, is the file inside a directory
	// artifact whose existence signals completion; file artifacts are
	// instead judged by MinBytes.
	Artifact string
	Marker   string
	MinBytes int64

	Threads int
}

// UnitPlan holds the resolved artifact paths for one work unit.
type UnitPlan struct {
	Unit      discovery.WorkUnit
	OutputDir string

	MergedBAM  string
	AlignedBAM string
	MethylBED  string
	QCDir      string

	reference string
	profile   config.ToolProfile
	threads   int
}

// New resolves the unit's output layout. threads is the already-clamped
// budget; the QC stage applies its own ceiling on top.
func New(unit discovery.WorkUnit, outputRoot, reference string, profile config.ToolProfile, threads int) *UnitPlan {
	dir := unit.OutputDir(outputRoot)
	sample := unit.SampleName
	return &UnitPlan{
		Unit:       unit,
		OutputDir:  dir,
		MergedBAM:  filepath.Join(dir, sample+".merged.bam"),
		AlignedBAM: filepath.Join(dir, sample+".aligned.bam"),
		MethylBED:  filepath.Join(dir, sample+".methyl.bed"),
		QCDir:      filepath.Join(dir, sample+"_qc"),
		reference:  reference,
		profile:    profile,
		threads:    threads,
	}
}

// Merge plans stage 1: combine the validated raw files into one sorted,
// indexed BAM. The argv is built late because the contributing file list is
// only known after the validation probe has excluded corrupt files.
func (p *UnitPlan) Merge(validRaw []string) Stage {
	cmd := []string{
		p.profile.Samtools, "merge", "-f", "--write-index",
		"-@", strconv.Itoa(p.threads),
		"-o", p.MergedBAM,
	}
	cmd = append(cmd, validRaw...)
	return Stage{
		Index:    StageMerge,
		Name:     StageNames[StageMerge],
		Command:  cmd,
		Artifact: p.MergedBAM,
		MinBytes: p.profile.MergedMinBytes,
		Threads:  p.threads,
	}
}

// Align plans stage 2: map the merged reads against the reference,
// preserving modification tags. The aligner writes the BAM on stdout.
func (p *UnitPlan) Align() Stage {
	return Stage{
		Index: StageAlign,
		Name:  StageNames[StageAlign],
		Command: []string{
			p.profile.Dorado, "aligner",
			"-t", strconv.Itoa(p.threads),
			p.reference, p.MergedBAM,
		},
		StdoutPath: p.AlignedBAM,
		Artifact:   p.AlignedBAM,
		MinBytes:   p.profile.AlignedMinBytes,
		Threads:    p.threads,
	}
}

// CallModifications plans stage 3: pile up per-position modification
// frequencies into a bedMethyl table.
func (p *UnitPlan) CallModifications() Stage {
	return Stage{
		Index: StageCallMods,
		Name:  StageNames[StageCallMods],
		Command: []string{
			p.profile.Modkit, "pileup",
			"-t", strconv.Itoa(p.threads),
			"--ref", p.reference,
			p.AlignedBAM, p.MethylBED,
		},
		Artifact: p.MethylBED,
		MinBytes: p.profile.BedMinBytes,
		Threads:  p.threads,
	}
}

// QualityControl plans stage 4: the BAM QC report directory. Qualimap gets
// its own thread ceiling, applied after the general clamp.
func (p *UnitPlan) QualityControl() Stage {
	threads := p.threads
	if threads > p.profile.QCThreadCeiling {
		threads = p.profile.QCThreadCeiling
	}
	return Stage{
		Index: StageQC,
		Name:  StageNames[StageQC],
		Command: []string{
			p.profile.Qualimap, "bamqc",
			"-bam", p.AlignedBAM,
			"-outdir", p.QCDir,
			"-nt", strconv.Itoa(threads),
		},
		Artifact: p.QCDir,
		Marker:   filepath.Join(p.QCDir, p.profile.QCMarker),
		Threads:  threads,
	}
}
