package planner

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/config"
	"github.com/markusdrag/NanoporeToBED-Pipeline/internal/discovery"
)

func testPlan(threads int) *UnitPlan {
	unit := discovery.WorkUnit{
		LibraryCode: "SRR1",
		BatchCode:   "20240113",
		SampleName:  "sample_A_meta",
		InputPath:   "/in/SRR1/fastq_20240113/pass/sample_A_meta",
	}
	return New(unit, "/out", "/ref/genome.fa", config.DefaultToolProfile(), threads)
}

func TestNew_ArtifactLayout(t *testing.T) {
	p := testPlan(8)
	wantDir := filepath.Join("/out", "SRR1", "20240113", "sample_A_meta")
	if p.OutputDir != wantDir {
		t.Errorf("OutputDir: got %q, want %q", p.OutputDir, wantDir)
	}
	if filepath.Base(p.MergedBAM) != "sample_A_meta.merged.bam" {
		t.Errorf("MergedBAM: %s", p.MergedBAM)
	}
	if filepath.Base(p.AlignedBAM) != "sample_A_meta.aligned.bam" {
		t.Errorf("AlignedBAM: %s", p.AlignedBAM)
	}
	if filepath.Base(p.MethylBED) != "sample_A_meta.methyl.bed" {
		t.Errorf("MethylBED: %s", p.MethylBED)
	}
	if filepath.Base(p.QCDir) != "sample_A_meta_qc" {
		t.Errorf("QCDir: %s", p.QCDir)
	}
}

func TestMerge_CommandShape(t *testing.T) {
	p := testPlan(8)
	st := p.Merge([]string{"/in/a.bam", "/in/b.bam"})

	argv := strings.Join(st.Command, " ")
	if !strings.HasPrefix(argv, "samtools merge") {
		t.Errorf("argv: %s", argv)
	}
	if !strings.Contains(argv, "-@ 8") {
		t.Errorf("threads missing: %s", argv)
	}
	if !strings.HasSuffix(argv, "/in/a.bam /in/b.bam") {
		t.Errorf("inputs missing or reordered: %s", argv)
	}
	if st.Index != StageMerge || st.Name != "merge" {
		t.Errorf("stage identity: %+v", st)
	}
	if st.MinBytes != config.DefaultToolProfile().MergedMinBytes {
		t.Errorf("MinBytes: %d", st.MinBytes)
	}
}

func TestAlign_WritesStdoutToArtifact(t *testing.T) {
	p := testPlan(8)
	st := p.Align()
	if st.StdoutPath != p.AlignedBAM {
		t.Errorf("StdoutPath: got %q, want %q", st.StdoutPath, p.AlignedBAM)
	}
	argv := strings.Join(st.Command, " ")
	if !strings.Contains(argv, "/ref/genome.fa") || !strings.Contains(argv, p.MergedBAM) {
		t.Errorf("argv: %s", argv)
	}
}

func TestCallModifications_CommandShape(t *testing.T) {
	p := testPlan(8)
	st := p.CallModifications()
	argv := strings.Join(st.Command, " ")
	if !strings.HasPrefix(argv, "modkit pileup") {
		t.Errorf("argv: %s", argv)
	}
	if !strings.Contains(argv, "--ref /ref/genome.fa") {
		t.Errorf("reference missing: %s", argv)
	}
	if st.Artifact != p.MethylBED {
		t.Errorf("artifact: %s", st.Artifact)
	}
}

func TestQualityControl_ThreadCeiling(t *testing.T) {
	// The QC tool's own ceiling applies after the general clamp.
	p := testPlan(32)
	st := p.QualityControl()
	if st.Threads != config.DefaultToolProfile().QCThreadCeiling {
		t.Errorf("Threads: got %d, want ceiling %d", st.Threads, config.DefaultToolProfile().QCThreadCeiling)
	}
	argv := strings.Join(st.Command, " ")
	if !strings.Contains(argv, "-nt 8") {
		t.Errorf("argv: %s", argv)
	}

	// Below the ceiling the clamped budget passes through.
	p = testPlan(2)
	if st := p.QualityControl(); st.Threads != 2 {
		t.Errorf("Threads: got %d, want 2", st.Threads)
	}
}

func TestQualityControl_Marker(t *testing.T) {
	p := testPlan(4)
	st := p.QualityControl()
	if st.Marker != filepath.Join(p.QCDir, "genome_results.txt") {
		t.Errorf("Marker: %s", st.Marker)
	}
}
