package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"resolvis/pkg/trace"
)

const sampleLog = `Processing <>
Generating successors for apt 0.8 -> {libc6 2.11}
Trying to resolve apt 0.8 -> {libc6 2.11} by installing libc6 2.11
Generated successor: <Install(libc6 2.11 via apt 0.8 -> {libc6 2.11})>
Done generating successors.
Inserting new promotion: (T1: conflict)
Processing <Install(libc6 2.11 via apt 0.8 -> {libc6 2.11})>
`

func loadSample(t *testing.T) *trace.LogFile {
	t.Helper()
	lf, err := trace.Load(trace.NewBytesSource([]byte(sampleLog)), "sample.log", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return lf
}

func TestWriteJSON(t *testing.T) {
	lf := loadSample(t)

	var buf bytes.Buffer
	if err := WriteJSON(lf, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var doc struct {
		Source string `json:"source"`
		Runs   []struct {
			Steps []struct {
				Order        int    `json:"order"`
				Solution     string `json:"solution"`
				Depth        int    `json:"depth"`
				BranchSize   int    `json:"branch_size"`
				Parent       *int   `json:"parent"`
				ParentChoice string `json:"parent_choice"`
				Promotions   []string
				Successors   []struct {
					Step     *int   `json:"step"`
					Solution string `json:"solution"`
					Choice   string `json:"choice"`
					Forced   bool   `json:"forced"`
				}
			}
		}
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc.Source != "sample.log" {
		t.Errorf("source = %q", doc.Source)
	}
	if len(doc.Runs) != 1 || len(doc.Runs[0].Steps) != 2 {
		t.Fatalf("shape = %d runs, want 1 run with 2 steps", len(doc.Runs))
	}

	root := doc.Runs[0].Steps[0]
	if root.Solution != "<>" || root.Depth != 2 || root.BranchSize != 2 {
		t.Errorf("root = %+v", root)
	}
	if len(root.Successors) != 1 {
		t.Fatalf("root successors = %d", len(root.Successors))
	}
	succ := root.Successors[0]
	if succ.Step == nil || *succ.Step != 1 {
		t.Errorf("successor step = %v, want 1", succ.Step)
	}
	if succ.Choice == "" {
		t.Error("successor choice missing")
	}
	if len(root.Promotions) != 1 || root.Promotions[0] != "(T1: conflict)" {
		t.Errorf("promotions = %v", root.Promotions)
	}

	child := doc.Runs[0].Steps[1]
	if child.Parent == nil || *child.Parent != 0 {
		t.Errorf("child parent = %v, want 0", child.Parent)
	}
	if child.ParentChoice != "Install(libc6 2.11 via apt 0.8 -> {libc6 2.11})" {
		t.Errorf("parent choice = %q", child.ParentChoice)
	}
}

func TestWriteJSONDeterministic(t *testing.T) {
	lf := loadSample(t)

	var a, b bytes.Buffer
	if err := WriteJSON(lf, &a); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if err := WriteJSON(lf, &b); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("repeated serialization differs")
	}
}

func TestExportJSON(t *testing.T) {
	lf := loadSample(t)

	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportJSON(lf, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !json.Valid(data) {
		t.Error("exported file is not valid JSON")
	}
}
