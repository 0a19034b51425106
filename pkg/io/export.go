// Package io serializes reconstructed search logs for downstream tools.
package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"resolvis/pkg/trace"
)

type logDoc struct {
	Source string   `json:"source"`
	Runs   []runDoc `json:"runs"`
}

type runDoc struct {
	Steps []stepDoc `json:"steps"`
}

type stepDoc struct {
	Order        int       `json:"order"`
	Solution     string    `json:"solution"`
	Depth        int       `json:"depth"`
	BranchSize   int       `json:"branch_size"`
	TextStart    int64     `json:"text_start"`
	TextLen      int64     `json:"text_len"`
	Parent       *int      `json:"parent,omitempty"`
	ParentChoice string    `json:"parent_choice,omitempty"`
	Promotions   []string  `json:"promotions,omitempty"`
	Successors   []succDoc `json:"successors,omitempty"`
}

type succDoc struct {
	// Step is the discovery order of the processed successor; absent when
	// the log never shows the state being processed.
	Step     *int   `json:"step,omitempty"`
	Solution string `json:"solution"`
	Choice   string `json:"choice,omitempty"`
	Forced   bool   `json:"forced,omitempty"`
}

// WriteJSON encodes the log's runs as JSON. Solutions, choices, and
// promotions are emitted in their canonical textual encodings, so
// structurally equal logs serialize identically.
func WriteJSON(lf *trace.LogFile, w io.Writer) error {
	out := logDoc{Source: lf.Name(), Runs: make([]runDoc, len(lf.Runs()))}

	for ri, run := range lf.Runs() {
		rd := runDoc{Steps: make([]stepDoc, len(run))}
		for si, step := range run {
			rd.Steps[si] = encodeStep(step)
		}
		out.Runs[ri] = rd
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func encodeStep(step *trace.ProcessingStep) stepDoc {
	sd := stepDoc{
		Order:      step.Order,
		Solution:   step.Solution.Key(),
		Depth:      step.Depth,
		BranchSize: step.BranchSize,
		TextStart:  step.TextStart,
		TextLen:    step.TextLen,
	}
	if step.Parent != nil {
		order := step.Parent.Parent.Order
		sd.Parent = &order
		sd.ParentChoice = step.Parent.Choice.Key()
	}
	for _, p := range step.Promotions {
		sd.Promotions = append(sd.Promotions, p.Key())
	}
	for _, succ := range step.Successors {
		d := succDoc{Solution: succ.Solution.Key(), Forced: succ.Forced}
		if succ.Processed() {
			order := succ.Step.Order
			d.Step = &order
		}
		if succ.Choice.IsKnown() {
			d.Choice = succ.Choice.Key()
		}
		sd.Successors = append(sd.Successors, d)
	}
	return sd
}

// ExportJSON writes the log to a JSON file at path.
func ExportJSON(lf *trace.LogFile, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(lf, f)
}
