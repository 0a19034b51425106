// Package render turns reconstructed search logs into visual artifacts:
// an export graph, Graphviz DOT text, and rendered SVG.
package render

import (
	"fmt"

	"resolvis/pkg/dag"
	"resolvis/pkg/trace"
)

// ToDAG converts the runs of a log into an export graph. Each processed
// step becomes one node (ID "step-N" by discovery order); each
// unprocessed successor becomes a synthetic leaf node. Edges follow the
// successor lists and carry the link choice and forced flag as metadata.
func ToDAG(runs []trace.Run) (*dag.DAG, error) {
	g := dag.New()

	for ri, run := range runs {
		for _, step := range run {
			err := g.AddNode(dag.Node{
				ID:    stepID(step),
				Label: fmt.Sprintf("step %d", step.Order),
				Kind:  dag.NodeKindStep,
				Meta: dag.Metadata{
					"run":        ri,
					"order":      step.Order,
					"depth":      step.Depth,
					"branchSize": step.BranchSize,
					"choices":    step.Solution.Len(),
					"broken":     len(step.Solution.Broken()),
					"promotions": len(step.Promotions),
				},
			})
			if err != nil {
				return nil, fmt.Errorf("add step %d: %w", step.Order, err)
			}
		}
	}

	for _, run := range runs {
		for _, step := range run {
			for si, succ := range step.Successors {
				to := stepID(succ.Step)
				if !succ.Processed() {
					to = fmt.Sprintf("unprocessed-%d-%d", step.Order, si)
					err := g.AddNode(dag.Node{
						ID:    to,
						Label: "unprocessed",
						Kind:  dag.NodeKindUnprocessed,
						Meta:  dag.Metadata{"solution": succ.Solution.Key()},
					})
					if err != nil {
						return nil, fmt.Errorf("add successor of step %d: %w", step.Order, err)
					}
				}
				err := g.AddEdge(dag.Edge{
					From: stepID(step),
					To:   to,
					Meta: dag.Metadata{
						"choice": succ.Choice.Key(),
						"forced": succ.Forced,
					},
				})
				if err != nil {
					return nil, fmt.Errorf("link step %d: %w", step.Order, err)
				}
			}
		}
	}

	return g, nil
}

func stepID(s *trace.ProcessingStep) string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("step-%d", s.Order)
}
