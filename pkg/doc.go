// Package pkg provides the core libraries for reconstructing dependency
// resolver searches from their debug logs.
//
// # Overview
//
// A resolver writes a line-oriented trace of its backtracking search:
// states it processes, successors it generates, promotions it learns.
// The pkg directory turns that flat text back into the trees the search
// explored:
//
//  1. [model] - Value types and parsers for the log's textual forms
//     (versions, dependencies, choices, solutions)
//  2. [trace] - Single-pass log reconstruction: processing steps,
//     successor links, run partitioning
//  3. [dag] - Graph container used for exported views
//  4. [render] - DOT/SVG conversion of reconstructed runs
//  5. [io] - JSON export of reconstructed logs
//  6. [cache] - Content-addressed artifact caching
//  7. [observability] - Lifecycle hooks for load, render, and cache
//
// # Architecture
//
// The typical data flow:
//
//	resolver log file
//	         |
//	      trace.Load          (classify lines, link successors)
//	         |
//	   []trace.Run            (one tree per restart)
//	         |
//	   render.ToDAG           (export graph)
//	         |
//	   DOT / SVG / JSON
package pkg
