// Package io provides JSON import and export for feature trees.
//
// # Overview
//
// Trimmed product trees and status-annotated trees are handed to external
// tools (documentation generators, dashboards, diagram renderers) as JSON.
// The format nests features the same way the model does:
//
//	{
//	  "root": {
//	    "name": "todoapp",
//	    "abstract": true,
//	    "mandatory": true,
//	    "kind": "and",
//	    "status": "passed",
//	    "children": [
//	      {
//	        "name": "AddTodo",
//	        "mandatory": true,
//	        "kind": "feature",
//	        "status": "passed",
//	        "scenarios": [{"name": "Add one-word todo", "status": "passed"}]
//	      }
//	    ]
//	  }
//	}
//
// # Fields
//
// Required:
//   - name: the feature name
//
// Optional:
//   - abstract, mandatory: default false
//   - kind: "feature", "and", "or" or "alt"; defaults to "feature"
//   - status: "inconclusive", "passed" or "failed"; omitted when not computed
//   - scenarios: attached scenarios with their own status
//   - children: child features in model order
//
// An empty model is written as {"root": null}.
//
// # Round Trip
//
// [ReadJSON] restores everything [WriteJSON] writes, so an exported tree can
// be re-imported and queried or trimmed again.
package io
