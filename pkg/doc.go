// Package pkg provides the libraries behind aplet, a tool that tracks
// behavioral test results across a software product line.
//
// # Overview
//
// A product line is described by one feature model, a tree of mandatory,
// optional and abstract features. Each product is a configuration file that
// selects a subset of those features. Aplet derives test runner toggles per
// product and folds scenario outcomes from test reports back into the tree.
//
// The typical data flow:
//
//	FeatureIDE model.xml        <Product>.config       report*.xml
//	         ↓                         ↓                     ↓
//	  [featureide] parse        [product] toggles      [report] outcomes
//	         ↓                         ↓                     ↓
//	      [fm] tree  ──── trim ────────┘                     │
//	         ↓                                               │
//	  attach [scenario] groups, compute statuses ←───────────┘
//	         ↓
//	  [io] JSON, CLI status tree, [observability] metrics
//
// # Packages
//
// [fm] - The feature model engine: feature tree, optional-feature query,
// trimming and bottom-up status propagation. It does no I/O.
//
// [featureide] - Parser for FeatureIDE XML feature models.
//
// [product] - Product configuration files, toggle generation and product
// discovery.
//
// [scenario] - Feature to scenario mappings read from YAML or TOML.
//
// [report] - JUnit-style report parsing and concurrent, cached collection of
// scenario outcomes.
//
// [io] - JSON export and import of annotated trees.
//
// [config] - The aplet.yml project configuration and project scaffolding.
//
// [cache] - Content-addressed cache with file, Redis and null backends.
//
// [pipeline] - The Runner that ties configuration, parsing, caching and the
// engine together. The CLI is a thin layer over it.
//
// [observability] - Pipeline and cache hooks, with a Prometheus
// implementation.
//
// [watch] - Debounced file system watching for continuous status updates.
//
// [errors] - Coded errors shared by all packages.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./...
//
// [fm]: https://pkg.go.dev/github.com/matzehuels/aplet/pkg/fm
// [featureide]: https://pkg.go.dev/github.com/matzehuels/aplet/pkg/featureide
// [product]: https://pkg.go.dev/github.com/matzehuels/aplet/pkg/product
// [scenario]: https://pkg.go.dev/github.com/matzehuels/aplet/pkg/scenario
// [report]: https://pkg.go.dev/github.com/matzehuels/aplet/pkg/report
// [io]: https://pkg.go.dev/github.com/matzehuels/aplet/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/aplet/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/aplet/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/aplet/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/aplet/pkg/observability
// [watch]: https://pkg.go.dev/github.com/matzehuels/aplet/pkg/watch
// [errors]: https://pkg.go.dev/github.com/matzehuels/aplet/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/aplet/pkg/buildinfo
package pkg
