// Package convert orchestrates the conversion pipeline: the scanned
// declaration tree is extracted, safety-analyzed, parsed into API records,
// garbage-collected against the allowlist, and handed to code generation.
//
// The pipeline is strictly sequential and fail-fast: each stage fully owns
// its output and hands it to the next stage; the first error terminates the
// run. There is no partial success — a partially-converted API surface
// would silently miss bindings, which is worse than a hard stop.
package convert

import (
	"time"

	"github.com/google/uuid"

	"github.com/crossbind/crossbind/byvalue"
	"github.com/crossbind/crossbind/codegen"
	"github.com/crossbind/crossbind/errors"
	"github.com/crossbind/crossbind/extract"
	"github.com/crossbind/crossbind/gc"
	"github.com/crossbind/crossbind/ir"
	"github.com/crossbind/crossbind/logger"
	"github.com/crossbind/crossbind/parse"
	"github.com/crossbind/crossbind/typedb"
)

// Options are the per-run knobs of the pipeline.
type Options struct {
	// ExcludeUtilities drops the scanner's helper namespace during
	// parsing, before garbage collection runs.
	ExcludeUtilities bool

	// UnsafePolicy controls unsafe-call annotations on generated
	// function wrappers.
	UnsafePolicy parse.UnsafePolicy
}

// Converter runs the pipeline over scanned declaration trees.
type Converter struct {
	includeList []string
	db          typedb.Database
}

// New creates a converter. The include list is threaded through unchanged
// to code generation; the type database is consulted read-only.
func New(includeList []string, db typedb.Database) *Converter {
	return &Converter{includeList: includeList, db: db}
}

// Convert transforms one scanned declaration tree into the bridge artifact.
func (c *Converter) Convert(root *ir.Item, opts Options) (*codegen.Results, error) {
	runID := uuid.New().String()
	started := time.Now()
	logger.Infow("Conversion started",
		"run_id", runID,
		"exclude_utilities", opts.ExcludeUtilities,
		"unsafe_policy", opts.UnsafePolicy.String())

	items, err := extract.ItemsInRoot(root)
	if err != nil {
		return nil, errors.Wrap(err, "extracting declarations")
	}
	logger.Debugw("Declarations extracted", "run_id", runID, "items", len(items))

	checker, err := byvalue.Identify(items, c.db)
	if err != nil {
		return nil, errors.Wrap(err, "identifying by-value-safe types")
	}

	parser := parse.NewParser(checker, c.db, opts.UnsafePolicy)
	parsed, err := parser.ConvertItems(items, opts.ExcludeUtilities)
	if err != nil {
		return nil, errors.Wrap(err, "parsing declarations")
	}
	logger.Debugw("Declarations parsed", "run_id", runID, "records", len(parsed.APIs))

	apis, err := gc.FilterByAllowlist(parsed.APIs, c.db)
	if err != nil {
		return nil, errors.Wrap(err, "garbage collecting records")
	}

	rootName := extract.RootName
	if root != nil {
		rootName = root.Name
	}
	results, err := codegen.Generate(apis, c.includeList, parsed.UseStmtsByNS, rootName)
	if err != nil {
		return nil, errors.Wrap(err, "generating bridge code")
	}

	logger.Infow("Conversion finished",
		"run_id", runID,
		"parsed", len(parsed.APIs),
		"survived", len(apis),
		"diagnostics", len(results.Diagnostics),
		"elapsed", time.Since(started))
	return results, nil
}
