// Package gc prunes the parsed API set down to the records transitively
// reachable from the allowlist.
//
// The dependency graph is never materialized: records reference each other
// by qualified name through their outgoing type-reference edges, and the
// collector walks a transient name-to-index adjacency built for the run.
// For a fixed API set and allowlist the surviving set is invariant under
// traversal order; the returned slice preserves the input ordering of
// survivors so emission is deterministic too.
package gc

import (
	"github.com/crossbind/crossbind/errors"
	"github.com/crossbind/crossbind/ir"
	"github.com/crossbind/crossbind/logger"
	"github.com/crossbind/crossbind/typedb"
)

// FilterByAllowlist returns the subset of apis reachable from the
// allowlisted root names, following each record's outgoing edges
// breadth-first. Survivors are returned in input order and never mutated.
//
// An allowlisted name with no matching record contributes no roots; it is
// tolerated but logged so typos are visible. An edge whose target has no
// record is skipped silently — it names a primitive or external type.
func FilterByAllowlist(apis []ir.API, db typedb.Database) ([]ir.API, error) {
	index := make(map[string]int, len(apis))
	for i, api := range apis {
		if prev, dup := index[api.Name]; dup {
			return nil, errors.Wrapf(errors.ErrGraphInconsistency,
				"duplicate API record %s (positions %d and %d)", api.Name, prev, i)
		}
		index[api.Name] = i
	}

	visited := make(map[string]bool, len(apis))
	queue := make([]string, 0, len(apis))

	for _, root := range db.Allowlist() {
		if _, ok := index[root]; !ok {
			logger.Warnw("Allowlisted name has no API record", "name", root)
			continue
		}
		if !visited[root] {
			visited[root] = true
			queue = append(queue, root)
		}
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		for _, dep := range apis[index[name]].Deps {
			target := dep.Qualified()
			if _, ok := index[target]; !ok {
				continue
			}
			if !visited[target] {
				visited[target] = true
				queue = append(queue, target)
			}
		}
	}

	survivors := make([]ir.API, 0, len(visited))
	for _, api := range apis {
		if visited[api.Name] {
			survivors = append(survivors, api)
		}
	}

	logger.Debugw("Garbage collection complete",
		"parsed", len(apis),
		"survived", len(survivors),
		"pruned", len(apis)-len(survivors))

	return survivors, nil
}
