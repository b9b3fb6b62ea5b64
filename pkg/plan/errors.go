package plan

import (
	"fmt"
	"strings"
)

// ConflictKind classifies a single validation failure.
type ConflictKind int

const (
	// ConflictDuplicate: two or more destinations in the batch are equal.
	ConflictDuplicate ConflictKind = iota
	// ConflictExisting: a destination already exists on the filesystem and
	// is not being renamed away.
	ConflictExisting
	// ConflictChain: a destination equals another pair's source. Staged
	// renaming is not supported, so chains invalidate the plan.
	ConflictChain
)

func (k ConflictKind) String() string {
	switch k {
	case ConflictDuplicate:
		return "duplicate destination"
	case ConflictExisting:
		return "destination already exists"
	case ConflictChain:
		return "chained rename"
	}
	return "conflict"
}

// Conflict describes one validation failure: the contested destination name
// and every source path implicated in it.
type Conflict struct {
	Kind        ConflictKind
	Destination string
	Sources     []string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: %s (from %s)", c.Kind, c.Destination, strings.Join(c.Sources, ", "))
}

// ConflictError carries every conflict found in a run, so a single failure
// shows everything that needs a template change.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%d name conflict(s): %s", len(e.Conflicts), strings.Join(parts, "; "))
}
