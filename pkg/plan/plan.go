package plan

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/dfandrich/renuniq/pkg/template"
)

// FileSystem is the filesystem surface the validator needs: a single
// existence probe. The default implementation uses the os package.
type FileSystem interface {
	Exists(path string) bool
}

// OSFileSystem probes the real filesystem.
type OSFileSystem struct{}

// Exists reports whether path refers to an existing entry, without
// following a final symlink.
func (OSFileSystem) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Options configures plan construction.
type Options struct {
	// Template is the parsed naming template, shared read-only across the
	// whole batch.
	Template *template.Template

	// CountStart is the first counter value; Interval is the per-file
	// step. A zero Interval is treated as 1.
	CountStart int
	Interval   int

	// Descriptor is bound to %{DESC}.
	Descriptor string

	// TimeEnabled gates strftime substitution. UseNow selects Now over
	// each file's mtime as the effective timestamp.
	TimeEnabled bool
	UseNow      bool
	Now         time.Time

	// CaseInsensitive folds name comparisons for case-preserving
	// filesystems. The default is case-sensitive; the filesystem existence
	// probe is unaffected either way.
	CaseInsensitive bool

	// FS defaults to OSFileSystem.
	FS FileSystem
}

// Pair is one (source, destination) element of a plan. NoOp marks an
// identity rename, excluded from execution but not an error.
type Pair struct {
	Source      FileEntry
	Destination string
	NoOp        bool
}

// Plan is the validated outcome of expanding the template over the whole
// batch. When Valid, all destinations are pairwise distinct and none
// collides with an unrelated existing file.
type Plan struct {
	Pairs     []Pair
	Conflicts []Conflict
	Valid     bool
}

// Err returns nil for a valid plan and a *ConflictError otherwise.
func (p *Plan) Err() error {
	if p.Valid {
		return nil
	}
	return &ConflictError{Conflicts: p.Conflicts}
}

// Build expands opts.Template once per entry, in input order, and validates
// the resulting destination set. Template resolution failures abort with
// the underlying template error; name conflicts never abort early, so the
// returned plan carries every conflict found.
func Build(ctx context.Context, entries []FileEntry, opts Options) (*Plan, error) {
	logger := zerolog.Ctx(ctx)
	if opts.FS == nil {
		opts.FS = OSFileSystem{}
	}
	if opts.Interval == 0 {
		opts.Interval = 1
	}
	if len(entries) == 0 {
		return &Plan{Valid: true}, nil
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Base
	}
	suffixes := UniqueSuffixes(names)

	countMax := opts.CountStart + opts.Interval*(len(entries)-1)
	numWidth := len(strconv.Itoa(countMax))

	p := &Plan{Pairs: make([]Pair, 0, len(entries))}
	counter := opts.CountStart
	for _, e := range entries {
		ts := e.ModTime
		if opts.UseNow {
			ts = opts.Now
		}
		name, err := opts.Template.Expand(&template.Context{
			Path:         e.Path,
			Dir:          e.Dir,
			Base:         e.Base,
			NoText:       e.NoText,
			Ext:          e.Ext,
			UniqueSuffix: suffixes[e.Base],
			Descriptor:   opts.Descriptor,
			Counter:      counter,
			NumWidth:     numWidth,
			Timestamp:    ts,
			TimeEnabled:  opts.TimeEnabled,
		})
		if err != nil {
			return nil, errors.Errorf("expanding template for %s: %w", e.Path, err)
		}

		// A template expanding to an absolute path is used verbatim;
		// otherwise the destination stays in the source's directory.
		dest := name
		if !filepath.IsAbs(name) {
			dest = e.Dir + name
		}
		p.Pairs = append(p.Pairs, Pair{Source: e, Destination: dest})
		counter += opts.Interval
	}

	validate(p, opts)
	logger.Debug().
		Int("files", len(p.Pairs)).
		Int("conflicts", len(p.Conflicts)).
		Bool("valid", p.Valid).
		Msg("plan built")
	return p, nil
}

// validate fills p.Conflicts and p.Valid. Three checks, all exhaustive:
// duplicate destinations within the batch, destinations equal to another
// pair's source (chains, or collisions with a file that stays put), and
// destinations that already exist outside the rename set.
func validate(p *Plan, opts Options) {
	fold := func(s string) string {
		if opts.CaseInsensitive {
			return strings.ToLower(s)
		}
		return s
	}

	sources := make(map[string]int, len(p.Pairs))
	claims := make(map[string][]int, len(p.Pairs))
	for i := range p.Pairs {
		pair := &p.Pairs[i]
		if pair.Destination == pair.Source.Path {
			pair.NoOp = true
		}
		sources[fold(pair.Source.Path)] = i
		claims[fold(pair.Destination)] = append(claims[fold(pair.Destination)], i)
	}

	// Duplicate destinations, reported once per contested name, in input
	// order. Pairs that are all identity no-ops of the same path are the
	// same file listed twice, not a clash.
	reported := make(map[string]bool)
	for _, pair := range p.Pairs {
		key := fold(pair.Destination)
		idxs := claims[key]
		if len(idxs) < 2 || reported[key] {
			continue
		}
		reported[key] = true
		if allNoOp(p, idxs) {
			continue
		}
		srcs := make([]string, len(idxs))
		for j, i := range idxs {
			srcs[j] = p.Pairs[i].Source.Path
		}
		p.Conflicts = append(p.Conflicts, Conflict{
			Kind:        ConflictDuplicate,
			Destination: pair.Destination,
			Sources:     srcs,
		})
	}

	for i, pair := range p.Pairs {
		if pair.NoOp {
			continue
		}
		key := fold(pair.Destination)
		if reported[key] {
			// Already covered by a duplicate-destination conflict.
			continue
		}
		if j, ok := sources[key]; ok {
			if j == i {
				// Case-variant rename onto the file's own name.
				continue
			}
			// Destination is another pair's current name. If that pair
			// were a no-op the duplicate check above already caught it,
			// so this is a chain.
			p.Conflicts = append(p.Conflicts, Conflict{
				Kind:        ConflictChain,
				Destination: pair.Destination,
				Sources:     []string{pair.Source.Path, p.Pairs[j].Source.Path},
			})
			continue
		}
		if opts.FS.Exists(pair.Destination) {
			p.Conflicts = append(p.Conflicts, Conflict{
				Kind:        ConflictExisting,
				Destination: pair.Destination,
				Sources:     []string{pair.Source.Path},
			})
		}
	}

	p.Valid = len(p.Conflicts) == 0
}

func allNoOp(p *Plan, idxs []int) bool {
	for _, i := range idxs {
		if !p.Pairs[i].NoOp {
			return false
		}
	}
	return true
}
