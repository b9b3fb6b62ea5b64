package plan

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Collect expands the positional arguments into FileEntries in argument
// order. Arguments containing glob metacharacters are expanded with
// doublestar ("**" is supported); a pattern matching nothing is an error.
// Every input is probed for existence; when useMtime is set its
// modification time is read, otherwise mtime stays at now. Stat failures
// are gathered across all inputs and reported together, so one run shows
// every unreadable file.
func Collect(ctx context.Context, args []string, now time.Time, useMtime bool) ([]FileEntry, error) {
	logger := zerolog.Ctx(ctx)

	var paths []string
	for _, arg := range args {
		if !hasGlobMeta(arg) {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, errors.Errorf("expanding pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("pattern %q matches no files", arg)
		}
		logger.Debug().Str("pattern", arg).Int("matches", len(matches)).Msg("expanded glob")
		paths = append(paths, matches...)
	}

	entries := make([]FileEntry, 0, len(paths))
	var unreadable []string
	for _, p := range paths {
		mtime := now
		if useMtime {
			fi, err := os.Stat(p)
			if err != nil {
				unreadable = append(unreadable, p)
				continue
			}
			mtime = fi.ModTime()
		} else if _, err := os.Lstat(p); err != nil {
			unreadable = append(unreadable, p)
			continue
		}
		entries = append(entries, NewFileEntry(p, mtime))
	}
	if len(unreadable) > 0 {
		return nil, errors.Errorf("cannot read: %s", strings.Join(unreadable, ", "))
	}
	return entries, nil
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
