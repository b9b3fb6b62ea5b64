package operation

import (
	"context"
	"io"
	"os"
	"syscall"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/dfandrich/renuniq/pkg/plan"
)

// Executor applies a validated rename plan to the filesystem.
type Executor struct {
	// DryRun prints nothing and changes nothing; callers render the plan
	// themselves before applying.
	DryRun bool
}

// Apply performs every rename in the plan. An invalid plan is refused
// outright so a partial batch can never reach the disk.
func (e *Executor) Apply(ctx context.Context, p *plan.Plan) error {
	logger := zerolog.Ctx(ctx)

	if !p.Valid {
		return errors.Errorf("refusing to apply invalid plan: %w", p.Err())
	}

	for _, pair := range p.Pairs {
		if pair.NoOp {
			logger.Debug().Str("path", pair.Source.Path).Msg("skipping identity rename")
			continue
		}
		if e.DryRun {
			continue
		}
		if err := move(pair.Source.Path, pair.Destination); err != nil {
			return errors.Errorf("renaming %s to %s: %w", pair.Source.Path, pair.Destination, err)
		}
		logger.Debug().
			Str("from", pair.Source.Path).
			Str("to", pair.Destination).
			Msg("renamed")
	}

	return nil
}

// move renames src to dst, falling back to copy-and-remove when the two
// paths live on different filesystems.
func move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && linkErr.Err == syscall.EXDEV {
		return copyAndRemove(src, dst)
	}
	return err
}

func copyAndRemove(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	// O_EXCL: the plan already verified dst does not exist, so a file
	// appearing here means the directory changed under us.
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return errors.Errorf("copying contents: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return errors.Errorf("closing destination: %w", err)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Errorf("preserving timestamps: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return errors.Errorf("removing source: %w", err)
	}
	return nil
}
