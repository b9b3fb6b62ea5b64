package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/dfandrich/renuniq/pkg/config"
	"github.com/dfandrich/renuniq/pkg/operation"
	"github.com/dfandrich/renuniq/pkg/plan"
	"github.com/dfandrich/renuniq/pkg/status"
	"github.com/dfandrich/renuniq/pkg/template"
)

// version is overridden at build time via -ldflags.
var version = "2.0.0-dev"

const licenseText = `Copyright 2006-2023 by Daniel Fandrich <dan@coneharvesters.com>
This program is free software; you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation; either version 2 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License along
with this program; if not, write to the Free Software Foundation, Inc.,
51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
`

type rootFlags struct {
	countStart  int
	interval    int
	descriptor  string
	noTime      bool
	dryRun      bool
	templateStr string
	useNow      bool
	showLicense bool
	showVersion bool
	configFile  string
	debug       bool
}

// NewRootCmd builds the renuniq command.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "renuniq [flags] file...",
		Short: "rename groups of files with sequenced, templated names",
		Long: `renuniq renames a batch of files using a naming template. The template
can reference each file's unique suffix, a counter, the file's own name
components and strftime time conversions. The whole batch is validated
before any file is touched.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), flags.debug)
			return run(cmd, args, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.countStart, "count-start", "c", 1, "first value of the rename counter")
	cmd.Flags().IntVarP(&flags.interval, "interval", "i", 1, "step between consecutive counter values")
	cmd.Flags().StringVarP(&flags.descriptor, "descriptor", "d", "", "text substituted for %{DESC}")
	cmd.Flags().BoolVarP(&flags.noTime, "no-time", "m", false, "disable time substitution in the template")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "show the renames without performing them")
	cmd.Flags().StringVarP(&flags.templateStr, "template", "t", "", "naming template (overrides configuration)")
	cmd.Flags().BoolVarP(&flags.useNow, "now", "w", false, "use the current time instead of each file's mtime")
	cmd.Flags().BoolVarP(&flags.showLicense, "license", "L", false, "display the program license")
	cmd.Flags().BoolVarP(&flags.showVersion, "version", "V", false, "display the program version")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "configuration file path")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	return cmd
}

// setupLogging configures zerolog on stderr for this process.
func setupLogging(out io.Writer, debug bool) {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: out}).
		Level(level).
		With().
		Timestamp().
		Logger()
	zerolog.DefaultContextLogger = &log
}

func run(cmd *cobra.Command, args []string, flags *rootFlags) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	if flags.showLicense {
		fmt.Fprint(cmd.OutOrStdout(), licenseText)
		return nil
	}
	if flags.showVersion {
		fmt.Fprintf(cmd.OutOrStdout(), "renuniq ver. %s\n", version)
		return nil
	}

	if len(args) == 0 {
		return errors.New("no files given to rename")
	}

	var cfg *config.Config
	var err error
	if flags.configFile != "" {
		cfg, err = config.Load(ctx, flags.configFile)
	} else {
		cfg, err = config.Resolve(ctx)
	}
	if err != nil {
		return errors.Errorf("loading configuration: %w", err)
	}

	timeEnabled := !flags.noTime
	entries, err := plan.Collect(ctx, args, time.Now(), timeEnabled && !flags.useNow)
	if err != nil {
		return err
	}

	templateStr := flags.templateStr
	if templateStr == "" {
		templateStr = cfg.TemplateFor(len(entries) == 1, flags.descriptor != "")
	}
	logger.Debug().Str("template", templateStr).Int("files", len(entries)).Msg("planning renames")

	tmpl, err := template.Parse(templateStr)
	if err != nil {
		return errors.Errorf("parsing template: %w", err)
	}

	p, err := plan.Build(ctx, entries, plan.Options{
		Template:    tmpl,
		CountStart:  flags.countStart,
		Interval:    flags.interval,
		Descriptor:  flags.descriptor,
		TimeEnabled: timeEnabled,
		UseNow:      flags.useNow,
		Now:         time.Now(),
	})
	if err != nil {
		return err
	}

	renderer := status.NewRenderer(cmd.OutOrStdout())
	if !p.Valid {
		renderer.Conflicts(p.Conflicts)
		return p.Err()
	}
	renderer.RenamePlan(p)

	ex := &operation.Executor{DryRun: flags.dryRun}
	return ex.Apply(ctx, p)
}
