package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/boga881/drupalextension/src/assembly"
	"github.com/boga881/drupalextension/src/config"
	"github.com/boga881/drupalextension/src/output"
)

var (
	validateWatch bool
	validateJUnit string
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate configuration files",
	Long: `Assemble each configuration file and report whether it is valid.

Files are checked concurrently, each with its own registry. Without
arguments the discovered configuration file is checked. With --watch the
files are re-validated whenever they change.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateWatch, "watch", false, "re-validate when a file changes")
	validateCmd.Flags().StringVar(&validateJUnit, "junit", "", "write a JUnit XML report to this path")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 {
		path, err := configPath()
		if err != nil {
			return err
		}
		files = []string{path}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	err := validateOnce(ctx, cmd.OutOrStdout(), files)
	if !validateWatch {
		return err
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
	return watchFiles(ctx, files, func() {
		if err := validateOnce(ctx, cmd.OutOrStdout(), files); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	})
}

// validateOnce checks every file and renders the results. The returned
// error aggregates every failure.
func validateOnce(ctx context.Context, w io.Writer, files []string) error {
	start := time.Now()
	results, err := checkFiles(ctx, files)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	color := output.UseColor()
	output.SectionStart(w, "drupalext_validate", "Validate")
	defer output.SectionEnd(w, "drupalext_validate")

	sec := output.NewSection(w, "Validate", elapsed, color)
	var errs *multierror.Error
	passed := 0
	for _, r := range results {
		if r.Err != nil {
			output.SummaryRow(w, r.File, "failed", r.Err.Error(), color)
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", r.File, r.Err))
			continue
		}
		passed++
		output.SummaryRow(w, r.File, "success", fmt.Sprintf("drivers: %v", r.Drivers), color)
		for _, warn := range r.Warnings {
			output.RowStatus(sec, "     warning", output.Dimmed(warn, color), "warning", color)
		}
	}
	sec.Separator()
	output.SummaryTotal(w, passed, len(results)-passed, elapsed, color)
	sec.Close()

	if validateJUnit != "" {
		if err := output.WriteValidateJUnit(validateJUnit, results, elapsed); err != nil {
			return err
		}
	}
	return errs.ErrorOrNil()
}

// checkFiles assembles each file on its own. Results keep the order of files.
func checkFiles(ctx context.Context, files []string) ([]output.CheckResult, error) {
	results := make([]output.CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkFile(path string) output.CheckResult {
	start := time.Now()
	r := output.CheckResult{File: path}
	doc, err := config.Load(path, profile)
	if err != nil {
		r.Err = err
		r.Elapsed = time.Since(start)
		return r
	}
	res, err := assembly.Assemble(doc, assembly.WithLogger(logger))
	r.Elapsed = time.Since(start)
	if err != nil {
		r.Err = err
		return r
	}
	r.Drivers = res.Drivers
	r.Warnings = res.Warnings
	return r
}

// watchFiles calls fn whenever one of files is written or replaced, until
// ctx is done. Parent directories are watched so editors that replace files
// on save are seen too.
func watchFiles(ctx context.Context, files []string, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	logger.Debug().Int("files", len(watched)).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(ev.Name)] || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
			fn()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching: %w", err)
		}
	}
}
