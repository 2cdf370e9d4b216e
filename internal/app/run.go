package app

import (
	"context"
	"fmt"

	"github.com/vk/parstore/internal/ctxlog"
	"github.com/vk/parstore/internal/fsutil"
	"github.com/vk/parstore/internal/param"
)

// Run executes the main application logic: locate the parameter files,
// parse each one, and apply the requested query and dump actions. The
// first malformed file or failed query aborts the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	files, err := fsutil.FindParamFiles(a.config.ParamPath)
	if err != nil {
		return fmt.Errorf("failed to locate parameter files: %w", err)
	}
	if len(files) == 0 {
		a.logger.Warn("No parameter files found.", "path", a.config.ParamPath)
		return nil
	}
	a.logger.Debug("Parameter files located.", "count", len(files))

	for _, path := range files {
		if err := a.processFile(ctx, path); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// processFile parses one parameter file and applies the configured
// actions to the resulting store.
func (a *App) processFile(ctx context.Context, path string) error {
	store, err := param.NewFromFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if a.config.Echo {
		store.SetEcho(true)
		store.SetEchoWriter(a.outW)
	}

	fields := store.Fields()
	a.logger.Info("Parameter file loaded.", "file", path, "fields", len(fields))
	for i := range fields {
		f := &fields[i]
		a.logger.Debug("Field.",
			"name", f.Name(),
			"dims", f.NumDim(),
			"type", f.CtyValue().Type().FriendlyName())
	}

	if a.config.GetName != "" {
		if err := a.printParam(store, a.config.GetName); err != nil {
			return err
		}
	}

	if a.config.DumpPath != "" {
		if a.config.DumpPath == "-" {
			if err := store.Dump(a.outW); err != nil {
				return err
			}
		} else if err := store.DumpToFile(a.config.DumpPath); err != nil {
			return err
		}
		a.logger.Debug("Store dumped.", "target", a.config.DumpPath)
	}

	return nil
}

// printParam writes the value of one parameter: single fields print
// their scalar, arrays re-emit their full entry line.
func (a *App) printParam(store *param.Store, name string) error {
	n, err := store.NumDim(name)
	if err != nil {
		return err
	}
	if n == 0 {
		v, err := store.GetString(name)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.outW, v)
		return err
	}
	fields := store.Fields()
	for i := range fields {
		if fields[i].Name() == name {
			return fields[i].Write(a.outW)
		}
	}
	return nil
}
