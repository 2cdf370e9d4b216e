package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/parstore/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly,
// or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("parstore", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Parstore - a validator and query tool for simulation parameter files.

Usage:
  parstore [options] [PARAM_PATH]

Arguments:
  PARAM_PATH
    Path to a single .par file or a directory containing .par files.

Options:
`)
		flagSet.PrintDefaults()
	}

	parFlag := flagSet.String("par", "", "Path to the parameter file or directory.")
	pFlag := flagSet.String("p", "", "Path to the parameter file or directory (shorthand).")
	getFlag := flagSet.String("get", "", "Print the value of the named parameter.")
	dumpFlag := flagSet.String("dump", "", "Write the canonical re-serialization to this path, '-' for stdout.")
	echoFlag := flagSet.Bool("echo", false, "Trace every successful query as 'name = value'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *parFlag != "" {
		path = *parFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Parameter path determined.", "path", path)

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "at most one PARAM_PATH argument is accepted"}
	}

	if path == "" {
		slog.Debug("No parameter path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ParamPath: path,
		GetName:   *getFlag,
		DumpPath:  *dumpFlag,
		Echo:      *echoFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
