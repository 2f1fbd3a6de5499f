package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/stm32-platform/ioc-check/internal/checks"
	apperrors "github.com/stm32-platform/ioc-check/internal/errors"
	"github.com/stm32-platform/ioc-check/internal/ioc"
	"github.com/stm32-platform/ioc-check/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute parses the command line and dispatches validation. Any usage
// problem, including an unknown flag, prints the usage and exits 1; exit
// code 2 stays reserved for unexpected errors.
func execute(args []string) int {
	fs := flag.NewFlagSet("ioc-check", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "Enable debug logging and configuration dump")

	// Usage is part of the tool's reporting surface and goes to stdout.
	fs.SetOutput(os.Stdout)
	fs.Usage = func() {
		fmt.Printf("STM32 Platform IOC Configuration Validator\n")
		fmt.Printf("Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Printf("Usage: %s [options] <path-to-config-file>\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		fs.PrintDefaults()
	}

	// Parse already reported the problem and printed the usage.
	if err := fs.Parse(args); err != nil {
		return 1
	}
	log.SetVerbose(*verbose)

	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}

	return run(fs.Arg(0))
}

// run validates one .ioc file and returns the process exit code:
// 0 = pass (warnings allowed), 1 = validation failure or missing file,
// 2 = unexpected error.
func run(path string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			err := apperrors.NewInternalError("unhandled panic during validation", fmt.Errorf("%v", r))
			fmt.Printf("Unexpected error: %v\n", err)
			_, _ = os.Stderr.Write(debug.Stack())
			code = 2
		}
	}()

	cfg, err := ioc.Load(path)
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeNotFound {
			fmt.Printf("Error: %s\n", appErr.Message)
			return 1
		}
		fmt.Printf("Unexpected error: %v\n", err)
		_, _ = os.Stderr.Write(debug.Stack())
		return 2
	}

	if log.IsVerbose() {
		dumpConfig(cfg)
	}

	rep := checks.Run(cfg)
	rep.Print(os.Stdout, filepath.Base(path))

	if rep.Pass() {
		return 0
	}
	return 1
}

// dumpConfig prints the normalized key/value mapping as TOML between
// banners, so a run can be debugged against the raw .ioc content.
func dumpConfig(cfg *ioc.Config) {
	buf, err := cfg.Serialize()
	if err != nil {
		log.Errorf("Failed to serialize config: %v", err)
		return
	}
	log.Infof("---------------- Configuration START -----------------")
	_, _ = os.Stdout.Write(buf.Bytes())
	log.Infof("----------------- Configuration END ------------------")
}
