package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/tui"
	"github.com/tartampluch/go-dateentry/internal/ui"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
func main() {
	os.Exit(runMain(os.Args[1:]))
}

// cli holds the parsed flags and the outcome of the selected command.
type cli struct {
	debug      bool
	configPath string
	flags      config.Options

	exitCode  int
	logCloser io.Closer
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain(args []string) int {
	c := &cli{exitCode: config.ExitCodeSuccess}
	defer func() {
		if c.logCloser != nil {
			_ = c.logCloser.Close() // Best effort close
		}
	}()

	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := c.newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}
	return c.exitCode
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          config.CmdRoot,
		Short:        config.CmdDescRoot,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// The terminal prompt owns stdout; its logs only go to the file.
			c.logCloser = setupLogging(c.debug, cmd.Name() != config.CmdTUI)
			logStartupInfo()
		},
		RunE: c.runGUI,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&c.debug, config.FlagDebug, false, config.FlagDescDebug)
	pf.StringVar(&c.configPath, config.FlagConfig, "", config.FlagDescConfig)
	pf.StringVar(&c.flags.DateFormat, config.FlagFormat, config.DefaultDateFormat, config.FlagDescFormat)
	pf.StringVar(&c.flags.Separator, config.FlagSeparator, config.DefaultSeparator, config.FlagDescSeparator)
	pf.StringVar(&c.flags.Locale, config.FlagLocale, config.DefaultLanguage, config.FlagDescLocale)
	pf.StringVar(&c.flags.Value, config.FlagValue, "", config.FlagDescValue)
	pf.StringVar(&c.flags.Min, config.FlagMin, "", config.FlagDescMin)
	pf.StringVar(&c.flags.Max, config.FlagMax, "", config.FlagDescMax)
	pf.BoolVar(&c.flags.ReturnString, config.FlagReturnString, false, config.FlagDescReturnString)
	pf.BoolVar(&c.flags.Required, config.FlagRequired, false, config.FlagDescRequired)

	root.AddCommand(
		&cobra.Command{
			Use:   config.CmdGUI,
			Short: config.CmdDescGUI,
			Args:  cobra.NoArgs,
			RunE:  c.runGUI,
		},
		&cobra.Command{
			Use:   config.CmdTUI,
			Short: config.CmdDescTUI,
			Args:  cobra.NoArgs,
			RunE:  c.runTUI,
		},
		&cobra.Command{
			Use:              config.CmdVersion,
			Short:            config.CmdDescVersion,
			Args:             cobra.NoArgs,
			PersistentPreRun: func(*cobra.Command, []string) {},
			Run: func(cmd *cobra.Command, _ []string) {
				printVersion(cmd.OutOrStdout())
			},
		},
	)
	return root
}

// resolveOptions loads the YAML options file, then applies the flags the
// user actually set on top of it.
func (c *cli) resolveOptions(cmd *cobra.Command) (config.Options, error) {
	opts, err := config.LoadOptions(c.configPath)
	if err != nil {
		return opts, err
	}

	f := cmd.Flags()
	set := func(name string, dst *string, src string) {
		if f.Changed(name) {
			*dst = src
		}
	}
	set(config.FlagFormat, &opts.DateFormat, c.flags.DateFormat)
	set(config.FlagSeparator, &opts.Separator, c.flags.Separator)
	set(config.FlagLocale, &opts.Locale, c.flags.Locale)
	set(config.FlagValue, &opts.Value, c.flags.Value)
	set(config.FlagMin, &opts.Min, c.flags.Min)
	set(config.FlagMax, &opts.Max, c.flags.Max)
	if f.Changed(config.FlagReturnString) {
		opts.ReturnString = c.flags.ReturnString
	}
	if f.Changed(config.FlagRequired) {
		opts.Required = c.flags.Required
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	slog.Debug(config.MsgOptionsLoaded,
		config.LogKeyComponent, config.CompConfig,
		config.LogKeyFormat, opts.DateFormat,
		config.LogKeyLang, opts.Locale,
	)
	return opts, nil
}

// runGUI initializes the Fyne application, wires dependencies, and starts the UI loop.
func (c *cli) runGUI(cmd *cobra.Command, _ []string) error {
	opts, err := c.resolveOptions(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	gui := ui.NewBirthdayApp(a, ctx, opts)

	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Blocks until the main window closes.
	gui.Run()

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}

// runTUI prompts for one date and prints it. Leaving without confirming
// exits with config.ExitCodeCancelled.
func (c *cli) runTUI(cmd *cobra.Command, _ []string) error {
	opts, err := c.resolveOptions(cmd)
	if err != nil {
		return err
	}

	res, err := tui.Run(cmd.Context(), opts)
	if errors.Is(err, tui.ErrCanceled) {
		c.exitCode = config.ExitCodeCancelled
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case !res.Valid:
		fmt.Fprintf(out, config.MsgTUIResult, config.MsgTUINoDate)
	case res.Text != "":
		fmt.Fprintf(out, config.MsgTUIResult, res.Text)
	default:
		fmt.Fprintf(out, config.MsgTUIResult, res.Date.Format(config.DateFormatFullDash))
	}
	return nil
}

// printVersion outputs the build information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode, toStdout bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if toStdout {
		writers = append(writers, os.Stdout)
	}

	// Attempt to set up a file writer in the user's cache directory.
	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
