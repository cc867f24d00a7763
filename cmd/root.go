// Package cmd implements the tdo-config command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nibzard/vcstodo-go/internal/appconfig"
	"github.com/nibzard/vcstodo-go/internal/logging"
	"github.com/nibzard/vcstodo-go/internal/settings"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries what every subcommand needs once settings are loaded.
type app struct {
	out     io.Writer
	errOut  io.Writer
	fs      afero.Fs
	workDir string

	settings *settings.WithSources
	logger   *log.Logger
}

// Run executes the tdo-config CLI.
func Run(ctx context.Context, args []string) error {
	a := &app{out: os.Stdout, errOut: os.Stderr, fs: afero.NewOsFs()}
	root := newRootCommand(a)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tdo-config",
		Short: "Read and edit the tdo configuration file",
		Long: `tdo-config reads and edits the JSON configuration file of the tdo task manager.

The file location comes from --config, TDO_CONFIG, or a search for config.json
in the project .tdo directory and then the user directories.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	settings.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newPathCommand(a),
		newGetCommand(a),
		newSetCommand(a),
		newUnsetCommand(a),
		newShowCommand(a),
		newInitCommand(a),
		newValidateCommand(a),
		newExampleSettingsCommand(a),
	)
	return root
}

// setup loads settings and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	workDir := a.workDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	ws, err := settings.LoadDir(workDir, cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	a.settings = ws
	a.logger = logging.NewFromConfig(a.errOut, ws.Settings.LogLevel, ws.Settings.LogFormat)

	for _, file := range ws.Files {
		a.logger.Debug("read settings file", "path", file)
	}
	for _, key := range ws.Unknown {
		a.logger.Warn("unknown settings key", "key", key)
	}
	return nil
}

// config returns an unloaded config bound to the configured file.
func (a *app) config() *appconfig.Config {
	return appconfig.New(appconfig.Options(a.settings.Settings, a.fs, a.logger)...)
}

// loadConfig returns the config loaded from disk. A missing file yields an
// empty config so defaults can still be read.
func (a *app) loadConfig() (*appconfig.Config, error) {
	c := a.config()
	if err := c.Load(); err != nil {
		if !appconfig.IsNotFound(err) {
			return nil, err
		}
		a.logger.Debug("config file not found, using defaults", "error", err)
	}
	return c, nil
}
