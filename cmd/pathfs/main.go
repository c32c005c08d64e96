// pathfs is a small command line front end for the pathfs node layer.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/brettbedarf/pathfs"
	"github.com/brettbedarf/pathfs/config"
	"github.com/brettbedarf/pathfs/filesystem"
	"github.com/brettbedarf/pathfs/internal/util"
	"github.com/brettbedarf/pathfs/osfs"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// errExit is returned by RunE functions to signal a non-zero exit. The
// command has already written its own error to stderr.
var errExit = errors.New("exit")

// app carries the state shared by all subcommands once the root command has
// loaded the configuration.
type app struct {
	stdout, stderr io.Writer
	configPath     string
	verbose        int
	fsys           *filesystem.Filesystem
}

// run executes the pathfs CLI with the given args, writing output to stdout
// and errors to stderr. Returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintf(stderr, "pathfs: %v\n", err) //nolint:errcheck // best-effort stderr
		}
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "pathfs",
		Short:         "Inspect and change directory trees through pathfs nodes",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"path to a .yaml, .json or .toml config override file")
	root.PersistentFlags().IntVarP(&a.verbose, "verbose", "v", config.InfoVerbose,
		"log verbosity between 1 (error) and 5 (trace)")
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(
		newLsCmd(a),
		newMkdirCmd(a),
		newMvCmd(a),
		newRmCmd(a),
		newMtimeCmd(a),
		newPwdCmd(a),
		newVersionCmd(a.stdout),
	)
	return root
}

// setup loads the configuration, initializes logging and binds the
// filesystem used by every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	override := &config.ConfigOverride{}
	if a.configPath != "" {
		loaded, err := config.LoadConfigOverrideFile(a.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		override = loaded
	}
	// an explicit flag beats the file
	if cmd.Flags().Changed("verbose") || override.Verbose == nil {
		override.Verbose = util.Pointer(a.verbose)
	}

	cfg := config.NewConfig(override)
	util.InitializeLogger(cfg.LogLvl, a.stderr)
	a.fsys = filesystem.New(cfg, osfs.Local{})

	logger := util.GetLogger("main")
	logger.Debug().Str("command", cmd.Name()).Str("config", a.configPath).Msg("pathfs initialized")
	return nil
}

// resolve turns a command line argument into an absolute path. Relative
// arguments are joined onto the working directory.
func (a *app) resolve(arg string) (pathfs.Path, error) {
	p := a.fsys.Path(arg)
	if len(arg) > 0 && arg[0] == '/' {
		return p, nil
	}
	cwd, err := a.fsys.CurrentDirectoryPath()
	if err != nil {
		return nil, err
	}
	return cwd.Add(arg), nil
}

// fail reports err for cmd on stderr and returns errExit
func (a *app) fail(cmd *cobra.Command, err error) error {
	fmt.Fprintf(a.stderr, "pathfs %s: %v\n", cmd.Name(), err) //nolint:errcheck // best-effort stderr
	return errExit
}
