package main

import (
	"fmt"
	"path"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brettbedarf/pathfs"
)

func newLsCmd(a *app) *cobra.Command {
	var (
		namesOnly bool
		match     string
		noColor   bool
	)
	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "List directory entries in OS order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := "."
			if len(args) == 1 {
				arg = args[0]
			}
			p, err := a.resolve(arg)
			if err != nil {
				return a.fail(cmd, err)
			}
			dir := a.fsys.Directory(p)

			if namesOnly {
				names, err := dir.ReadNames()
				if err != nil {
					return a.fail(cmd, err)
				}
				for _, name := range names {
					fmt.Fprintln(a.stdout, name) //nolint:errcheck // best-effort stdout
				}
				return nil
			}

			nodes, err := dir.ReadMatching(match)
			if err != nil {
				return a.fail(cmd, err)
			}
			dirColor := color.New(color.FgBlue, color.Bold)
			if noColor {
				dirColor.DisableColor()
			}
			for _, n := range nodes {
				name := path.Base(n.Path().String())
				if n.Kind() == pathfs.KindDirectory {
					dirColor.Fprint(a.stdout, name+"/") //nolint:errcheck // best-effort stdout
					fmt.Fprintln(a.stdout)              //nolint:errcheck // best-effort stdout
					continue
				}
				fmt.Fprintln(a.stdout, name) //nolint:errcheck // best-effort stdout
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&namesOnly, "names", false, "print raw entry names without classifying them")
	cmd.Flags().StringVar(&match, "match", "", "comma-separated glob filter on entry names; prefix with ! to exclude")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.MarkFlagsMutuallyExclusive("names", "match")
	return cmd
}

func newMkdirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <dir>...",
		Short: "Create directories and any missing parents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				p, err := a.resolve(arg)
				if err != nil {
					return a.fail(cmd, err)
				}
				if err := a.fsys.Directory(p).Write(); err != nil {
					return a.fail(cmd, err)
				}
			}
			return nil
		},
	}
}

func newMvCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <src> <dst>",
		Short: "Move a file or directory; the destination must not exist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.resolve(args[0])
			if err != nil {
				return a.fail(cmd, err)
			}
			dst, err := a.resolve(args[1])
			if err != nil {
				return a.fail(cmd, err)
			}
			if err := a.fsys.Node(src).Move(dst); err != nil {
				return a.fail(cmd, err)
			}
			return nil
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>...",
		Short: "Delete files and whole directory trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				p, err := a.resolve(arg)
				if err != nil {
					return a.fail(cmd, err)
				}
				if err := a.fsys.Node(p).Delete(); err != nil {
					return a.fail(cmd, err)
				}
			}
			return nil
		},
	}
}

func newMtimeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mtime <path>",
		Short: "Print the last-modified time in Unix seconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.resolve(args[0])
			if err != nil {
				return a.fail(cmd, err)
			}
			mtime, err := a.fsys.Node(p).ModifiedTime()
			if err != nil {
				return a.fail(cmd, err)
			}
			fmt.Fprintln(a.stdout, strconv.FormatInt(mtime, 10)) //nolint:errcheck // best-effort stdout
			return nil
		},
	}
}

func newPwdCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pwd",
		Short: "Print the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := a.fsys.CurrentDirectoryPath()
			if err != nil {
				return a.fail(cmd, err)
			}
			fmt.Fprintln(a.stdout, cwd) //nolint:errcheck // best-effort stdout
			return nil
		},
	}
}
