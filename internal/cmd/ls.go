package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	fsutil "github.com/kk-code-lab/fbrowse/internal/fs"
	"github.com/spf13/cobra"
)

// newListCommand creates the ls subcommand.
func newListCommand(opts *globalOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:          "ls [dir]",
		Short:        "List a directory in browser order",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			dir, err := startDir(args)
			if err != nil {
				return err
			}

			showHidden := cfg.Listing.ShowHidden
			if cmd.Flags().Changed("all") {
				showHidden = all
			}
			entries, err := fsutil.List(dir, fsutil.ListOptions{ShowHidden: showHidden})
			if err != nil {
				return err
			}
			writeListing(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include hidden entries")
	return cmd
}

func writeListing(w io.Writer, entries []fsutil.Entry) {
	dirColor := color.New(color.FgBlue, color.Bold).SprintFunc()
	linkColor := color.New(color.FgCyan).SprintFunc()

	for _, e := range entries {
		switch {
		case e.IsDir:
			fmt.Fprintf(w, "%10s  %s\n", "-", dirColor(e.Name+string(os.PathSeparator)))
		case e.IsSymlink:
			fmt.Fprintf(w, "%10s  %s\n", fsutil.HumanSize(e.Size), linkColor(e.Name))
		default:
			fmt.Fprintf(w, "%10s  %s\n", fsutil.HumanSize(e.Size), e.Name)
		}
	}
}

// newRootsCommand creates the roots subcommand.
func newRootsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roots",
		Short: "Print the roots a whole-machine search starts from",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, root := range fsutil.SearchRoots() {
				fmt.Fprintln(cmd.OutOrStdout(), root)
			}
		},
	}
}
