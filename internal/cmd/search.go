package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	fsutil "github.com/kk-code-lab/fbrowse/internal/fs"
	"github.com/kk-code-lab/fbrowse/internal/search"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
)

const drainInterval = 20 * time.Millisecond

// newSearchCommand creates the search subcommand.
func newSearchCommand(opts *globalOptions) *cobra.Command {
	var limit int
	var everywhere bool

	cmd := &cobra.Command{
		Use:   "search <query> [root...]",
		Short: "Print entries whose names contain query",
		Long: `Search walks each root (the current directory by default, every volume
with --everywhere) and prints the path of every file or directory whose name
contains query, ignoring case. Unreadable directories are skipped. Ctrl-C
stops the search and keeps what was found.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			roots := args[1:]
			switch {
			case everywhere:
				roots = fsutil.SearchRoots()
			case len(roots) == 0:
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				roots = []string{cwd}
			}

			pipeline, err := search.New(cfg.SearchOptions(cliLogger(cfg, cmd.ErrOrStderr())))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			req := search.NewRequest(args[0], roots...)
			printer := newMatchPrinter(cmd.OutOrStdout(), args[0])
			count, stats := runSearch(ctx, pipeline, req, limit, printer.print)

			fmt.Fprintf(cmd.ErrOrStderr(), "%d matches, %d directories listed, %d skipped (%s)\n",
				count, stats.DirsListed, stats.DirsSkipped, stats.State)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many matches (0 = no limit)")
	cmd.Flags().BoolVar(&everywhere, "everywhere", false, "search every volume instead of the given roots")
	return cmd
}

// runSearch starts req and hands matches to emit until the run ends, limit
// is reached or ctx is cancelled.
func runSearch(ctx context.Context, p *search.Pipeline, req search.Request, limit int, emit func(search.Match)) (int, search.Stats) {
	p.Start(req)
	defer p.Reset()

	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	count := 0
	done := ctx.Done()
	for {
		for _, m := range p.Drain() {
			if limit > 0 && count >= limit {
				break
			}
			emit(m)
			count++
		}
		if limit > 0 && count >= limit {
			p.Cancel()
		}

		if p.State() != search.Running {
			waitCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			_ = p.Wait(waitCtx)
			cancel()
			stats := p.Stats()
			for _, m := range p.Drain() {
				if limit > 0 && count >= limit {
					break
				}
				emit(m)
				count++
			}
			return count, stats
		}

		select {
		case <-done:
			p.Cancel()
			done = nil
		case <-ticker.C:
		}
	}
}

// matchPrinter writes one path per line, highlighting the matched part of
// the name when color is enabled.
type matchPrinter struct {
	w         io.Writer
	query     string
	highlight func(a ...interface{}) string
	dir       func(a ...interface{}) string
}

func newMatchPrinter(w io.Writer, query string) *matchPrinter {
	return &matchPrinter{
		w:         w,
		query:     cases.Fold().String(query),
		highlight: color.New(color.FgYellow, color.Bold).SprintFunc(),
		dir:       color.New(color.FgBlue).SprintFunc(),
	}
}

func (mp *matchPrinter) print(m search.Match) {
	prefix := strings.TrimSuffix(m.Path, m.Name)
	fmt.Fprintf(mp.w, "%s%s\n", prefix, mp.formatName(m))
}

func (mp *matchPrinter) formatName(m search.Match) string {
	name := m.Name
	folded := cases.Fold().String(name)
	idx := strings.Index(folded, mp.query)
	if mp.query == "" || idx < 0 || len(folded) != len(name) {
		if m.IsDir {
			return mp.dir(name)
		}
		return name
	}
	end := idx + len(mp.query)
	return name[:idx] + mp.highlight(name[idx:end]) + name[end:]
}
