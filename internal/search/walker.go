package search

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	fsutil "github.com/kk-code-lab/fbrowse/internal/fs"
	"golang.org/x/sync/errgroup"
)

// execute walks r's roots with the pipeline's worker pool. Each worker pulls
// a directory, emits that directory's matches in listing order and only then
// schedules its subdirectories. Completion is detected when the count of
// scheduled-but-unfinished directories drops to zero.
func (p *Pipeline) execute(r *run) {
	defer func() {
		close(r.matches)
		r.finish()
		s := r.snapshot()
		p.log.Infof("search %s %s: listed=%d skipped=%d matches=%d in %s",
			r.id, s.State, s.DirsListed, s.DirsSkipped, s.Matches, s.FinishedAt.Sub(s.StartedAt))
	}()

	ctx := r.ctx
	dirJobs := make(chan string, clampInt(p.workers*8, 32, 1024))

	var pendingDirs atomic.Int64
	var closeOnce sync.Once
	closeDirJobs := func() {
		closeOnce.Do(func() {
			close(dirJobs)
		})
	}

	roots := make([]string, 0, len(r.req.Roots))
	for _, root := range r.req.Roots {
		if r.trySchedule() {
			roots = append(roots, root)
		}
	}
	if len(roots) == 0 {
		return
	}
	pendingDirs.Store(int64(len(roots)))

	// done marks one directory finished. dirJobs is closed only when nothing
	// is pending, so no worker can still be sending to it.
	done := func() {
		if pendingDirs.Add(-1) == 0 {
			closeDirJobs()
		}
	}

	var g errgroup.Group
	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			matcher := newNameMatcher(r.req.Query)
			stack := make([]string, 0, 8)
			for {
				var dir string
				if n := len(stack); n > 0 {
					dir = stack[n-1]
					stack = stack[:n-1]
				} else {
					var ok bool
					select {
					case <-ctx.Done():
						return nil
					case dir, ok = <-dirJobs:
						if !ok {
							return nil
						}
					}
				}

				children := p.processDir(r, matcher, dir)
				for _, child := range children {
					if !r.trySchedule() {
						break
					}
					pendingDirs.Add(1)
					select {
					case dirJobs <- child:
					case <-ctx.Done():
						done()
					default:
						stack = append(stack, child)
					}
				}
				done()
			}
		})
	}

	go func() {
		for _, root := range roots {
			select {
			case dirJobs <- root:
			case <-ctx.Done():
				done()
			}
		}
	}()

	_ = g.Wait()
}

// processDir lists dir, emits its matches and returns the subdirectories to
// scan next. An unreadable directory is logged and skipped.
func (p *Pipeline) processDir(r *run, matcher *nameMatcher, dir string) []string {
	if r.ctx.Err() != nil {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		skipErr := &DirectoryUnreadableError{Path: dir, Err: err}
		if len(entries) == 0 {
			r.dirsSkipped.Add(1)
			p.log.Warnf("search %s: skipping subtree: %v", r.id, skipErr)
			return nil
		}
		p.log.Warnf("search %s: partial listing: %v", r.id, skipErr)
	}
	r.dirsListed.Add(1)

	var children []string
	for _, entry := range entries {
		name := entry.Name()
		fullPath := filepath.Join(dir, name)

		if fsutil.ShouldHideFromListing(fullPath, name) {
			continue
		}
		if p.skipHidden && fsutil.IsHidden(fullPath, name) {
			continue
		}

		// DirEntry.IsDir is false for symlinks, so linked directories are
		// reported but never descended into.
		isDir := entry.IsDir()
		if isDir && p.exclude.matches(name) {
			continue
		}

		if matcher.matches(name) {
			if r.ctx.Err() != nil {
				return nil
			}
			m := Match{
				RunID: r.id,
				Path:  fsutil.NormalizePath(fullPath),
				Name:  fsutil.BaseName(fullPath),
				IsDir: isDir,
			}
			select {
			case r.matches <- m:
				r.matched.Add(1)
			case <-r.ctx.Done():
				return nil
			}
		}

		if isDir {
			children = append(children, fullPath)
		}
	}
	return children
}
