package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BatchResult aggregates the outcomes of one batch run.
type BatchResult struct {
	RunID   string
	Reports []*Report // successful documents, in input order
	Failed  []DocError
}

// DocError pairs a failed document with its error.
type DocError struct {
	Path string
	Err  error
}

// Succeeded reports whether at least one document extracted.
func (b *BatchResult) Succeeded() bool {
	return len(b.Reports) > 0
}

// StatusFunc reports one document's outcome as it completes. Exactly
// one of report and err is set.
type StatusFunc func(path string, report *Report, err error)

// RunBatch extracts every *.pdf in dir on a bounded worker pool.
// Documents are fully independent, so per-document failures are
// collected and never abort siblings; the only error returned is an
// empty directory. Results come back in sorted input order regardless
// of completion order. status, if non-nil, is called once per document
// in completion order.
func (p *Processor) RunBatch(dir string, status StatusFunc) (*BatchResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", dir)
	}

	runID := uuid.New().String()
	log := p.log.With("run_id", runID)
	log.Info("starting batch", "documents", len(paths), "workers", p.opts.Workers)

	type outcome struct {
		report *Report
		err    error
	}
	outcomes := make([]outcome, len(paths))

	var g errgroup.Group
	g.SetLimit(p.opts.Workers)
	var statusMu sync.Mutex
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			report, err := p.Process(path)
			outcomes[i] = outcome{report: report, err: err}
			if status != nil {
				statusMu.Lock()
				status(path, report, err)
				statusMu.Unlock()
			}
			return nil
		})
	}
	g.Wait()

	result := &BatchResult{RunID: runID}
	for i, oc := range outcomes {
		if oc.err != nil {
			log.Error("document failed", "doc", paths[i], "error", oc.err)
			result.Failed = append(result.Failed, DocError{Path: paths[i], Err: oc.err})
			continue
		}
		result.Reports = append(result.Reports, oc.report)
	}
	log.Info("batch complete", "succeeded", len(result.Reports), "failed", len(result.Failed))
	return result, nil
}
