package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/navgest/internal/infer"
	"github.com/dgallion1/navgest/internal/navtree"
	"github.com/dgallion1/navgest/internal/parser"
)

// Worker processes a single document job.
type Worker struct {
	log         *slog.Logger
	stats       *ImportStats
	opts        infer.Options
	pdfFallback bool
}

func NewWorker(log *slog.Logger, stats *ImportStats, opts infer.Options, pdfFallback bool) *Worker {
	return &Worker{
		log:         log,
		stats:       stats,
		opts:        opts,
		pdfFallback: pdfFallback,
	}
}

// Process runs parse and inference for a queued job. Stats are recorded
// before the job reaches a terminal status.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	fail := func(phase, msg string) {
		job.AddError(msg)
		w.record(start, OutcomeFailed)
		job.SetStatus(StatusFailed, phase)
	}

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	src, err := w.parse(job.Filename, job.FileData())
	job.releaseData()
	if err != nil {
		log.Error("parse failed", "error", err)
		fail("parsing", err.Error())
		return
	}
	job.setTitle(src.Title)

	if err := ctx.Err(); err != nil {
		log.Warn("job cancelled before inference", "error", err)
		fail("parsing", fmt.Sprintf("cancelled: %s", err))
		return
	}

	// Phase 2: Infer
	job.SetStatus(StatusInferring, "inferring")
	res := src.Infer(w.opts)

	if res.Degraded() {
		log.Info("import degraded", "diagnostic", res.Diagnostic)
		w.record(start, OutcomeDegraded)
	} else {
		log.Info("import complete",
			"strategy", res.Strategy,
			"items", navtree.Count(res.Config.PrimaryItems),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		w.record(start, OutcomeCompleted)
	}
	job.Finish(res)
}

// Import parses and infers one document synchronously.
func (w *Worker) Import(filename string, data []byte) (*parser.Source, infer.Result, error) {
	start := time.Now()
	src, err := w.parse(filename, data)
	if err != nil {
		w.record(start, OutcomeFailed)
		return nil, infer.Result{}, err
	}
	res := src.Infer(w.opts)
	if res.Degraded() {
		w.record(start, OutcomeDegraded)
	} else {
		w.record(start, OutcomeCompleted)
	}
	return src, res, nil
}

func (w *Worker) parse(filename string, data []byte) (*parser.Source, error) {
	p, err := parser.ForFile(filename)
	if err != nil {
		return nil, err
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = w.pdfFallback
	}
	src, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return src, nil
}

func (w *Worker) record(start time.Time, outcome Outcome) {
	if w.stats != nil {
		w.stats.Record(time.Since(start).Milliseconds(), outcome)
	}
}
