package app

import (
	"context"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"swingstats/adapters/excel"
	"swingstats/domain/core"
	"swingstats/domain/report"
	"swingstats/internal/config"
	"swingstats/internal/summary"

	"golang.org/x/sync/errgroup"
)

// Request carries the three logical parameters of a report run.
type Request struct {
	InputPath  string
	OutputPath string
	Excluded   []int
}

// ReportService chains the load -> annotate -> render pipeline for one or
// more inputs. A service instance holds no per-run state, so independent
// Generate calls are safe to run concurrently as long as they target
// different output paths.
type ReportService struct {
	cfg *config.Config
}

// NewReportService creates a report service
func NewReportService(cfg *config.Config) *ReportService {
	return &ReportService{cfg: cfg}
}

// Generate runs the full pipeline for one input file and returns the run
// summary. On any failure no output file is left behind.
func (s *ReportService) Generate(ctx context.Context, req Request) (summary.RunSummary, error) {
	if err := ctx.Err(); err != nil {
		return summary.RunSummary{}, err
	}

	runID := core.NewReportID()
	outputPath := EnsureXlsxExt(req.OutputPath)
	log.Printf("[ReportService] run %s: %s -> %s", runID, req.InputPath, outputPath)

	table, digest, err := excel.NewReader(req.InputPath).Load()
	if err != nil {
		return summary.RunSummary{}, err
	}
	log.Printf("[ReportService] run %s input sha256=%s", runID, digest.Short())

	unknown := table.Annotate(report.NewExclusionSet(req.Excluded))
	if len(unknown) > 0 {
		sort.Ints(unknown)
		if s.cfg.Exclusions.Strict {
			return summary.RunSummary{}, core.NewUnknownExclusionError(unknown[0])
		}
		log.Printf("[ReportService] warning: excluded shot number(s) %v not present in %s", unknown, req.InputPath)
	}

	writerCfg := excel.WriterConfig{
		SheetName:      s.cfg.Output.SheetName,
		MaxColumnWidth: s.cfg.Output.MaxColumnWidth,
	}
	if err := excel.NewWriter(writerCfg).Write(table, outputPath, runID); err != nil {
		return summary.RunSummary{}, err
	}

	return summary.Compute(table, outputPath), nil
}

// GenerateBatch runs Generate for several independent input files
// concurrently, writing each report into outDir under the input's base name
// with an .xlsx extension. The same exclusion set applies to every input.
// The first failure cancels the remaining work.
func (s *ReportService) GenerateBatch(ctx context.Context, inputs []string, outDir string, excluded []int) ([]summary.RunSummary, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Batch.Parallelism)

	summaries := make([]summary.RunSummary, len(inputs))
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			out := filepath.Join(outDir, EnsureXlsxExt(filepath.Base(input)))
			result, err := s.Generate(ctx, Request{
				InputPath:  input,
				OutputPath: out,
				Excluded:   excluded,
			})
			if err != nil {
				return err
			}
			summaries[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// EnsureXlsxExt appends .xlsx when the path carries no (or another)
// spreadsheet-irrelevant extension, replacing a .csv suffix outright so a
// batch input named session.csv becomes session.xlsx.
func EnsureXlsxExt(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return path
	case ".csv":
		return strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
	default:
		return path + ".xlsx"
	}
}
