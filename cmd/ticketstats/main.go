// ticketstats prints the dashboard analysis of a ticket export.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/chamados/dashboard/internal/analytics"
	"github.com/chamados/dashboard/internal/ingest"
	"github.com/chamados/dashboard/internal/models"
	"github.com/chamados/dashboard/internal/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var (
		format         string
		maxTechnicians int
		maxCategories  int
		logLevel       string
		sample         bool
	)
	flags := pflag.NewFlagSet("ticketstats", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	flags.IntVar(&maxTechnicians, "max-technicians", analytics.DefaultTechnicianCap, "bars in the technician chart, overflow included")
	flags.IntVar(&maxCategories, "max-categories", analytics.DefaultCategoryCap, "slices in the category chart, overflow included")
	flags.StringVar(&logLevel, "log-level", "warn", "log level")
	flags.BoolVar(&sample, "sample", false, "analyse the bundled sample dataset")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ticketstats [flags] <file.csv|file.json|file.xlsx>\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q", logLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).Level(level).With().Timestamp().Logger()

	if format != "text" && format != "json" && format != "yaml" {
		return fmt.Errorf("invalid --format %q", format)
	}
	if maxTechnicians < 1 || maxCategories < 1 {
		return fmt.Errorf("chart caps must be at least 1")
	}

	var (
		name string
		data []byte
	)
	switch {
	case sample:
		name, data = ingest.SampleName, ingest.SampleCSV()
	case flags.NArg() == 1:
		name = flags.Arg(0)
		data, err = os.ReadFile(name)
		if err != nil {
			return err
		}
	default:
		flags.Usage()
		return fmt.Errorf("expected exactly one input file or --sample")
	}

	rows, err := (&ingest.Decoder{}).Decode(context.Background(), filepath.Base(name), data)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	logger.Debug().Str("file", name).Int("rows", len(rows)).Msg("decoded")

	opts := analytics.DefaultOptions()
	opts.TechnicianCap = maxTechnicians
	opts.CategoryCap = maxCategories
	res := analytics.New(opts).Analyze(rows).Result
	logger.Info().Int("tickets", res.Total).Msg("analysed")

	switch format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(stdout, name, res)
	}
}

func writeText(w io.Writer, name string, res models.AnalysisResult) error {
	p := &printer{w: w}
	p.printf("Arquivo: %s\n\n", name)
	p.printf("Total de chamados:    %d\n", res.Total)
	p.printf("Abertos:              %d\n", res.Open)
	p.printf("Encerrados:           %d (%s)\n", res.Closed, report.FormatPercent(res.Closed, res.Total))
	p.printf("Tempo médio:          %s\n", report.FormatHours(res.AvgResolutionHours))
	if res.AvgSatisfaction != nil {
		p.printf("Satisfação média:     %.1f/5\n", *res.AvgSatisfaction)
	} else {
		p.printf("Satisfação média:     N/A\n")
	}

	p.section("Chamados por técnico", res.TechnicianSeries)
	p.section("Chamados por categoria", res.CategorySeries)

	p.printf("\nStatus\n")
	for _, s := range res.StatusSummary {
		sat := "—"
		if s.AvgSatisfaction != nil {
			sat = fmt.Sprintf("%.1f / 5", *s.AvgSatisfaction)
		}
		p.printf("  %-24s %5d  %s\n", s.Status, s.Count, sat)
	}

	if hl := report.Highlights(res); len(hl) > 0 {
		p.printf("\nDestaques\n")
		for _, h := range hl {
			p.printf("  - %s\n", h)
		}
	}
	return p.err
}

// printer remembers the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) section(title string, series []models.SeriesEntry) {
	p.printf("\n%s\n", title)
	for _, e := range series {
		p.printf("  %-24s %5d\n", e.Name, e.Value)
	}
}
