package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-dss/internal/dto"
	"github.com/noah-isme/sma-timetable-dss/internal/planner"
	"github.com/noah-isme/sma-timetable-dss/internal/service"
	"github.com/noah-isme/sma-timetable-dss/pkg/export"
)

type generateFlags struct {
	file   string
	output string
	export string
	option string
	out    string
	verify bool
}

func generateCmd(app *cliApp) *cobra.Command {
	flags := generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the three ranked options for a constraints file",
		Example: `  planner-cli defaults > week.yaml
  planner-cli generate --file week.yaml
  planner-cli generate --file week.yaml --export pdf --option A --out ./exports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), app.logger, flags, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Constraints file (YAML or JSON, - for stdin)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "table", "Output format: table or json")
	cmd.Flags().StringVar(&flags.export, "export", "", "Also write the chosen option as csv or pdf")
	cmd.Flags().StringVar(&flags.option, "option", "", "Option to export (defaults to the best ranked)")
	cmd.Flags().StringVar(&flags.out, "out", ".", "Directory for exported files")
	cmd.Flags().BoolVar(&flags.verify, "verify", false, "Audit every option and fail on hard-rule violations")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runGenerate(ctx context.Context, logger *zap.Logger, flags generateFlags, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := readRequest(flags.file, stdin)
	if err != nil {
		return err
	}

	engine := planner.NewEngine(planner.WithLogger(logger))
	svc := service.NewPlannerService(engine, nil, nil, nil, logger, service.PlannerConfig{})
	result, err := svc.Generate(ctx, req)
	if err != nil {
		return err
	}

	switch flags.output {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	case "table", "":
		if err := writeTable(stdout, result.Options); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q", flags.output)
	}

	if flags.verify {
		constraints := req.ToConstraints()
		for _, opt := range result.Options {
			if findings := planner.Audit(opt.Schedule, constraints); len(findings) > 0 {
				return fmt.Errorf("option %s violates %d rule(s), first: %s", opt.ID, len(findings), findings[0].Error())
			}
		}
	}

	if flags.export == "" {
		return nil
	}
	optionID := flags.option
	if optionID == "" {
		optionID = result.Options[0].ID
	}
	detail, err := svc.GetOption(ctx, result.ProposalID, optionID)
	if err != nil {
		return err
	}
	path, err := writeExport(detail, flags.export, flags.out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "\nwrote %s\n", path)
	return err
}

func writeTable(w io.Writer, options []planner.Option) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tOPTION\tSCORE\tLEVEL\tFILLED\tUNPLACED\tCONFLICTS\tTEACHER\tSTUDENT\tROOMS\tRULES")
	for i, opt := range options {
		b := opt.Breakdown
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			i+1, opt.Name, opt.Score, opt.Level,
			opt.Schedule.Filled(), len(opt.Unplaced),
			b.NoConflicts, b.TeacherWorkload, b.StudentWorkload, b.RoomEfficiency, b.ConstraintRespect,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(options) > 0 {
		best := options[0]
		fmt.Fprintf(w, "\nRecommended: option %s (%s)\n", best.ID, strings.Join(best.Pros, "; "))
	}
	return nil
}

func writeExport(detail *dto.OptionDetailResponse, format, dir string) (string, error) {
	var renderer interface {
		Render(export.Grid) ([]byte, error)
	}
	switch strings.ToLower(format) {
	case "csv":
		renderer = export.NewCSVExporter()
	case "pdf":
		renderer = export.NewPDFExporter()
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
	payload, err := renderer.Render(service.OptionGrid(detail.Option, detail.Days, detail.PeriodLabels))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("option-%s.%s", strings.ToLower(detail.Option.ID), strings.ToLower(format)))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
