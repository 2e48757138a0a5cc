package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/config"
	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/repository"
	"github.com/mamadbah2/cropbudget/internal/repository/store"
	"github.com/mamadbah2/cropbudget/internal/scheduler"
	"github.com/mamadbah2/cropbudget/internal/service/export"
	"github.com/mamadbah2/cropbudget/internal/service/ingest"
	"github.com/mamadbah2/cropbudget/internal/service/reporting"
	"github.com/mamadbah2/cropbudget/internal/service/season"
	"github.com/mamadbah2/cropbudget/internal/service/tickets"
	whatsappclient "github.com/mamadbah2/cropbudget/pkg/clients/whatsapp"
	"github.com/mamadbah2/cropbudget/pkg/logger"
)

type app struct {
	envFile string
	owner   string
	year    int

	cfg     *config.Config
	logger  *zap.Logger
	repo    repository.SeasonRepository
	seasons *season.Manager
	out     io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "farmctl",
		Short:         "Crop budget operator tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env", "", "env file to load")
	root.PersistentFlags().StringVar(&a.owner, "owner", "", "owner id (defaults to REPORT_OWNER_ID)")
	root.PersistentFlags().IntVar(&a.year, "year", 0, "season year (defaults to the latest)")

	root.AddCommand(
		yearsCmd(a),
		budgetCmd(a),
		importCmd(a),
		exportCmd(a),
		copyCmd(a),
		reportCmd(a),
	)
	return root
}

func (a *app) setup(ctx context.Context) error {
	if a.cfg == nil {
		cfg, err := config.Load(a.envFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.logger == nil {
		log, err := logger.New("warn")
		if err != nil {
			return err
		}
		a.logger = log
	}
	if a.repo == nil {
		repo, err := store.Open(ctx, a.cfg, a.logger.Named("repo"))
		if err != nil {
			return err
		}
		a.repo = repo
	}
	if a.owner == "" {
		a.owner = a.cfg.Reporting.OwnerID
	}
	if a.owner == "" {
		return errors.New("--owner or REPORT_OWNER_ID is required")
	}
	a.seasons = season.NewManager(a.repo, a.cfg.Season.SaveDebounce, a.logger.Named("svc.season"))
	return nil
}

func (a *app) teardown(ctx context.Context) error {
	if a.seasons == nil {
		return nil
	}
	if err := a.seasons.Close(ctx); err != nil {
		return err
	}
	return a.repo.Close(ctx)
}

func (a *app) reports() *reporting.Service {
	return reporting.NewService(a.seasons, a.logger.Named("svc.reporting"))
}

func (a *app) resolveYear(ctx context.Context) (int, error) {
	return a.reports().LatestYear(ctx, a.owner, a.year)
}

func yearsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List stored seasons, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			years, err := a.seasons.Years(cmd.Context(), a.owner)
			if err != nil {
				return err
			}
			if len(years) == 0 {
				fmt.Fprintln(a.out, "no seasons stored")
				return nil
			}
			for _, y := range years {
				fmt.Fprintln(a.out, y)
			}
			return nil
		},
	}
}

func budgetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "budget",
		Short: "Print the per-crop return and whole-farm totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			year, err := a.resolveYear(cmd.Context())
			if err != nil {
				return err
			}
			sum, err := a.reports().Summarize(cmd.Context(), a.owner, year)
			if err != nil {
				return err
			}

			dash := sum.Dashboard
			fmt.Fprintf(a.out, "Season %d: %.1f acres\n", dash.Year, dash.TotalAcres)
			for _, c := range dash.Crops {
				fmt.Fprintf(a.out, "  %-20s %8.1f ac  income %12s/ac  cost %12s/ac  return %12s/ac\n",
					c.Name, c.Acres,
					reporting.FormatUSD(c.IncomePerAcre),
					reporting.FormatUSD(c.CostPerAcre),
					reporting.FormatUSD(c.ReturnPerAcre),
				)
			}
			fmt.Fprintf(a.out, "Gross %s  Costs %s  Net %s\n",
				reporting.FormatUSD(dash.GrossIncome),
				reporting.FormatUSD(dash.TotalCost),
				reporting.FormatUSD(dash.NetReturn),
			)
			for _, g := range sum.Marketing {
				fmt.Fprintf(a.out, "Marketing %-12s %6.1f%% sold, avg cash %s\n", g.Name, g.PercentSold, reporting.FormatUSD(g.AvgCash))
			}
			return nil
		},
	}
}

func importCmd(a *app) *cobra.Command {
	var (
		assign map[string]int
		skip   []string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import scale tickets from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			year, err := a.resolveYear(cmd.Context())
			if err != nil {
				return err
			}

			svc := tickets.NewService(a.seasons, ingest.NewSessions(a.logger.Named("svc.ingest")), nil, a.logger.Named("svc.tickets"))
			imp, err := svc.StartImport(a.owner, year, string(data))
			if err != nil {
				return err
			}
			if err := applyMapping(imp, assign, skip); err != nil {
				return err
			}

			printMapping(a.out, imp)
			if dryRun {
				for _, row := range imp.Preview() {
					printPreviewRow(a.out, row)
				}
				return nil
			}

			built, err := svc.CommitImport(cmd.Context(), a.owner, imp.ID)
			if err != nil {
				return err
			}
			if err := a.seasons.Flush(cmd.Context(), a.owner, year); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "imported %d tickets into %d\n", len(built), year)
			return nil
		},
	}
	cmd.Flags().StringToIntVar(&assign, "map", nil, "override a column, e.g. --map farm=4")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "fields to leave unmapped")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the mapping and preview without importing")
	return cmd
}

func applyMapping(imp *ingest.Session, assign map[string]int, skip []string) error {
	for field, col := range assign {
		if err := imp.Assign(models.TicketField(field), col); err != nil {
			return fmt.Errorf("--map %s=%d: %w", field, col, err)
		}
	}
	for _, field := range skip {
		if err := imp.Skip(models.TicketField(field)); err != nil {
			return fmt.Errorf("--skip %s: %w", field, err)
		}
	}
	return nil
}

func printMapping(w io.Writer, imp *ingest.Session) {
	for _, def := range ingest.FieldDefs {
		col, ok := imp.Mapping().Column(def.Field)
		if !ok {
			fmt.Fprintf(w, "  %-12s (skipped)\n", def.Field)
			continue
		}
		fmt.Fprintf(w, "  %-12s <- %q\n", def.Field, imp.Headers[col])
	}
}

func printPreviewRow(w io.Writer, row ingest.PreviewRow) {
	fields := make([]string, 0, len(row))
	for f := range row {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "%s=%s ", f, row[models.TicketField(f)])
	}
	fmt.Fprintln(w)
}

func exportCmd(a *app) *cobra.Command {
	var (
		outPath string
		crop    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the season's tickets to an xlsx file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			year, err := a.resolveYear(cmd.Context())
			if err != nil {
				return err
			}
			doc, err := a.seasons.Document(cmd.Context(), a.owner, year)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = fmt.Sprintf("tickets-%d.xlsx", year)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := export.Tickets(f, doc.GrainTickets, crop); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "wrote %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file")
	cmd.Flags().StringVar(&crop, "crop", "all", "crop tag to export")
	return cmd
}

func copyCmd(a *app) *cobra.Command {
	var to int
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Start a new season from an existing one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, err := a.resolveYear(cmd.Context())
			if err != nil {
				return err
			}
			if to == 0 {
				to = from + 1
			}
			if _, err := a.seasons.CopyYear(cmd.Context(), a.owner, from, to); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "copied %d to %d\n", from, to)
			return nil
		},
	}
	cmd.Flags().IntVar(&to, "to", 0, "target year (defaults to year+1)")
	return cmd
}

func reportCmd(a *app) *cobra.Command {
	var send bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the weekly report, or send it with --send",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reports := a.reports()
			if !send {
				text, err := reports.WeeklyReport(cmd.Context(), a.owner, a.year)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, text)
				return nil
			}

			if !a.cfg.WhatsApp.Enabled() {
				return errors.New("WHATSAPP_TOKEN is not configured")
			}
			cfg := *a.cfg
			cfg.Reporting.OwnerID = a.owner
			cfg.Reporting.Year = a.year
			sched, err := scheduler.NewScheduler(cfg, reports, whatsappclient.NewClient(cfg.WhatsApp), a.logger.Named("scheduler"))
			if err != nil {
				return err
			}
			if err := sched.SendWeeklyReport(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "report sent")
			return nil
		},
	}
	cmd.Flags().BoolVar(&send, "send", false, "send over WhatsApp instead of printing")
	return cmd
}
