package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
)

const dateLayout = "2006-01-02"

// Documents resolves season documents for an owner.
type Documents interface {
	Document(ctx context.Context, owner string, year int) (*models.SeasonDocument, error)
	Years(ctx context.Context, owner string) ([]int, error)
}

// Summary bundles every rollup of one season.
type Summary struct {
	Dashboard Dashboard       `json:"dashboard"`
	Marketing []GroupPosition `json:"marketing"`
	Tickets   TicketSummary   `json:"tickets"`
	Rents     RentSummary     `json:"rents"`
}

// Service exposes season rollups and the weekly operator report.
type Service struct {
	docs   Documents
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(docs Documents, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{docs: docs, logger: logger, now: time.Now}
}

// Summarize computes every rollup for a season.
func (s *Service) Summarize(ctx context.Context, owner string, year int) (Summary, error) {
	doc, err := s.docs.Document(ctx, owner, year)
	if err != nil {
		return Summary{}, fmt.Errorf("load season %d: %w", year, err)
	}
	return Summarize(doc), nil
}

// Summarize computes every rollup for a loaded document.
func Summarize(doc *models.SeasonDocument) Summary {
	return Summary{
		Dashboard: BuildDashboard(doc),
		Marketing: MarketingPosition(doc),
		Tickets:   SummarizeTickets(doc, "all"),
		Rents:     SummarizeRents(doc),
	}
}

// LatestYear returns year when set, else the owner's newest season.
func (s *Service) LatestYear(ctx context.Context, owner string, year int) (int, error) {
	if year > 0 {
		return year, nil
	}
	years, err := s.docs.Years(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("list years: %w", err)
	}
	if len(years) == 0 {
		return s.now().Year(), nil
	}
	return years[0], nil
}

// WeeklyReport renders the plain-text budget report pushed to the operator.
// A zero year reports the owner's latest season.
func (s *Service) WeeklyReport(ctx context.Context, owner string, year int) (string, error) {
	year, err := s.LatestYear(ctx, owner, year)
	if err != nil {
		return "", err
	}
	sum, err := s.Summarize(ctx, owner, year)
	if err != nil {
		return "", err
	}

	s.logger.Debug("weekly report built",
		zap.String("owner", owner),
		zap.Int("year", year),
		zap.Int("tickets", sum.Tickets.Tickets),
	)
	return RenderReport(sum, s.now()), nil
}

// RenderReport formats a summary as a short text message.
func RenderReport(sum Summary, at time.Time) string {
	var b strings.Builder
	dash := sum.Dashboard

	fmt.Fprintf(&b, "Crop budget %d (%s)\n", dash.Year, at.Format(dateLayout))
	if dash.TotalAcres <= 0 {
		b.WriteString("No planted acres yet.\n")
	} else {
		fmt.Fprintf(&b, "Acres %.1f | Gross %s | Costs %s | Net %s (%s/ac)\n",
			dash.TotalAcres,
			FormatUSD(dash.GrossIncome),
			FormatUSD(dash.TotalCost),
			FormatUSD(dash.NetReturn),
			FormatUSD(dash.NetPerAcre),
		)
		for _, c := range dash.Crops {
			if c.Acres <= 0 {
				continue
			}
			fmt.Fprintf(&b, "- %s: %.1f ac, %s/ac return\n", c.Name, c.Acres, FormatUSD(c.ReturnPerAcre))
		}
	}

	for _, g := range sum.Marketing {
		if g.Production <= 0 && g.Contracted <= 0 {
			continue
		}
		fmt.Fprintf(&b, "Marketing %s: %.1f%% sold (%.0f of %.0f bu)\n", g.Name, g.PercentSold, g.Contracted, g.Production)
	}

	if sum.Tickets.Tickets == 0 {
		b.WriteString("Harvest: no tickets logged.")
	} else {
		fmt.Fprintf(&b, "Harvest: %.0f dry bu across %d tickets.", sum.Tickets.DryBushels, sum.Tickets.Tickets)
	}
	return b.String()
}
