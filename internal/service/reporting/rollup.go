package reporting

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/internal/service/allocation"
)

// CropReturn is one row of the crop P&L.
type CropReturn struct {
	CropID        string          `json:"cropId"`
	Name          string          `json:"name"`
	Acres         float64         `json:"acres"`
	IncomePerAcre decimal.Decimal `json:"incomePerAcre"`
	CostPerAcre   decimal.Decimal `json:"costPerAcre"`
	ReturnPerAcre decimal.Decimal `json:"returnPerAcre"`
	TotalReturn   decimal.Decimal `json:"totalReturn"`
}

// Dashboard is the whole-farm budget rollup.
type Dashboard struct {
	Year          int             `json:"year"`
	TotalAcres    float64         `json:"totalAcres"`
	GrossIncome   decimal.Decimal `json:"grossIncome"`
	TotalCost     decimal.Decimal `json:"totalCost"`
	NetReturn     decimal.Decimal `json:"netReturn"`
	IncomePerAcre decimal.Decimal `json:"incomePerAcre"`
	CostPerAcre   decimal.Decimal `json:"costPerAcre"`
	NetPerAcre    decimal.Decimal `json:"netPerAcre"`
	Crops         []CropReturn    `json:"crops"`
}

// BuildDashboard totals income and cost over every crop's acreage.
func BuildDashboard(doc *models.SeasonDocument) Dashboard {
	dash := Dashboard{
		Year:        doc.Year,
		TotalAcres:  allocation.TotalPlantedAcres(doc),
		GrossIncome: decimal.Zero,
		TotalCost:   decimal.Zero,
		Crops:       make([]CropReturn, 0, len(doc.Crops)),
	}

	for i := range doc.Crops {
		c := &doc.Crops[i]
		income := cents(allocation.CropIncomePerAcre(doc, c))
		cost := cents(allocation.CropCostPerAcre(doc, c.ID))
		ret := income.Sub(cost)
		acres := decimal.NewFromFloat(c.Acres)

		dash.GrossIncome = dash.GrossIncome.Add(income.Mul(acres))
		dash.TotalCost = dash.TotalCost.Add(cost.Mul(acres))
		dash.Crops = append(dash.Crops, CropReturn{
			CropID:        c.ID,
			Name:          c.Name,
			Acres:         c.Acres,
			IncomePerAcre: income,
			CostPerAcre:   cost,
			ReturnPerAcre: ret,
			TotalReturn:   ret.Mul(acres).Round(2),
		})
	}

	dash.GrossIncome = dash.GrossIncome.Round(2)
	dash.TotalCost = dash.TotalCost.Round(2)
	dash.NetReturn = dash.GrossIncome.Sub(dash.TotalCost)
	dash.IncomePerAcre = perAcre(dash.GrossIncome, dash.TotalAcres)
	dash.CostPerAcre = perAcre(dash.TotalCost, dash.TotalAcres)
	dash.NetPerAcre = perAcre(dash.NetReturn, dash.TotalAcres)
	return dash
}

func perAcre(total decimal.Decimal, acres float64) decimal.Decimal {
	if acres <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromFloat(acres)).Round(2)
}

// GroupPosition compares budgeted production with contracted bushels.
type GroupPosition struct {
	GroupID       string          `json:"groupId"`
	Name          string          `json:"name"`
	Production    float64         `json:"production"`
	Contracted    float64         `json:"contracted"`
	Delivered     float64         `json:"delivered"`
	PercentSold   float64         `json:"percentSold"`
	AvgCash       decimal.Decimal `json:"avgCash"`
	ContractValue decimal.Decimal `json:"contractValue"`
}

// MarketingPosition rolls contracts up per marketing group.
func MarketingPosition(doc *models.SeasonDocument) []GroupPosition {
	out := make([]GroupPosition, 0, len(doc.MarketingGroups))
	for _, g := range doc.MarketingGroups {
		pos := GroupPosition{GroupID: g.ID, Name: g.Name, AvgCash: decimal.Zero, ContractValue: decimal.Zero}

		for _, id := range g.CropIDs {
			if c := doc.FindCrop(id); c != nil {
				pos.Production += c.Acres * c.BudgetYield
			}
		}

		for _, k := range doc.Contracts[g.ID] {
			pos.Contracted += k.Units
			if k.Delivered {
				pos.Delivered += k.Units
			}
			pos.ContractValue = pos.ContractValue.Add(decimal.NewFromFloat(k.Units).Mul(decimal.NewFromFloat(k.Cash)))
		}
		if pos.Contracted > 0 {
			pos.AvgCash = pos.ContractValue.Div(decimal.NewFromFloat(pos.Contracted)).Round(4)
		}
		pos.ContractValue = pos.ContractValue.Round(2)
		pos.PercentSold = percent(pos.Contracted, pos.Production)
		out = append(out, pos)
	}
	return out
}

// FarmTotal is the dry bushels hauled from one farm.
type FarmTotal struct {
	Farm       string  `json:"farm"`
	Owner      string  `json:"owner,omitempty"`
	DryBushels float64 `json:"dryBushels"`
	Tickets    int     `json:"tickets"`
}

// TicketSummary totals scale tickets.
type TicketSummary struct {
	Crop       string      `json:"crop"`
	Tickets    int         `json:"tickets"`
	Bushels    float64     `json:"bushels"`
	DryBushels float64     `json:"dryBushels"`
	Farms      []FarmTotal `json:"farms"`
}

// SummarizeTickets totals tickets for a crop tag, or all tickets for "all"
// or "". Farms are sorted by name and carry the landowner from cash rents.
func SummarizeTickets(doc *models.SeasonDocument, crop string) TicketSummary {
	if crop == "" {
		crop = "all"
	}
	sum := TicketSummary{Crop: crop, Farms: []FarmTotal{}}

	byFarm := map[string]*FarmTotal{}
	for _, t := range doc.GrainTickets {
		if crop != "all" && t.Crop != crop {
			continue
		}
		dry := t.EffectiveDry()
		sum.Tickets++
		sum.Bushels += t.Bushels
		sum.DryBushels += dry

		if t.Farm == "" {
			continue
		}
		ft, ok := byFarm[t.Farm]
		if !ok {
			ft = &FarmTotal{Farm: t.Farm, Owner: landowner(doc, t.Farm)}
			byFarm[t.Farm] = ft
		}
		ft.DryBushels += dry
		ft.Tickets++
	}

	for _, ft := range byFarm {
		sum.Farms = append(sum.Farms, *ft)
	}
	sort.Slice(sum.Farms, func(i, j int) bool { return sum.Farms[i].Farm < sum.Farms[j].Farm })
	return sum
}

func landowner(doc *models.SeasonDocument, farm string) string {
	for _, r := range doc.CashRents {
		if r.Farm == farm {
			return r.Owner
		}
	}
	return ""
}

// RentCategory totals leases of one category.
type RentCategory struct {
	Category string          `json:"category"`
	Label    string          `json:"label"`
	Leases   int             `json:"leases"`
	Acres    float64         `json:"acres"`
	Cost     decimal.Decimal `json:"cost"`
}

// RentSummary is the land cost rollup.
type RentSummary struct {
	TotalAcres     float64         `json:"totalAcres"`
	BaseRent       decimal.Decimal `json:"baseRent"`
	TotalWithBonus decimal.Decimal `json:"totalWithBonus"`
	Categories     []RentCategory  `json:"categories"`
}

var rentCategories = []struct{ id, label string }{
	{models.RentCash, "Cash Rent"},
	{models.RentOwned, "Owned"},
	{models.RentShare, "Share Crop"},
	{models.RentCustom, "Custom"},
}

// SummarizeRents totals the cash rent lines. Cost includes the bonus.
func SummarizeRents(doc *models.SeasonDocument) RentSummary {
	sum := RentSummary{BaseRent: decimal.Zero, TotalWithBonus: decimal.Zero}

	idx := map[string]int{}
	for i, c := range rentCategories {
		sum.Categories = append(sum.Categories, RentCategory{Category: c.id, Label: c.label, Cost: decimal.Zero})
		idx[c.id] = i
	}

	for _, r := range doc.CashRents {
		acres := decimal.NewFromFloat(r.Acres)
		base := decimal.NewFromFloat(r.RentAc).Mul(acres)
		withBonus := decimal.NewFromFloat(r.RentAc).Add(decimal.NewFromFloat(r.Bonus)).Mul(acres)

		sum.TotalAcres += r.Acres
		sum.BaseRent = sum.BaseRent.Add(base)
		sum.TotalWithBonus = sum.TotalWithBonus.Add(withBonus)

		cat := r.Category
		if cat == "" {
			cat = models.RentCash
		}
		i, ok := idx[cat]
		if !ok {
			continue
		}
		sum.Categories[i].Leases++
		sum.Categories[i].Acres += r.Acres
		sum.Categories[i].Cost = sum.Categories[i].Cost.Add(withBonus)
	}

	sum.BaseRent = sum.BaseRent.Round(2)
	sum.TotalWithBonus = sum.TotalWithBonus.Round(2)
	for i := range sum.Categories {
		sum.Categories[i].Cost = sum.Categories[i].Cost.Round(2)
	}
	return sum
}
