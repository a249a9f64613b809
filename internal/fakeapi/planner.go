package fakeapi

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/buildup/internal/models"
)

const (
	minRiskValue = 1
	maxRiskValue = 5

	minAnswer = 1
	maxAnswer = 5

	retirementHorizonYears = 3
	projectionMonths       = 12

	graphDateLayout = "2006-01-02"
)

var riskAnswerFields = []string{"riskGrowth", "riskLevel", "riskLosses", "riskVolatility"}

var overviewFields = []string{"IRAType", "contributionPercentage", "riskValue", "startDate", "totalIncome"}

// allocationTable holds the instrument weighting per whole risk value.
var allocationTable = map[int]models.Allocations{
	1: {SPAB: 60, VEA: 14, VOO: 13, VTWO: 13},
	2: {SPAB: 40, VEA: 20, VOO: 20, VTWO: 20},
	3: {SPAB: 20, VEA: 27, VOO: 27, VTWO: 26},
	4: {SPAB: 15, VEA: 29, VOO: 28, VTWO: 28},
	5: {SPAB: 10, VEA: 30, VOO: 30, VTWO: 30},
}

var iraLimits = map[string]models.ContributionLimit{
	models.IRATypeSEP:         models.NewPercentLimit(15),
	models.IRATypeTraditional: models.NewAmountLimit(6000),
	models.IRATypeRoth:        models.NewAmountLimit(6000),
}

func validRiskValue(v float64) bool {
	return v >= minRiskValue && v <= maxRiskValue
}

// allocationsFor rounds a computed risk value to the nearest table row.
func allocationsFor(risk float64) (models.Allocations, bool) {
	if !validRiskValue(risk) {
		return models.Allocations{}, false
	}
	return allocationTable[int(math.Round(risk))], true
}

func validAnswer(v float64) bool {
	return v == math.Trunc(v) && v >= minAnswer && v <= maxAnswer
}

// scoreAnswers averages the questionnaire answers.
func scoreAnswers(answers []float64) float64 {
	sum := decimal.Zero
	for _, a := range answers {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	return sum.Div(decimal.NewFromInt(int64(len(answers)))).Round(2).InexactFloat64()
}

func iraLimit(name string) (models.ContributionLimit, bool) {
	limit, ok := iraLimits[name]
	return limit, ok
}

// annualReturn is the expected yearly return in percent for a risk value.
func annualReturn(risk float64) decimal.Decimal {
	return decimal.NewFromFloat(0.5).Add(decimal.NewFromFloat(1.5).Mul(decimal.NewFromFloat(risk)))
}

type overviewInput struct {
	contributionPercentage float64
	riskValue              float64
	start                  time.Time
	totalIncome            float64
}

// projectAccount computes the composite account overview.
func projectAccount(in overviewInput) models.AccountOverview {
	hundred := decimal.NewFromInt(100)
	pct := decimal.NewFromFloat(in.contributionPercentage)
	income := decimal.NewFromFloat(in.totalIncome)
	saved := income.Mul(pct).Div(hundred).Round(2)

	annual := annualReturn(in.riskValue)
	monthly := annual.Div(hundred).Div(decimal.NewFromInt(12))
	step := decimal.NewFromInt(1).Add(monthly)

	growth := decimal.NewFromInt(1)
	graph := make([]models.ReturnPoint, 0, projectionMonths)
	for i := 1; i <= projectionMonths; i++ {
		growth = growth.Mul(step)
		graph = append(graph, models.ReturnPoint{
			Date:             in.start.AddDate(0, i, 0).Format(graphDateLayout),
			ReturnPercentage: growth.Sub(decimal.NewFromInt(1)).Mul(hundred).Round(4).InexactFloat64(),
		})
	}
	earnings := saved.Mul(growth.Sub(decimal.NewFromInt(1))).Round(2)

	savedF := saved.InexactFloat64()
	return models.AccountOverview{
		AmountSaved: &models.AmountSaved{
			AmountSaved:            savedF,
			ContributionPercentage: in.contributionPercentage,
			Income:                 in.totalIncome,
		},
		InvestmentEarnings: &models.InvestmentEarnings{
			AmountSaved:            savedF,
			AnnualReturnPercentage: annual.InexactFloat64(),
			InvestmentEarnings:     earnings.InexactFloat64(),
			ReturnPercentageGraph:  graph,
		},
		TaxesReduction: &models.TaxesReduction{
			AmountInvested: savedF,
		},
		RetirementSavings: &models.RetirementSavings{
			AmountSaved: saved.Mul(decimal.NewFromInt(retirementHorizonYears)).InexactFloat64(),
		},
	}
}
