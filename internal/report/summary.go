package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/buildup/internal/models"
)

// WriteOverviewSummary writes a plain-text digest of an account overview.
func WriteOverviewSummary(w io.Writer, o *models.AccountOverview) error {
	if o == nil {
		return fmt.Errorf("no account overview to summarise")
	}

	var b strings.Builder
	if o.AmountSaved != nil {
		fmt.Fprintf(&b, "Amount saved:        %s (%s%% of %s)\n",
			money(o.AmountSaved.AmountSaved),
			decimal.NewFromFloat(o.AmountSaved.ContributionPercentage).String(),
			money(o.AmountSaved.Income))
	}
	if e := o.InvestmentEarnings; e != nil {
		fmt.Fprintf(&b, "Investment earnings: %s at %s%% a year\n",
			money(e.InvestmentEarnings),
			decimal.NewFromFloat(e.AnnualReturnPercentage).StringFixed(2))
		if n := len(e.ReturnPercentageGraph); n > 0 {
			last := e.ReturnPercentageGraph[n-1]
			fmt.Fprintf(&b, "Return by %s:    %s%%\n", last.Date,
				decimal.NewFromFloat(last.ReturnPercentage).StringFixed(2))
		}
	}
	if o.TaxesReduction != nil {
		fmt.Fprintf(&b, "Taxes reduction:     %s\n", money(o.TaxesReduction.AmountInvested))
	}
	if o.RetirementSavings != nil {
		fmt.Fprintf(&b, "Retirement savings:  %s\n", money(o.RetirementSavings.AmountSaved))
	}
	if o.HasErrors() {
		if len(o.Missing) > 0 {
			fmt.Fprintf(&b, "Missing fields:      %s\n", strings.Join(o.Missing, ", "))
		}
		if len(o.Invalid) > 0 {
			fmt.Fprintf(&b, "Invalid fields:      %s\n", strings.Join(o.Invalid, ", "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}
