package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// AllocationsRequest asks for the instrument weighting of a risk value.
type AllocationsRequest struct {
	RiskValue float64 `json:"riskValue,omitempty"`
	UID       string  `json:"uid,omitempty"`
}

// Allocations is a percentage weighting across the fixed instrument set.
type Allocations struct {
	SPAB float64 `json:"SPAB"`
	VEA  float64 `json:"VEA"`
	VOO  float64 `json:"VOO"`
	VTWO float64 `json:"VTWO"`
}

// Total returns the sum of all weights.
func (a Allocations) Total() float64 {
	return a.SPAB + a.VEA + a.VOO + a.VTWO
}

// RiskAnswers are the questionnaire scores the server turns into a risk value.
// Zero scores are omitted from the request and read as unanswered.
type RiskAnswers struct {
	RiskGrowth     int    `json:"riskGrowth,omitempty"`
	RiskLevel      int    `json:"riskLevel,omitempty"`
	RiskLosses     int    `json:"riskLosses,omitempty"`
	RiskVolatility int    `json:"riskVolatility,omitempty"`
	UID            string `json:"uid,omitempty"`
}

// RiskValue is the risk-value endpoint data. RiskValue is nil when the
// answers were rejected.
type RiskValue struct {
	RiskValue *float64 `json:"riskValue,omitempty"`
	FieldErrors
}

// UnmarshalJSON accepts riskValue as a number or a numeric string.
func (r *RiskValue) UnmarshalJSON(data []byte) error {
	var aux struct {
		RiskValue json.RawMessage `json:"riskValue"`
		FieldErrors
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = RiskValue{FieldErrors: aux.FieldErrors}
	v, ok, err := parseNumber(aux.RiskValue)
	if err != nil {
		return fmt.Errorf("riskValue: %w", err)
	}
	if ok {
		r.RiskValue = &v
	}
	return nil
}

// IRATypeRequest asks for the contribution limit of an IRA type.
type IRATypeRequest struct {
	IRAType string `json:"IRAType,omitempty"`
	UID     string `json:"uid,omitempty"`
}

// IRAType is the matched IRA type and its contribution limit.
type IRAType struct {
	IRAType         string            `json:"IRAType"`
	MaxContribution ContributionLimit `json:"maxContribution"`
}

// Recognised IRA types.
const (
	IRATypeSEP         = "SEP IRA"
	IRATypeTraditional = "Traditional IRA"
	IRATypeRoth        = "Roth IRA"
)

// AccountOverviewRequest carries the account parameters for a projection.
// StartDate is a unix timestamp in seconds.
type AccountOverviewRequest struct {
	IRAType                string  `json:"IRAType,omitempty"`
	ContributionPercentage float64 `json:"contributionPercentage,omitempty"`
	RiskValue              float64 `json:"riskValue,omitempty"`
	StartDate              int64   `json:"startDate,omitempty"`
	TotalIncome            float64 `json:"totalIncome,omitempty"`
	UID                    string  `json:"uid,omitempty"`
}

// Start returns StartDate as a time.
func (r AccountOverviewRequest) Start() time.Time {
	return time.Unix(r.StartDate, 0).UTC()
}

// AccountOverview is the composite projection computed by the server.
type AccountOverview struct {
	AmountSaved        *AmountSaved        `json:"amountSaved,omitempty"`
	InvestmentEarnings *InvestmentEarnings `json:"investmentEarnings,omitempty"`
	TaxesReduction     *TaxesReduction     `json:"taxesReduction,omitempty"`
	RetirementSavings  *RetirementSavings  `json:"retirementSavings,omitempty"`
	FieldErrors
}

// AmountSaved is the contribution for the current period.
type AmountSaved struct {
	AmountSaved            float64 `json:"amountSaved"`
	ContributionPercentage float64 `json:"contributionPercentage"`
	Income                 float64 `json:"income"`
}

// InvestmentEarnings projects the return on the amount saved.
type InvestmentEarnings struct {
	AmountSaved            float64       `json:"amountSaved"`
	AnnualReturnPercentage float64       `json:"annualReturnPercentage"`
	InvestmentEarnings     float64       `json:"investmentEarnings"`
	ReturnPercentageGraph  []ReturnPoint `json:"returnPercentageGraph"`
}

// ReturnPoint is one sample of the projected return series.
type ReturnPoint struct {
	Date             string  `json:"date"`
	ReturnPercentage float64 `json:"returnPercentage"`
}

// TaxesReduction estimates the taxable income removed by contributing.
type TaxesReduction struct {
	AmountInvested float64 `json:"amountInvested"`
}

// RetirementSavings projects the saved total at retirement.
type RetirementSavings struct {
	AmountSaved float64 `json:"amountSaved"`
}
