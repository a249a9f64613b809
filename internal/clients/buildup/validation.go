package buildup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bobmcallan/buildup/internal/models"
)

// ErrValidation is matched by every local validation failure.
var ErrValidation = errors.New("buildup: invalid request")

// ValidationError lists the required fields a request lacked. It is returned
// before anything is sent.
type ValidationError struct {
	Operation string
	Missing   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("buildup: invalid %s request: missing %s", e.Operation, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// fieldCheck collects missing field names. A field counts as missing when it
// holds its zero value, so an answer of 0 is reported as absent. Blank text
// is sent as is and left for the server to judge.
type fieldCheck struct {
	op      string
	missing []string
}

func (f *fieldCheck) number(name string, v float64) {
	if v == 0 {
		f.missing = append(f.missing, name)
	}
}

func (f *fieldCheck) text(name, v string) {
	if v == "" {
		f.missing = append(f.missing, name)
	}
}

func (f *fieldCheck) err() error {
	if len(f.missing) == 0 {
		return nil
	}
	return &ValidationError{Operation: f.op, Missing: f.missing}
}

func (c *Client) validateAllocations(req models.AllocationsRequest) error {
	f := fieldCheck{op: "allocations"}
	f.number("riskValue", req.RiskValue)
	if c.shape.requiresUID() {
		f.text("uid", req.UID)
	}
	return f.err()
}

func (c *Client) validateRiskAnswers(answers *models.RiskAnswers) error {
	f := fieldCheck{op: "risk value"}
	if answers == nil {
		f.missing = append(f.missing, "answers")
		return f.err()
	}
	if c.shape.requiresUID() {
		f.number("riskGrowth", float64(answers.RiskGrowth))
		f.number("riskLevel", float64(answers.RiskLevel))
		f.number("riskLosses", float64(answers.RiskLosses))
		f.number("riskVolatility", float64(answers.RiskVolatility))
		f.text("uid", answers.UID)
	}
	return f.err()
}

func (c *Client) validateIRAType(req models.IRATypeRequest) error {
	f := fieldCheck{op: "IRA type"}
	f.text("IRAType", req.IRAType)
	if c.shape.requiresUID() {
		f.text("uid", req.UID)
	}
	return f.err()
}

func (c *Client) validateAccountOverview(req models.AccountOverviewRequest) error {
	f := fieldCheck{op: "account overview"}
	f.text("IRAType", req.IRAType)
	f.number("contributionPercentage", req.ContributionPercentage)
	f.number("riskValue", req.RiskValue)
	f.number("startDate", float64(req.StartDate))
	f.number("totalIncome", req.TotalIncome)
	if c.shape.requiresUID() {
		f.text("uid", req.UID)
	}
	return f.err()
}
