package buildup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bobmcallan/buildup/internal/models"
)

// GetAllocations retrieves the instrument weighting for a risk value. The
// risk value range is checked by the server, which answers
// INVALID_RISK_VALUE in the envelope info.
func (c *Client) GetAllocations(ctx context.Context, req models.AllocationsRequest) (*models.Envelope[models.Allocations], error) {
	if err := c.validateAllocations(req); err != nil {
		return nil, err
	}

	form := url.Values{}
	setFloat(form, "riskValue", req.RiskValue)
	setText(form, "uid", req.UID)

	if c.shape == ShapeLegacy {
		return call[models.Allocations](ctx, c, apiRequest{
			method: http.MethodGet,
			path:   PathAllocations,
			query:  form,
		})
	}

	r, err := c.post(PathAllocations, req, form)
	if err != nil {
		return nil, err
	}
	return call[models.Allocations](ctx, c, r)
}

// GetRiskValue submits the risk questionnaire answers. Out-of-range or
// unanswered questions come back as data.invalid and data.missing.
func (c *Client) GetRiskValue(ctx context.Context, answers *models.RiskAnswers) (*models.Envelope[models.RiskValue], error) {
	if err := c.validateRiskAnswers(answers); err != nil {
		return nil, err
	}

	form := url.Values{}
	setInt(form, "riskGrowth", answers.RiskGrowth)
	setInt(form, "riskLevel", answers.RiskLevel)
	setInt(form, "riskLosses", answers.RiskLosses)
	setInt(form, "riskVolatility", answers.RiskVolatility)
	setText(form, "uid", answers.UID)

	r, err := c.post(PathRiskValue, answers, form)
	if err != nil {
		return nil, err
	}
	return call[models.RiskValue](ctx, c, r)
}

// GetIRAType retrieves the contribution limit of an IRA type.
func (c *Client) GetIRAType(ctx context.Context, req models.IRATypeRequest) (*models.Envelope[models.IRAType], error) {
	if err := c.validateIRAType(req); err != nil {
		return nil, err
	}

	form := url.Values{}
	setText(form, "IRAType", req.IRAType)
	setText(form, "uid", req.UID)

	r, err := c.post(PathIRAType, req, form)
	if err != nil {
		return nil, err
	}
	return call[models.IRAType](ctx, c, r)
}

// GetAccountOverview retrieves the savings, earnings, tax and retirement
// projection for an account.
func (c *Client) GetAccountOverview(ctx context.Context, req models.AccountOverviewRequest) (*models.Envelope[models.AccountOverview], error) {
	if err := c.validateAccountOverview(req); err != nil {
		return nil, err
	}

	form := url.Values{}
	setText(form, "IRAType", req.IRAType)
	setFloat(form, "contributionPercentage", req.ContributionPercentage)
	setFloat(form, "riskValue", req.RiskValue)
	if req.StartDate != 0 {
		form.Set("startDate", strconv.FormatInt(req.StartDate, 10))
	}
	setFloat(form, "totalIncome", req.TotalIncome)
	setText(form, "uid", req.UID)

	r, err := c.post(PathAccountOverview, req, form)
	if err != nil {
		return nil, err
	}
	return call[models.AccountOverview](ctx, c, r)
}

// post encodes a POST body for the client's shape: form values for legacy
// servers, JSON otherwise.
func (c *Client) post(path string, payload interface{}, form url.Values) (apiRequest, error) {
	r := apiRequest{method: http.MethodPost, path: path}

	if c.shape == ShapeLegacy {
		r.body = []byte(form.Encode())
		r.contentType = contentTypeForm
		return r, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return r, fmt.Errorf("failed to encode %s request: %w", path, err)
	}
	r.body = body
	r.contentType = contentTypeJSON
	return r, nil
}

func setFloat(v url.Values, key string, f float64) {
	if f != 0 {
		v.Set(key, strconv.FormatFloat(f, 'f', -1, 64))
	}
}

func setInt(v url.Values, key string, i int) {
	if i != 0 {
		v.Set(key, strconv.Itoa(i))
	}
}

func setText(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}
