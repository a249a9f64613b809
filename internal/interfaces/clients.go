// Package interfaces defines service contracts for buildup
package interfaces

import (
	"context"

	"github.com/bobmcallan/buildup/internal/models"
)

// PlanningClient provides access to the BuildUp planning API
type PlanningClient interface {
	// GetAllocations retrieves the instrument weighting for a risk value
	GetAllocations(ctx context.Context, req models.AllocationsRequest) (*models.Envelope[models.Allocations], error)

	// GetRiskValue scores risk questionnaire answers
	GetRiskValue(ctx context.Context, answers *models.RiskAnswers) (*models.Envelope[models.RiskValue], error)

	// GetIRAType retrieves the contribution limit of an IRA type
	GetIRAType(ctx context.Context, req models.IRATypeRequest) (*models.Envelope[models.IRAType], error)

	// GetAccountOverview retrieves the account projection
	GetAccountOverview(ctx context.Context, req models.AccountOverviewRequest) (*models.Envelope[models.AccountOverview], error)
}
