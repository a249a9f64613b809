package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/buildup/internal/models"
	"github.com/bobmcallan/buildup/internal/report"
)

func newAllocationsCmd(opts *rootOptions) *cobra.Command {
	var riskValue float64

	cmd := &cobra.Command{
		Use:   "allocations",
		Short: "Instrument weighting for a risk value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.client.GetAllocations(cmd.Context(), models.AllocationsRequest{
				RiskValue: riskValue,
				UID:       opts.config.Client.UID,
			})
			if err != nil {
				return err
			}
			return printEnvelope(cmd.OutOrStdout(), env.Raw)
		},
	}

	cmd.Flags().Float64VarP(&riskValue, "risk-value", "r", 0, "risk value between 1 and 5")
	return cmd
}

func newRiskValueCmd(opts *rootOptions) *cobra.Command {
	var answers models.RiskAnswers

	cmd := &cobra.Command{
		Use:   "risk-value",
		Short: "Risk value from the questionnaire answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			answers.UID = opts.config.Client.UID
			env, err := opts.client.GetRiskValue(cmd.Context(), &answers)
			if err != nil {
				return err
			}
			return printEnvelope(cmd.OutOrStdout(), env.Raw)
		},
	}

	f := cmd.Flags()
	f.IntVar(&answers.RiskGrowth, "growth", 0, "answer to the growth question (1-5)")
	f.IntVar(&answers.RiskLevel, "level", 0, "answer to the risk level question (1-5)")
	f.IntVar(&answers.RiskLosses, "losses", 0, "answer to the losses question (1-5)")
	f.IntVar(&answers.RiskVolatility, "volatility", 0, "answer to the volatility question (1-5)")
	return cmd
}

func newIRATypeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ira-type <type>",
		Short:   "Contribution limit of an IRA type",
		Example: `  buildup ira-type "SEP IRA"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.client.GetIRAType(cmd.Context(), models.IRATypeRequest{
				IRAType: args[0],
				UID:     opts.config.Client.UID,
			})
			if err != nil {
				return err
			}
			return printEnvelope(cmd.OutOrStdout(), env.Raw)
		},
	}
}

func newAccountOverviewCmd(opts *rootOptions) *cobra.Command {
	var (
		req       models.AccountOverviewRequest
		startStr  string
		chartPath string
		summary   bool
	)

	cmd := &cobra.Command{
		Use:   "account-overview",
		Short: "Savings, earnings, tax and retirement projection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseStartDate(startStr)
			if err != nil {
				return err
			}
			req.StartDate = start
			req.UID = opts.config.Client.UID

			env, err := opts.client.GetAccountOverview(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if summary && env.Data != nil {
				if err := report.WriteOverviewSummary(out, env.Data); err != nil {
					return err
				}
			} else if err := printEnvelope(out, env.Raw); err != nil {
				return err
			}

			if chartPath == "" {
				return nil
			}
			if env.DataErr != nil {
				return fmt.Errorf("cannot chart response: %w", env.DataErr)
			}
			if env.Data == nil || env.Data.InvestmentEarnings == nil {
				return fmt.Errorf("no return graph in response (info %s)", env.Info)
			}
			png, err := report.RenderReturnChart(env.Data.InvestmentEarnings.ReturnPercentageGraph)
			if err != nil {
				return err
			}
			if err := os.WriteFile(chartPath, png, 0644); err != nil {
				return fmt.Errorf("failed to write chart: %w", err)
			}
			opts.logger.Info().Str("path", chartPath).Int("bytes", len(png)).Msg("Return chart written")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.IRAType, "ira-type", "", `IRA type, e.g. "SEP IRA"`)
	f.Float64Var(&req.ContributionPercentage, "contribution", 0, "contribution percentage of income")
	f.Float64VarP(&req.RiskValue, "risk-value", "r", 0, "risk value between 1 and 5")
	f.StringVar(&startStr, "start-date", "", "start date as unix seconds or YYYY-MM-DD")
	f.Float64Var(&req.TotalIncome, "income", 0, "total yearly income")
	f.StringVar(&chartPath, "chart", "", "write the projected return chart to this PNG file")
	f.BoolVar(&summary, "summary", false, "print a text summary instead of the envelope")
	return cmd
}

// parseStartDate accepts unix seconds or a calendar date. Empty yields zero.
func parseStartDate(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, fmt.Errorf("bad --start-date %q: want unix seconds or YYYY-MM-DD", s)
	}
	return t.Unix(), nil
}
