package fakeapi

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/buildup/internal/models"
)

func (a *API) handleAllocations(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	p, ok := a.params(w, r)
	if !ok {
		return
	}

	if missing := p.missing("riskValue"); len(missing) > 0 {
		a.writeEnvelope(w, r, http.StatusOK, models.InfoMissingData, models.FieldErrors{Missing: missing})
		return
	}
	risk, ok := p.number("riskValue")
	if !ok {
		a.writeEnvelope(w, r, http.StatusOK, models.InfoInvalidRiskValue, nil)
		return
	}
	alloc, ok := allocationsFor(risk)
	if !ok {
		a.writeEnvelope(w, r, http.StatusOK, models.InfoInvalidRiskValue, nil)
		return
	}

	a.writeEnvelope(w, r, http.StatusOK, models.InfoOK, alloc)
}

func (a *API) handleRiskValue(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	p, ok := a.params(w, r)
	if !ok {
		return
	}

	fe := models.FieldErrors{Missing: p.missing(riskAnswerFields...)}
	answers := make([]float64, 0, len(riskAnswerFields))
	for _, name := range riskAnswerFields {
		if strings.TrimSpace(p[name]) == "" {
			continue
		}
		v, ok := p.number(name)
		if !ok || !validAnswer(v) {
			fe.Invalid = append(fe.Invalid, name)
			continue
		}
		answers = append(answers, v)
	}

	if fe.HasErrors() {
		info := models.InfoInvalidData
		if len(fe.Missing) > 0 {
			info = models.InfoMissingData
		}
		a.writeEnvelope(w, r, http.StatusOK, info, fe)
		return
	}

	score := scoreAnswers(answers)
	a.writeEnvelope(w, r, http.StatusOK, models.InfoOK, models.RiskValue{RiskValue: &score})
}

func (a *API) handleIRAType(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	p, ok := a.params(w, r)
	if !ok {
		return
	}

	name := p["IRAType"]
	limit, ok := iraLimit(name)
	if !ok {
		a.writeEnvelope(w, r, http.StatusOK, models.InfoInvalidIRAType, nil)
		return
	}

	a.writeEnvelope(w, r, http.StatusOK, models.InfoOK, models.IRAType{IRAType: name, MaxContribution: limit})
}

func (a *API) handleAccountOverview(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	p, ok := a.params(w, r)
	if !ok {
		return
	}

	if missing := p.missing(overviewFields...); len(missing) > 0 {
		a.writeEnvelope(w, r, http.StatusOK, models.InfoMissingData, models.AccountOverview{
			FieldErrors: models.FieldErrors{Missing: missing},
		})
		return
	}
	if _, ok := iraLimit(p["IRAType"]); !ok {
		a.writeEnvelope(w, r, http.StatusOK, models.InfoInvalidIRAType, nil)
		return
	}
	risk, ok := p.number("riskValue")
	if !ok || !validRiskValue(risk) {
		a.writeEnvelope(w, r, http.StatusOK, models.InfoInvalidRiskValue, nil)
		return
	}

	var invalid []string
	pct, ok := p.number("contributionPercentage")
	if !ok || pct <= 0 || pct > 100 {
		invalid = append(invalid, "contributionPercentage")
	}
	start, ok := p.number("startDate")
	if !ok || start <= 0 || start != math.Trunc(start) {
		invalid = append(invalid, "startDate")
	}
	income, ok := p.number("totalIncome")
	if !ok || income <= 0 {
		invalid = append(invalid, "totalIncome")
	}
	if len(invalid) > 0 {
		a.writeEnvelope(w, r, http.StatusOK, models.InfoInvalidData, models.AccountOverview{
			FieldErrors: models.FieldErrors{Invalid: invalid},
		})
		return
	}

	overview := projectAccount(overviewInput{
		contributionPercentage: pct,
		riskValue:              risk,
		start:                  time.Unix(int64(start), 0).UTC(),
		totalIncome:            income,
	})
	a.writeEnvelope(w, r, http.StatusOK, models.InfoOK, overview)
}

// params reads the request fields, answering 400 when the body is unreadable.
func (a *API) params(w http.ResponseWriter, r *http.Request) (params, bool) {
	p, err := readParams(w, r)
	if err != nil {
		a.logger.Warn().Err(err).Str("path", r.URL.Path).Msg("Unreadable request body")
		a.writeEnvelope(w, r, http.StatusBadRequest, models.InfoInvalidData, nil)
		return nil, false
	}
	return p, true
}
