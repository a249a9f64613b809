package fakeapi

import (
	"net/http"

	"github.com/bobmcallan/buildup/internal/common"
)

func (a *API) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", a.handleHealth)
	mux.HandleFunc("/api/version", a.handleVersion)

	mux.HandleFunc("/api/v1/allocations", a.handleAllocations)
	mux.HandleFunc("/api/v1/risk-value", a.handleRiskValue)
	mux.HandleFunc("/api/v1/ira-type", a.handleIRAType)
	mux.HandleFunc("/api/v1/account-overview", a.handleAccountOverview)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, common.VersionInfo())
}
