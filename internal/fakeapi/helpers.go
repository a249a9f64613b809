package fakeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/bobmcallan/buildup/internal/common"
)

// envelope is the response wrapper of every planning endpoint.
type envelope struct {
	Status   int         `json:"status"`
	Info     string      `json:"info"`
	Misc     string      `json:"misc"`
	Request  string      `json:"request"`
	Datetime int64       `json:"datetime"`
	Data     interface{} `json:"data,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// RequireMethod validates the HTTP method and returns true if it matches.
// If it doesn't match, it writes a 405 response and returns false.
func RequireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	WriteJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	return false
}

// writeEnvelope answers with the envelope; business rejections still use
// HTTP 200 and carry the reason in info.
func (a *API) writeEnvelope(w http.ResponseWriter, r *http.Request, statusCode int, info string, data interface{}) {
	WriteJSON(w, statusCode, envelope{
		Status:   statusCode,
		Info:     info,
		Misc:     "",
		Request:  common.CorrelationIDFromContext(r.Context()),
		Datetime: a.now().UnixMilli(),
		Data:     data,
	})
}

// params holds request fields gathered from the query string, a form body or
// a JSON body. Credential parameters are excluded.
type params map[string]string

const maxBodyBytes = 1 << 20

// readParams accepts every request shape the client can produce.
func readParams(w http.ResponseWriter, r *http.Request) (params, error) {
	p := params{}
	for k, vs := range r.URL.Query() {
		if k == "key" || k == "secret" || len(vs) == 0 {
			continue
		}
		p[k] = vs[0]
	}

	if r.Body == nil || r.Method == http.MethodGet || r.Method == http.MethodHead {
		return p, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form body: %w", err)
		}
		for k, vs := range r.PostForm {
			if len(vs) > 0 {
				p[k] = vs[0]
			}
		}
	default:
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		var body map[string]interface{}
		if err := dec.Decode(&body); err != nil {
			if errors.Is(err, io.EOF) {
				return p, nil
			}
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		for k, v := range body {
			switch val := v.(type) {
			case nil:
				continue
			case json.Number:
				p[k] = val.String()
			case string:
				p[k] = val
			default:
				p[k] = fmt.Sprint(val)
			}
		}
	}
	return p, nil
}

// missing returns the names that were not supplied, in the order given.
func (p params) missing(names ...string) []string {
	var out []string
	for _, n := range names {
		if strings.TrimSpace(p[n]) == "" {
			out = append(out, n)
		}
	}
	return out
}

// number parses a field as a float
func (p params) number(name string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(p[name]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
