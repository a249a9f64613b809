// Package models defines the request and response data of the planning API
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Info codes the planning API reports in the envelope.
const (
	InfoOK                 = "OK"
	InfoInvalidRiskValue   = "INVALID_RISK_VALUE"
	InfoInvalidIRAType     = "INVALID_IRA_TYPE"
	InfoInvalidData        = "INVALID_DATA"
	InfoMissingData        = "MISSING_DATA"
	InfoInvalidCredentials = "INVALID_CREDENTIALS"
)

// Envelope is the wrapper every planning API endpoint responds with.
// Raw holds the response body exactly as received. When data does not fit T,
// Data is nil and DataErr says why; the header fields and Raw are still set.
type Envelope[T any] struct {
	Status   int     `json:"status"`
	Info     string  `json:"info"`
	Misc     string  `json:"misc"`
	Request  string  `json:"request"`
	Datetime float64 `json:"datetime"`
	Data     *T      `json:"data,omitempty"`

	Raw     json.RawMessage `json:"-"`
	DataErr error           `json:"-"`
}

type envelopeHeader struct {
	Status   int             `json:"status"`
	Info     string          `json:"info"`
	Misc     string          `json:"misc"`
	Request  string          `json:"request"`
	Datetime float64         `json:"datetime"`
	Data     json.RawMessage `json:"data"`
}

// Rejected reports whether the server refused the input with the given info code.
func (e *Envelope[T]) Rejected(code string) bool {
	return e != nil && e.Info == code
}

// DecodeEnvelope parses body into an envelope and keeps a copy of the bytes.
// Only a body that is not a JSON envelope is an error; a data member of an
// unexpected shape is reported in DataErr.
func DecodeEnvelope[T any](body []byte) (*Envelope[T], error) {
	var h envelopeHeader
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, err
	}

	env := &Envelope[T]{
		Status:   h.Status,
		Info:     h.Info,
		Misc:     h.Misc,
		Request:  h.Request,
		Datetime: h.Datetime,
		Raw:      append(json.RawMessage(nil), body...),
	}

	if len(h.Data) == 0 || bytes.Equal(bytes.TrimSpace(h.Data), []byte("null")) {
		return env, nil
	}
	data := new(T)
	if err := json.Unmarshal(h.Data, data); err != nil {
		env.DataErr = fmt.Errorf("decode data: %w", err)
		return env, nil
	}
	env.Data = data
	return env, nil
}

// FieldErrors lists offending request fields in a rejected envelope.
type FieldErrors struct {
	Invalid []string `json:"invalid,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// HasErrors reports whether any field was flagged.
func (f FieldErrors) HasErrors() bool {
	return len(f.Invalid) > 0 || len(f.Missing) > 0
}
