package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ContributionLimit is an IRA maximum contribution. The server sends either a
// dollar amount (6000) or a share of income ("15%"). The original JSON token
// is kept so the value marshals back unchanged.
type ContributionLimit struct {
	Value     float64
	IsPercent bool

	raw json.RawMessage
}

// UnmarshalJSON accepts a number or a numeric string with an optional % suffix.
func (c *ContributionLimit) UnmarshalJSON(data []byte) error {
	*c = ContributionLimit{raw: append(json.RawMessage(nil), data...)}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		c.Value = num
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("maxContribution: cannot unmarshal %s", string(data))
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		c.IsPercent = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("maxContribution: cannot parse %q: %w", s, err)
	}
	c.Value = v
	return nil
}

// MarshalJSON writes the original token when there is one.
func (c ContributionLimit) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 {
		return c.raw, nil
	}
	if c.IsPercent {
		return json.Marshal(c.String())
	}
	return json.Marshal(c.Value)
}

// NewAmountLimit returns a fixed dollar limit.
func NewAmountLimit(amount float64) ContributionLimit {
	return ContributionLimit{Value: amount}
}

// NewPercentLimit returns a limit expressed as a share of income.
func NewPercentLimit(percent float64) ContributionLimit {
	return ContributionLimit{Value: percent, IsPercent: true}
}

// For returns the dollar limit that applies to the given income.
func (c ContributionLimit) For(income float64) float64 {
	if c.IsPercent {
		return income * c.Value / 100
	}
	return c.Value
}

func (c ContributionLimit) String() string {
	v := strconv.FormatFloat(c.Value, 'f', -1, 64)
	if c.IsPercent {
		return v + "%"
	}
	return v
}

// parseNumber reads a JSON number or numeric string. ok is false for null,
// an absent value or an empty string.
func parseNumber(data json.RawMessage) (v float64, ok bool, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, false, nil
	}
	if err := json.Unmarshal(data, &v); err == nil {
		return v, true, nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0, false, fmt.Errorf("cannot unmarshal %s", string(data))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("cannot parse %q: %w", s, err)
	}
	return v, true, nil
}
