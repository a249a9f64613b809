package buildup

import (
	"errors"
	"net/url"
)

// ErrMissingCredentials is returned when the key or secret is empty.
var ErrMissingCredentials = errors.New("buildup: API key and API secret are required")

// Credentials is the API key pair sent with every request. The zero value is
// invalid; build one with NewCredentials.
type Credentials struct {
	key    string
	secret string
}

// NewCredentials returns an immutable credential pair.
func NewCredentials(key, secret string) (Credentials, error) {
	c := Credentials{key: key, secret: secret}
	if err := c.validate(); err != nil {
		return Credentials{}, err
	}
	return c, nil
}

// Key returns the public half of the pair.
func (c Credentials) Key() string {
	return c.key
}

// String redacts the secret.
func (c Credentials) String() string {
	return "key=" + c.key + " secret=****"
}

func (c Credentials) validate() error {
	if c.key == "" || c.secret == "" {
		return ErrMissingCredentials
	}
	return nil
}

// apply attaches the pair as key and secret query parameters
func (c Credentials) apply(q url.Values) {
	q.Set("key", c.key)
	q.Set("secret", c.secret)
}
