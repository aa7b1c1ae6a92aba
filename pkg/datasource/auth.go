package datasource

import "fmt"

// AuthType is the stored authentication scheme tag of a credential.
type AuthType string

const (
	AuthNoAuth AuthType = "noauth"
	AuthBasic  AuthType = "basic"
)

// Authenticator is the closed set of supported schemes. New schemes are
// added as a new variant plus a case in Credential.Authenticator; code that
// consumes an Authenticator type-switches over the variants.
type Authenticator interface {
	Scheme() AuthType
	authenticator()
}

// NoAuth sends requests without credentials.
type NoAuth struct{}

func (NoAuth) Scheme() AuthType { return AuthNoAuth }
func (NoAuth) authenticator()   {}

// BasicAuth sends HTTP basic credentials taken verbatim from the record.
type BasicAuth struct {
	Username string
	Password string
}

func (BasicAuth) Scheme() AuthType { return AuthBasic }
func (BasicAuth) authenticator()   {}

// Authenticator maps the stored tag to its variant.
func (c *Credential) Authenticator() (Authenticator, error) {
	switch c.AuthType {
	case AuthNoAuth:
		return NoAuth{}, nil
	case AuthBasic:
		return BasicAuth{Username: c.Materials.Username, Password: c.Materials.Password}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAuthType, string(c.AuthType))
}
