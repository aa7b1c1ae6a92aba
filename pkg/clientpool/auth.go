package clientpool

import (
	"fmt"

	"github.com/dmitrymomot/datasource/pkg/datasource"
	"github.com/dmitrymomot/datasource/pkg/opensearch"
)

// Derive builds a child of root carrying the credential's authentication.
// The root is never modified.
func Derive(root RootClient, cred *datasource.Credential) (*opensearch.Child, error) {
	auth, err := cred.Authenticator()
	if err != nil {
		return nil, err
	}

	switch a := auth.(type) {
	case datasource.NoAuth:
		return root.Child(), nil
	case datasource.BasicAuth:
		return root.Child(opensearch.WithBasicAuth(a.Username, a.Password)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAuthType, string(auth.Scheme()))
}
