package opensearch

import (
	"net/http"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
	"github.com/opensearch-project/opensearch-go/v2/opensearchtransport"
)

// BasicAuth is the username/password pair attached to a child client.
type BasicAuth struct {
	Username string
	Password string
}

// ChildOption configures a derived client.
type ChildOption func(*childOptions)

type childOptions struct {
	basic *BasicAuth
}

// WithBasicAuth attaches HTTP basic credentials. Values are used verbatim,
// empty strings included.
func WithBasicAuth(username, password string) ChildOption {
	return func(o *childOptions) {
		o.basic = &BasicAuth{Username: username, Password: password}
	}
}

// Child is a client derived from a Root for a single logical operation.
// It shares the root's connections and carries its own authentication.
type Child struct {
	*opensearch.Client
	endpoint string
	basic    *BasicAuth
}

// Child derives a new client that reuses the root transport.
func (r *Root) Child(opts ...ChildOption) *Child {
	var o childOptions
	for _, opt := range opts {
		opt(&o)
	}

	var transport opensearchtransport.Interface = r.client.Transport
	if o.basic != nil {
		transport = &basicAuthTransport{next: transport, auth: *o.basic}
	}

	return &Child{
		Client: &opensearch.Client{
			API:       opensearchapi.New(transport),
			Transport: transport,
		},
		endpoint: r.endpoint,
		basic:    o.basic,
	}
}

// Endpoint returns the endpoint of the root the child was derived from.
func (c *Child) Endpoint() string {
	return c.endpoint
}

// BasicAuth returns the credentials attached to the child, if any.
func (c *Child) BasicAuth() (BasicAuth, bool) {
	if c.basic == nil {
		return BasicAuth{}, false
	}
	return *c.basic, true
}

// basicAuthTransport sets the Authorization header before delegating to the
// shared root transport, which leaves an existing header untouched.
type basicAuthTransport struct {
	next opensearchtransport.Interface
	auth BasicAuth
}

func (t *basicAuthTransport) Perform(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.auth.Username, t.auth.Password)
	return t.next.Perform(req)
}
