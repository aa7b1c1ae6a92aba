// Package opensearch builds clients for remote OpenSearch clusters on top of
// github.com/opensearch-project/opensearch-go/v2.
//
// A Root owns the HTTP transport, and therefore the TCP connections, for one
// endpoint. Roots are meant to be pooled and shared by every data source that
// points at the same endpoint. Per request, callers derive a Child from a
// Root; the child reuses the root's connections and carries its own
// authentication, so one root can serve many tenants with different
// credentials at the same time.
//
// TLS certificate verification is always enforced. Config.CACertFile adds a
// private CA to the system roots; there is no way to skip verification.
//
// # Usage
//
//	root, err := opensearch.NewRoot("https://search.internal:9200", opensearch.DefaultConfig())
//	if err != nil {
//		// errors.Is(err, opensearch.ErrInvalidEndpoint)
//	}
//	defer root.Close()
//
//	child := root.Child(opensearch.WithBasicAuth("reader", secret))
//	if err := opensearch.Healthcheck(child.Client)(ctx); err != nil {
//		// errors.Is(err, opensearch.ErrHealthcheckFailed)
//	}
package opensearch
