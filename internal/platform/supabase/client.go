// Package supabase connects to the PostgREST API exposed by a Supabase
// project (<url>/rest/v1/<table>).
package supabase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
)

const restPath = "/rest/v1"

type Client struct {
	restURL   string
	apiKey    string
	transport http.RoundTripper
}

// NewClient builds a client for the project at baseURL. A non-zero timeout
// bounds how long a request waits for response headers.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.ResponseHeaderTimeout = timeout

	return &Client{
		restURL:   strings.TrimRight(baseURL, "/") + restPath,
		apiKey:    apiKey,
		transport: t,
	}
}

// From starts a query against table. Requests made by the returned builder
// are cancelled with ctx.
func (c *Client) From(ctx context.Context, table string) *postgrest.QueryBuilder {
	pc := postgrest.NewClient(c.restURL, "", nil)
	// A malformed URL leaves Transport nil; the builder then reports
	// pc.ClientError on Execute.
	if pc.Transport != nil {
		pc.SetApiKey(c.apiKey).SetAuthToken(c.apiKey)
		pc.Transport.Parent = contextTransport{ctx: ctx, next: c.transport}
	}
	return pc.From(table)
}

type contextTransport struct {
	ctx  context.Context
	next http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.next.RoundTrip(req.WithContext(t.ctx))
}
