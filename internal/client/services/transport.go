// Package services contains application services for the mpdash client.
// Each service is a thin, stateless mapping of operations onto backend
// endpoints; none of them retries or caches.
package services

import (
	"context"
	"net/url"
)

// Transport is the subset of *api.Client the services need.
type Transport interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
	PostJSON(ctx context.Context, path string, in, out any) error
	PostForm(ctx context.Context, path string, form url.Values, out any) error
	Delete(ctx context.Context, path string, out any) error
}
