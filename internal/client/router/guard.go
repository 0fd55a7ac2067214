package router

// maxRedirects bounds table-level redirects while resolving a path.
const maxRedirects = 4

// Decision is the outcome of guarding a single route.
type Decision struct {
	// Allowed reports whether the route may be rendered as requested.
	Allowed bool
	// RedirectTo is the login path when Allowed is false.
	RedirectTo string
	// From is the path the caller originally asked for.
	From string
}

// Guard decides whether route may render for a caller whose session is
// authenticated or not. Public routes always render; protected ones
// redirect to the login view unless authenticated.
func Guard(authenticated bool, route Route) Decision {
	if !route.Protected || authenticated {
		return Decision{Allowed: true}
	}
	return Decision{RedirectTo: PathLogin, From: route.Path}
}

// Resolution is the route that ends up rendered for a requested path.
type Resolution struct {
	Route Route
	// From is set when the guard sent the caller to the login view and
	// holds the protected path that was asked for.
	From string
}

// Redirected reports whether the guard rerouted the request to login.
func (r Resolution) Redirected() bool {
	return r.From != ""
}

// Resolve follows the route table for the requested path. Unknown
// paths fall back to the root, the root redirects to the dashboard,
// and the guard runs on the final route.
func Resolve(authenticated bool, requested string) Resolution {
	p := Normalize(requested)

	route, ok := Lookup(p)
	for i := 0; i < maxRedirects && (!ok || route.View == ViewRedirect); i++ {
		if !ok {
			p = PathRoot
		} else {
			p = route.RedirectTo
		}
		route, ok = Lookup(p)
	}

	d := Guard(authenticated, route)
	if d.Allowed {
		return Resolution{Route: route}
	}
	login, _ := Lookup(d.RedirectTo)
	return Resolution{Route: login, From: d.From}
}
