// Package router holds the client route table and the guard that gates
// protected views behind an authenticated session.
package router

import (
	"path"
	"strings"
)

const (
	PathRoot             = "/"
	PathLogin            = "/login"
	PathSignup           = "/signup"
	PathDashboard        = "/dashboard"
	PathProductAnalysis  = "/product-analysis"
	PathNicheAnalysis    = "/niche-analysis"
	PathTracking         = "/tracking"
	PathProfile          = "/profile"
	PathQueryOracle      = "/query-oracle"
	PathBrandAnalysis    = "/brand-analysis"
	PathSupplierAnalysis = "/supplier-analysis"
	PathCategoryAnalysis = "/category-analysis"
	PathItemAnalysis     = "/item-analysis"
	PathVisualAnalysis   = "/visual-analysis"
	PathAdMonitoring     = "/ad-monitoring"
	PathAIAssistant      = "/ai-assistant"
	PathSupplyPlan       = "/supply-plan"
	PathGlobalSearch     = "/global-search"
)

// View tells the presentation layer which kind of screen a route shows.
type View int

const (
	ViewRedirect View = iota
	ViewLogin
	ViewSignup
	ViewDashboard
	ViewProductAnalysis
	ViewNicheAnalysis
	ViewTracking
	ViewProfile
	ViewComingSoon
)

// Route is one entry of the route table.
type Route struct {
	Path      string
	Title     string
	View      View
	Protected bool
	// RedirectTo is set for ViewRedirect routes only.
	RedirectTo string
}

var table = []Route{
	{Path: PathLogin, Title: "Login", View: ViewLogin},
	{Path: PathSignup, Title: "Sign up", View: ViewSignup},
	{Path: PathRoot, View: ViewRedirect, RedirectTo: PathDashboard},

	{Path: PathDashboard, Title: "Dashboard", View: ViewDashboard, Protected: true},
	{Path: PathProductAnalysis, Title: "Product analysis", View: ViewProductAnalysis, Protected: true},
	{Path: PathNicheAnalysis, Title: "Niches and trends", View: ViewNicheAnalysis, Protected: true},
	{Path: PathTracking, Title: "Tracking", View: ViewTracking, Protected: true},
	{Path: PathProfile, Title: "Profile", View: ViewProfile, Protected: true},

	{Path: PathQueryOracle, Title: "Query oracle", View: ViewComingSoon, Protected: true},
	{Path: PathBrandAnalysis, Title: "Brand analysis", View: ViewComingSoon, Protected: true},
	{Path: PathSupplierAnalysis, Title: "Supplier analysis", View: ViewComingSoon, Protected: true},
	{Path: PathCategoryAnalysis, Title: "Category analysis", View: ViewComingSoon, Protected: true},
	{Path: PathItemAnalysis, Title: "Item analysis", View: ViewComingSoon, Protected: true},
	{Path: PathVisualAnalysis, Title: "Visual analysis", View: ViewComingSoon, Protected: true},
	{Path: PathAdMonitoring, Title: "Ad monitoring", View: ViewComingSoon, Protected: true},
	{Path: PathAIAssistant, Title: "AI assistant", View: ViewComingSoon, Protected: true},
	{Path: PathSupplyPlan, Title: "Supply plan", View: ViewComingSoon, Protected: true},
	{Path: PathGlobalSearch, Title: "Global search", View: ViewComingSoon, Protected: true},
}

var byPath = func() map[string]Route {
	m := make(map[string]Route, len(table))
	for _, r := range table {
		m[r.Path] = r
	}
	return m
}()

// Routes returns a copy of the route table in declaration order.
func Routes() []Route {
	out := make([]Route, len(table))
	copy(out, table)
	return out
}

// Lookup finds the route for an already normalized path.
func Lookup(p string) (Route, bool) {
	r, ok := byPath[p]
	return r, ok
}

// Normalize turns user input into a route path: query and fragment are
// dropped, a leading slash is added and a trailing one removed.
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Tool is an entry of the dashboard tool grid.
type Tool struct {
	Title string
	Path  string
}

// Tools lists the dashboard shortcuts in display order.
func Tools() []Tool {
	paths := []string{
		PathProductAnalysis,
		PathBrandAnalysis,
		PathSupplierAnalysis,
		PathCategoryAnalysis,
		PathItemAnalysis,
		PathNicheAnalysis,
		PathVisualAnalysis,
		PathAdMonitoring,
		PathAIAssistant,
		PathSupplyPlan,
		PathTracking,
		PathGlobalSearch,
	}
	tools := make([]Tool, 0, len(paths))
	for _, p := range paths {
		tools = append(tools, Tool{Title: byPath[p].Title, Path: p})
	}
	return tools
}
