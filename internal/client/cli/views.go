package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dmitrijs2005/mpdash/internal/client/models"
	"github.com/dmitrijs2005/mpdash/internal/client/router"
)

// styles are created per output so colour support is detected for the
// writer actually used.
type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	muted lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true).Underline(true),
		label: r.NewStyle().Bold(true),
		muted: r.NewStyle().Faint(true),
	}
}

func (a *App) render(ctx context.Context, loc router.Resolution) {
	st := newStyles(a.out)
	route := loc.Route
	user := a.session.State().User

	fmt.Fprintln(a.out, st.title.Render(route.Title))

	switch route.View {
	case router.ViewLogin:
		if loc.Redirected() {
			fmt.Fprintf(a.out, "Log in to open %s.\n", loc.From)
		}
		fmt.Fprintln(a.out, "Type 'login' to sign in or 'signup' to create an account.")

	case router.ViewSignup:
		fmt.Fprintln(a.out, "Type 'signup' to create an account, or 'login' if you already have one.")

	case router.ViewDashboard:
		renderDashboard(a.out, st, user)

	case router.ViewProfile:
		renderProfile(a.out, st, user)

	case router.ViewTracking:
		a.renderTracking(ctx, st, user)

	case router.ViewProductAnalysis:
		fmt.Fprintln(a.out, "Type 'analyze <article>' to analyze a product.")

	case router.ViewNicheAnalysis, router.ViewComingSoon:
		fmt.Fprintln(a.out, st.muted.Render(route.Title+" is coming soon."))
	}
}

func renderDashboard(w io.Writer, st styles, u *models.User) {
	if u == nil {
		return
	}
	fmt.Fprintln(w, st.label.Render("Your profile"))
	fmt.Fprintf(w, "  %s\n", displayName(u))
	fmt.Fprintf(w, "  Balance:      %s\n", formatMoney(u.Balance))
	fmt.Fprintln(w, "  Subscription: free (active)")
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(router.Tools()))
	for _, tool := range router.Tools() {
		rows = append(rows, []string{tool.Title, tool.Path})
	}
	fmt.Fprintln(w, st.label.Render("Quick actions"))
	fmt.Fprintln(w, table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Tool", "Open with").
		Rows(rows...).
		Render())
	fmt.Fprintln(w, st.muted.Render("Type 'tracking' to see tracked products."))
}

func renderProfile(w io.Writer, st styles, u *models.User) {
	if u == nil {
		return
	}
	fields := [][2]string{
		{"ID", strconv.FormatInt(u.ID, 10)},
		{"Username", u.Username},
		{"Email", u.Email},
		{"Active", yesNo(u.IsActive)},
		{"Superuser", yesNo(u.IsSuperuser)},
		{"Balance", formatMoney(u.Balance)},
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%s %s\n", st.label.Render(fmt.Sprintf("%-10s", f[0]+":")), f[1])
	}
}

func (a *App) renderTracking(ctx context.Context, st styles, u *models.User) {
	if u == nil {
		return
	}
	list, err := a.products.Tracked(ctx, u.ID)
	if err != nil {
		a.reportError("Cannot load tracked products", err)
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "You are not tracking any products yet. Use 'track <article> [name] [price]'.")
		return
	}

	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Article,
			p.Name,
			formatMoney(p.Price),
			p.LastChecked,
		})
	}
	fmt.Fprintln(a.out, table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Article", "Name", "Price", "Last checked").
		Rows(rows...).
		Render())
	fmt.Fprintln(a.out, st.muted.Render("Use 'untrack <id>' to stop tracking."))
}

func renderAnalysis(w io.Writer, res *models.ProductAnalysis) {
	st := newStyles(w)

	name := res.Name
	if name == "" {
		name = res.Article
	}
	fmt.Fprintln(w, st.label.Render(name))
	fmt.Fprintf(w, "  Article: %s\n", res.Article)
	if res.Brand != "" {
		fmt.Fprintf(w, "  Brand:   %s\n", res.Brand)
	}
	fmt.Fprintf(w, "  Price:   %s\n", formatMoney(res.Price))
	if res.Rating != nil {
		fmt.Fprintf(w, "  Rating:  %.1f\n", *res.Rating)
	}
	if res.ReviewsCount != nil {
		fmt.Fprintf(w, "  Reviews: %d\n", *res.ReviewsCount)
	}
	if len(res.SalesData) > 0 {
		fmt.Fprintf(w, "  Sales:   %s\n", compact(res.SalesData))
	}
	if len(res.PositionData) > 0 {
		fmt.Fprintf(w, "  Search:  %s\n", compact(res.PositionData))
	}
	for _, c := range res.Charts {
		fmt.Fprintf(w, "  Chart:   %s\n", c)
	}
	if len(res.Recommendations) > 0 {
		fmt.Fprintln(w, st.label.Render("Recommendations"))
		for _, r := range res.Recommendations {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}
}

func displayName(u *models.User) string {
	if u.Username != "" {
		return u.Username
	}
	return "User"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// compact flattens opaque JSON onto one line, cut at a readable width.
func compact(raw []byte) string {
	const limit = 120
	s := strings.Join(strings.Fields(string(raw)), " ")
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
