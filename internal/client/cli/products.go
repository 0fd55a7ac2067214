package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/mpdash/internal/client/api"
	"github.com/dmitrijs2005/mpdash/internal/client/models"
	"github.com/dmitrijs2005/mpdash/internal/client/router"
)

var errUsage = errors.New("usage")

// Open navigates to path and renders whatever the router resolves.
func (a *App) Open(ctx context.Context, path string) error {
	a.Navigate(path)
	a.flush(ctx)
	return nil
}

// requireUser runs the guard for path; when the session is anonymous the
// login view is rendered instead and ok is false.
func (a *App) requireUser(ctx context.Context, path string) (*models.User, bool) {
	user := a.session.State().User
	if user != nil {
		return user, true
	}
	a.Navigate(path)
	a.flush(ctx)
	return nil, false
}

// Analyze runs the product analysis for an article.
func (a *App) Analyze(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: analyze <article>")
		return errUsage
	}
	if _, ok := a.requireUser(ctx, router.PathProductAnalysis); !ok {
		return nil
	}
	a.enter(router.PathProductAnalysis)

	res, err := a.products.Analyze(ctx, args[0])
	if err != nil {
		a.reportError("Analysis failed", err)
		return err
	}
	renderAnalysis(a.out, res)
	return nil
}

// Track starts tracking an article for the current user. Name and price
// are optional.
func (a *App) Track(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: track <article> [name] [price]")
		return errUsage
	}
	user, ok := a.requireUser(ctx, router.PathTracking)
	if !ok {
		return nil
	}

	data := models.TrackProductData{Article: args[0], UserID: user.ID}
	rest := args[1:]
	if n := len(rest); n > 0 {
		if price, err := strconv.ParseFloat(rest[n-1], 64); err == nil {
			data.Price = &price
			rest = rest[:n-1]
		}
	}
	data.Name = strings.Join(rest, " ")

	p, err := a.products.Track(ctx, data)
	if err != nil {
		a.reportError("Tracking failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Tracking %s (id %d).\n", p.Article, p.ID)
	return nil
}

// Untrack stops tracking a product by its tracking id.
func (a *App) Untrack(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: untrack <id>")
		return errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintln(a.out, "Usage: untrack <id>")
		return errUsage
	}
	if _, ok := a.requireUser(ctx, router.PathTracking); !ok {
		return nil
	}

	p, err := a.products.Untrack(ctx, id)
	if err != nil {
		a.reportError("Untracking failed", err)
		return err
	}
	fmt.Fprintf(a.out, "Stopped tracking %s.\n", p.Article)
	return nil
}

func (a *App) reportError(prefix string, err error) {
	a.logger.Warn(context.Background(), strings.ToLower(prefix), "error", err)
	if detail, ok := api.Detail(err); ok {
		fmt.Fprintf(a.out, "%s: %s\n", prefix, detail)
		return
	}
	fmt.Fprintf(a.out, "%s: %v\n", prefix, err)
}
