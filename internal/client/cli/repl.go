package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/mpdash/internal/client/router"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Open(ctx context.Context, path string) error
	Track(ctx context.Context, args []string) error
	Untrack(ctx context.Context, args []string) error
	Analyze(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	Ping(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: login, signup, open <path>, status, ping, exit"
	helpLoggedIn  = "Available commands: dashboard, profile, tracking, open <path>, analyze <article>, " +
		"track <article> [name] [price], untrack <id>, status, ping, logout, exit"
)

// routesHelp lists the paths open can show right now. Protected routes
// are listed only once logged in.
func routesHelp(loggedIn bool) string {
	var paths []string
	for _, r := range router.Routes() {
		if r.View == router.ViewRedirect || (r.Protected && !loggedIn) {
			continue
		}
		paths = append(paths, r.Path)
	}
	return "Routes: " + strings.Join(paths, " ")
}

// runREPL starts a simple read–eval–print loop for the mpdash client.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on a. Unknown commands are reported back to the
// user. The loop exits on EOF, on context cancellation, or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts:
//
//	help                           show available commands and routes
//	login | signup | logout        session commands
//	open <path> | go <path>        navigate to a route
//	dashboard | profile | tracking shortcuts for open
//	analyze <article>              analyze a product
//	track <article> [name] [price] start tracking a product
//	untrack <id>                   stop tracking a product
//	status | ping                  session and backend status
//	exit | quit                    leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("mpdash %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}
			printlnFn(routesHelp(a.isLoggedIn()))

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "open", "go":
			if len(args) == 0 {
				printlnFn("Usage: open <path>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "dashboard":
			_ = a.Open(ctx, router.PathDashboard)

		case "profile":
			_ = a.Open(ctx, router.PathProfile)

		case "tracking":
			_ = a.Open(ctx, router.PathTracking)

		case "analyze":
			_ = a.Analyze(ctx, args)

		case "track":
			_ = a.Track(ctx, args)

		case "untrack":
			_ = a.Untrack(ctx, args)

		case "status":
			_ = a.Status(ctx)

		case "ping":
			_ = a.Ping(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
