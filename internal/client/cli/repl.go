package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/folio/internal/client/session"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	state() session.State
	Show(ctx context.Context) error
	Export(ctx context.Context, path string) error
	Reload(ctx context.Context) error
	Notifications(ctx context.Context) error
	Dismiss(ctx context.Context, id string) error
	Login(ctx context.Context) error
	Edit(ctx context.Context) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: show, export <file.html>, reload, notifications, dismiss <id>, help, exit"
	helpLocked    = "Available commands: login, help, exit"
	helpAdmin     = "Available commands: show, export <file.html>, reload, notifications, dismiss <id>, edit, status, logout, help, exit"
)

// runREPL starts a simple read-eval-print loop for the folio CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn). Commands by state:
//
//	Anonymous:
//	  - show                 print the portfolio
//	  - export <file.html>   write the HTML page
//	  - reload               fetch the portfolio again
//	  - notifications        list pending notifications
//	  - dismiss <id>         remove a notification
//	  - help, exit | quit
//
//	Admin, locked (password not entered yet):
//	  - login                enter the admin password
//	  - help, exit | quit
//
//	Admin:
//	  - all Anonymous commands
//	  - edit                 open the edit sub-shell
//	  - status               show the admin session
//	  - logout               forget the admin token
//
// Errors returned by command handlers are printed and the loop continues.
//
// Command handlers read their own input from the same reader, so the REPL
// never buffers beyond the current line.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "folio %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args, out); err != nil {
			fmt.Fprintln(out, "error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, out io.Writer) error {
	st := a.state()

	if cmd == "help" {
		switch st {
		case session.AdminUnauthenticated:
			fmt.Fprintln(out, helpLocked)
		case session.AdminAuthenticated:
			fmt.Fprintln(out, helpAdmin)
		default:
			fmt.Fprintln(out, helpAnonymous)
		}
		return nil
	}

	if st == session.AdminUnauthenticated {
		if cmd == "login" {
			return a.Login(ctx)
		}
		if isKnown(cmd) {
			fmt.Fprintln(out, "Admin access required. Type 'login' to enter the password.")
			return nil
		}
		fmt.Fprintln(out, "Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "show":
		return a.Show(ctx)
	case "export":
		if len(args) != 1 {
			fmt.Fprintln(out, "Usage: export <file.html>")
			return nil
		}
		return a.Export(ctx, args[0])
	case "reload":
		return a.Reload(ctx)
	case "notifications":
		return a.Notifications(ctx)
	case "dismiss":
		if len(args) != 1 {
			fmt.Fprintln(out, "Usage: dismiss <id>")
			return nil
		}
		return a.Dismiss(ctx, args[0])
	}

	if st == session.AdminAuthenticated {
		switch cmd {
		case "edit":
			return a.Edit(ctx)
		case "status":
			return a.Status(ctx)
		case "logout":
			return a.Logout(ctx)
		}
	}

	if cmd == "login" && st == session.Anonymous {
		fmt.Fprintln(out, "Admin mode was not requested; start with -admin to log in.")
		return nil
	}
	fmt.Fprintln(out, "Unknown command:", cmd)
	return nil
}

func isKnown(cmd string) bool {
	switch cmd {
	case "show", "export", "reload", "notifications", "dismiss", "edit", "status", "logout":
		return true
	}
	return false
}
