package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL chrome output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Upload(ctx context.Context, paths []string) error
	Delete(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Share(ctx context.Context, args []string) error
	Copy(ctx context.Context) error
	Email(ctx context.Context, args []string) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit" or "quit". Handlers print their own results; their errors are
// not acted on here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gd %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				printlnFn("Available commands: login, exit")
			case "login":
				_ = a.Login(ctx)
			case "exit", "quit":
				printlnFn("Bye!")
				return
			default:
				printlnFn("Please login first (type 'help' for commands)")
			}
			continue
		}

		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist, upload <path>..., delete <n>, open <n>, share <n>, copy, email <address>, logout, exit")

		case "login":
			printlnFn("Already signed in")

		case "l", "list":
			_ = a.List(ctx)

		case "upload":
			_ = a.Upload(ctx, args)

		case "delete", "rm":
			_ = a.Delete(ctx, args)

		case "open":
			_ = a.Open(ctx, args)

		case "share":
			_ = a.Share(ctx, args)

		case "copy":
			_ = a.Copy(ctx)

		case "email":
			_ = a.Email(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
