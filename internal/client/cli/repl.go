package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/boardkeeper/internal/client/client"
	"github.com/dmitrijs2005/boardkeeper/internal/common"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Boards(ctx context.Context, page int) error
	Show(ctx context.Context, id int64) error
	New(ctx context.Context) error
	Edit(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	FollowRedirect(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the board CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Errors returned by a command are reported
// to the user and the loop goes on. After every command a redirect queued
// by the request pipeline (e.g. after the server rejected the credential)
// is followed. The loop exits on EOF, on ctx cancellation or when the user
// types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help              show available commands
//	  - register          create an account
//	  - login             authenticate
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - profile           show the current user
//	  - boards [page]     list board posts
//	  - show <id>         show one post
//	  - new               write a post
//	  - edit <id>         edit a post
//	  - delete <id>       delete a post
//	  - logout            log out
//
// Board commands may be typed while logged out; they ask for a login first.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printFn(fmt.Sprintf("board %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, boards [page], show <id>, new, edit <id>, delete <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, boards [page], show <id>, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "boards", "list", "l":
			page := 1
			if len(args) > 0 {
				p, err := strconv.Atoi(args[0])
				if err != nil || p < 1 {
					printlnFn("Usage: boards [page]")
					continue
				}
				page = p
			}
			cmdErr = a.Boards(ctx, page)

		case "show", "edit", "delete":
			id, ok := parseID(args)
			if !ok {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "show":
				cmdErr = a.Show(ctx, id)
			case "edit":
				cmdErr = a.Edit(ctx, id)
			default:
				cmdErr = a.Delete(ctx, id)
			}

		case "new":
			cmdErr = a.New(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(describeError(cmdErr))
		}
		if err := a.FollowRedirect(ctx); err != nil {
			printlnFn(describeError(err))
		}
	}
}

func parseID(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// describeError turns a command error into a message for the user.
func describeError(err error) string {
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	switch {
	case errors.Is(err, common.ErrValidation):
		return err.Error()
	case errors.Is(err, client.ErrUnauthorized):
		return "Your credentials were rejected."
	case errors.Is(err, client.ErrForbidden):
		return "You are not allowed to do that."
	case errors.Is(err, client.ErrNotFound):
		return "Board not found."
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later."
	case errors.Is(err, context.Canceled), errors.Is(err, io.EOF):
		return "Cancelled."
	default:
		return "Request failed: " + err.Error()
	}
}
