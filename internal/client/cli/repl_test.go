package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/boardkeeper/internal/client/client"
	"github.com/dmitrijs2005/boardkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls     []string
	redirects int
}

func (f *fakeExec) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.err
}

func (f *fakeExec) isLoggedIn() bool                       { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error     { return f.record("register") }
func (f *fakeExec) Profile(ctx context.Context) error      { return f.record("profile") }
func (f *fakeExec) New(ctx context.Context) error          { return f.record("new") }
func (f *fakeExec) Boards(ctx context.Context, p int) error { return f.record("boards %d", p) }
func (f *fakeExec) Show(ctx context.Context, id int64) error {
	return f.record("show %d", id)
}
func (f *fakeExec) Edit(ctx context.Context, id int64) error {
	return f.record("edit %d", id)
}
func (f *fakeExec) Delete(ctx context.Context, id int64) error {
	return f.record("delete %d", id)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) FollowRedirect(ctx context.Context) error {
	f.redirects++
	return nil
}

// captureOutput stubs printlnFn and printFn and returns everything printed.
func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	var out strings.Builder
	origPrintln, origPrint := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&out, a...) }
	printFn = func(a ...any) (int, error) { return fmt.Fprint(&out, a...) }
	t.Cleanup(func() { printlnFn, printFn = origPrintln, origPrint })
	return &out
}

func runWith(exec execIface, lines ...string) {
	reader := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, reader)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runWith(exec,
		"help",
		"login",
		"boards",
		"list 3",
		"l 2",
		"show 7",
		"edit 8",
		"delete 9",
		"new",
		"profile",
		"register",
		"logout",
		"",
		"exit",
		"boards",
	)

	assert.Equal(t, []string{
		"login", "boards 1", "boards 3", "boards 2", "show 7", "edit 8",
		"delete 9", "new", "profile", "register", "logout",
	}, exec.calls)
	assert.Equal(t, 12, exec.redirects)
	assert.Contains(t, out.String(), "board status> ")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunREPL_Usage(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runWith(exec, "show", "edit abc", "delete -1", "boards 0", "boards x", "frobnicate", "quit")

	assert.Empty(t, exec.calls)
	s := out.String()
	assert.Contains(t, s, "Usage: show <id>")
	assert.Contains(t, s, "Usage: edit <id>")
	assert.Contains(t, s, "Usage: delete <id>")
	assert.Contains(t, s, "Usage: boards [page]")
	assert.Contains(t, s, "Unknown command: frobnicate")
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	out := captureOutput(t)
	runWith(&fakeExec{}, "help", "exit")
	assert.Contains(t, out.String(), "register, login")

	out.Reset()
	runWith(&fakeExec{loggedIn: true}, "help", "exit")
	assert.Contains(t, out.String(), "logout")
	assert.NotContains(t, out.String(), "register")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runWith(exec, "show 1")

	require.Equal(t, []string{"show 1"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	captureOutput(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("show 1\n")))

	assert.Empty(t, exec.calls)
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{err: &client.APIError{StatusCode: 404, Message: "no such board"}}
	runWith(exec, "show 5", "exit")

	assert.Contains(t, out.String(), "no such board")
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", fmt.Errorf("get board error: %w", &client.APIError{StatusCode: 400, Message: "Title too long"}), "Title too long"},
		{"validation", fmt.Errorf("%w: title is required", common.ErrValidation), "validation error: title is required"},
		{"unauthorized", &client.APIError{StatusCode: 401}, "Your credentials were rejected."},
		{"forbidden", &client.APIError{StatusCode: 403}, "You are not allowed to do that."},
		{"not found", &client.APIError{StatusCode: 404}, "Board not found."},
		{"unavailable", &client.APIError{StatusCode: 503}, "Server unavailable, try again later."},
		{"cancelled", context.Canceled, "Cancelled."},
		{"other", errors.New("boom"), "Request failed: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeError(tt.err))
		})
	}
}

func TestParseID(t *testing.T) {
	id, ok := parseID([]string{"42"})
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, args := range [][]string{nil, {"0"}, {"-3"}, {"x"}} {
		_, ok := parseID(args)
		assert.False(t, ok, "%v", args)
	}
}
