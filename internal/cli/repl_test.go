package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login", nil)
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout", nil)
	f.loggedIn = false
	return nil
}
func (f *fakeExec) List(ctx context.Context) error { f.record("list", nil); return nil }
func (f *fakeExec) Upload(ctx context.Context, paths []string) error {
	f.record("upload", paths)
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	f.record("delete", args)
	return nil
}
func (f *fakeExec) Open(ctx context.Context, args []string) error {
	f.record("open", args)
	return nil
}
func (f *fakeExec) Share(ctx context.Context, args []string) error {
	f.record("share", args)
	return nil
}
func (f *fakeExec) Copy(ctx context.Context) error { f.record("copy", nil); return nil }
func (f *fakeExec) Email(ctx context.Context, args []string) error {
	f.record("email", args)
	return nil
}

func captureREPL(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	captureREPL(t)

	input := strings.Join([]string{
		"list",
		"login",
		"l",
		"upload a.txt b.txt",
		"open 1",
		"share 2",
		"copy",
		"email bob@example.com",
		"rm 1",
		"logout",
		"exit",
	}, "\n")

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewScanner(strings.NewReader(input)))

	assert.Equal(t, []string{"login", "list", "upload", "open", "share", "copy", "email", "delete", "logout"}, f.calls)
	assert.Equal(t, []string{"a.txt", "b.txt"}, f.args[2])
	assert.Equal(t, []string{"2"}, f.args[4])
	assert.Equal(t, []string{"bob@example.com"}, f.args[6])
}

func TestRunREPL_LoggedOutRejectsCommands(t *testing.T) {
	lines := captureREPL(t)

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewScanner(strings.NewReader("upload x\nhelp\n")))

	assert.Empty(t, f.calls)
	assert.Contains(t, *lines, "Please login first (type 'help' for commands)")
	assert.Contains(t, *lines, "Available commands: login, exit")
}

func TestRunREPL_UnknownAndEmptyLines(t *testing.T) {
	lines := captureREPL(t)

	f := &fakeExec{loggedIn: true}
	runREPL(context.Background(), f, func() string { return "(Ada)" }, bufio.NewScanner(strings.NewReader("\n   \nfrobnicate\nlogin\nquit\n")))

	assert.Empty(t, f.calls)
	assert.Contains(t, *lines, "Unknown command: frobnicate")
	assert.Contains(t, *lines, "Already signed in")
	assert.Contains(t, *lines, "gd (Ada)> ")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}
