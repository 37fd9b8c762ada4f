package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aakashsubedi/NoteSpace/internal/auth"
	"github.com/aakashsubedi/NoteSpace/internal/model"
	"github.com/aakashsubedi/NoteSpace/internal/note"
)

type app struct {
	auth   auth.UseCase
	notes  note.UseCase
	stdin  io.Reader
	out    printer
	errOut printer
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func (a *app) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest, false)
	case "signup":
		return a.login(ctx, rest, true)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami()
	case "refresh":
		return a.refresh(ctx)
	case "list":
		return a.list(ctx, rest)
	case "tags":
		return a.tags(ctx)
	case "show":
		return a.show(ctx, rest)
	case "create":
		return a.create(ctx, rest)
	case "edit":
		return a.edit(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	default:
		return usageError{msg: fmt.Sprintf("unknown command %q", cmd)}
	}
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usageError{msg: fmt.Sprintf("%s: %v", fs.Name(), err)}
	}
	return nil
}

func (a *app) login(ctx context.Context, args []string, signup bool) error {
	name := "login"
	if signup {
		name = "signup"
	}
	fs := newFlagSet(name)
	email := fs.String("email", "", "email or username")
	password := fs.String("password", "", "password (read from NOTESPACE_PASSWORD or stdin when omitted)")
	if err := parse(fs, args); err != nil {
		return err
	}

	reader := bufio.NewReader(a.stdin)
	if *email == "" {
		*email = a.prompt(reader, "Email: ")
	}
	if *password == "" {
		*password = os.Getenv("NOTESPACE_PASSWORD")
	}
	if *password == "" {
		*password = a.prompt(reader, "Password: ")
	}

	var (
		u   model.User
		err error
	)
	if signup {
		u, err = a.auth.Signup(ctx, *email, *password)
	} else {
		u, err = a.auth.Login(ctx, *email, *password)
	}
	if err != nil {
		return err
	}
	a.out.success("Logged in as %s", u.Username)
	return nil
}

func (a *app) prompt(r *bufio.Reader, label string) string {
	a.errOut.plain("%s", label)
	line, _ := r.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

func (a *app) logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.out.success("Logged out")
	return nil
}

func (a *app) whoami() error {
	st := a.auth.Status()
	if st.State != model.StateAuthenticated {
		a.out.plain("Not logged in\n")
		return nil
	}
	a.out.plain("%s", formatStatus(st))
	return nil
}

func (a *app) refresh(ctx context.Context) error {
	u, err := a.auth.Refresh(ctx)
	if err != nil {
		return err
	}
	a.out.success("Session renewed for %s", u.Username)
	return nil
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list")
	search := fs.String("search", "", "case-insensitive text in title or content")
	tag := fs.String("tag", "", "only notes with this tag")
	if err := parse(fs, args); err != nil {
		return err
	}

	out, err := a.notes.List(ctx, note.ListInput{Search: *search, Tag: *tag})
	if err != nil {
		return err
	}
	if out.Total == 0 {
		a.out.plain("No notes yet. Create one with: notespace create --title ... --content ...\n")
		return nil
	}
	if len(out.Notes) == 0 {
		a.out.plain("No notes match your filters.\n")
		return nil
	}
	a.out.plain("%s", formatNoteTable(out.Notes))
	a.out.plain("%d of %d notes\n", len(out.Notes), out.Total)
	return nil
}

func (a *app) tags(ctx context.Context) error {
	out, err := a.notes.List(ctx, note.ListInput{})
	if err != nil {
		return err
	}
	for _, t := range out.Tags {
		a.out.plain("%s\n", t)
	}
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	id, err := singleID("show", args)
	if err != nil {
		return err
	}
	n, err := a.notes.Detail(ctx, id)
	if err != nil {
		return err
	}
	a.out.plain("%s", formatNote(n))
	return nil
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := newFlagSet("create")
	title := fs.String("title", "", "note title")
	content := fs.String("content", "", "note content")
	tags := fs.StringSlice("tag", nil, "tag, repeatable or comma separated")
	if err := parse(fs, args); err != nil {
		return err
	}

	n, err := a.notes.Create(ctx, note.CreateInput{Title: *title, Content: *content, Tags: *tags})
	if err != nil {
		return err
	}
	a.out.success("Created note %s", n.ID)
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	fs := newFlagSet("edit")
	title := fs.String("title", "", "new title")
	content := fs.String("content", "", "new content")
	if err := parse(fs, args); err != nil {
		return err
	}
	id, err := singleID("edit", fs.Args())
	if err != nil {
		return err
	}

	n, err := a.notes.Update(ctx, note.UpdateInput{ID: id, Title: *title, Content: *content})
	if err != nil {
		return err
	}
	a.out.success("Updated note %s", n.ID)
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	id, err := singleID("delete", args)
	if err != nil {
		return err
	}
	if err := a.notes.Delete(ctx, id); err != nil {
		return err
	}
	a.out.success("Deleted note %s", id)
	return nil
}

func singleID(cmd string, args []string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", usageError{msg: fmt.Sprintf("%s: expected exactly one note id", cmd)}
	}
	return args[0], nil
}
