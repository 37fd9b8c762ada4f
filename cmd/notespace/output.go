package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/aakashsubedi/NoteSpace/internal/auth"
	"github.com/aakashsubedi/NoteSpace/internal/model"
	"github.com/aakashsubedi/NoteSpace/pkg/httpclient"
)

const (
	timeLayout = "2006-01-02 15:04"
	loginHint  = "Run `notespace login` to sign in again."
	maxTitle   = 40
)

type printer struct {
	w     io.Writer
	ok    *color.Color
	bad   *color.Color
	faint *color.Color
}

func newPrinter(w io.Writer) printer {
	return printer{
		w:     w,
		ok:    color.New(color.FgGreen),
		bad:   color.New(color.FgRed, color.Bold),
		faint: color.New(color.FgHiBlack),
	}
}

func (p printer) plain(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p printer) success(format string, args ...any) {
	p.ok.Fprintf(p.w, format+"\n", args...)
}

// failure renders err for a person. API errors get the message for their
// kind; an expired session also gets a pointer back to login.
func (p printer) failure(err error) {
	var usage usageError
	if errors.As(err, &usage) {
		p.bad.Fprintf(p.w, "Error: %s\n", usage.msg)
		p.faint.Fprintln(p.w, "Run `notespace --help` for usage.")
		return
	}

	if errors.Is(err, auth.ErrInvalidCredentials) {
		p.bad.Fprintf(p.w, "Error: %s\n", capitalize(auth.ErrInvalidCredentials.Error()))
		return
	}

	apiErr, ok := httpclient.AsAPIError(err)
	if !ok {
		p.bad.Fprintf(p.w, "Error: %s\n", capitalize(err.Error()))
		return
	}

	p.bad.Fprintf(p.w, "Error: %s\n", apiErr.Message())
	if apiErr.Kind == httpclient.KindUnauthenticated {
		p.faint.Fprintln(p.w, loginHint)
	}
}

func formatStatus(st auth.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Logged in as %s", st.User.Username)
	if st.User.Email != "" && st.User.Email != st.User.Username {
		fmt.Fprintf(&b, " <%s>", st.User.Email)
	}
	b.WriteString("\n")
	if !st.ExpiresAt.IsZero() {
		if st.Expired(time.Now()) {
			fmt.Fprintf(&b, "Access token expired at %s; run `notespace refresh`\n", st.ExpiresAt.Local().Format(timeLayout))
		} else {
			fmt.Fprintf(&b, "Access token valid until %s\n", st.ExpiresAt.Local().Format(timeLayout))
		}
	}
	return b.String()
}

func formatNoteTable(notes []model.Note) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTAGS\tUPDATED")
	for _, n := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			n.ID, truncate(n.Title, maxTitle), strings.Join(n.Tags, ","), n.UpdatedAt.Local().Format(timeLayout))
	}
	tw.Flush()
	return b.String()
}

func formatNote(n model.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", n.Title, n.Content)
	if len(n.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(n.Tags, ", "))
	}
	fmt.Fprintf(&b, "Created: %s\n", n.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(&b, "Updated: %s\n", n.UpdatedAt.Local().Format(timeLayout))
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
