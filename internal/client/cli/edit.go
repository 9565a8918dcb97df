package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/folio/internal/client/editor"
	"github.com/dmitrijs2005/folio/internal/client/session"
	"github.com/dmitrijs2005/folio/internal/client/upload"
	"github.com/dmitrijs2005/folio/internal/render"
)

const editHelp = `Edit commands (positions start at 1):
  set name|about|pic <value>
  contact email|phone|address <value>
  roles|expertise|projects|social add
  roles|expertise|projects|social rm <n>
  roles set <n> <value>
  expertise|projects|social set <n> <field> <value>
  upload pic <path>
  upload expertise|projects|social <n> <path>
  clear pic
  list, diff, save, cancel, help`

// Edit opens the edit sub-shell over a draft of the portfolio. It returns when
// the draft is saved, cancelled, or the admin session ends.
func (a *App) Edit(ctx context.Context) error {
	ed, err := a.ctrl.OpenEditor()
	if err != nil {
		return err
	}
	a.println("Editing portfolio. Type 'help' for edit commands.")

	for {
		a.printf("edit %s> ", ed.ID())
		line, err := readLine(a.reader)
		if err != nil {
			ed.Cancel()
			return nil
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		done, err := a.editCommand(ctx, ed, parts, line)
		if err != nil {
			a.println("error:", err)
		}
		if done {
			return nil
		}
	}
}

// editCommand runs one sub-shell command and reports whether the sub-shell
// should close.
func (a *App) editCommand(ctx context.Context, ed *editor.Editor, parts []string, line string) (bool, error) {
	cmd := parts[0]

	switch cmd {
	case "help":
		a.println(editHelp)
		return false, nil

	case "cancel":
		ed.Cancel()
		a.println("Changes discarded.")
		return true, nil

	case "list":
		p := ed.Preview()
		return false, render.Text(a.out, &p, a.year())

	case "diff":
		u := ed.Changes()
		if u.IsEmpty() {
			a.println(editor.MsgNoChanges)
			return false, nil
		}
		b, err := json.MarshalIndent(u, "", "  ")
		if err != nil {
			return false, err
		}
		a.println(string(b))
		return false, nil

	case "save":
		return a.save(ctx, ed)

	case "set":
		if len(parts) < 2 {
			return false, usage("set name|about|pic <value>")
		}
		value := restAfter(line, 2)
		switch parts[1] {
		case "name":
			return false, ed.SetName(value)
		case "about":
			return false, ed.SetAbout(value)
		case "pic":
			return false, ed.SetProfilePic(value)
		}
		return false, usage("set name|about|pic <value>")

	case "contact":
		if len(parts) < 2 {
			return false, usage("contact email|phone|address <value>")
		}
		return false, ed.SetContact(parts[1], restAfter(line, 2))

	case "clear":
		if len(parts) != 2 || parts[1] != "pic" {
			return false, usage("clear pic")
		}
		return false, ed.ClearImage(editor.ProfileImage())

	case "upload":
		return false, a.uploadCommand(ctx, ed, parts)
	}

	kind, err := editor.ParseListKind(cmd)
	if err != nil {
		a.println("Unknown command:", cmd)
		return false, nil
	}
	return false, a.listCommand(ed, kind, parts, line)
}

func (a *App) listCommand(ed *editor.Editor, kind editor.ListKind, parts []string, line string) error {
	if len(parts) < 2 {
		return usage(string(kind) + " add|rm|set")
	}

	switch parts[1] {
	case "add":
		if _, err := ed.Append(kind); err != nil {
			return err
		}
		a.printf("Added %s #%d\n", kind, ed.Len(kind))
		return nil

	case "rm":
		if len(parts) != 3 {
			return usage(string(kind) + " rm <n>")
		}
		i, err := position(parts[2])
		if err != nil {
			return err
		}
		return ed.RemoveAt(kind, i)

	case "set":
		if kind == editor.Roles {
			if len(parts) < 4 {
				return usage("roles set <n> <value>")
			}
			i, err := position(parts[2])
			if err != nil {
				return err
			}
			return ed.UpdateAt(kind, i, "", restAfter(line, 3))
		}
		if len(parts) < 5 {
			return usage(string(kind) + " set <n> <field> <value>")
		}
		i, err := position(parts[2])
		if err != nil {
			return err
		}
		return ed.UpdateAt(kind, i, parts[3], restAfter(line, 4))
	}
	return usage(string(kind) + " add|rm|set")
}

func (a *App) uploadCommand(ctx context.Context, ed *editor.Editor, parts []string) error {
	var (
		target editor.ImageTarget
		path   string
	)

	switch {
	case len(parts) == 3 && parts[1] == "pic":
		target, path = editor.ProfileImage(), parts[2]
	case len(parts) == 4:
		kind, err := editor.ParseListKind(parts[1])
		if err != nil {
			return err
		}
		i, err := position(parts[2])
		if err != nil {
			return err
		}
		key, err := ed.KeyAt(kind, i)
		if err != nil {
			return err
		}
		target, path = editor.ItemImage(kind, key), parts[3]
	default:
		return usage("upload pic <path> | upload expertise|projects|social <n> <path>")
	}

	f, err := upload.OpenFile(path)
	if err != nil {
		return err
	}
	if upload.Validate(f) == nil {
		a.println("Uploading...")
	}
	if _, err := ed.UploadImage(ctx, target, f); err != nil && !editor.Notified(err) {
		return err
	}
	return nil
}

// save submits the draft. After a success the sub-shell stays until the
// editor closes itself; a rejected token ends the sub-shell.
func (a *App) save(ctx context.Context, ed *editor.Editor) (bool, error) {
	a.println("Saving...")
	err := ed.Submit(ctx)

	switch {
	case err == nil:
		select {
		case <-ed.Done():
		case <-ctx.Done():
		}
		return true, nil
	case errors.Is(err, editor.ErrNoChanges), errors.Is(err, editor.ErrBusy):
		return false, nil
	}

	if a.ctrl.State() != session.AdminAuthenticated {
		ed.Cancel()
		a.println("Admin session ended. Type 'login' to continue.")
		return true, nil
	}
	a.println(ed.Message())
	return false, nil
}

func usage(s string) error { return fmt.Errorf("usage: %s", s) }

// position parses a 1-based position typed by the user.
func position(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q", s)
	}
	return n - 1, nil
}

// restAfter returns the text of line after its first n fields, with the
// inner spacing preserved.
func restAfter(line string, n int) string {
	s := strings.TrimSpace(line)
	for i := 0; i < n; i++ {
		idx := strings.IndexFunc(s, func(r rune) bool { return r == ' ' || r == '\t' })
		if idx < 0 {
			return ""
		}
		s = strings.TrimLeft(s[idx:], " \t")
	}
	return s
}
