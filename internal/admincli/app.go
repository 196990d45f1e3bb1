// Package admincli implements notesctl, the operator command line for
// seeding administrators and inspecting accounts.
package admincli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
)

var ErrUnknownCommand = errors.New("unknown command")

const usage = `usage: notesctl <command> [flags]

commands:
  create-admin   create an administrator (prompts for email and password)
  list-users     print every account with its role

flags are the server flags, e.g. -driver sqlite -d file:data/gophnotes.db`

type App struct {
	users  *services.UserService
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(us *services.UserService, in io.Reader, out io.Writer) *App {
	return &App{users: us, reader: bufio.NewReader(in), out: out}
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, usage)
		return ErrUnknownCommand
	}

	switch args[0] {
	case "create-admin":
		return a.CreateAdmin(ctx)
	case "list-users":
		return a.ListUsers(ctx)
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		fmt.Fprintln(a.out, usage)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
}

// CreateAdmin prompts for an email and a confirmed password and inserts
// the administrator unless the email is taken.
func (a *App) CreateAdmin(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Admin email", a.out)
	if err != nil {
		return err
	}
	if email == "" {
		return common.ErrInvalidInput
	}

	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := GetPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if len(password) == 0 || !bytes.Equal(password, confirm) {
		return errors.New("passwords are empty or do not match")
	}

	created, err := a.users.BootstrapAdmin(ctx, email, string(password))
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(a.out, "Administrator %s created\n", email)
	} else {
		fmt.Fprintf(a.out, "A user with email %s already exists, nothing changed\n", email)
	}
	return nil
}

func (a *App) ListUsers(ctx context.Context) error {
	users, err := a.users.ListAll(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EMAIL\tNAME\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Email, u.Name, u.Role, u.CreatedAt.Local().Format("02-01-2006 15:04"))
	}
	return tw.Flush()
}
