// Package cli реализует консольный клиент для terminplaner API.
package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/terminplaner/internal/client/api"
	"github.com/iudanet/terminplaner/internal/client/iocli"
)

// Cli связывает API клиент, консольный ввод-вывод и сессию
type Cli struct {
	apiClient *api.Client
	io        iocli.IO
	session   *SessionStore
}

// New создает новый CLI клиент
func New(apiClient *api.Client, io iocli.IO, session *SessionStore) *Cli {
	return &Cli{
		apiClient: apiClient,
		io:        io,
		session:   session,
	}
}

// Run выполняет команду. args содержит имя команды и ее аргументы.
func (c *Cli) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.printUsage()
		return fmt.Errorf("command is required")
	}

	cmd, cmdArgs := args[0], args[1:]

	// Команды кроме register/login требуют сохраненного токена
	switch cmd {
	case "register":
		return c.Register(ctx)
	case "login":
		return c.Login(ctx)
	case "logout":
		return c.Logout(ctx)
	case "list":
		return c.withSession(ctx, func(ctx context.Context) error { return c.List(ctx) })
	case "add":
		return c.withSession(ctx, func(ctx context.Context) error { return c.Add(ctx) })
	case "update":
		if len(cmdArgs) != 1 {
			return fmt.Errorf("usage: update <event-id>")
		}
		return c.withSession(ctx, func(ctx context.Context) error { return c.Update(ctx, cmdArgs[0]) })
	case "rm":
		if len(cmdArgs) != 1 {
			return fmt.Errorf("usage: rm <event-id>")
		}
		return c.withSession(ctx, func(ctx context.Context) error { return c.Delete(ctx, cmdArgs[0]) })
	default:
		c.printUsage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// withSession загружает сохраненный токен и выполняет команду
func (c *Cli) withSession(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := c.session.Load()
	if err != nil {
		return fmt.Errorf("not logged in, run 'terminplaner-cli login' first: %w", err)
	}
	c.apiClient.SetToken(session.Token)
	return fn(ctx)
}

func (c *Cli) printUsage() {
	c.io.Println("Usage: terminplaner-cli <command>")
	c.io.Println("")
	c.io.Println("Commands:")
	c.io.Println("  register           create a new account")
	c.io.Println("  login              log in and store the session token")
	c.io.Println("  logout             remove the stored session token")
	c.io.Println("  list               list your events, sorted by date")
	c.io.Println("  add                create a new event")
	c.io.Println("  update <event-id>  update an event")
	c.io.Println("  rm <event-id>      delete an event")
}
