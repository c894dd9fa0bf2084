package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/terminplaner/pkg/api"
)

// Login выполняет вход и сохраняет токен в файл сессии
func (c *Cli) Login(ctx context.Context) error {
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	resp, err := c.apiClient.Login(ctx, api.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return err
	}

	if err := c.session.Save(&Session{Token: resp.Token, Username: resp.User.Username}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	c.io.Printf("Logged in as %s\n", resp.User.Username)

	return nil
}

// Logout удаляет сохраненную сессию.
// Токен stateless, на сервере ничего отзывать не нужно.
func (c *Cli) Logout(ctx context.Context) error {
	if err := c.session.Clear(); err != nil {
		return err
	}
	c.io.Println("Logged out.")
	return nil
}
