package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/terminplaner/pkg/api"
)

// Register интерактивно регистрирует нового пользователя
func (c *Cli) Register(ctx context.Context) error {
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	profileName, err := c.io.ReadInput("Profile name: ")
	if err != nil {
		return fmt.Errorf("failed to read profile name: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	resp, err := c.apiClient.Register(ctx, api.RegisterRequest{
		Username:    username,
		Email:       email,
		Password:    password,
		ProfileName: profileName,
	})
	if err != nil {
		return err
	}

	c.io.Printf("Registered as %s (id %s)\n", resp.User.Username, resp.User.ID)
	c.io.Println("Run 'terminplaner-cli login' to log in.")

	return nil
}
