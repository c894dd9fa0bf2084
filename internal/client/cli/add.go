package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/terminplaner/pkg/api"
)

// readEventFields интерактивно запрашивает поля события
func (c *Cli) readEventFields() (api.EventRequest, error) {
	var req api.EventRequest
	var err error

	if req.Title, err = c.io.ReadInput("Title: "); err != nil {
		return req, fmt.Errorf("failed to read title: %w", err)
	}
	if req.Date, err = c.io.ReadInput("Date (e.g. 2025-06-15T18:00:00Z): "); err != nil {
		return req, fmt.Errorf("failed to read date: %w", err)
	}
	if req.Description, err = c.io.ReadInput("Description (optional): "); err != nil {
		return req, fmt.Errorf("failed to read description: %w", err)
	}
	if req.Location, err = c.io.ReadInput("Location (optional): "); err != nil {
		return req, fmt.Errorf("failed to read location: %w", err)
	}
	if req.Category, err = c.io.ReadInput("Category [Privat/Arbeit/Freizeit/Sonstiges] (optional): "); err != nil {
		return req, fmt.Errorf("failed to read category: %w", err)
	}

	return req, nil
}

// Add создает новое событие
func (c *Cli) Add(ctx context.Context) error {
	req, err := c.readEventFields()
	if err != nil {
		return err
	}

	resp, err := c.apiClient.CreateEvent(ctx, req)
	if err != nil {
		return err
	}

	c.io.Printf("Created event %q (id %s)\n", resp.Event.Title, resp.Event.ID)

	return nil
}
