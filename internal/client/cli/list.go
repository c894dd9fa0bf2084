package cli

import (
	"context"
	"sort"
)

// List выводит события пользователя.
// Сервер не гарантирует порядок, сортировка по дате происходит здесь.
func (c *Cli) List(ctx context.Context) error {
	events, err := c.apiClient.ListEvents(ctx)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		c.io.Println("No events.")
		return nil
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	for _, e := range events {
		c.io.Printf("%s  %-10s %s\n", e.Date.Format("2006-01-02 15:04"), e.Category, e.Title)
		if e.Location != "" {
			c.io.Printf("                  at %s\n", e.Location)
		}
		c.io.Printf("                  id %s\n", e.ID)
	}

	return nil
}
