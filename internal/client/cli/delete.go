package cli

import (
	"context"
	"fmt"
	"strings"
)

// Delete удаляет событие после подтверждения
func (c *Cli) Delete(ctx context.Context, eventID string) error {
	answer, err := c.io.ReadInput(fmt.Sprintf("Delete event %s? [y/N]: ", eventID))
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		c.io.Println("Aborted.")
		return nil
	}

	if err := c.apiClient.DeleteEvent(ctx, eventID); err != nil {
		return err
	}

	c.io.Println("Deleted.")

	return nil
}
