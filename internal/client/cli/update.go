package cli

import "context"

// Update обновляет существующее событие
func (c *Cli) Update(ctx context.Context, eventID string) error {
	req, err := c.readEventFields()
	if err != nil {
		return err
	}

	resp, err := c.apiClient.UpdateEvent(ctx, eventID, req)
	if err != nil {
		return err
	}

	c.io.Printf("Updated event %q (id %s)\n", resp.Event.Title, resp.Event.ID)

	return nil
}
