package pesoshield

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// getJSON loads and decodes a stored value. Absent keys and corrupt JSON
// both report false: malformed persisted state is treated as missing and
// silently resets to defaults, never surfaced to the user. Only store
// transport failures return an error.
func (c *Client) getJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", key)
	}
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.logDebug("discarding corrupt stored value", "key", key, "error", err)
		return false, nil
	}

	return true, nil
}

// setJSON encodes and stores a value, fully replacing the previous one.
func (c *Client) setJSON(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", key)
	}

	if err := c.store.Set(ctx, key, raw); err != nil {
		return errors.Wrapf(err, "failed to write %s", key)
	}

	return nil
}
