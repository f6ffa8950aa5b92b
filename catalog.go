package fortiadc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lexfrei/go-fortiadc/observability"
)

// errMsgPath is the appliance's diagnostic endpoint listing every vendor
// error code and its message.
const errMsgPath = "/api/platform/errMsg"

// errorCatalog is the per-client cache of the vendor error-code table.
// The catalog is effectively static per firmware version, so the first
// fetch outcome, including a failed one, sticks for the client's lifetime.
// Two clients pointed at different appliances never share entries.
type errorCatalog struct {
	codes   map[string]string
	fetched bool
}

// fetchErrorCodes retrieves the error-code catalog at most once per client.
// Failures degrade to an empty catalog: error reporting must never itself
// fail because the catalog was unreachable.
func (c *Client) fetchErrorCodes(ctx context.Context) map[string]string {
	if c.catalog.fetched {
		return c.catalog.codes
	}

	// Mark before issuing, so the catalog request can never re-enter here
	// through its own error handling.
	c.catalog.fetched = true
	c.catalog.codes = map[string]string{}

	resp, err := c.Do(ctx, http.MethodGet, errMsgPath, nil, nil)
	if err != nil {
		c.logger.Warn("error-code catalog unavailable",
			observability.Field{Key: "error", Value: err.Error()},
		)
		return c.catalog.codes
	}

	var envelope struct {
		Payload map[string]string `json:"payload"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err != nil || envelope.Payload == nil {
		c.logger.Warn("error-code catalog response not understood",
			observability.Field{Key: "status", Value: resp.StatusCode},
		)
		return c.catalog.codes
	}

	c.catalog.codes = envelope.Payload
	c.logger.Debug("error-code catalog fetched",
		observability.Field{Key: "entries", Value: len(c.catalog.codes)},
	)

	return c.catalog.codes
}

// ErrorMessage resolves a vendor error code to its catalog message, falling
// back to a synthetic "Error code: <code>" when the catalog has no entry
// (or could not be fetched).
func (c *Client) ErrorMessage(ctx context.Context, code int) string {
	codes := c.fetchErrorCodes(ctx)
	if msg, ok := codes[strconv.Itoa(code)]; ok {
		return msg
	}

	return fmt.Sprintf("Error code: %d", code)
}
