package sdk

import (
	"context"
	"net/http"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Texts   int               `json:"texts"`
	Authors int               `json:"authors"`
}

// Health checks the health of the server and its collaborators. A degraded
// report is returned without error; transport failures return an error.
func (c *Client) Health(ctx context.Context) (HealthStatus, bool, error) {
	var status HealthStatus
	code, err := c.getJSON(ctx, "/health", &status)
	if err != nil {
		return HealthStatus{}, false, err
	}
	return status, code == http.StatusOK, nil
}
