package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/port"
)

// GatewayPush delivers pushes over HTTP to the realtime gateway, which owns
// the actual socket connections. Delivery is best-effort: a 404 simply means
// the recipient has no active connection.
type GatewayPush struct {
	baseURL string
	client  *http.Client
}

// compile-time check: *GatewayPush must satisfy port.RealtimePush
var _ port.RealtimePush = (*GatewayPush)(nil)

func NewGatewayPush(baseURL string) *GatewayPush {
	return &GatewayPush{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (g *GatewayPush) Send(ctx context.Context, userID db.UUID, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	url := fmt.Sprintf("%s/push/%s", g.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		// recipient not connected; nothing to deliver
		return nil
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("realtime gateway returned %d", resp.StatusCode)
	}
	return nil
}
