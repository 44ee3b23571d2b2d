package analytics_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/humanbelnik/swipematch/core/internal/model"
)

type RRBalancer struct {
	servers []string
	cur     int
}

func (b *RRBalancer) NextServer() string {
	if len(b.servers) == 0 {
		return ""
	}

	b.cur++
	n := b.cur
	index := (n - 1) % len(b.servers)
	return b.servers[index]
}

// HTTPEventClient ships audit events to the analytics collectors,
// one POST per event, rotating over the configured servers.
type HTTPEventClient struct {
	balancer   *RRBalancer
	httpClient *http.Client
	logger     *slog.Logger
}

func New(serversList string) *HTTPEventClient {
	servers := make([]string, 0)
	if serversList != "" {
		for _, s := range strings.Split(serversList, ";") {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				servers = append(servers, trimmed)
			}
		}
	}

	return &HTTPEventClient{
		balancer: &RRBalancer{
			servers: servers},
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: slog.Default(),
	}
}

type eventRequest struct {
	Kind     string    `json:"kind"`
	RoomID   string    `json:"room_id"`
	UserID   string    `json:"user_id"`
	MediaID  string    `json:"media_id"`
	VoteType string    `json:"vote_type,omitempty"`
	At       time.Time `json:"at"`
}

// Publish sends one event. A client with no configured servers
// swallows events silently so the sink can be switched off by config.
func (c *HTTPEventClient) Publish(ctx context.Context, event model.AuditEvent) error {
	server := c.balancer.NextServer()
	if server == "" {
		return nil
	}

	reqBody := eventRequest{
		Kind:     event.Kind,
		RoomID:   event.RoomID,
		UserID:   event.UserID,
		MediaID:  event.MediaID,
		VoteType: event.VoteType,
		At:       event.At,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, server+"/events", bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("analytics service returned status: %d", resp.StatusCode)
	}

	return nil
}
