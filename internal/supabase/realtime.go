package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
	"figure-forge-backend/internal/config"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(cfg *config.Config) (*RealtimeClient, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &RealtimeClient{
		client: client,
	}, nil
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Supabase Go client has no direct Realtime publish. Row updates on
	// custom_orders and products trigger Realtime automatically; this is a
	// placeholder for explicit event publishing via the Realtime REST API.
	return nil
}

func (r *RealtimeClient) PublishOrderEvent(orderID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("custom-order:%s", orderID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func QuoteProvidedPayload(orderID uuid.UUID, quotedPrice string) map[string]interface{} {
	return map[string]interface{}{
		"order_id":     orderID.String(),
		"status":       "quote_provided",
		"quoted_price": quotedPrice,
	}
}

func StatusChangedPayload(orderID uuid.UUID, status string) map[string]interface{} {
	return map[string]interface{}{
		"order_id": orderID.String(),
		"status":   status,
	}
}

func OrderCompletedPayload(orderID uuid.UUID, imageCount int) map[string]interface{} {
	return map[string]interface{}{
		"order_id":    orderID.String(),
		"status":      "completed",
		"image_count": imageCount,
	}
}

func ProductPublishedPayload(orderID, productID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"order_id":   orderID.String(),
		"product_id": productID.String(),
	}
}
