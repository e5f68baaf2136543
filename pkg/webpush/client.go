// Package webpush provides a thin client for delivering Web Push
// messages to browser subscriptions using VAPID authentication.
package webpush

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	wp "github.com/SherClockHolmes/webpush-go"
)

// ErrSubscriptionGone marks an endpoint the push service no longer
// recognizes; callers should drop the subscription.
var ErrSubscriptionGone = errors.New("push subscription gone")

// Client represents a Web Push client authenticated with a VAPID key
// pair.
type Client struct {
	subscriber      string // contact mailto for the push service
	vapidPublicKey  string
	vapidPrivateKey string
	ttl             int
}

// NewClient creates a new Web Push client.
func NewClient(subscriber, vapidPublicKey, vapidPrivateKey string, ttlSeconds int) *Client {
	return &Client{
		subscriber:      subscriber,
		vapidPublicKey:  vapidPublicKey,
		vapidPrivateKey: vapidPrivateKey,
		ttl:             ttlSeconds,
	}
}

// payload is the message body the service worker on the client side
// unpacks.
type payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send pushes a title/body payload to a single subscription endpoint.
//
// It returns ErrSubscriptionGone when the push service reports the
// endpoint as expired or unknown.
func (c *Client) Send(endpoint, p256dh, auth, title, body string) error {
	msg, err := json.Marshal(payload{Title: title, Body: body})
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	sub := &wp.Subscription{
		Endpoint: endpoint,
		Keys: wp.Keys{
			P256dh: p256dh,
			Auth:   auth,
		},
	}

	resp, err := wp.SendNotification(msg, sub, &wp.Options{
		Subscriber:      c.subscriber,
		VAPIDPublicKey:  c.vapidPublicKey,
		VAPIDPrivateKey: c.vapidPrivateKey,
		TTL:             c.ttl,
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service error: %s", resp.Status)
	}

	return nil
}
