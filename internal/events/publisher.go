// Package events publishes product lifecycle events to NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/sirupsen/logrus"

	"shopify-product-service/internal/models"
)

const (
	// StreamName is the JetStream stream holding product events
	StreamName = "SHOPIFY_PRODUCTS"
	// SubjectProductCreated is published after Shopify accepts a product
	SubjectProductCreated = "product.created"
)

// ProductCreatedEvent is the payload of product.created
type ProductCreatedEvent struct {
	EventID          string    `json:"eventId"`
	EventType        string    `json:"eventType"`
	Timestamp        time.Time `json:"timestamp"`
	Store            string    `json:"store"`
	Title            string    `json:"title"`
	Vendor           string    `json:"vendor"`
	ProductType      string    `json:"productType"`
	SKUs             []string  `json:"skus"`
	VariantCount     int       `json:"variantCount"`
	ShopifyProductID string    `json:"shopifyProductId,omitempty"`
	ShopifyURL       string    `json:"shopifyUrl,omitempty"`
}

type streamPublisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Publisher sends product events over JetStream
type Publisher struct {
	nc     *nats.Conn
	js     streamPublisher
	logger *logrus.Entry
}

// NewPublisher connects to NATS and makes sure the product stream exists.
func NewPublisher(ctx context.Context, natsURL string, logger *logrus.Logger) (*Publisher, error) {
	entry := logger.WithField("component", "events")

	nc, err := nats.Connect(natsURL,
		nats.Name("shopify-product-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			entry.WithField("url", nc.ConnectedUrl()).Info("Reconnected to NATS")
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			entry.WithError(err).Warn("Disconnected from NATS")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			entry.Info("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{"product.>"},
		Retention: jetstream.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   jetstream.FileStorage,
		Replicas:  1,
	})
	if err != nil {
		entry.WithError(err).Warnf("Could not create %s stream", StreamName)
	}

	return &Publisher{nc: nc, js: js, logger: entry}, nil
}

// NewProductCreatedEvent builds the event for a product Shopify accepted.
func NewProductCreatedEvent(store models.Store, product *models.Product, created *models.CreatedProduct) ProductCreatedEvent {
	event := ProductCreatedEvent{
		EventID:   uuid.New().String(),
		EventType: SubjectProductCreated,
		Timestamp: time.Now().UTC(),
		Store:     string(store),
		SKUs:      []string{},
	}
	if product != nil {
		event.Title = product.Title
		event.Vendor = product.Vendor
		event.ProductType = product.ProductType
		event.VariantCount = len(product.Variants)
		for _, v := range product.Variants {
			if v.InventoryItem.SKU != "" {
				event.SKUs = append(event.SKUs, v.InventoryItem.SKU)
			}
		}
	}
	if created != nil {
		event.ShopifyProductID = created.LegacyResourceID
		event.ShopifyURL = created.URL
	}
	return event
}

// PublishProductCreated publishes product.created.
func (p *Publisher) PublishProductCreated(ctx context.Context, store models.Store, product *models.Product, created *models.CreatedProduct) error {
	event := NewProductCreatedEvent(store, product, created)
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := p.js.Publish(ctx, SubjectProductCreated, data, jetstream.WithMsgID(event.EventID)); err != nil {
		return fmt.Errorf("failed to publish %s: %w", SubjectProductCreated, err)
	}

	p.logger.WithFields(logrus.Fields{
		"store":    event.Store,
		"title":    event.Title,
		"event_id": event.EventID,
	}).Debug("Published product event")
	return nil
}

// Close drains the NATS connection
func (p *Publisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
	}
}
