package shopify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"shopify-product-service/internal/clients"
	"shopify-product-service/internal/models"
)

// SignatureHeader carries the base64 HMAC-SHA256 of the request body.
const SignatureHeader = "X-ShopifyProduct-Hmac-Sha256"

const maxResponseBytes = 1 << 20

// SecretResolver returns the current product signing secret
type SecretResolver interface {
	Resolve(ctx context.Context) (string, error)
}

// ProductClient implements clients.ProductSubmitter against the Shopify
// product endpoint. Each call is sent once.
type ProductClient struct {
	httpClient  *http.Client
	endpoint    string
	secrets     SecretResolver
	rateLimiter *rate.Limiter
	logger      *logrus.Entry
}

var _ clients.ProductSubmitter = (*ProductClient)(nil)

// NewProductClient creates a new product endpoint client
func NewProductClient(endpoint string, secrets SecretResolver, timeout time.Duration, logger *logrus.Logger) *ProductClient {
	if logger == nil {
		logger = logrus.New()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ProductClient{
		httpClient:  &http.Client{Timeout: timeout},
		endpoint:    endpoint,
		secrets:     secrets,
		rateLimiter: rate.NewLimiter(rate.Limit(2), 1), // 2 requests per second
		logger:      logger.WithField("component", "shopify-product-client"),
	}
}

type submitRequest struct {
	ShopifyStore models.Store    `json:"shopifyStore"`
	Product      *models.Product `json:"product"`
}

type submitResponse struct {
	Product *models.CreatedProduct `json:"product"`
	Error   string                 `json:"error,omitempty"`
}

// RejectedError carries the product endpoint's error message unchanged
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

func (e *RejectedError) Unwrap() error {
	return models.ErrSubmissionRejected
}

// Submit signs and posts {shopifyStore, product} to the product endpoint.
func (c *ProductClient) Submit(ctx context.Context, store models.Store, product *models.Product) (*models.CreatedProduct, error) {
	if c.endpoint == "" {
		return nil, &clients.ConfigurationError{Client: "Shopify product endpoint", Setting: "SHOPIFY_PRODUCT_ENDPOINT"}
	}
	if c.secrets == nil {
		return nil, &clients.ConfigurationError{Client: "Shopify product endpoint", Setting: "SHOPIFY_PRODUCT_SECRET"}
	}
	secret, err := c.secrets.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product signing secret: %w", err)
	}

	body, err := json.Marshal(submitRequest{ShopifyStore: store, Product: product})
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(SignatureHeader, Sign(body, secret))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product endpoint request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read product endpoint response: %w", err)
	}

	var out submitResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("invalid response from product endpoint (status %d): %w", resp.StatusCode, err)
	}
	if out.Error != "" {
		return nil, &RejectedError{Message: out.Error}
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("product endpoint returned status %d", resp.StatusCode)
	}
	if out.Product == nil {
		return nil, &RejectedError{Message: "product endpoint returned no product"}
	}

	c.logger.WithFields(logrus.Fields{
		"store":     store,
		"productId": out.Product.LegacyResourceID,
	}).Info("Product created in Shopify")
	return out.Product, nil
}

// Sign returns the base64 HMAC-SHA256 of payload.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a signature produced by Sign.
func VerifySignature(payload []byte, signature string, secret string) error {
	if secret == "" {
		return fmt.Errorf("no signing secret configured")
	}
	if !hmac.Equal([]byte(signature), []byte(Sign(payload, secret))) {
		return fmt.Errorf("invalid product signature")
	}
	return nil
}
