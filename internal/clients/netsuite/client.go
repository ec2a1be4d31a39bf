package netsuite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"shopify-product-service/internal/clients"
	"shopify-product-service/internal/models"
)

const (
	suiteQLPath       = "/services/rest/query/v1/suiteql"
	recordPath        = "/services/rest/record/v1"
	maxResponseBytes  = 10 << 20
	matrixParentValue = "PARENT"
)

// Config holds the NetSuite REST connection settings
type Config struct {
	BaseURL          string
	AccessToken      string
	RateLimit        int // requests per second
	Timeout          time.Duration
	ChildConcurrency int
	Retry            *clients.RetryConfig
}

// BaseURLForAccount derives the SuiteTalk REST host of an account id.
// Sandbox ids such as 1234567_SB1 become 1234567-sb1.
func BaseURLForAccount(accountID string) string {
	if accountID == "" {
		return ""
	}
	host := strings.ToLower(strings.ReplaceAll(accountID, "_", "-"))
	return fmt.Sprintf("https://%s.suitetalk.api.netsuite.com", host)
}

// Client implements clients.ItemRepository over the NetSuite REST API
type Client struct {
	httpClient       *http.Client
	baseURL          string
	accessToken      string
	rateLimiter      *rate.Limiter
	retrier          *clients.Retrier
	childConcurrency int
	logger           *logrus.Entry
}

var _ clients.ItemRepository = (*Client)(nil)

// NewClient creates a new NetSuite client
func NewClient(cfg Config, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.ChildConcurrency <= 0 {
		cfg.ChildConcurrency = 4
	}
	return &Client{
		httpClient:       &http.Client{Timeout: cfg.Timeout},
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		accessToken:      cfg.AccessToken,
		rateLimiter:      rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit),
		retrier:          clients.NewRetrier(cfg.Retry),
		childConcurrency: cfg.ChildConcurrency,
		logger:           logger.WithField("component", "netsuite-client"),
	}
}

// APIError is a non-success response from NetSuite
type APIError struct {
	StatusCode int
	Code       string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("NetSuite API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("NetSuite API error (status %d): %s", e.StatusCode, e.Detail)
}

// FindActiveItemBySKU searches active items by exact item id and loads the
// first match.
func (c *Client) FindActiveItemBySKU(ctx context.Context, sku string) (*models.Item, error) {
	query := fmt.Sprintf(
		"SELECT id, itemtype, itemid, matrixtype FROM item WHERE itemid = %s AND isinactive = 'F' ORDER BY id",
		quote(sku),
	)
	rows, err := c.suiteQL(ctx, query, 1)
	if err != nil {
		return nil, fmt.Errorf("item search failed: %w", err)
	}
	if len(rows) == 0 {
		return nil, models.ErrItemNotFound
	}
	return c.loadItem(ctx, rows[0])
}

// ListActiveChildren returns up to limit active matrix children of parentID,
// each with its full record loaded.
func (c *Client) ListActiveChildren(ctx context.Context, parentID string, limit int) ([]models.Item, error) {
	query := fmt.Sprintf(
		"SELECT id, itemtype, itemid, matrixtype FROM item WHERE parent = %s AND isinactive = 'F' ORDER BY id",
		quote(parentID),
	)
	rows, err := c.suiteQL(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("child item search failed: %w", err)
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	children := make([]models.Item, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.childConcurrency)
	for i, row := range rows {
		g.Go(func() error {
			item, err := c.loadItem(gctx, row)
			if err != nil {
				return err
			}
			children[i] = *item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return children, nil
}

// LoadRecord loads a full item record through the record API.
func (c *Client) LoadRecord(ctx context.Context, recordType models.RecordType, internalID string) (*models.Record, error) {
	path, err := recordType.RecordPath()
	if err != nil {
		return nil, err
	}
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("%s/%s/%s", recordPath, path, url.PathEscape(internalID)), nil, nil)
	if err != nil {
		return nil, err
	}
	record := parseRecord(body)
	return &record, nil
}

func (c *Client) loadItem(ctx context.Context, row gjson.Result) (*models.Item, error) {
	item := &models.Item{
		InternalID: row.Get("id").String(),
		Type:       models.RecordType(row.Get("itemtype").String()),
		IsMatrix:   strings.EqualFold(row.Get("matrixtype").String(), matrixParentValue),
	}
	record, err := c.LoadRecord(ctx, item.Type, item.InternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item %s: %w", item.InternalID, err)
	}
	item.Record = *record
	item.Values[models.FieldInternalID] = item.InternalID
	item.Values[models.FieldType] = string(item.Type)
	if item.Values[models.FieldItemID] == "" {
		item.Values[models.FieldItemID] = row.Get("itemid").String()
	}

	c.logger.WithFields(logrus.Fields{
		"itemId":     item.InternalID,
		"recordType": item.Type,
		"matrix":     item.IsMatrix,
	}).Debug("Loaded NetSuite item")
	return item, nil
}

func (c *Client) suiteQL(ctx context.Context, query string, limit int) ([]gjson.Result, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.doRequest(ctx, http.MethodPost, suiteQLPath, params, map[string]string{"q": query})
	if err != nil {
		return nil, err
	}
	return gjson.GetBytes(body, "items").Array(), nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, body interface{}) ([]byte, error) {
	if c.baseURL == "" {
		return nil, &clients.ConfigurationError{Client: "NetSuite", Setting: "NETSUITE_ACCOUNT_ID or NETSUITE_BASE_URL"}
	}
	if c.accessToken == "" {
		return nil, &clients.ConfigurationError{Client: "NetSuite", Setting: "NETSUITE_ACCESS_TOKEN"}
	}

	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, err
		}
	}

	resp, result := c.retrier.DoHTTP(ctx, func(ctx context.Context) (*http.Response, error) {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Prefer", "transient")
		}
		return c.httpClient.Do(req)
	})
	if resp == nil {
		return nil, fmt.Errorf("NetSuite request failed after %d attempts: %w", result.Attempts, result.LastError)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       gjson.GetBytes(respBody, "o:errorDetails.0.o:errorCode").String(),
			Detail:     gjson.GetBytes(respBody, "o:errorDetails.0.detail").String(),
		}
	}
	return respBody, nil
}

// parseRecord flattens a record API document into field values keyed by
// lower-cased field id. Select fields keep their id as value and their
// refName as text; sublists and links are skipped.
func parseRecord(body []byte) models.Record {
	record := models.Record{Values: map[string]string{}, Texts: map[string]string{}}
	gjson.ParseBytes(body).ForEach(func(key, value gjson.Result) bool {
		field := strings.ToLower(key.String())
		switch {
		case value.IsArray():
		case value.IsObject():
			if ref := value.Get("refName"); ref.Exists() {
				record.Values[field] = value.Get("id").String()
				record.Texts[field] = ref.String()
			}
		case value.Type == gjson.Number:
			record.Values[field] = value.Raw
		case value.Type == gjson.Null:
		default:
			record.Values[field] = value.String()
		}
		return true
	})
	return record
}

// quote renders a SuiteQL string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
