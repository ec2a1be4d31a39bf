package netsuite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopify-product-service/internal/clients"
	"shopify-product-service/internal/models"
)

const testToken = "test-token"

var itemRecords = map[string]string{
	"100": `{
		"links": [{"rel": "self", "href": "https://example/record/v1/inventoryItem/100"}],
		"id": "100",
		"itemId": "ABC123",
		"displayName": "Pro Clipper",
		"upcCode": "012345678905",
		"weight": 1.5,
		"weightUnit": {"id": "1", "refName": "lb"},
		"baseprice": 129.5,
		"custitem_sp_brand": {"id": "12", "refName": "Andis"},
		"custitem_fa_shpfy_prodtype": {"id": "7", "refName": "Clippers"},
		"custitem_fa_shpfy_tags": "clippers, cordless",
		"custitem_fa_shpfy_prod_description": "<p class=\"x\">Cordless</p>",
		"isInactive": false,
		"price": {"links": []},
		"custitem_empty": null
	}`,
	"200": `{"id": "200", "itemId": "TEE", "displayName": "Tee"}`,
	"201": `{"id": "201", "itemId": "TEE : TEE-S", "custitem_sp_size": {"id": "1", "refName": "S"}}`,
	"202": `{"id": "202", "itemId": "TEE : TEE-M", "custitem_sp_size": {"id": "2", "refName": "M"}}`,
	"203": `{"id": "203", "itemId": "TEE : TEE-L", "custitem_sp_size": {"id": "3", "refName": "L"}}`,
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"o:errorDetails":[{"detail":"Invalid login attempt.","o:errorCode":"INVALID_LOGIN"}]}`)
			return
		}

		switch {
		case r.Method == http.MethodPost && r.URL.Path == suiteQLPath:
			assert.Equal(t, "transient", r.Header.Get("Prefer"))
			var body struct {
				Q string `json:"q"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

			items := "[]"
			switch {
			case strings.Contains(body.Q, "itemid = 'ABC123'"):
				assert.Equal(t, "1", r.URL.Query().Get("limit"))
				items = `[{"id":"100","itemtype":"InvtPart","itemid":"ABC123","matrixtype":null}]`
			case strings.Contains(body.Q, "itemid = 'TEE'"):
				items = `[{"id":"200","itemtype":"InvtPart","itemid":"TEE","matrixtype":"PARENT"}]`
			case strings.Contains(body.Q, "parent = '200'"):
				assert.Equal(t, "25", r.URL.Query().Get("limit"))
				items = `[
					{"id":"203","itemtype":"InvtPart","itemid":"TEE : TEE-L","matrixtype":"CHILD"},
					{"id":"201","itemtype":"InvtPart","itemid":"TEE : TEE-S","matrixtype":"CHILD"},
					{"id":"202","itemtype":"InvtPart","itemid":"TEE : TEE-M","matrixtype":"CHILD"}
				]`
			case strings.Contains(body.Q, "itemid = 'BAD'"):
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"o:errorDetails":[{"detail":"Invalid search query.","o:errorCode":"INVALID_PARAMETER"}]}`)
				return
			}
			fmt.Fprintf(w, `{"items":%s,"hasMore":false}`, items)

		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, recordPath+"/inventoryItem/"):
			id := strings.TrimPrefix(r.URL.Path, recordPath+"/inventoryItem/")
			record, ok := itemRecords[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			fmt.Fprint(w, record)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestClient(baseURL, token string) *Client {
	return NewClient(Config{
		BaseURL:     baseURL,
		AccessToken: token,
		RateLimit:   100,
		Timeout:     5 * time.Second,
		Retry:       &clients.RetryConfig{MaxRetries: 0},
	}, nil)
}

func TestClient_FindActiveItemBySKU(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()
	client := newTestClient(server.URL, testToken)

	item, err := client.FindActiveItemBySKU(context.Background(), "ABC123")
	require.NoError(t, err)

	assert.Equal(t, "100", item.InternalID)
	assert.Equal(t, models.RecordTypeInventoryItem, item.Type)
	assert.False(t, item.IsMatrix)
	assert.Equal(t, "ABC123", item.ItemID())
	assert.Equal(t, "Pro Clipper", item.DisplayName())
	assert.Equal(t, "012345678905", item.Value(models.FieldUPCCode))
	assert.Equal(t, "1.5", item.Value(models.FieldWeight))
	assert.Equal(t, "lb", item.Text(models.FieldWeightUnit))
	assert.Equal(t, "1", item.Value(models.FieldWeightUnit))
	assert.Equal(t, "129.5", item.Value(models.FieldBasePrice))
	assert.Equal(t, "Andis", item.Text(models.FieldBrand))
	assert.Equal(t, "Clippers", item.Text(models.FieldProductType))
	assert.Equal(t, "false", item.Value("isinactive"))
	assert.Equal(t, "100", item.Value(models.FieldInternalID))
	assert.Equal(t, "InvtPart", item.Value(models.FieldType))
	assert.NotContains(t, item.Values, "links")
	assert.NotContains(t, item.Values, "price")
	assert.NotContains(t, item.Values, "custitem_empty")
}

func TestClient_FindActiveItemBySKUNotFound(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()
	client := newTestClient(server.URL, testToken)

	_, err := client.FindActiveItemBySKU(context.Background(), "NOPE")
	assert.ErrorIs(t, err, models.ErrItemNotFound)
}

func TestClient_FindMatrixParentAndChildren(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()
	client := newTestClient(server.URL, testToken)

	parent, err := client.FindActiveItemBySKU(context.Background(), "TEE")
	require.NoError(t, err)
	assert.True(t, parent.IsMatrix)

	children, err := client.ListActiveChildren(context.Background(), parent.InternalID, clients.MaxChildItems)
	require.NoError(t, err)
	require.Len(t, children, 3)

	// Search order is kept even though records load concurrently.
	assert.Equal(t, "203", children[0].InternalID)
	assert.Equal(t, "L", children[0].Text(models.FieldSize))
	assert.Equal(t, "TEE : TEE-S", children[1].ItemID())
	assert.Equal(t, "M", children[2].Text(models.FieldSize))
	for _, child := range children {
		assert.False(t, child.IsMatrix)
	}
}

func TestClient_LoadRecordUnsupportedType(t *testing.T) {
	client := newTestClient("http://unused.invalid", testToken)

	_, err := client.LoadRecord(context.Background(), models.RecordType("Service"), "1")
	assert.ErrorIs(t, err, models.ErrUnsupportedRecordType)
}

func TestClient_APIError(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	_, err := newTestClient(server.URL, testToken).FindActiveItemBySKU(context.Background(), "BAD")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "INVALID_PARAMETER", apiErr.Code)
	assert.Contains(t, err.Error(), "Invalid search query.")

	_, err = newTestClient(server.URL, "wrong").FindActiveItemBySKU(context.Background(), "ABC123")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestClient_NotConfigured(t *testing.T) {
	var cfgErr *clients.ConfigurationError

	_, err := newTestClient("", testToken).FindActiveItemBySKU(context.Background(), "ABC123")
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "NetSuite", cfgErr.Client)

	_, err = newTestClient("http://unused.invalid", "").LoadRecord(context.Background(), models.RecordTypeKitItem, "1")
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "NETSUITE_ACCESS_TOKEN", cfgErr.Setting)
}

func TestBaseURLForAccount(t *testing.T) {
	assert.Equal(t, "https://1234567.suitetalk.api.netsuite.com", BaseURLForAccount("1234567"))
	assert.Equal(t, "https://1234567-sb1.suitetalk.api.netsuite.com", BaseURLForAccount("1234567_SB1"))
	assert.Empty(t, BaseURLForAccount(""))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "'ABC123'", quote("ABC123"))
	assert.Equal(t, "'O''Brien'", quote("O'Brien"))
}
