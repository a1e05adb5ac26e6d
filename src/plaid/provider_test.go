package plaid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"horizon-server/src/db"
	"horizon-server/src/models"

	"github.com/plaid/plaid-go/v41/plaid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRawTransaction_Outflow(t *testing.T) {
	payload := []byte(`{
		"transaction_id": "tx-1",
		"account_id": "acc-1",
		"name": "Starbucks",
		"amount": 4.33,
		"date": "2024-03-01",
		"datetime": null,
		"payment_channel": "in store",
		"pending": false,
		"category": ["Food and Drink", "Restaurants", "Coffee Shop"],
		"personal_finance_category": {"primary": "FOOD_AND_DRINK", "detailed": "FOOD_AND_DRINK_COFFEE", "confidence_level": "VERY_HIGH"},
		"logo_url": null
	}`)

	raw, err := decodeRawTransaction(payload)
	require.NoError(t, err)

	assert.Equal(t, "tx-1", raw.TransactionID)
	assert.Equal(t, "Starbucks", raw.Name)
	require.NotNil(t, raw.Amount)
	assert.Equal(t, "4.33", raw.Amount.String())
	assert.Equal(t, models.TransactionTypeDebit, raw.Type)
	assert.Equal(t, "", raw.Datetime)
	assert.Equal(t, "FOOD_AND_DRINK", raw.PersonalFinanceCategory.Primary)
	assert.Equal(t, []string{"Food and Drink", "Restaurants", "Coffee Shop"}, raw.Category)
}

func TestDecodeRawTransaction_Inflow(t *testing.T) {
	raw, err := decodeRawTransaction([]byte(`{"transaction_id": "tx-2", "amount": -500, "date": "2024-03-01"}`))
	require.NoError(t, err)

	assert.Equal(t, models.TransactionTypeCredit, raw.Type)
	assert.Nil(t, raw.PersonalFinanceCategory)
}

func TestDecodeRawTransaction_MissingAmount(t *testing.T) {
	raw, err := decodeRawTransaction([]byte(`{"transaction_id": "tx-3", "date": "2024-03-01"}`))
	require.NoError(t, err)

	assert.Nil(t, raw.Amount)
	assert.Empty(t, raw.Type)
}

func TestDecodeRawTransaction_Malformed(t *testing.T) {
	_, err := decodeRawTransaction([]byte(`{"amount": "lots"}`))
	assert.Error(t, err)
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	configuration := plaid.NewConfiguration()
	configuration.UseEnvironment(plaid.Environment(srv.URL))

	cache, err := db.NewCache(time.Hour)
	require.NoError(t, err)
	t.Cleanup(cache.Close)

	provider, err := NewProvider(plaid.NewAPIClient(configuration), cache, "US", "https://api.example/api/plaid/webhook")
	require.NoError(t, err)
	return provider
}

func TestProvider_CreateLinkToken(t *testing.T) {
	var sent map[string]interface{}
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/link/token/create", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"link_token":"link-sandbox-1","expiration":"2024-03-10T16:00:00Z","request_id":"req-1"}`))
	})

	token, err := provider.CreateLinkToken(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "link-sandbox-1", token)

	assert.Equal(t, map[string]interface{}{"client_user_id": "7"}, sent["user"])
	assert.Equal(t, []interface{}{"US"}, sent["country_codes"])
	assert.Equal(t, []interface{}{"transactions"}, sent["products"])
	assert.Equal(t, "https://api.example/api/plaid/webhook", sent["webhook"])
	assert.Equal(t, "Horizon", sent["client_name"])
}
