package plaid

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"horizon-server/src/db"
	"horizon-server/src/models"

	"github.com/plaid/plaid-go/v41/plaid"
	"github.com/shopspring/decimal"
)

const clientName = "Horizon"

// Provider talks to Plaid on behalf of the bank service and handlers.
type Provider struct {
	client       *plaid.APIClient
	cache        *db.Cache
	countryCodes []plaid.CountryCode
	webhookURL   string
}

func NewProvider(client *plaid.APIClient, cache *db.Cache, country, webhookURL string) (*Provider, error) {
	code, err := plaid.NewCountryCodeFromValue(country)
	if err != nil {
		return nil, fmt.Errorf("unsupported Plaid country %q: %w", country, err)
	}
	return &Provider{
		client:       client,
		cache:        cache,
		countryCodes: []plaid.CountryCode{*code},
		webhookURL:   webhookURL,
	}, nil
}

func (p *Provider) CreateLinkToken(ctx context.Context, userID int64) (string, error) {
	user := plaid.LinkTokenCreateRequestUser{
		ClientUserId: strconv.FormatInt(userID, 10),
	}
	request := plaid.NewLinkTokenCreateRequest(clientName, "en", p.countryCodes)
	request.SetUser(user)
	request.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})
	if p.webhookURL != "" {
		request.SetWebhook(p.webhookURL)
	}

	resp, _, err := p.client.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		return "", describeError(err)
	}
	return resp.GetLinkToken(), nil
}

func (p *Provider) ExchangePublicToken(ctx context.Context, publicToken string) (accessToken, itemID string, err error) {
	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, _, err := p.client.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		return "", "", describeError(err)
	}
	return resp.GetAccessToken(), resp.GetItemId(), nil
}

// GetAccounts returns every account on the item behind accessToken.
func (p *Provider) GetAccounts(ctx context.Context, accessToken string) ([]models.Account, error) {
	request := plaid.NewAccountsGetRequest(accessToken)
	resp, _, err := p.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
	if err != nil {
		return nil, describeError(err)
	}

	item := resp.GetItem()
	institutionID := item.GetInstitutionId()
	accounts := make([]models.Account, 0, len(resp.GetAccounts()))
	for _, acc := range resp.GetAccounts() {
		balances := acc.GetBalances()
		accounts = append(accounts, models.Account{
			ID:               acc.GetAccountId(),
			AvailableBalance: decimal.NewFromFloat(balances.GetAvailable()),
			CurrentBalance:   decimal.NewFromFloat(balances.GetCurrent()),
			InstitutionID:    institutionID,
			Name:             acc.GetName(),
			OfficialName:     acc.GetOfficialName(),
			Mask:             acc.GetMask(),
			Type:             string(acc.GetType()),
			Subtype:          string(acc.GetSubtype()),
		})
	}
	return accounts, nil
}

// GetInstitution looks up an institution, serving repeats from the cache.
func (p *Provider) GetInstitution(ctx context.Context, institutionID string) (models.Institution, error) {
	cacheKey := "institution:" + institutionID
	if cached, ok := p.cache.Get(cacheKey); ok {
		if inst, ok := cached.(models.Institution); ok {
			return inst, nil
		}
	}

	request := plaid.NewInstitutionsGetByIdRequest(institutionID, p.countryCodes)
	resp, _, err := p.client.PlaidApi.InstitutionsGetById(ctx).InstitutionsGetByIdRequest(*request).Execute()
	if err != nil {
		return models.Institution{}, describeError(err)
	}

	institution := resp.GetInstitution()
	inst := models.Institution{
		ID:   institution.GetInstitutionId(),
		Name: institution.GetName(),
	}
	p.cache.Set(cacheKey, inst)
	return inst, nil
}

// SyncTransactions pages through /transactions/sync until has_more is false
// and returns the added transactions.
func (p *Provider) SyncTransactions(ctx context.Context, accessToken string) ([]models.RawTransaction, error) {
	var (
		raws    []models.RawTransaction
		cursor  string
		hasMore = true
	)
	for hasMore {
		request := plaid.NewTransactionsSyncRequest(accessToken)
		if cursor != "" {
			request.SetCursor(cursor)
		}

		resp, _, err := p.client.PlaidApi.TransactionsSync(ctx).TransactionsSyncRequest(*request).Execute()
		if err != nil {
			return nil, describeError(err)
		}

		for _, txn := range resp.GetAdded() {
			raw, err := toRawTransaction(txn)
			if err != nil {
				return nil, err
			}
			raws = append(raws, raw)
		}

		cursor = resp.GetNextCursor()
		hasMore = resp.GetHasMore()
	}
	return raws, nil
}

// toRawTransaction decodes a Plaid transaction through its JSON wire form.
// Plaid reports outflows as positive amounts, so the sign is turned into an
// explicit debit/credit flag here.
func toRawTransaction(txn plaid.Transaction) (models.RawTransaction, error) {
	payload, err := json.Marshal(txn)
	if err != nil {
		return models.RawTransaction{}, fmt.Errorf("encode plaid transaction: %w", err)
	}
	return decodeRawTransaction(payload)
}

func decodeRawTransaction(payload []byte) (models.RawTransaction, error) {
	var raw models.RawTransaction
	if err := json.Unmarshal(payload, &raw); err != nil {
		return models.RawTransaction{}, fmt.Errorf("decode plaid transaction: %w", err)
	}
	if raw.Amount != nil {
		if raw.Amount.IsPositive() {
			raw.Type = models.TransactionTypeDebit
		} else {
			raw.Type = models.TransactionTypeCredit
		}
	}
	return raw, nil
}
