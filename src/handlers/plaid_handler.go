package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"horizon-server/src/logger"
	"horizon-server/src/middleware"
	"horizon-server/src/models"

	"github.com/google/uuid"
)

const maxWebhookBody = 1 << 20

func CreateLinkToken(provider LinkProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		linkToken, err := provider.CreateLinkToken(r.Context(), userID)
		if err != nil {
			log := logger.FromContext(r.Context())
			log.Error().Err(err).Int64("user_id", userID).Msg("Plaid link token creation failed")
			http.Error(w, "Failed to create link token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"link_token": linkToken,
		})
	}
}

// ExchangePublicToken trades a Link public token for an access token and
// stores the item as a bank pointing at its first account.
func ExchangePublicToken(provider LinkProvider, banks BankStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		userID, _ := middleware.UserIDFromContext(r.Context())

		var req struct {
			PublicToken string `json:"public_token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PublicToken == "" {
			log.Error().Err(err).Int64("user_id", userID).Msg("Failed to decode exchange public token request body")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		accessToken, itemID, err := provider.ExchangePublicToken(r.Context(), req.PublicToken)
		if err != nil {
			log.Error().Err(err).Int64("user_id", userID).Msg("Plaid public token exchange failed")
			http.Error(w, "Failed to exchange public token", http.StatusInternalServerError)
			return
		}

		accounts, err := provider.GetAccounts(r.Context(), accessToken)
		if err != nil || len(accounts) == 0 {
			log.Error().Err(err).Int64("user_id", userID).Str("item_id", itemID).Msg("Failed to fetch accounts for new item")
			http.Error(w, "Failed to fetch accounts", http.StatusBadGateway)
			return
		}

		bank, err := banks.CreateBank(r.Context(), models.Bank{
			UserID:        userID,
			ItemID:        itemID,
			AccountID:     accounts[0].ID,
			AccessToken:   accessToken,
			InstitutionID: accounts[0].InstitutionID,
			SharableID:    uuid.NewString(),
			Status:        models.BankStatusActive,
		})
		if err != nil {
			log.Error().Err(err).Int64("user_id", userID).Str("item_id", itemID).Msg("Failed to save bank")
			http.Error(w, "Failed to save bank", http.StatusInternalServerError)
			return
		}

		log.Info().Int64("user_id", userID).Str("item_id", itemID).Msg("Successfully exchanged public token and saved bank")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(bank)
	}
}

type webhookPayload struct {
	WebhookType string `json:"webhook_type"`
	WebhookCode string `json:"webhook_code"`
	ItemID      string `json:"item_id"`
	Error       *struct {
		ErrorCode    string `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"error"`
}

func PlaidWebhook(verifier WebhookVerifier, banks BankStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			log.Error().Err(err).Msg("Failed to read webhook body")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if err := verifier.Verify(r.Context(), body, r.Header); err != nil {
			log.Warn().Err(err).Msg("Webhook verification failed")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var payload webhookPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			log.Error().Err(err).Msg("Failed to decode webhook body")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		log = logger.WithFields(log, map[string]interface{}{
			"webhook_type": payload.WebhookType,
			"webhook_code": payload.WebhookCode,
			"item_id":      payload.ItemID,
		})

		switch payload.WebhookType {
		case "ITEM":
			status := ""
			switch payload.WebhookCode {
			case "ERROR", "PENDING_EXPIRATION", "PENDING_DISCONNECT":
				status = models.BankStatusLoginRequired
			case "LOGIN_REPAIRED":
				status = models.BankStatusActive
			}
			if status == "" {
				log.Info().Msg("Ignoring item webhook")
				break
			}
			if payload.Error != nil {
				log.Warn().Str("error_code", payload.Error.ErrorCode).Msg(payload.Error.ErrorMessage)
			}
			if err := banks.UpdateBankStatus(r.Context(), payload.ItemID, status); err != nil {
				log.Error().Err(err).Msg("Failed to update bank status")
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			log.Info().Str("status", status).Msg("Updated bank status")
		case "TRANSACTIONS":
			// Transactions are fetched live on every view.
			log.Info().Msg("Received transactions webhook")
		default:
			log.Info().Msg("Ignoring webhook")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
		})
	}
}
