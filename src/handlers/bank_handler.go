package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"horizon-server/src/bank"
	"horizon-server/src/logger"
	"horizon-server/src/middleware"
	"horizon-server/src/models"
	"horizon-server/src/txview"

	"github.com/go-chi/chi/v5"
)

type accountResponse struct {
	Data         *models.Account `json:"data"`
	Transactions *txview.Page    `json:"transactions,omitempty"`
	Error        string          `json:"error,omitempty"`
}

type dashboardResponse struct {
	Accounts       *models.AccountsSummary `json:"accounts"`
	SelectedBankID int64                   `json:"selected_bank_id,omitempty"`
	Account        *models.Account         `json:"account"`
	Transactions   txview.Page             `json:"transactions"`
	Error          string                  `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// resultStatus maps a failed AccountResult to a status code.
func resultStatus(result bank.AccountResult) int {
	if result.NotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func bankIDParam(r *http.Request) (int64, bool) {
	bankID, err := strconv.ParseInt(chi.URLParam(r, "bank_id"), 10, 64)
	return bankID, err == nil && bankID > 0
}

func GetBanks(banks BankStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		list, err := banks.GetBanks(r.Context(), userID)
		if err != nil {
			log := logger.FromContext(r.Context())
			log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get banks")
			http.Error(w, "Failed to get banks", http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []models.Bank{}
		}

		writeJSON(w, http.StatusOK, list)
	}
}

func GetAccounts(accounts AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())

		summary := accounts.GetAccounts(r.Context(), userID)
		if summary == nil {
			writeJSON(w, http.StatusBadGateway, map[string]interface{}{
				"data":  nil,
				"error": "Failed to fetch accounts",
			})
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

// GetAccount renders one bank's account and the requested page of its
// transactions.
func GetAccount(accounts AccountService, view *txview.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		bankID, ok := bankIDParam(r)
		if !ok {
			http.Error(w, "invalid bank id", http.StatusBadRequest)
			return
		}

		result := accounts.GetAccount(r.Context(), userID, bankID)
		if result.Data == nil {
			writeJSON(w, resultStatus(result), accountResponse{Error: result.Error})
			return
		}

		page := view.Render(r.Context(), result.Transactions, txview.ParsePage(r.URL.Query().Get("page")))
		writeJSON(w, http.StatusOK, accountResponse{Data: result.Data, Transactions: &page})
	}
}

func GetTransactions(accounts AccountService, view *txview.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		bankID, ok := bankIDParam(r)
		if !ok {
			http.Error(w, "invalid bank id", http.StatusBadRequest)
			return
		}

		result := accounts.GetAccount(r.Context(), userID, bankID)
		if result.Data == nil {
			writeJSON(w, resultStatus(result), accountResponse{Error: result.Error})
			return
		}

		writeJSON(w, http.StatusOK, view.Render(r.Context(), result.Transactions, txview.ParsePage(r.URL.Query().Get("page"))))
	}
}

// Dashboard combines the account summary with one selected bank. Without an
// id the first bank is selected.
func Dashboard(accounts AccountService, view *txview.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserIDFromContext(r.Context())
		page := txview.ParsePage(r.URL.Query().Get("page"))

		summary := accounts.GetAccounts(r.Context(), userID)
		if summary == nil {
			writeJSON(w, http.StatusBadGateway, dashboardResponse{
				Transactions: view.Render(r.Context(), nil, page),
				Error:        "Failed to fetch accounts",
			})
			return
		}

		resp := dashboardResponse{Accounts: summary}

		var bankID int64
		if raw := r.URL.Query().Get("id"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || parsed < 1 {
				http.Error(w, "invalid bank id", http.StatusBadRequest)
				return
			}
			bankID = parsed
		} else if len(summary.Data) > 0 {
			bankID = summary.Data[0].BankID
		}

		if bankID == 0 {
			resp.Transactions = view.Render(r.Context(), nil, page)
			writeJSON(w, http.StatusOK, resp)
			return
		}

		result := accounts.GetAccount(r.Context(), userID, bankID)
		resp.SelectedBankID = bankID
		resp.Account = result.Data
		resp.Error = result.Error
		resp.Transactions = view.Render(r.Context(), result.Transactions, page)

		status := http.StatusOK
		if result.Data == nil {
			status = resultStatus(result)
		}
		writeJSON(w, status, resp)
	}
}
