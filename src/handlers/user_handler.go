package handlers

import (
	"encoding/json"
	"net/http"

	"horizon-server/src/logger"
	"horizon-server/src/middleware"
)

func GetUser(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := users.GetUserByID(r.Context(), userID)
		if err != nil {
			log := logger.FromContext(r.Context())
			log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get user")
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(user)
	}
}
