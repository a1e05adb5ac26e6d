package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	db "horizon-server/src/db/sql"
	"horizon-server/src/logger"
	"horizon-server/src/middleware"
	"horizon-server/src/models"
	"horizon-server/src/util"

	"golang.org/x/crypto/bcrypt"
)

func setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func SignUp(users UserStore, auth *middleware.Auth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req models.SignUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error().Err(err).Msg("Failed to decode sign up request body")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		req.FirstName = strings.TrimSpace(req.FirstName)
		req.LastName = strings.TrimSpace(req.LastName)

		if !util.ValidateEmail(req.Email) {
			log.Warn().Str("email", req.Email).Msg("Email validation failed during sign up")
			http.Error(w, "invalid email format", http.StatusBadRequest)
			return
		}

		if !util.ValidateName(req.FirstName) || !util.ValidateName(req.LastName) {
			log.Warn().Str("email", req.Email).Msg("Name validation failed during sign up")
			http.Error(w, "first and last name must be between 1 and 50 characters", http.StatusBadRequest)
			return
		}

		if !util.ValidatePassword(req.Password) {
			log.Warn().Str("email", req.Email).Msg("Password validation failed during sign up")
			http.Error(w, "password must be at least 8 characters with uppercase, lowercase, digit, and special character", http.StatusBadRequest)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error().Err(err).Str("email", req.Email).Msg("Failed to hash password")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp, err := users.CreateUser(r.Context(), req, hashedPassword)
		if err != nil {
			if errors.Is(err, db.ErrDuplicateEmail) {
				log.Warn().Str("email", req.Email).Msg("Sign up failed - email already exists")
				http.Error(w, "email already exists", http.StatusConflict)
				return
			}
			log.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		token, expires, err := auth.IssueToken(resp.ID, resp.Email)
		if err != nil {
			log.Error().Err(err).Int64("user_id", resp.ID).Msg("Failed to generate JWT token")
			http.Error(w, "Error generating token", http.StatusInternalServerError)
			return
		}

		log.Info().Int64("user_id", resp.ID).Msg("Successful sign up")

		setSessionCookie(w, token, expires)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": token,
			"user":  resp,
		})
	}
}

func SignIn(users UserStore, auth *middleware.Auth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var credentials struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			log.Error().Err(err).Msg("Failed to decode sign in request body")
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		email := strings.ToLower(strings.TrimSpace(credentials.Email))
		user, err := users.GetUserByEmail(r.Context(), email)
		if err != nil {
			if !errors.Is(err, db.ErrNotFound) {
				log.Error().Err(err).Str("email", email).Msg("Failed to find user during sign in")
			}
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(credentials.Password)); err != nil {
			log.Warn().Str("email", email).Str("remote_addr", r.RemoteAddr).Msg("Invalid password attempt")
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		if err := users.UpdateUserLastLogin(r.Context(), user.ID); err != nil {
			log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to update last login")
		}

		token, expires, err := auth.IssueToken(user.ID, user.Email)
		if err != nil {
			log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate JWT token")
			http.Error(w, "Error generating token", http.StatusInternalServerError)
			return
		}

		log.Info().Int64("user_id", user.ID).Msg("Successful sign in")

		setSessionCookie(w, token, expires)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"token": token,
		})
	}
}

func SignOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "signed out",
		})
	}
}
