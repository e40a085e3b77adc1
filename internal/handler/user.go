package handler

import (
	"net/http"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/user"
)

// RegisterUserRequest represents the request body for registering a Telegram user
type RegisterUserRequest struct {
	TelegramID int64  `json:"telegram_id" validate:"required,gt=0"`
	Username   string `json:"username" validate:"max=64,excludesall=\x00\n\r\t"`
}

// RegisterUserResponse returns the stored user
type RegisterUserResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

// HandleRegisterUser creates the user on first contact and refreshes the username afterwards
// @Summary Register user
// @Description Upserts a user by Telegram id and returns the currency balance
// @Tags user
// @Accept json
// @Produce json
// @Param request body RegisterUserRequest true "User details"
// @Success 200 {object} RegisterUserResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/user/register [post]
func HandleRegisterUser(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		u, err := userService.Register(r.Context(), req.TelegramID, req.Username)
		if err != nil {
			respondServiceError(w, r, "Register user", err)
			return
		}

		respondJSON(w, http.StatusOK, RegisterUserResponse{Message: MsgUserRegistered, User: *u})
	}
}

// HandleGetProfile returns the balance and settled inventory of a user
// @Summary Get profile
// @Tags user
// @Produce json
// @Param telegram_id query int true "Telegram user id"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/user/profile [get]
func HandleGetProfile(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		telegramID, ok := getTelegramIDQuery(r, w)
		if !ok {
			return
		}

		profile, err := userService.GetProfile(r.Context(), telegramID)
		if err != nil {
			respondServiceError(w, r, "Get profile", err)
			return
		}
		respondJSON(w, http.StatusOK, profile)
	}
}
