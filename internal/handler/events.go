package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/spaceminer/spaceminer-server/internal/sse"
)

// SSEUserResolver scopes an event stream to the user named by the telegram_id query parameter
func SSEUserResolver(users UserResolver) sse.UserResolver {
	return func(r *http.Request) (string, error) {
		raw := r.URL.Query().Get("telegram_id")
		if raw == "" {
			return "", errors.New(ErrMsgTelegramIDRequired)
		}
		telegramID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || telegramID <= 0 {
			return "", errors.New(ErrMsgTelegramIDRequired)
		}
		return users.ResolveUserID(r.Context(), telegramID)
	}
}
