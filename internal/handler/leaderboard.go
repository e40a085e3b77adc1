package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/leaderboard"
)

// HandleGetLeaderboard returns the monthly or all-time ranking
// @Summary Get leaderboard
// @Tags leaderboard
// @Produce json
// @Param period query string false "month (default) or all-time"
// @Param month query int false "Month 1-12, defaults to the current month"
// @Param year query int false "Year, defaults to the current year"
// @Param telegram_id query int false "Caller, fills in user_rank"
// @Success 200 {object} domain.Leaderboard
// @Router /api/v1/leaderboard [get]
func HandleGetLeaderboard(service leaderboard.Service, users UserResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := leaderboard.Query{
			Period: domain.LeaderboardPeriod(GetOptionalQueryParam(r, "period", string(domain.LeaderboardMonthly))),
		}

		for name, dst := range map[string]*int{"month": &q.Month, "year": &q.Year} {
			raw := r.URL.Query().Get(name)
			if raw == "" {
				continue
			}
			v, err := strconv.Atoi(raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, name))
				return
			}
			*dst = v
		}

		if r.URL.Query().Get("telegram_id") != "" {
			telegramID, ok := getTelegramIDQuery(r, w)
			if !ok {
				return
			}
			userID, ok := resolveUser(w, r, users, telegramID, "Get leaderboard")
			if !ok {
				return
			}
			q.UserID = userID
		}

		board, err := service.Get(r.Context(), q)
		if err != nil {
			respondServiceError(w, r, "Get leaderboard", err)
			return
		}
		respondJSON(w, http.StatusOK, board)
	}
}
