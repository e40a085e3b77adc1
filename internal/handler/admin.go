package handler

import (
	"net/http"
	"time"

	"github.com/spaceminer/spaceminer-server/internal/catalog"
	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/upgrade"
	"github.com/spaceminer/spaceminer-server/internal/user"
)

// GrantUpgradeRequest grants a ledger entry to a user.
// DurationSeconds of zero grants a permanent upgrade.
type GrantUpgradeRequest struct {
	TelegramID      int64   `json:"telegram_id" validate:"required,gt=0"`
	Type            string  `json:"type" validate:"required,upgrade_type"`
	BoostValue      float64 `json:"boost_value" validate:"gt=0"`
	DurationSeconds int64   `json:"duration_seconds" validate:"gte=0"`
}

// GrantUpgradeResponse returns the stored ledger entry
type GrantUpgradeResponse struct {
	Message string             `json:"message"`
	Upgrade domain.UserUpgrade `json:"upgrade"`
}

// AdminHandler groups operator endpoints
type AdminHandler struct {
	upgrades upgrade.Service
	users    user.Service
	catalog  catalog.Service
}

func NewAdminHandler(upgrades upgrade.Service, users user.Service, catalogSvc catalog.Service) *AdminHandler {
	return &AdminHandler{
		upgrades: upgrades,
		users:    users,
		catalog:  catalogSvc,
	}
}

// HandleGrantUpgrade adds an upgrade to a user's ledger
// @Summary Grant upgrade
// @Tags admin
// @Accept json
// @Produce json
// @Param request body GrantUpgradeRequest true "Grant"
// @Success 201 {object} GrantUpgradeResponse
// @Router /api/v1/admin/upgrades/grant [post]
func (h *AdminHandler) HandleGrantUpgrade(w http.ResponseWriter, r *http.Request) {
	var req GrantUpgradeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Grant upgrade"); err != nil {
		return
	}
	userID, ok := resolveUser(w, r, h.users, req.TelegramID, "Grant upgrade")
	if !ok {
		return
	}

	granted, err := h.upgrades.Grant(r.Context(), upgrade.GrantRequest{
		UserID:     userID,
		Type:       domain.UpgradeType(req.Type),
		BoostValue: req.BoostValue,
		Duration:   time.Duration(req.DurationSeconds) * time.Second,
	})
	if err != nil {
		respondServiceError(w, r, "Grant upgrade", err)
		return
	}
	respondJSON(w, http.StatusCreated, GrantUpgradeResponse{Message: MsgUpgradeGranted, Upgrade: *granted})
}

// HandleListUpgrades lists a user's effective upgrades with the aggregated boosts
// @Summary List user upgrades
// @Tags admin
// @Produce json
// @Param telegram_id query int true "Telegram user id"
// @Router /api/v1/admin/upgrades [get]
func (h *AdminHandler) HandleListUpgrades(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := getTelegramIDQuery(r, w)
	if !ok {
		return
	}
	userID, ok := resolveUser(w, r, h.users, telegramID, "List upgrades")
	if !ok {
		return
	}

	active, err := h.upgrades.ListActive(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "List upgrades", err)
		return
	}
	if active == nil {
		active = []domain.UserUpgrade{}
	}
	boosts, err := h.upgrades.GetBoosts(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "List upgrades", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"upgrades": active,
		"boosts":   boosts,
	})
}

// HandleGetCacheStats returns user cache statistics
// @Summary Get user cache stats
// @Tags admin
// @Produce json
// @Success 200 {object} user.CacheStats
// @Router /api/v1/admin/cache/stats [get]
func (h *AdminHandler) HandleGetCacheStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.users.CacheStats())
}

// HandleInvalidateCatalog drops cached catalog reads after an out-of-band catalog change
// @Summary Invalidate catalog cache
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/admin/catalog/invalidate [post]
func (h *AdminHandler) HandleInvalidateCatalog(w http.ResponseWriter, r *http.Request) {
	h.catalog.Invalidate()
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCatalogInvalidate})
}
