package handler

import (
	"net/http"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/expedition"
	"github.com/spaceminer/spaceminer-server/internal/logger"
)

// ExpeditionHandler serves the expedition lifecycle endpoints
type ExpeditionHandler struct {
	service expedition.Service
	users   UserResolver
}

func NewExpeditionHandler(service expedition.Service, users UserResolver) *ExpeditionHandler {
	return &ExpeditionHandler{
		service: service,
		users:   users,
	}
}

// TelegramUserRequest identifies the acting user
type TelegramUserRequest struct {
	TelegramID int64 `json:"telegram_id" validate:"required,gt=0"`
}

// StartExpeditionRequest represents an expedition start request
type StartExpeditionRequest struct {
	TelegramID int64 `json:"telegram_id" validate:"required,gt=0"`
	PlanetID   int   `json:"planet_id" validate:"required,gt=0"`
}

// MineRequest represents a mine action request
type MineRequest struct {
	TelegramID int64  `json:"telegram_id" validate:"required,gt=0"`
	Method     string `json:"method" validate:"required,mining_method"`
}

// DangerResponse wraps the optional danger so "no danger" is an explicit null
type DangerResponse struct {
	Danger *domain.DangerEvent `json:"danger"`
}

// HandleStart handles expedition start requests
// @Summary Start an expedition
// @Tags expeditions
// @Accept json
// @Produce json
// @Param request body StartExpeditionRequest true "Start request"
// @Success 201 {object} domain.StartResult
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/expeditions/start [post]
func (h *ExpeditionHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req StartExpeditionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start expedition"); err != nil {
		return
	}

	userID, ok := resolveUser(w, r, h.users, req.TelegramID, "Start expedition")
	if !ok {
		return
	}

	result, err := h.service.Start(r.Context(), userID, req.PlanetID)
	if err != nil {
		respondServiceError(w, r, "Start expedition", err)
		return
	}

	logger.FromContext(r.Context()).Info("Expedition started via API",
		"userID", userID, "expeditionID", result.Expedition.ID, "planetID", req.PlanetID)
	respondJSON(w, http.StatusCreated, result)
}

// HandleGetActive returns the caller's active expedition with its countdown
// @Summary Get active expedition
// @Tags expeditions
// @Produce json
// @Param telegram_id query int true "Telegram user id"
// @Success 200 {object} domain.ActiveExpedition
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/expeditions/active [get]
func (h *ExpeditionHandler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := getTelegramIDQuery(r, w)
	if !ok {
		return
	}
	userID, ok := resolveUser(w, r, h.users, telegramID, "Get active expedition")
	if !ok {
		return
	}

	active, err := h.service.GetActive(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get active expedition", err)
		return
	}
	respondJSON(w, http.StatusOK, active)
}

// HandleMine performs one mine action
// @Summary Mine a resource
// @Tags expeditions
// @Accept json
// @Produce json
// @Param request body MineRequest true "Mine request"
// @Success 200 {object} domain.MineResult
// @Failure 410 {object} ErrorResponse
// @Router /api/v1/expeditions/mine [post]
func (h *ExpeditionHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	var req MineRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Mine"); err != nil {
		return
	}
	userID, ok := resolveUser(w, r, h.users, req.TelegramID, "Mine")
	if !ok {
		return
	}

	result, err := h.service.Mine(r.Context(), userID, domain.MiningMethod(req.Method))
	if err != nil {
		respondServiceError(w, r, "Mine", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleExplore performs one explore batch
// @Summary Explore the surface
// @Tags expeditions
// @Accept json
// @Produce json
// @Param request body TelegramUserRequest true "Explore request"
// @Success 200 {object} domain.ExploreResult
// @Router /api/v1/expeditions/explore [post]
func (h *ExpeditionHandler) HandleExplore(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.decodeUser(w, r, "Explore")
	if !ok {
		return
	}

	result, err := h.service.Explore(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Explore", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleCheckDanger rolls for an advisory danger event
// @Summary Check for danger
// @Tags expeditions
// @Accept json
// @Produce json
// @Param request body TelegramUserRequest true "Danger check request"
// @Success 200 {object} DangerResponse
// @Router /api/v1/expeditions/check-danger [post]
func (h *ExpeditionHandler) HandleCheckDanger(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.decodeUser(w, r, "Check danger")
	if !ok {
		return
	}

	danger, err := h.service.CheckDanger(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Check danger", err)
		return
	}
	respondJSON(w, http.StatusOK, DangerResponse{Danger: danger})
}

// HandleReturn returns to the ship and settles the expedition
// @Summary Return to ship
// @Tags expeditions
// @Accept json
// @Produce json
// @Param request body TelegramUserRequest true "Return request"
// @Success 200 {object} domain.Settlement
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/expeditions/return [post]
func (h *ExpeditionHandler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.decodeUser(w, r, "Return to ship")
	if !ok {
		return
	}

	settlement, err := h.service.Return(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Return to ship", err)
		return
	}
	respondJSON(w, http.StatusOK, settlement)
}

// HandleTimeUp settles an expedition whose window has closed
// @Summary Settle an expired expedition
// @Tags expeditions
// @Accept json
// @Produce json
// @Param request body TelegramUserRequest true "Time-up request"
// @Success 200 {object} domain.Settlement
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/expeditions/time-up [post]
func (h *ExpeditionHandler) HandleTimeUp(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.decodeUser(w, r, "Expedition time up")
	if !ok {
		return
	}

	settlement, err := h.service.TimeUp(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Expedition time up", err)
		return
	}
	respondJSON(w, http.StatusOK, settlement)
}

// HandleHistory lists the caller's most recent finished expeditions
// @Summary Expedition history
// @Tags expeditions
// @Produce json
// @Param telegram_id query int true "Telegram user id"
// @Success 200 {array} domain.ExpeditionHistoryEntry
// @Router /api/v1/expeditions/history [get]
func (h *ExpeditionHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	telegramID, ok := getTelegramIDQuery(r, w)
	if !ok {
		return
	}
	userID, ok := resolveUser(w, r, h.users, telegramID, "Expedition history")
	if !ok {
		return
	}

	history, err := h.service.GetHistory(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Expedition history", err)
		return
	}
	if history == nil {
		history = []domain.ExpeditionHistoryEntry{}
	}
	respondJSON(w, http.StatusOK, history)
}

func (h *ExpeditionHandler) decodeUser(w http.ResponseWriter, r *http.Request, opName string) (string, bool) {
	var req TelegramUserRequest
	if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
		return "", false
	}
	return resolveUser(w, r, h.users, req.TelegramID, opName)
}
