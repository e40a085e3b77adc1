package handler

import (
	"net/http"

	"github.com/spaceminer/spaceminer-server/internal/catalog"
	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/expedition"
)

// PlanetDangersResponse lists the advertised per-archetype danger chances of a planet
type PlanetDangersResponse struct {
	PlanetID    int                   `json:"planet_id"`
	DangerLevel int                   `json:"danger_level"`
	Dangers     []domain.DangerChance `json:"dangers"`
}

// CatalogHandler serves read-only planet data
type CatalogHandler struct {
	service catalog.Service
}

func NewCatalogHandler(service catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// HandleListPlanets lists every planet
// @Summary List planets
// @Tags planets
// @Produce json
// @Success 200 {array} domain.Planet
// @Router /api/v1/planets [get]
func (h *CatalogHandler) HandleListPlanets(w http.ResponseWriter, r *http.Request) {
	planets, err := h.service.ListPlanets(r.Context())
	if err != nil {
		respondServiceError(w, r, "List planets", err)
		return
	}
	if planets == nil {
		planets = []domain.Planet{}
	}
	respondJSON(w, http.StatusOK, planets)
}

// HandleGetPlanet returns a planet with its spawn table, rarest first
// @Summary Get planet details
// @Tags planets
// @Produce json
// @Param id path int true "Planet id"
// @Success 200 {object} domain.PlanetDetails
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/planets/{id} [get]
func (h *CatalogHandler) HandleGetPlanet(w http.ResponseWriter, r *http.Request) {
	id, ok := getIntURLParam(r, w, "id")
	if !ok {
		return
	}

	details, err := h.service.GetPlanetDetails(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get planet", err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

// HandleGetPlanetDangers returns the danger table of a planet
// @Summary Get planet dangers
// @Tags planets
// @Produce json
// @Param id path int true "Planet id"
// @Success 200 {object} PlanetDangersResponse
// @Router /api/v1/planets/{id}/dangers [get]
func (h *CatalogHandler) HandleGetPlanetDangers(w http.ResponseWriter, r *http.Request) {
	id, ok := getIntURLParam(r, w, "id")
	if !ok {
		return
	}

	planet, err := h.service.GetPlanet(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Get planet dangers", err)
		return
	}
	respondJSON(w, http.StatusOK, PlanetDangersResponse{
		PlanetID:    planet.ID,
		DangerLevel: planet.DangerLevel,
		Dangers:     expedition.PlanetDangers(*planet),
	})
}

// HandleSearchPlanets fuzzy-matches planet names
// @Summary Search planets
// @Tags planets
// @Produce json
// @Param q query string true "Name fragment"
// @Success 200 {array} domain.Planet
// @Router /api/v1/planets/search [get]
func (h *CatalogHandler) HandleSearchPlanets(w http.ResponseWriter, r *http.Request) {
	query, ok := GetQueryParam(r, w, "q")
	if !ok {
		return
	}

	planets, err := h.service.FindPlanets(r.Context(), query)
	if err != nil {
		respondServiceError(w, r, "Search planets", err)
		return
	}
	if planets == nil {
		planets = []domain.Planet{}
	}
	respondJSON(w, http.StatusOK, planets)
}
