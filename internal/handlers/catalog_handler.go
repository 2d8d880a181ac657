package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jotickets/jotickets/internal/helpers"
	"github.com/jotickets/jotickets/internal/repository"
)

type CatalogHandler struct {
	stadiums repository.StadiumRepository
	teams    repository.TeamRepository
	events   repository.EventRepository
}

func NewCatalogHandler(stadiums repository.StadiumRepository, teams repository.TeamRepository, events repository.EventRepository) *CatalogHandler {
	return &CatalogHandler{stadiums: stadiums, teams: teams, events: events}
}

func (h *CatalogHandler) ListStadiums(c *gin.Context) {
	stadiums, err := h.stadiums.List(c.Request.Context())
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving stadiums.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stadiums": stadiums})
}

func (h *CatalogHandler) ListTeams(c *gin.Context) {
	teams, err := h.teams.List(c.Request.Context())
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving teams.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

func (h *CatalogHandler) ListEvents(c *gin.Context) {
	events, err := h.events.List(c.Request.Context())
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
