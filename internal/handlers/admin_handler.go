package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/jotickets/jotickets/internal/helpers"
	"github.com/jotickets/jotickets/internal/middleware"
	"github.com/jotickets/jotickets/internal/models"
	"github.com/jotickets/jotickets/internal/repository"
)

const adminLoginPath = "/gestion/login/"
const adminMatchesPath = "/gestion/matches/"

// startLayouts accepted on the edit form: RFC3339 from API clients and the
// HTML datetime-local format from the console form.
var startLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

// AdminHandler serves the staff console under /gestion/. Browser flows get
// redirects rather than JSON errors; unauthenticated or non-staff callers
// are sent back to the login page by the middleware.
type AdminHandler struct {
	users    repository.UserRepository
	stadiums repository.StadiumRepository
	teams    repository.TeamRepository
	events   repository.EventRepository
	secret   string
}

func NewAdminHandler(users repository.UserRepository, stadiums repository.StadiumRepository, teams repository.TeamRepository, events repository.EventRepository, secret string) *AdminHandler {
	return &AdminHandler{users: users, stadiums: stadiums, teams: teams, events: events, secret: secret}
}

func (h *AdminHandler) LoginPage(c *gin.Context) {
	if middleware.IsStaff(c) {
		c.Redirect(http.StatusFound, adminMatchesPath)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Please log in with a staff account."})
}

func (h *AdminHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.users.GetByUsername(c.Request.Context(), username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil || !user.IsStaff() {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	tokenString, err := helpers.GenerateToken(h.secret, user)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.SetCookie(middleware.AuthCookieName, tokenString, 24*60*60, "/", "", false, true)
	c.Redirect(http.StatusFound, adminMatchesPath)
}

// Matches lists all events with the teams and stadiums needed to render the
// edit form.
func (h *AdminHandler) Matches(c *gin.Context) {
	ctx := c.Request.Context()

	events, err := h.events.List(ctx)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving matches.")
		return
	}
	teams, err := h.teams.List(ctx)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving teams.")
		return
	}
	stadiums, err := h.stadiums.List(ctx)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving stadiums.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":   events,
		"teams":    teams,
		"stadiums": stadiums,
	})
}

// SubmitMatches handles the list page's inline form. A posted event_id
// means an edit of that match; no event_id means a new match.
func (h *AdminHandler) SubmitMatches(c *gin.Context) {
	rawID := c.PostForm("event_id")
	if rawID == "" {
		h.createEvent(c)
		return
	}
	eventID, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid match id.")
		return
	}
	h.submitEventEdit(c, uint(eventID))
}

func (h *AdminHandler) EditMatch(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid match id.")
		return
	}
	h.submitEventEdit(c, uint(eventID))
}

// eventForm is the explicit set of fields the console may write. Missing
// scores default to 0.
type eventForm struct {
	Start      time.Time
	StadiumID  uint
	TeamHomeID uint
	TeamAwayID uint
	ScoreHome  int
	ScoreAway  int
}

// parseEventForm validates the edit form. On failure it writes the error
// response and returns false.
func parseEventForm(c *gin.Context) (eventForm, bool) {
	var form eventForm

	start, err := parseStart(c.PostForm("start"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid start time format.")
		return form, false
	}
	form.Start = start

	stadiumID, err := strconv.ParseUint(c.PostForm("stadium"), 10, 32)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid stadium.")
		return form, false
	}
	form.StadiumID = uint(stadiumID)

	teamHomeID, err := strconv.ParseUint(c.PostForm("team_home"), 10, 32)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid home team.")
		return form, false
	}
	teamAwayID, err := strconv.ParseUint(c.PostForm("team_away"), 10, 32)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid away team.")
		return form, false
	}
	if teamHomeID == teamAwayID {
		helpers.RespondWithError(c, http.StatusBadRequest, "Home and away teams must differ.")
		return form, false
	}
	form.TeamHomeID = uint(teamHomeID)
	form.TeamAwayID = uint(teamAwayID)

	form.ScoreHome, err = parseScore(c.PostForm("score_team_home"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid home score.")
		return form, false
	}
	form.ScoreAway, err = parseScore(c.PostForm("score_team_away"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid away score.")
		return form, false
	}

	return form, true
}

func (h *AdminHandler) submitEventEdit(c *gin.Context, eventID uint) {
	ctx := c.Request.Context()

	event, err := h.events.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Match not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding match.")
		return
	}

	form, ok := parseEventForm(c)
	if !ok {
		return
	}

	event.Start = form.Start
	event.StadiumID = form.StadiumID
	event.TeamHomeID = form.TeamHomeID
	event.TeamAwayID = form.TeamAwayID
	event.ScoreHome = form.ScoreHome
	event.ScoreAway = form.ScoreAway
	// Drop the preloaded references so the save writes the new foreign keys.
	event.Stadium = models.Stadium{}
	event.TeamHome = models.Team{}
	event.TeamAway = models.Team{}

	if err := h.events.Update(ctx, event); err != nil {
		// The user-facing message stays generic; the cause goes to the log.
		logrus.WithError(err).WithField("event_id", eventID).Error("failed to update match")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error updating the match.")
		return
	}

	h.respondSuccess(c, "Match updated successfully.")
}

func (h *AdminHandler) createEvent(c *gin.Context) {
	form, ok := parseEventForm(c)
	if !ok {
		return
	}

	event := models.Event{
		Start:      form.Start,
		StadiumID:  form.StadiumID,
		TeamHomeID: form.TeamHomeID,
		TeamAwayID: form.TeamAwayID,
		ScoreHome:  form.ScoreHome,
		ScoreAway:  form.ScoreAway,
	}

	if err := h.events.Create(c.Request.Context(), &event); err != nil {
		logrus.WithError(err).Error("failed to create match")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error creating the match.")
		return
	}

	h.respondSuccess(c, "Match created successfully.")
}

func (h *AdminHandler) DeleteMatch(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid match id.")
		return
	}

	if err := h.events.Delete(c.Request.Context(), uint(eventID)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Match not found.")
			return
		}
		logrus.WithError(err).WithField("event_id", eventID).Error("failed to delete match")
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error deleting the match.")
		return
	}

	h.respondSuccess(c, "Match deleted successfully.")
}

func (h *AdminHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, adminLoginPath)
}

// respondSuccess mirrors the console's post-redirect-get flow: AJAX callers
// get JSON, form posts get redirected back to the list.
func (h *AdminHandler) respondSuccess(c *gin.Context, message string) {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
		return
	}
	c.Redirect(http.StatusFound, adminMatchesPath)
}

func parseStart(value string) (time.Time, error) {
	var err error
	for _, layout := range startLayouts {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func parseScore(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
