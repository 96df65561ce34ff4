package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/application/services"
	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// actorContextKey is where the auth middleware stores the acting user.
const actorContextKey = "actor"

// actorFromContext returns the authenticated user, or nil for unauthenticated
// or automated callers.
func actorFromContext(c echo.Context) *entities.User {
	actor, _ := c.Get(actorContextKey).(*entities.User)
	return actor
}

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Login failed", "error", err, "username", req.Username)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	return c.JSON(http.StatusOK, response)
}

// NoteHandler handles quick note requests
type NoteHandler struct {
	noteService *services.NoteService
	logger      *logger.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *services.NoteService, logger *logger.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// CreateNote handles note creation
func (h *NoteHandler) CreateNote(c echo.Context) error {
	var req ports.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.CreateNote(c.Request().Context(), req, actorFromContext(c))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, note)
}

// GetNote handles getting a single note
func (h *NoteHandler) GetNote(c echo.Context) error {
	id, err := parseNoteID(c)
	if err != nil {
		return err
	}

	note, err := h.noteService.GetNote(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, note)
}

// UpdateNote handles note updates
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	id, err := parseNoteID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.UpdateNote(c.Request().Context(), id, req)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, note)
}

// DeleteNote handles note deletion
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	id, err := parseNoteID(c)
	if err != nil {
		return err
	}

	if err := h.noteService.DeleteNote(c.Request().Context(), id); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Note deleted"})
}

// ListNotes handles a note listing
func (h *NoteHandler) ListNotes(c echo.Context) error {
	var filter ports.NoteFilter

	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
		filter.Limit = limit
	}

	if v := c.QueryParam("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid offset")
		}
		filter.Offset = offset
	}

	if c.QueryParam("mine") == "true" {
		if actor := actorFromContext(c); actor != nil {
			id := actor.ID
			filter.OwnerUserID = &id
		}
	}

	notes, err := h.noteService.ListNotes(c.Request().Context(), filter)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, notes)
}

func parseNoteID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid note ID")
	}
	return id, nil
}

// UserHandler exposes the board member directory
type UserHandler struct {
	userService *services.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers returns every board member
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, users)
}

// CreateUser registers a new board member. Admin only.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req ports.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.CreateUser(c.Request().Context(), req.Username, req.Password, req.DisplayName, req.Role, actorFromContext(c))
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusCreated, user)
}
