package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/anonto42/high-five/backend/internal/flash"
	"github.com/anonto42/high-five/backend/internal/models"
	"github.com/anonto42/high-five/backend/internal/nonce"
	"github.com/anonto42/high-five/backend/internal/repositories"
	"github.com/anonto42/high-five/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// Anti-forgery action names. Each mutating screen action has its own token
// scope.
const (
	actionSendHighFive = "send_high_five"
	actionAcceptTerms  = "accept_terms"
	actionRejectTerms  = "reject_terms"
)

// ExampleHandler is the screen controller for the example component. It maps
// routed actions onto the ledger/terms/notification services, sets a flash
// message and redirects; plain GETs fall through to the read-only render
// path.
type ExampleHandler struct {
	highFiveService     *services.HighFiveService
	termsService        *services.TermsService
	notificationService *services.NotificationService
	activityRepository  repositories.ActivityRepository
	userRepository      repositories.UserRepository
	nonces              *nonce.Service
}

// NewExampleHandler creates a new ExampleHandler
func NewExampleHandler(
	highFiveService *services.HighFiveService,
	termsService *services.TermsService,
	notificationService *services.NotificationService,
	activityRepo repositories.ActivityRepository,
	userRepo repositories.UserRepository,
	nonces *nonce.Service,
) *ExampleHandler {
	return &ExampleHandler{
		highFiveService:     highFiveService,
		termsService:        termsService,
		notificationService: notificationService,
		activityRepository:  activityRepo,
		userRepository:      userRepo,
		nonces:              nonces,
	}
}

// RegisterExampleRoutes registers the component's screens and actions
func (h *ExampleHandler) RegisterExampleRoutes(g *echo.Group) {
	g.GET("/example", h.Directory)
	g.GET("/users/:user_id/example", h.ScreenOne)
	g.GET("/users/:user_id/example/screen-one", h.ScreenOne)
	g.POST("/users/:user_id/example/screen-one/send-h5", h.SendHighFive)
	g.GET("/example/screen-two", h.ScreenTwo)
	g.POST("/example/screen-two/accept", h.AcceptTerms)
	g.POST("/example/screen-two/reject", h.RejectTerms)
}

// Directory renders the component's top-level page: recent sitewide activity
func (h *ExampleHandler) Directory(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	entries, err := h.activityRepository.GetSitewide(c.Request().Context(), int64((page-1)*limit), int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"activity": entries,
			"flash":    flash.Pop(c),
		},
	})
}

// ScreenOne renders the displayed user's high-five screen: who has high-fived
// them, plus a pre-signed send link for the viewer. Viewing the screen clears
// the viewer's unread high-five notifications.
func (h *ExampleHandler) ScreenOne(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	displayedID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	displayedUser, err := h.userRepository.GetUserByID(uint(displayedID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	highFiverIDs, err := h.highFiveService.GetHighFivesFor(c.Request().Context(), displayedUser.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	highFivers := make([]models.UserCompact, 0, len(highFiverIDs))
	for _, id := range highFiverIDs {
		user, err := h.userRepository.GetUserByID(id)
		if err != nil {
			continue
		}
		highFivers = append(highFivers, user.ToCompact())
	}

	sendToken, err := h.nonces.Issue(currentUserID, actionSendHighFive)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	sendLink := fmt.Sprintf("/api/v1/users/%d/example/screen-one/send-h5?nonce=%s", displayedUser.ID, sendToken)

	// The viewer has now seen their high-five notifications
	if err := h.notificationService.MarkScreenNotificationsRead(c.Request().Context(), currentUserID); err != nil {
		c.Logger().Warnf("failed to mark notifications read: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"displayed_user": displayedUser.ToCompact(),
			"high_fives":     highFivers,
			"send_link":      sendLink,
			"flash":          flash.Pop(c),
		},
	})
}

// SendHighFive handles the send-h5 action on screen one. The nonce is checked
// before anything else; self-fives and duplicates become flash errors. The
// redirect always targets the displayed profile's screen regardless of
// outcome.
func (h *ExampleHandler) SendHighFive(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if !h.nonces.Verify(currentUserID, actionSendHighFive, c.QueryParam("nonce")) {
		return echo.NewHTTPError(http.StatusForbidden, "Invalid or missing action token")
	}

	displayedID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if uint(displayedID) == currentUserID {
		// Don't let users high five themselves
		flash.Set(c, flash.TypeError, "No self-fives! :)")
	} else {
		result, err := h.highFiveService.SendHighFive(c.Request().Context(), uint(displayedID), currentUserID)
		switch {
		case err != nil:
			flash.Set(c, flash.TypeError, "High-five could not be sent.")
		case result == services.HighFiveSent:
			flash.Set(c, flash.TypeSuccess, "High-five sent!")
		default:
			flash.Set(c, flash.TypeError, "High-five could not be sent.")
		}
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/api/v1/users/%d/example/screen-one", displayedID))
}

// ScreenTwo renders the terms screen with pre-signed accept/reject links
func (h *ExampleHandler) ScreenTwo(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	acceptToken, err := h.nonces.Issue(currentUserID, actionAcceptTerms)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	rejectToken, err := h.nonces.Issue(currentUserID, actionRejectTerms)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	decision, err := h.termsService.GetDecision(c.Request().Context(), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"decision":    decision,
			"accept_link": "/api/v1/example/screen-two/accept?nonce=" + acceptToken,
			"reject_link": "/api/v1/example/screen-two/reject?nonce=" + rejectToken,
			"flash":       flash.Pop(c),
		},
	})
}

// AcceptTerms handles the accept action on screen two
func (h *ExampleHandler) AcceptTerms(c echo.Context) error {
	return h.decideTerms(c, actionAcceptTerms)
}

// RejectTerms handles the reject action on screen two
func (h *ExampleHandler) RejectTerms(c echo.Context) error {
	return h.decideTerms(c, actionRejectTerms)
}

func (h *ExampleHandler) decideTerms(c echo.Context, action string) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if !h.nonces.Verify(currentUserID, action, c.QueryParam("nonce")) {
		return echo.NewHTTPError(http.StatusForbidden, "Invalid or missing action token")
	}

	if action == actionAcceptTerms {
		if err := h.termsService.AcceptTerms(c.Request().Context(), currentUserID); err != nil {
			flash.Set(c, flash.TypeError, "Terms could not be accepted.")
		} else {
			flash.Set(c, flash.TypeSuccess, "Terms were accepted!")
		}
	} else {
		if err := h.termsService.RejectTerms(c.Request().Context(), currentUserID); err != nil {
			flash.Set(c, flash.TypeError, "Terms could not be rejected.")
		} else {
			flash.Set(c, flash.TypeSuccess, "Terms were rejected!")
		}
	}

	// Back to the logged-in user's own screen, so a refresh can't repeat the
	// action
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/api/v1/users/%d/example", currentUserID))
}
