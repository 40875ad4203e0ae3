package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecopilot/trip-planner/internal/core/domain"
	"github.com/ecopilot/trip-planner/internal/core/ports"
)

// AuthHandler serves account, session and subscription routes.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account. It does not log the user in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.WithOp(domain.OpRegister, domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	observe(domain.OpRegister, err)
	if err != nil {
		return domain.WithOp(domain.OpRegister, err)
	}

	return c.JSON(http.StatusCreated, userResponse{Success: true, Message: domain.MsgRegistered, User: user})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.WithOp(domain.OpLogin, domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	observe(domain.OpLogin, err)
	if err != nil {
		return domain.WithOp(domain.OpLogin, err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: domain.MsgLoggedIn,
		Token:   result.Token,
		User:    result.User,
	})
}

// Logout ends the caller's session. Calling it without a session succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      500  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	err := h.authService.Logout(c.Request().Context(), ctxSessionID(c))
	observe(domain.OpLogout, err)
	if err != nil {
		return domain.WithOp(domain.OpLogout, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: domain.MsgLoggedOut})
}

// Me returns the logged-in user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c, domain.OpSession)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, User: user})
}

// Premium reports whether the caller holds an active subscription.
// Anonymous callers get false.
//
// @Summary      Premium status
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  premiumResponse
// @Failure      500  {object}  errorResponse
// @Router       /auth/premium [get]
func (h *AuthHandler) Premium(c echo.Context) error {
	premium, err := h.authService.IsPremium(c.Request().Context(), ctxSessionID(c))
	if err != nil {
		return domain.WithOp(domain.OpSession, err)
	}
	return c.JSON(http.StatusOK, premiumResponse{Success: true, IsPremium: premium})
}

// UpdatePassword changes the logged-in user's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/password [put]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	user, err := ctxUser(c, domain.OpUpdatePassword)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return domain.WithOp(domain.OpUpdatePassword, domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.authService.UpdatePassword(c.Request().Context(), user.Email, req.CurrentPassword, req.NewPassword)
	observe(domain.OpUpdatePassword, err)
	if err != nil {
		return domain.WithOp(domain.OpUpdatePassword, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: domain.MsgPasswordChanged})
}

// Subscribe activates the premium plan for the logged-in user.
//
// @Summary      Subscribe to premium
// @Tags         subscription
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /subscription [post]
func (h *AuthHandler) Subscribe(c echo.Context) error {
	user, err := ctxUser(c, domain.OpSubscribe)
	if err != nil {
		return err
	}

	updated, err := h.authService.Subscribe(c.Request().Context(), user.Email)
	observe(domain.OpSubscribe, err)
	if err != nil {
		return domain.WithOp(domain.OpSubscribe, err)
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Message: domain.MsgSubscribed, User: updated})
}

// CancelSubscription ends the premium plan for the logged-in user.
//
// @Summary      Cancel premium subscription
// @Tags         subscription
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /subscription [delete]
func (h *AuthHandler) CancelSubscription(c echo.Context) error {
	user, err := ctxUser(c, domain.OpCancel)
	if err != nil {
		return err
	}

	updated, err := h.authService.CancelSubscription(c.Request().Context(), user.Email)
	observe(domain.OpCancel, err)
	if err != nil {
		return domain.WithOp(domain.OpCancel, err)
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Message: domain.MsgSubscriptionCancelled, User: updated})
}
