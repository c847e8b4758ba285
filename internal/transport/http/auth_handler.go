package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/storefront-service/internal/app/account/usecases/login"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/register"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/reset_password"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/update_password"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/update_profile"
)

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	resp, err := h.svc.Commands.Login.Execute(c.Request.Context(), &login.Request{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toAuthResponse(resp.User, resp.Token))
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	resp, err := h.svc.Commands.Register.Execute(c.Request.Context(), &register.Request{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toAuthResponse(resp.User, resp.Token))
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, toUserResponse(currentUser(c)))
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := h.svc.Commands.UpdateProfile.Execute(c.Request.Context(), &update_profile.Request{
		UserID: currentUser(c).ID(),
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) updatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	err := h.svc.Commands.UpdatePassword.Execute(c.Request.Context(), &update_password.Request{
		UserID:      currentUser(c).ID(),
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// resetPassword always answers 202 so the endpoint cannot be used to probe for accounts.
func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := h.svc.Commands.ResetPassword.Execute(c.Request.Context(), &reset_password.Request{
		Email: req.Email,
	}); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusAccepted)
}
