package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	account "github.com/light-bringer/storefront-service/internal/app/account/domain"
	"github.com/light-bringer/storefront-service/internal/app/account/queries/get_user"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/create_user"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/delete_user"
	"github.com/light-bringer/storefront-service/internal/app/account/usecases/update_user"
)

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.svc.Queries.ListUsers.Execute(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.svc.Queries.GetUser.Execute(c.Request.Context(), &get_user.Request{UserID: c.Param("id")})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := h.svc.Commands.CreateUser.Execute(c.Request.Context(), &create_user.Request{
		Email:    req.Email,
		Name:     req.Name,
		Role:     account.Role(req.Role),
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *Handler) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	var role *account.Role
	if req.Role != nil {
		r := account.Role(*req.Role)
		role = &r
	}

	user, err := h.svc.Commands.UpdateUser.Execute(c.Request.Context(), &update_user.Request{
		UserID: c.Param("id"),
		Name:   req.Name,
		Email:  req.Email,
		Role:   role,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.svc.Commands.DeleteUser.Execute(c.Request.Context(), &delete_user.Request{
		UserID:  c.Param("id"),
		ActorID: currentUser(c).ID(),
	}); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
