package http

import (
	"net/http"

	"fun123/services/social/internal/usecase"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleUseCase usecase.RoleUseCase
}

func NewRoleHandler(roleUseCase usecase.RoleUseCase) *RoleHandler {
	return &RoleHandler{roleUseCase: roleUseCase}
}

// ListRoles godoc
// @Summary      List roles and their permission masks
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entity.Role
// @Failure      403  {object}  map[string]string
// @Router       /admin/roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleUseCase.ListRoles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}
