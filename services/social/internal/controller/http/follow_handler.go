package http

import (
	"net/http"
	"strconv"

	"fun123/services/social/internal/usecase"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	followUseCase usecase.FollowUseCase
}

func NewFollowHandler(followUseCase usecase.FollowUseCase) *FollowHandler {
	return &FollowHandler{
		followUseCase: followUseCase,
	}
}

type FollowStatusResponse struct {
	Following  bool `json:"following"`
	FollowedBy bool `json:"followed_by"`
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Follow godoc
// @Summary      Follow a user
// @Tags         follow
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /users/{id}/follow [post]
func (h *FollowHandler) Follow(c *gin.Context) {
	caller := callerFrom(c)
	if caller == nil {
		unauthorized(c)
		return
	}

	if err := h.followUseCase.Follow(c.Request.Context(), caller.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Unfollow godoc
// @Summary      Unfollow a user
// @Tags         follow
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Router       /users/{id}/follow [delete]
func (h *FollowHandler) Unfollow(c *gin.Context) {
	caller := callerFrom(c)
	if caller == nil {
		unauthorized(c)
		return
	}

	if err := h.followUseCase.Unfollow(c.Request.Context(), caller.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Status godoc
// @Summary      Follow relation between the caller and a user
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  FollowStatusResponse
// @Router       /users/{id}/follow [get]
func (h *FollowHandler) Status(c *gin.Context) {
	caller := callerFrom(c)
	if caller == nil {
		unauthorized(c)
		return
	}

	ctx := c.Request.Context()
	otherID := c.Param("id")

	following, err := h.followUseCase.IsFollowing(ctx, caller.ID, otherID)
	if err != nil {
		respondError(c, err)
		return
	}
	followedBy, err := h.followUseCase.IsFollowedBy(ctx, caller.ID, otherID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, FollowStatusResponse{Following: following, FollowedBy: followedBy})
}

// Followers godoc
// @Summary      Users following the given user
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        page query int false "Page number"
// @Success      200  {object}  usecase.FollowPage
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/followers [get]
func (h *FollowHandler) Followers(c *gin.Context) {
	page, err := h.followUseCase.Followers(c.Request.Context(), c.Param("id"), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Following godoc
// @Summary      Users the given user follows
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        page query int false "Page number"
// @Success      200  {object}  usecase.FollowPage
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/following [get]
func (h *FollowHandler) Following(c *gin.Context) {
	page, err := h.followUseCase.Following(c.Request.Context(), c.Param("id"), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
