package http

import (
	"net/http"
	"strconv"

	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogUseCase usecase.CatalogUseCase
	markUseCase    usecase.MarkUseCase
}

func NewCatalogHandler(catalogUseCase usecase.CatalogUseCase, markUseCase usecase.MarkUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
		markUseCase:    markUseCase,
	}
}

type CatalogItemRequest struct {
	Name   string `json:"name" binding:"required,max=64"`
	PicURL string `json:"pic_url" binding:"omitempty,url,max=128"`
}

type CastRequest struct {
	ActorID uint `json:"actor_id" binding:"required"`
}

type MarkStatusResponse struct {
	Marked bool  `json:"marked"`
	Count  int64 `json:"count"`
}

type ActorResponse struct {
	Actor  *entity.Actor         `json:"actor"`
	Titles []*entity.CatalogItem `json:"titles"`
}

// kindParam rejects anything outside the enumerated kinds.
func kindParam(c *gin.Context) (entity.Kind, bool) {
	kind, err := entity.ParseKind(c.Param("kind"))
	if err != nil {
		respondError(c, err)
		return 0, false
	}
	return kind, true
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// List godoc
// @Summary      List catalog entries of a kind
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "movie, tv, novel or uploader"
// @Param        page query int false "Page number"
// @Success      200  {array}   entity.CatalogItem
// @Failure      400  {object}  map[string]string
// @Router       /catalog/{kind} [get]
func (h *CatalogHandler) List(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	items, err := h.catalogUseCase.List(c.Request.Context(), kind, pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary      Get a catalog entry
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "movie, tv, novel or uploader"
// @Param        id path int true "Entry ID"
// @Success      200  {object}  entity.CatalogItem
// @Failure      404  {object}  map[string]string
// @Router       /catalog/{kind}/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	item, err := h.catalogUseCase.Get(c.Request.Context(), kind, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create godoc
// @Summary      Add a catalog entry
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "movie, tv, novel or uploader"
// @Param        request body CatalogItemRequest true "Entry"
// @Success      201  {object}  entity.CatalogItem
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /catalog/{kind} [post]
func (h *CatalogHandler) Create(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	var req CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	item, err := h.catalogUseCase.Create(c.Request.Context(), kind, req.Name, req.PicURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Cast godoc
// @Summary      Actors credited in a movie or TV entry
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "movie or tv"
// @Param        id path int true "Entry ID"
// @Success      200  {array}   entity.Actor
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /catalog/{kind}/{id}/cast [get]
func (h *CatalogHandler) Cast(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	actors, err := h.catalogUseCase.Cast(c.Request.Context(), kind, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, actors)
}

// AddToCast godoc
// @Summary      Credit an actor in a movie or TV entry
// @Tags         catalog
// @Accept       json
// @Security     BearerAuth
// @Param        kind path string true "movie or tv"
// @Param        id path int true "Entry ID"
// @Param        request body CastRequest true "Actor"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /catalog/{kind}/{id}/cast [post]
func (h *CatalogHandler) AddToCast(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req CastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.catalogUseCase.AddToCast(c.Request.Context(), kind, id, req.ActorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateActor godoc
// @Summary      Add an actor
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CatalogItemRequest true "Actor"
// @Success      201  {object}  entity.Actor
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /actors [post]
func (h *CatalogHandler) CreateActor(c *gin.Context) {
	var req CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	actor, err := h.catalogUseCase.CreateActor(c.Request.Context(), req.Name, req.PicURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, actor)
}

// GetActor godoc
// @Summary      Get an actor and the titles they appear in
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Actor ID"
// @Success      200  {object}  ActorResponse
// @Failure      404  {object}  map[string]string
// @Router       /actors/{id} [get]
func (h *CatalogHandler) GetActor(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	actor, err := h.catalogUseCase.GetActor(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	titles, err := h.catalogUseCase.Titles(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ActorResponse{Actor: actor, Titles: titles})
}

// Mark godoc
// @Summary      Mark a catalog entry
// @Description  Idempotent; marking twice keeps one mark
// @Tags         marks
// @Security     BearerAuth
// @Param        kind path string true "movie, tv, novel or uploader"
// @Param        id path int true "Entry ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /catalog/{kind}/{id}/mark [post]
func (h *CatalogHandler) Mark(c *gin.Context) {
	caller := callerFrom(c)
	if caller == nil {
		unauthorized(c)
		return
	}
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.markUseCase.Mark(c.Request.Context(), caller.ID, kind, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkStatus godoc
// @Summary      Whether the caller marked an entry, and how many users did
// @Tags         marks
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "movie, tv, novel or uploader"
// @Param        id path int true "Entry ID"
// @Success      200  {object}  MarkStatusResponse
// @Failure      400  {object}  map[string]string
// @Router       /catalog/{kind}/{id}/mark [get]
func (h *CatalogHandler) MarkStatus(c *gin.Context) {
	caller := callerFrom(c)
	if caller == nil {
		unauthorized(c)
		return
	}
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	marked, err := h.markUseCase.HasMarked(ctx, caller.ID, kind, id)
	if err != nil {
		respondError(c, err)
		return
	}
	count, err := h.markUseCase.MarkCount(ctx, kind, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MarkStatusResponse{Marked: marked, Count: count})
}

// Marked godoc
// @Summary      Entries of a kind marked by a user
// @Tags         marks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        kind path string true "movie, tv, novel or uploader"
// @Success      200  {array}   entity.CatalogItem
// @Failure      400  {object}  map[string]string
// @Router       /users/{id}/marks/{kind} [get]
func (h *CatalogHandler) Marked(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}

	items, err := h.markUseCase.Marked(c.Request.Context(), c.Param("id"), kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
