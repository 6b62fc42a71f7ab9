package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"itemhub/internal/service"

	"github.com/gin-gonic/gin"
)

// Fixed message bodies for the item endpoints.
const (
	errNameRequired  = "name is required"
	errItemNotFound  = "item not found"
	errInvalidItemID = "invalid item id"
	errNotOwnerView  = "not authorized to view this item"
	errNotOwnerEdit  = "not authorized to update this item"
	errNotOwnerWipe  = "not authorized to delete this item"

	errListItems  = "failed to list items"
	errCreateItem = "failed to create item"
	errGetItem    = "failed to load item"
	errUpdateItem = "failed to update item"
	errDeleteItem = "failed to delete item"
)

// Request DTO for creating/renaming an item.
type itemRequest struct {
	Name string `json:"name"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// itemIDParam parses the :id path segment; answers 404 for non-numeric ids,
// matching the absent-item outcome.
func (h *Handler) itemIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errItemNotFound})
		return 0, false
	}
	return id, true
}

// respondItemError maps item-service errors onto the HTTP contract.
func (h *Handler) respondItemError(c *gin.Context, err error, notOwnerMsg, fallbackMsg, logKey string) {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": errNameRequired})
	case errors.Is(err, service.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errItemNotFound})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": notOwnerMsg})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, fallbackMsg, logKey, err)
	}
}

// @Summary      List the caller's items
// @Tags         items
// @Produce      json
// @Success      200  {array}   models.Item
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/items [get]
// @Security     BearerAuth
func (h *Handler) listItems(c *gin.Context) {
	items, err := h.services.Items.List(c.Request.Context(), callerID(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListItems, "items_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body      itemRequest  true  "Item payload"
// @Success      201   {object}  models.Item
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/items [post]
// @Security     BearerAuth
func (h *Handler) createItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errNameRequired})
		return
	}

	item, err := h.services.Items.Create(c.Request.Context(), callerID(c), req.Name)
	if err != nil {
		h.respondItemError(c, err, "", errCreateItem, "items_create_failed")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// @Summary      Get a single item
// @Tags         items
// @Produce      json
// @Param        id   path      int  true  "Item ID"
// @Success      200  {object}  models.Item
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/items/{id} [get]
// @Security     BearerAuth
func (h *Handler) getItem(c *gin.Context) {
	id, ok := h.itemIDParam(c)
	if !ok {
		return
	}

	item, err := h.services.Items.Get(c.Request.Context(), id, callerID(c))
	if err != nil {
		h.respondItemError(c, err, errNotOwnerView, errGetItem, "items_get_failed")
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary      Rename an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "Item ID"
// @Param        body  body      itemRequest  true  "Item payload"
// @Success      200   {object}  models.Item
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/items/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateItem(c *gin.Context) {
	id, ok := h.itemIDParam(c)
	if !ok {
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errNameRequired})
		return
	}

	item, err := h.services.Items.Update(c.Request.Context(), id, callerID(c), req.Name)
	if err != nil {
		h.respondItemError(c, err, errNotOwnerEdit, errUpdateItem, "items_update_failed")
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary      Delete an item
// @Tags         items
// @Param        id  path  int  true  "Item ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/items/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteItem(c *gin.Context) {
	id, ok := h.itemIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Items.Delete(c.Request.Context(), id, callerID(c)); err != nil {
		h.respondItemError(c, err, errNotOwnerWipe, errDeleteItem, "items_delete_failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
