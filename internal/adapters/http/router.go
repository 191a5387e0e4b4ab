// Package http exposes the controller and the read paths of the store
// over REST. No business logic lives here.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizhive/rooms/internal/controller"
	"github.com/quizhive/rooms/internal/domain"
	"github.com/quizhive/rooms/internal/provider"
	"github.com/quizhive/rooms/internal/store"
)

type CreateRequest struct {
	Title string `json:"title"`
}

type RenameRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func SetupRouter(mode string, ctrl *controller.Controller, rooms store.RoomStore) *gin.Engine {
	if mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	h := &handlers{ctrl: ctrl, rooms: rooms}

	room := r.Group("/room")
	room.POST("/create", h.create)
	room.DELETE("/delete/:id", h.delete)
	room.PUT("/rename", h.rename)
	room.GET("/get/:id", h.get)
	room.GET("/status/:id", h.status)
	room.GET("/list", h.list)

	return r
}

type handlers struct {
	ctrl  *controller.Controller
	rooms store.RoomStore
}

func (h *handlers) create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	room, err := h.ctrl.CreateRoom(c.Request.Context(), provider.Options{Title: req.Title})
	switch {
	case errors.Is(err, controller.ErrIDSpaceExhausted):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "unable to allocate a room id"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, room)
	}
}

func (h *handlers) delete(c *gin.Context) {
	id := domain.RoomID(c.Param("id"))
	if err := h.ctrl.DeleteRoom(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *handlers) rename(c *gin.Context) {
	var req RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing id or name"})
		return
	}
	ctx := c.Request.Context()
	room, err := h.rooms.Get(ctx, domain.RoomID(req.ID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	room.Name = req.Name
	if _, err := h.rooms.Update(ctx, room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *handlers) get(c *gin.Context) {
	room, err := h.rooms.Get(c.Request.Context(), domain.RoomID(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *handlers) status(c *gin.Context) {
	room, err := h.ctrl.GetRoomStatus(c.Request.Context(), domain.RoomID(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *handlers) list(c *gin.Context) {
	rooms, err := h.ctrl.ListRooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rooms)
}
