package handlers

import (
	"net/http"

	"poolservice_backend/internal/auth"
	"poolservice_backend/internal/models"
	"poolservice_backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MessageHandler struct {
	*BaseHandler
	messages *services.MessageService
}

func NewMessageHandler(base *BaseHandler, messages *services.MessageService) *MessageHandler {
	return &MessageHandler{BaseHandler: base, messages: messages}
}

func (h *MessageHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/admin/messages")
	g.Use(h.Authenticated())
	{
		g.GET("", h.Can(auth.ActionView, auth.ResourceMessages), h.List)
		g.GET("/unread-count", h.Can(auth.ActionView, auth.ResourceMessages), h.UnreadCount)
		g.GET("/:id", h.Can(auth.ActionView, auth.ResourceMessages), h.Get)
		g.POST("/:id/read", h.Can(auth.ActionUpdate, auth.ResourceMessages), h.mark(h.messages.MarkRead))
		g.POST("/:id/replied", h.Can(auth.ActionUpdate, auth.ResourceMessages), h.mark(h.messages.MarkReplied))
		g.DELETE("/:id", h.Can(auth.ActionDelete, auth.ResourceMessages), h.Delete)
	}
}

// List supports ?read=true|false and ?search=.
func (h *MessageHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	list, err := h.messages.List(h.GetDB(c), ParseQueryBool(c, "read"), c.Query("search"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	count, err := h.messages.CountUnread(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func (h *MessageHandler) Get(c *gin.Context) {
	msg, err := h.messages.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *MessageHandler) mark(fn func(db *gorm.DB, id string) (*models.Message, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		msg, err := fn(h.GetDB(c), c.Param("id"))
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, msg)
	}
}

func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.messages.Delete(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
