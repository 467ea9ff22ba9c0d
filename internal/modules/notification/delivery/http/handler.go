package http

import (
	"net/http"
	"strings"

	notifService "anoa.com/fitquest/internal/modules/notification/service"
	"anoa.com/fitquest/pkg/apperror"
	"anoa.com/fitquest/pkg/dto"
	"anoa.com/fitquest/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	service        notifService.NotificationService
	redisClient    *redis.Client
	allowedOrigins map[string]struct{}
	upgrader       websocket.Upgrader
	log            *zap.Logger
}

// NewNotificationHandler accepts websocket upgrades from the given origins.
// "*" allows any origin.
func NewNotificationHandler(service notifService.NotificationService, redisClient *redis.Client, allowedOrigins []string, log *zap.Logger) *NotificationHandler {
	if log == nil {
		log = zap.NewNop()
	}
	h := &NotificationHandler{
		service:        service,
		redisClient:    redisClient,
		allowedOrigins: make(map[string]struct{}, len(allowedOrigins)),
		log:            log,
	}
	for _, o := range allowedOrigins {
		h.allowedOrigins[strings.ToLower(strings.TrimRight(o, "/"))] = struct{}{}
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin matches the handshake Origin against the allowed list. Requests
// without one come from non-browser clients and are admitted.
func (h *NotificationHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if _, ok := h.allowedOrigins["*"]; ok {
		return true
	}
	_, ok := h.allowedOrigins[strings.ToLower(strings.TrimRight(origin, "/"))]
	if !ok {
		h.log.Debug("websocket origin rejected", zap.String("origin", origin))
	}
	return ok
}

func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query dto.PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}
	limit, offset := query.Normalize()

	notifications, err := h.service.GetNotifications(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.ErrInvalidInput)
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), userID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// HandleWebSocket streams the caller's notifications from Redis until either side disconnects.
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if h.redisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "realtime notifications are not configured"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	pubsub := h.redisClient.Subscribe(ctx, notifService.Channel(userID.String()))
	defer pubsub.Close()

	// Wait for confirmation that subscription is created
	if _, err := pubsub.Receive(ctx); err != nil {
		h.log.Warn("redis subscribe failed", zap.String("user_id", userID.String()), zap.Error(err))
		return
	}

	ch := pubsub.Channel()
	clientClosed := make(chan struct{})

	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			// payload is already the JSON notification
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				h.log.Debug("websocket write failed", zap.Error(err))
				return
			}
		case <-clientClosed:
			return
		case <-ctx.Done():
			return
		}
	}
}
