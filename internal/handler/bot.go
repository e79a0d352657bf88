package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sabahotel/backoffice/internal/bot"
)

// BotHandler is the HTTP gateway for the chat assistant.  A messaging
// front-end (Telegram webhook bridge, web widget) posts each incoming
// message here and renders the reply it gets back.
type BotHandler struct {
	Engine *bot.Engine
}

func NewBotHandler(e *bot.Engine) *BotHandler {
	return &BotHandler{Engine: e}
}

type botMessageReq struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

// Message feeds one chat message through the conversation engine.
func (h *BotHandler) Message(c echo.Context) error {
	var req botMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ChatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "chat_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reply, err := h.Engine.Handle(ctx, req.ChatID, req.Text)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "bot unavailable"})
	}
	return c.JSON(http.StatusOK, reply)
}
