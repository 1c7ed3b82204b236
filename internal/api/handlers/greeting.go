package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/gameweek-advisor/internal/personality"
)

// GreetingHandler serves Sir Botty's hello and goodbye lines
type GreetingHandler struct {
	text personality.TextProvider
}

func NewGreetingHandler(text personality.TextProvider) *GreetingHandler {
	return &GreetingHandler{text: text}
}

func (h *GreetingHandler) Greeting(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.text.Line(personality.Greeting)})
}

func (h *GreetingHandler) Farewell(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.text.Line(personality.Farewell)})
}
