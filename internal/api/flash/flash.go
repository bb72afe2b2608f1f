// Package flash stores one-shot notices in the session.
package flash

import (
	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Category is the visual style of a notice.
type Category string

const (
	Success Category = "success"
	Danger  Category = "danger"
	Warning Category = "warning"
	Info    Category = "info"
)

// categories in display order.
var categories = []Category{Danger, Warning, Success, Info}

// Message is a single notice shown to the user.
type Message struct {
	Category Category
	Text     string
}

// Add queues a notice for the next rendered page.
func Add(c *gin.Context, category Category, text string) {
	session := sessions.Default(c)
	session.AddFlash(text, string(category))
	if err := session.Save(); err != nil {
		log.Error("Failed to save flash message", "error", err)
	}
}

// Pop returns and removes all queued notices.
// The session is only written when there was something to consume.
func Pop(c *gin.Context) []Message {
	session := sessions.Default(c)

	var messages []Message
	for _, category := range categories {
		for _, f := range session.Flashes(string(category)) {
			if text, ok := f.(string); ok {
				messages = append(messages, Message{Category: category, Text: text})
			}
		}
	}

	if len(messages) > 0 {
		if err := session.Save(); err != nil {
			log.Error("Failed to save session after reading flashes", "error", err)
		}
	}
	return messages
}
