package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CookieName = "skyboard_flash"
	contextKey = "flash.messages"

	CategorySuccess = "success"
	CategoryError   = "error"
	CategoryInfo    = "info"
)

// Message is a one-shot notice shown on the next rendered page.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Add queues a message. It survives a redirect through a cookie and is also
// visible to a page rendered later in the same request.
func Add(c *gin.Context, category, text string) {
	messages := append(current(c), Message{Category: category, Text: text})
	c.Set(contextKey, messages)
	setCookie(c, encode(messages), 0)
}

// Pop returns all queued messages and clears them.
func Pop(c *gin.Context) []Message {
	messages := current(c)
	c.Set(contextKey, []Message{})
	if len(messages) > 0 {
		setCookie(c, "", -1)
	}
	return messages
}

func current(c *gin.Context) []Message {
	if v, ok := c.Get(contextKey); ok {
		if messages, ok := v.([]Message); ok {
			return messages
		}
	}

	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil
	}
	return decode(raw)
}

func setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", false, true)
}

func encode(messages []Message) string {
	data, err := json.Marshal(messages)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// decode drops malformed cookies rather than failing the request.
func decode(raw string) []Message {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil
	}
	return messages
}
