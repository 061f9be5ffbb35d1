package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

type noUpdatesEvent struct {
	Action      string    `json:"action"`
	Message     string    `json:"message"`
	LastChecked time.Time `json:"last_checked"`
}

// bookUpdates sends the buffered mutation events once each, then a close
// event, and ends the response. It is not a live tail.
func (h *Handler) bookUpdates(c *gin.Context) {
	snapshot := h.feed.Snapshot()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)

	if len(snapshot) == 0 {
		c.Render(-1, sse.Event{Data: noUpdatesEvent{
			Action:      "no_updates",
			Message:     "No updates available",
			LastChecked: time.Now().UTC(),
		}})
	}

	done := c.Request.Context().Done()
	for _, event := range snapshot {
		select {
		case <-done:
			return
		default:
		}
		c.Render(-1, sse.Event{Data: event})
		c.Writer.Flush()
	}

	c.SSEvent("close", "Stream ended")
	c.Writer.Flush()
}
