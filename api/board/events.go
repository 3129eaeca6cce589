package boardapi

import (
	"io"
	"net/http"

	"github.com/beka-birhanu/vinom-pathfinding/service/i"
	"github.com/gin-gonic/gin"
)

// events streams the board's run events as Server-Sent Events until the
// client goes away or the board is removed. Each event is named after its
// kind and carries the JSON encoded driver event.
func (bc *Controller) events(ctx *gin.Context, board i.Board) {
	events, unsubscribe := board.Subscribe()
	defer unsubscribe()

	header := ctx.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	ctx.Status(http.StatusOK)
	ctx.Writer.WriteHeaderNow()
	ctx.Writer.Flush()

	done := ctx.Request.Context().Done()
	ctx.Stream(func(io.Writer) bool {
		select {
		case e, ok := <-events:
			if !ok {
				return false
			}
			ctx.SSEvent(e.Kind.String(), e)
			return true
		case <-done:
			return false
		}
	})
	bc.logger.V(2).Info("Event stream closed", "board", board.ID())
}
