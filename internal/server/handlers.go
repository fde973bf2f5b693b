package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mgpai22/subshift/internal/history"
	"github.com/mgpai22/subshift/internal/save"
	"github.com/mgpai22/subshift/internal/subtitle"
)

type shiftRequest struct {
	Text      string  `json:"text"`
	Delay     string  `json:"delay"`
	FPSSource float64 `json:"fps_source"`
	FPSTarget float64 `json:"fps_target"`
}

type historyItem struct {
	Raw       string `json:"raw"`
	Ms        int64  `json:"ms"`
	Label     string `json:"label"`
	Human     string `json:"human"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "subshift",
		"version": s.opts.Version,
		"saver":   s.opts.Saver != nil,
		"history": s.opts.History != nil,
	})
}

func (s *Server) shift(c *gin.Context) {
	var req shiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	shifter := subtitle.Shifter{
		Params: subtitle.Params{
			DelayMs:   subtitle.ParseFreeform(req.Delay),
			FPSSource: req.FPSSource,
			FPSTarget: req.FPSTarget,
		},
		OnDrop: func(block int, reason subtitle.DropReason) {
			s.logger.Debugw("Dropped subtitle block",
				"request_id", c.GetString("request_id"),
				"block", block+1,
				"reason", string(reason),
			)
		},
	}

	entries, total := shifter.Entries(req.Text)
	text, ok := subtitle.Render(entries)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"text":    text,
		"entries": len(entries),
		"dropped": total - len(entries),
	})
}

func (s *Server) timestamp(c *gin.Context) {
	value := c.Query("value")
	ms := subtitle.ParseFreeform(value)
	c.JSON(http.StatusOK, gin.H{
		"ms":        ms,
		"canonical": subtitle.FormatCanonical(float64(ms)),
		"human":     subtitle.FormatHuman(ms),
	})
}

func (s *Server) save(c *gin.Context) {
	if s.opts.Saver == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No player connected"})
		return
	}

	var req save.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if !s.opts.Cooldown.Allow() {
		writeResult(c, save.Result{Status: save.StatusWarning, Message: "Save already in progress"})
		return
	}

	ctx := c.Request.Context()
	var videoFPS float64
	if req.FPSConvert && s.opts.VideoFPS != nil {
		videoFPS = s.opts.VideoFPS(ctx)
	}

	opts, err := req.Options(videoFPS)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if s.opts.History != nil {
		if err := s.opts.History.Add(ctx, req.Delay, opts.Params.DelayMs); err != nil {
			s.logger.Warnw("Failed to record delay", "error", err)
		}
	}

	res := s.opts.Saver.Save(ctx, opts)
	s.logger.Infow("Save finished",
		"request_id", c.GetString("request_id"),
		"status", res.Status.String(),
		"message", res.Message,
		"path", res.Path,
	)
	writeResult(c, res)
}

func writeResult(c *gin.Context, res save.Result) {
	c.JSON(http.StatusOK, gin.H{
		"status":      res.Status,
		"status_name": res.Status.String(),
		"message":     res.Message,
		"path":        res.Path,
	})
}

func (s *Server) listHistory(c *gin.Context) {
	if s.opts.History == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "History is disabled"})
		return
	}

	entries, err := s.opts.History.Recent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to read history",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": historyItems(entries)})
}

func (s *Server) clearHistory(c *gin.Context) {
	if s.opts.History == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "History is disabled"})
		return
	}
	if err := s.opts.History.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to clear history",
			"details": err.Error(),
		})
		return
	}
	c.Status(http.StatusNoContent)
}

func historyItems(entries []history.Entry) []historyItem {
	items := make([]historyItem, 0, len(entries))
	for _, e := range entries {
		item := historyItem{
			Raw:   e.Raw,
			Ms:    e.Ms,
			Label: e.Label(),
			Human: e.Human(),
		}
		if !e.CreatedAt.IsZero() {
			item.CreatedAt = e.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
		}
		items = append(items, item)
	}
	return items
}
