package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/danmuck/suffixctl/internal/auth"
	"github.com/danmuck/suffixctl/internal/indexer"
	"github.com/danmuck/suffixctl/internal/protocol/calldata"
	"github.com/danmuck/suffixctl/internal/protocol/hexdata"
	"github.com/danmuck/suffixctl/internal/protocol/suffix"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const notificationLogLimit = 200

type encodeRequest struct {
	Code *string `json:"code"`
}

type decodeRequest struct {
	Data string `json:"data" binding:"required"`
}

type mintRequest struct {
	To string `json:"to" binding:"required"`
}

func (s *Server) registerRoutes() {
	r := s.router

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.started).String(),
			"service": s.cfg.Name,
			"version": Version,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/.well-known/farcaster.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.buildManifest())
	})

	r.POST("/api/notification", s.handleNotification)

	v1 := r.Group("/v1")
	v1.POST("/suffix/encode", s.handleEncode)
	v1.POST("/suffix/decode", s.handleDecode)
	v1.POST("/calls/mint", s.handleMint)
	v1.GET("/indexer/tally", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.tally.Snapshot())
	})
}

func (s *Server) handleNotification(c *gin.Context) {
	if err := s.webhook.Validate(auth.BearerToken(c.GetHeader("Authorization"))); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	body, err := c.GetRawData()
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	preview := string(body)
	if len(preview) > notificationLogLimit {
		preview = preview[:notificationLogLimit]
	}
	s.logger.Info().Str("body", preview).Msg("webhook")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleEncode(c *gin.Context) {
	var req encodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}
	trailer, err := suffix.EncodeIdentifier(*req.Code)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":   *req.Code,
		"suffix": hexdata.Format(trailer),
		"length": len(trailer),
	})
}

func (s *Server) handleDecode(c *gin.Context) {
	var req decodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data is required"})
		return
	}
	buf, err := hexdata.Parse(req.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := indexer.Classify(buf)
	s.tally.Record(res)

	switch res.Status {
	case indexer.StatusPresent:
		c.JSON(http.StatusOK, gin.H{
			"status":    res.Status.String(),
			"code":      res.Attribution.Code,
			"schema":    res.Attribution.Schema.String(),
			"schema_id": int(res.Attribution.Schema),
			"payload":   hexdata.Format(res.Payload),
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"status": res.Status.String(),
			"reason": res.Err.Error(),
		})
	}
}

func (s *Server) handleMint(c *gin.Context) {
	var req mintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to is required"})
		return
	}
	to, err := calldata.ParseAddress(req.To)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, calldata.ErrInvalidAddress) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	call := s.attributor.MintCall(to)
	c.JSON(http.StatusOK, gin.H{
		"to":         call.To.String(),
		"data":       hexdata.Format(call.Data),
		"value":      call.Value,
		"attributed": s.attributor.Attributed(),
	})
}
