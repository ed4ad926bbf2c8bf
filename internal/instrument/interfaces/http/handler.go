package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/response"

	"github.com/wyfcoding/optionsdesk/internal/instrument/application"
	"github.com/wyfcoding/optionsdesk/internal/instrument/domain"
	"github.com/wyfcoding/optionsdesk/pkg/logger"
)

// HTTP 处理器
// 负责处理标的与行情相关的 HTTP 请求
type InstrumentHandler struct {
	app *application.InstrumentAppService
}

// 创建 HTTP 处理器实例
func NewInstrumentHandler(app *application.InstrumentAppService) *InstrumentHandler {
	return &InstrumentHandler{app: app}
}

// 注册路由
func (h *InstrumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/instruments")
	{
		api.POST("", h.CreateInstrument)
		api.PUT("/:symbol/quote", h.UpdateQuote)
		api.GET("", h.ListInstruments)
		api.GET("/:symbol", h.GetInstrument)
		api.GET("/:symbol/spread", h.GetSpread)
	}
}

// QuoteRequest 行情请求
type QuoteRequest struct {
	Symbol     string  `json:"symbol" binding:"required"`
	CloseValue float64 `json:"close_value"`
	Ask        float64 `json:"ask"`
	Bid        float64 `json:"bid"`
	Variance   float64 `json:"variance"`
	Timestamp  int64   `json:"timestamp" binding:"required"`
}

func (r QuoteRequest) toInput() application.QuoteInput {
	return application.QuoteInput{
		Symbol:     r.Symbol,
		CloseValue: r.CloseValue,
		Ask:        r.Ask,
		Bid:        r.Bid,
		Variance:   r.Variance,
		Timestamp:  r.Timestamp,
	}
}

// CreateInstrument 创建标的
func (h *InstrumentHandler) CreateInstrument(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	inst, err := h.app.CreateInstrument(c.Request.Context(), req.toInput())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidQuote) {
			status = http.StatusBadRequest
		}
		logger.Error(c.Request.Context(), "failed to create instrument", "error", err)
		response.ErrorWithStatus(c, status, err.Error(), "")
		return
	}

	response.Success(c, gin.H{
		"symbol":    inst.Symbol,
		"timestamp": inst.Timestamp,
	})
}

// UpdateQuote 更新行情
func (h *InstrumentHandler) UpdateQuote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	req.Symbol = c.Param("symbol")

	inst, err := h.app.UpdateQuote(c.Request.Context(), req.toInput())
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrInvalidQuote):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrInstrumentNotFound):
			status = http.StatusNotFound
		}
		logger.Error(c.Request.Context(), "failed to update quote", "symbol", req.Symbol, "error", err)
		response.ErrorWithStatus(c, status, err.Error(), "")
		return
	}

	response.Success(c, gin.H{
		"symbol":    inst.Symbol,
		"ask":       inst.Ask.String(),
		"bid":       inst.Bid.String(),
		"timestamp": inst.Timestamp,
	})
}

// GetInstrument 查询标的
func (h *InstrumentHandler) GetInstrument(c *gin.Context) {
	inst, err := h.app.GetInstrument(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInstrumentNotFound) {
			status = http.StatusNotFound
		}
		response.ErrorWithStatus(c, status, err.Error(), "")
		return
	}

	q := inst.Quote()
	response.Success(c, gin.H{
		"symbol":      q.Symbol,
		"close_value": q.CloseValue.String(),
		"ask":         q.Ask.String(),
		"bid":         q.Bid.String(),
		"variance":    q.Variance.String(),
		"timestamp":   q.Timestamp,
	})
}

// GetSpread 查询买卖价差
func (h *InstrumentHandler) GetSpread(c *gin.Context) {
	spread, err := h.app.GetSpread(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInstrumentNotFound) {
			status = http.StatusNotFound
		}
		response.ErrorWithStatus(c, status, err.Error(), "")
		return
	}

	response.Success(c, gin.H{
		"symbol": c.Param("symbol"),
		"spread": spread.String(),
	})
}

// ListInstruments 列出全部标的
func (h *InstrumentHandler) ListInstruments(c *gin.Context) {
	instruments, err := h.app.ListInstruments(c.Request.Context())
	if err != nil {
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	items := make([]gin.H, 0, len(instruments))
	for _, inst := range instruments {
		items = append(items, gin.H{
			"symbol":    inst.Symbol,
			"ask":       inst.Ask.String(),
			"bid":       inst.Bid.String(),
			"timestamp": inst.Timestamp,
		})
	}
	response.Success(c, gin.H{"instruments": items, "total": len(items)})
}
