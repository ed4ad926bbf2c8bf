package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/response"

	"github.com/wyfcoding/optionsdesk/internal/option/application"
	"github.com/wyfcoding/optionsdesk/internal/option/domain"
	"github.com/wyfcoding/optionsdesk/pkg/logger"
)

// HTTP 处理器
// 负责处理期权合约相关的 HTTP 请求
type OptionHandler struct {
	app *application.OptionAppService
}

// 创建 HTTP 处理器实例
func NewOptionHandler(app *application.OptionAppService) *OptionHandler {
	return &OptionHandler{app: app}
}

// 注册路由
func (h *OptionHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/options")
	{
		api.POST("", h.CreateOption)
		api.GET("", h.ListOptions)
		api.GET("/:id", h.GetOption)
		api.GET("/:id/evaluation", h.EvaluateOption)
		api.POST("/:id/exercise", h.ExerciseOption)
		api.GET("/:id/exercises", h.ListExercises)
	}
}

// CreateOptionRequest 建仓请求
type CreateOptionRequest struct {
	Underlying string  `json:"underlying" binding:"required"`
	Type       string  `json:"type" binding:"required"`
	Style      string  `json:"style" binding:"required"`
	Strike     float64 `json:"strike" binding:"required"`
	Maturity   int64   `json:"maturity"`
	Schedule   []int64 `json:"schedule"`
}

// ExerciseRequest 行权请求
type ExerciseRequest struct {
	Quantity    float64 `json:"quantity" binding:"required"`
	CurrentTime int64   `json:"current_time" binding:"required"`
}

// CreateOption 创建期权合约
func (h *OptionHandler) CreateOption(c *gin.Context) {
	var req CreateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	contract, err := h.app.CreateOption(c.Request.Context(), application.CreateOptionInput{
		Underlying: req.Underlying,
		Type:       req.Type,
		Style:      req.Style,
		Strike:     req.Strike,
		Maturity:   req.Maturity,
		Schedule:   req.Schedule,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrInvalidOptionType), errors.Is(err, domain.ErrInvalidExerciseStyle):
			status = http.StatusBadRequest
		case errors.Is(err, domain.ErrDanglingUnderlying):
			status = http.StatusUnprocessableEntity
		}
		logger.Error(c.Request.Context(), "failed to create option", "error", err)
		response.ErrorWithStatus(c, status, err.Error(), "")
		return
	}

	response.Success(c, gin.H{
		"contract_id": contract.ContractID,
		"status":      contract.Status.String(),
	})
}

// GetOption 查询合约
func (h *OptionHandler) GetOption(c *gin.Context) {
	contract, err := h.app.GetOption(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrOptionNotFound) {
			status = http.StatusNotFound
		}
		response.ErrorWithStatus(c, status, err.Error(), "")
		return
	}

	schedule, _ := contract.Schedule()
	response.Success(c, gin.H{
		"contract_id": contract.ContractID,
		"underlying":  contract.Underlying,
		"type":        string(contract.Type),
		"style":       string(contract.Style),
		"strike":      contract.Strike.String(),
		"maturity":    contract.Maturity,
		"schedule":    schedule,
		"status":      contract.Status.String(),
	})
}

// ListOptions 按标的列出合约
func (h *OptionHandler) ListOptions(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"
	contracts, err := h.app.ListOptions(c.Request.Context(), c.Query("underlying"), activeOnly)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	items := make([]gin.H, 0, len(contracts))
	for _, contract := range contracts {
		items = append(items, gin.H{
			"contract_id": contract.ContractID,
			"underlying":  contract.Underlying,
			"type":        string(contract.Type),
			"style":       string(contract.Style),
			"strike":      contract.Strike.String(),
			"status":      contract.Status.String(),
		})
	}
	response.Success(c, gin.H{"options": items, "total": len(items)})
}

// EvaluateOption 评估合约：货币性、内在价值、可行权性
func (h *OptionHandler) EvaluateOption(c *gin.Context) {
	currentTime, err := strconv.ParseInt(c.Query("current_time"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid current_time", "")
		return
	}

	eval, err := h.app.EvaluateOption(c.Request.Context(), c.Param("id"), currentTime)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrOptionNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrDanglingUnderlying):
			status = http.StatusUnprocessableEntity
		}
		logger.Error(c.Request.Context(), "failed to evaluate option", "contract_id", c.Param("id"), "error", err)
		response.ErrorWithStatus(c, status, err.Error(), "")
		return
	}

	response.Success(c, gin.H{
		"contract_id":     eval.Symbol,
		"underlying_ask":  eval.UnderlyingAsk.String(),
		"strike":          eval.Strike.String(),
		"intrinsic_value": eval.IntrinsicValue.String(),
		"moneyness":       string(eval.Moneyness),
		"can_exercise":    eval.CanExercise,
		"evaluated_at":    eval.EvaluatedAt,
	})
}

// ExerciseOption 行权
func (h *OptionHandler) ExerciseOption(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	record, err := h.app.ExerciseOption(c.Request.Context(), c.Param("id"), req.Quantity, req.CurrentTime)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrOptionNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrExerciseNotAllowed):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrDanglingUnderlying):
			status = http.StatusUnprocessableEntity
		}
		logger.Error(c.Request.Context(), "failed to exercise option", "contract_id", c.Param("id"), "error", err)
		response.ErrorWithStatus(c, status, err.Error(), "")
		return
	}

	response.Success(c, gin.H{
		"contract_id":    record.ContractID,
		"quantity":       record.Quantity.String(),
		"settlement_amt": record.SettlementAmt.String(),
		"exercised_at":   record.ExercisedAt,
	})
}

// ListExercises 查询合约的行权记录
func (h *OptionHandler) ListExercises(c *gin.Context) {
	records, err := h.app.ListExercises(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, record := range records {
		items = append(items, gin.H{
			"quantity":       record.Quantity.String(),
			"underlying_ask": record.UnderlyingAsk.String(),
			"strike":         record.Strike.String(),
			"settlement_amt": record.SettlementAmt.String(),
			"exercised_at":   record.ExercisedAt,
		})
	}
	response.Success(c, gin.H{"exercises": items, "total": len(items)})
}
