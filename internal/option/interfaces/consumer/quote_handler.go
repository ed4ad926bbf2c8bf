package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	instrument "github.com/wyfcoding/optionsdesk/internal/instrument/domain"
	"github.com/wyfcoding/optionsdesk/internal/option/application"
)

// QuoteHandler 消费行情事件，触发对应标的活跃合约的重评
type QuoteHandler struct {
	app    *application.OptionAppService
	logger *slog.Logger
}

func NewQuoteHandler(app *application.OptionAppService, logger *slog.Logger) *QuoteHandler {
	return &QuoteHandler{app: app, logger: logger}
}

func (h *QuoteHandler) Handle(ctx context.Context, msg kafka.Message) error {
	switch msg.Topic {
	case instrument.QuoteUpdatedEventType:
		var payload struct {
			Symbol    string `json:"symbol"`
			Timestamp int64  `json:"timestamp"`
		}
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			h.logger.ErrorContext(ctx, "failed to unmarshal quote event", "error", err)
			return err
		}
		if payload.Symbol == "" {
			return nil
		}
		return h.app.ReevaluateUnderlying(ctx, payload.Symbol, payload.Timestamp)
	default:
		h.logger.WarnContext(ctx, "unknown quote event topic", "topic", msg.Topic)
		return nil
	}
}
