package messaging

import (
	"context"

	"github.com/wyfcoding/optionsdesk/internal/instrument/domain"
	"github.com/wyfcoding/optionsdesk/pkg/mq"
)

// KafkaEventPublisher 将行情领域事件发布到 Kafka，topic 即事件类型
type KafkaEventPublisher struct {
	producer *mq.Producer
}

// NewKafkaEventPublisher 创建 Kafka 事件发布器
func NewKafkaEventPublisher(producer *mq.Producer) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer}
}

// PublishQuoteUpdated 发布报价更新事件
func (p *KafkaEventPublisher) PublishQuoteUpdated(ctx context.Context, event domain.QuoteUpdatedEvent) error {
	return p.producer.SendMessage(ctx, domain.QuoteUpdatedEventType, event.Symbol, event)
}

// PublishInstrumentCreated 发布标的创建事件
func (p *KafkaEventPublisher) PublishInstrumentCreated(ctx context.Context, event domain.InstrumentCreatedEvent) error {
	return p.producer.SendMessage(ctx, domain.InstrumentCreatedEventType, event.Symbol, event)
}
