package messaging

import (
	"context"

	"github.com/wyfcoding/optionsdesk/internal/option/domain"
	"github.com/wyfcoding/optionsdesk/pkg/mq"
)

// KafkaEventPublisher 将期权领域事件发布到 Kafka，topic 即事件类型
type KafkaEventPublisher struct {
	producer *mq.Producer
}

// NewKafkaEventPublisher 创建 Kafka 事件发布器
func NewKafkaEventPublisher(producer *mq.Producer) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer}
}

// PublishOptionCreated 发布合约创建事件
func (p *KafkaEventPublisher) PublishOptionCreated(ctx context.Context, event domain.OptionCreatedEvent) error {
	return p.producer.SendMessage(ctx, domain.OptionCreatedEventType, event.ContractID, event)
}

// PublishOptionEvaluated 发布合约评估事件
func (p *KafkaEventPublisher) PublishOptionEvaluated(ctx context.Context, event domain.OptionEvaluatedEvent) error {
	return p.producer.SendMessage(ctx, domain.OptionEvaluatedEventType, event.ContractID, event)
}

// PublishOptionExercised 发布合约行权事件
func (p *KafkaEventPublisher) PublishOptionExercised(ctx context.Context, event domain.OptionExercisedEvent) error {
	return p.producer.SendMessage(ctx, domain.OptionExercisedEventType, event.ContractID, event)
}
