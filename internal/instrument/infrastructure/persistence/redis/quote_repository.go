package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wyfcoding/optionsdesk/internal/instrument/domain"
)

// QuoteRedisRepository 最新行情的 Redis 读模型
type QuoteRedisRepository struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewQuoteRedisRepository 创建基于 Redis 的最新行情仓储
func NewQuoteRedisRepository(client redis.UniversalClient) *QuoteRedisRepository {
	return &QuoteRedisRepository{
		client: client,
		prefix: "instrument:quote:",
		ttl:    24 * time.Hour,
	}
}

func (r *QuoteRedisRepository) SetLatest(ctx context.Context, q domain.Quote) error {
	if q.Symbol == "" {
		return nil
	}
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}
	return r.client.Set(ctx, r.prefix+q.Symbol, data, r.ttl).Err()
}

func (r *QuoteRedisRepository) GetLatest(ctx context.Context, symbol string) (*domain.Quote, error) {
	if symbol == "" {
		return nil, nil
	}
	data, err := r.client.Get(ctx, r.prefix+symbol).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quote from redis: %w", err)
	}
	var q domain.Quote
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quote: %w", err)
	}
	return &q, nil
}
