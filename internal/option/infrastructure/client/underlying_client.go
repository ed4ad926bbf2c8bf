package client

import (
	"context"

	instrument "github.com/wyfcoding/optionsdesk/internal/instrument/domain"
	instrumentmysql "github.com/wyfcoding/optionsdesk/internal/instrument/infrastructure/persistence/mysql"
)

// UnderlyingClient 期权上下文读取标的状态的客户端，直连 instrument 仓储
type UnderlyingClient struct {
	repo *instrumentmysql.InstrumentRepo
}

// NewUnderlyingClient 创建标的客户端
func NewUnderlyingClient(repo *instrumentmysql.InstrumentRepo) *UnderlyingClient {
	return &UnderlyingClient{repo: repo}
}

// GetInstrument 查询标的当前状态
func (c *UnderlyingClient) GetInstrument(ctx context.Context, symbol string) (*instrument.Instrument, error) {
	return c.repo.Get(ctx, symbol)
}
