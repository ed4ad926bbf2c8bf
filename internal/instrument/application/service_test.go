package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/optionsdesk/internal/instrument/domain"
	"github.com/wyfcoding/optionsdesk/pkg/metrics"
)

type fakeRepo struct {
	instruments map[string]*domain.Instrument
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{instruments: make(map[string]*domain.Instrument)}
}

func (r *fakeRepo) Save(ctx context.Context, inst *domain.Instrument) error {
	r.instruments[inst.Symbol] = inst
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, symbol string) (*domain.Instrument, error) {
	inst, ok := r.instruments[symbol]
	if !ok {
		return nil, domain.ErrInstrumentNotFound
	}
	return inst, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]*domain.Instrument, error) {
	var out []*domain.Instrument
	for _, inst := range r.instruments {
		out = append(out, inst)
	}
	return out, nil
}

type fakeCache struct {
	quotes map[string]domain.Quote
}

func newFakeCache() *fakeCache {
	return &fakeCache{quotes: make(map[string]domain.Quote)}
}

func (c *fakeCache) SetLatest(ctx context.Context, q domain.Quote) error {
	c.quotes[q.Symbol] = q
	return nil
}

func (c *fakeCache) GetLatest(ctx context.Context, symbol string) (*domain.Quote, error) {
	q, ok := c.quotes[symbol]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

type fakePublisher struct {
	quoteEvents   []domain.QuoteUpdatedEvent
	createdEvents []domain.InstrumentCreatedEvent
}

func (p *fakePublisher) PublishQuoteUpdated(ctx context.Context, e domain.QuoteUpdatedEvent) error {
	p.quoteEvents = append(p.quoteEvents, e)
	return nil
}

func (p *fakePublisher) PublishInstrumentCreated(ctx context.Context, e domain.InstrumentCreatedEvent) error {
	p.createdEvents = append(p.createdEvents, e)
	return nil
}

func newService() (*InstrumentAppService, *fakeRepo, *fakeCache, *fakePublisher) {
	repo := newFakeRepo()
	cache := newFakeCache()
	publisher := &fakePublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewInstrumentAppService(repo, cache, publisher, metrics.New("test"), logger)
	return svc, repo, cache, publisher
}

func validInput() QuoteInput {
	return QuoteInput{
		Symbol:     "AAPL",
		CloseValue: 100,
		Ask:        100.5,
		Bid:        99.5,
		Variance:   0.2,
		Timestamp:  1000,
	}
}

func TestCreateInstrument(t *testing.T) {
	svc, repo, cache, publisher := newService()

	inst, err := svc.CreateInstrument(context.Background(), validInput())
	if err != nil {
		t.Fatal(err)
	}
	if inst.Symbol != "AAPL" {
		t.Errorf("Symbol = %s, want AAPL", inst.Symbol)
	}
	if _, ok := repo.instruments["AAPL"]; !ok {
		t.Error("instrument not persisted")
	}
	if _, ok := cache.quotes["AAPL"]; !ok {
		t.Error("quote not cached")
	}
	if len(publisher.createdEvents) != 1 {
		t.Errorf("created events = %d, want 1", len(publisher.createdEvents))
	}
}

func TestUpdateQuote(t *testing.T) {
	svc, _, _, publisher := newService()
	ctx := context.Background()

	if _, err := svc.CreateInstrument(ctx, validInput()); err != nil {
		t.Fatal(err)
	}

	in := validInput()
	in.Ask = 110.5
	in.Bid = 109.5
	in.Timestamp = 2000

	inst, err := svc.UpdateQuote(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if inst.Timestamp != 2000 {
		t.Errorf("Timestamp = %d, want 2000", inst.Timestamp)
	}
	if len(publisher.quoteEvents) != 1 {
		t.Errorf("quote events = %d, want 1", len(publisher.quoteEvents))
	}

	in.Symbol = "MISSING"
	if _, err := svc.UpdateQuote(ctx, in); !errors.Is(err, domain.ErrInstrumentNotFound) {
		t.Errorf("unknown symbol: error = %v, want ErrInstrumentNotFound", err)
	}
}

func TestQuoteValidation(t *testing.T) {
	svc, _, _, _ := newService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*QuoteInput)
	}{
		{"empty symbol", func(in *QuoteInput) { in.Symbol = "" }},
		{"nan ask", func(in *QuoteInput) { in.Ask = math.NaN() }},
		{"inf bid", func(in *QuoteInput) { in.Bid = math.Inf(1) }},
		{"neg inf close", func(in *QuoteInput) { in.CloseValue = math.Inf(-1) }},
		{"nan variance", func(in *QuoteInput) { in.Variance = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			if _, err := svc.CreateInstrument(ctx, in); !errors.Is(err, domain.ErrInvalidQuote) {
				t.Errorf("error = %v, want ErrInvalidQuote", err)
			}
		})
	}
}

func TestGetLatestQuotePrefersCache(t *testing.T) {
	svc, _, cache, _ := newService()
	ctx := context.Background()

	if _, err := svc.CreateInstrument(ctx, validInput()); err != nil {
		t.Fatal(err)
	}

	// Poke a newer quote straight into the cache
	cache.quotes["AAPL"] = domain.NewQuote("AAPL",
		decimal.NewFromInt(200), decimal.NewFromInt(201), decimal.NewFromInt(199),
		decimal.Zero, 3000)

	q, err := svc.GetLatestQuote(ctx, "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if q.Timestamp != 3000 {
		t.Errorf("Timestamp = %d, want cached 3000", q.Timestamp)
	}
}

func TestGetSpread(t *testing.T) {
	svc, _, _, _ := newService()
	ctx := context.Background()

	if _, err := svc.CreateInstrument(ctx, validInput()); err != nil {
		t.Fatal(err)
	}

	spread, err := svc.GetSpread(ctx, "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	// spread = bid - ask = 99.5 - 100.5
	if !spread.Equal(decimal.NewFromInt(-1)) {
		t.Errorf("Spread = %s, want -1", spread)
	}
}
