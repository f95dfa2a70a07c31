package adapters

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
)

// GatewayConfig tunes the simulated gateway. Tests use zero latency and a
// success rate of 0 or 1 to script outcomes deterministically.
type GatewayConfig struct {
	SuccessRate float64
	MinLatency  time.Duration
	MaxLatency  time.Duration
}

// simulatedGateway implements the adapter.PaymentGateway interface against no
// real processor: it sleeps for a random latency and succeeds with the
// configured probability. No real bank API is involved anywhere.
type simulatedGateway struct {
	cfg GatewayConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedGateway creates a new simulated payment gateway.
func NewSimulatedGateway(cfg GatewayConfig) adapter.PaymentGateway {
	return &simulatedGateway{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Charge simulates a charge. It honors context cancellation during the
// latency window, in which case the outcome is reported as an error: from the
// caller's perspective the charge may or may not have gone through.
func (g *simulatedGateway) Charge(ctx context.Context, amount decimal.Decimal, idempotencyKey string) (*adapter.ChargeResult, error) {
	latency, success := g.roll()

	if latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("charge interrupted: %w", ctx.Err())
		case <-timer.C:
		}
	}

	ref := fmt.Sprintf("GW-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])

	if !success {
		return &adapter.ChargeResult{
			Success:    false,
			GatewayRef: ref,
			Status:     "failed",
			Raw:        fmt.Sprintf(`{"gateway_ref":%q,"status":"failed","reason":"insufficient funds at issuer","amount":%q,"key":%q}`, ref, amount, idempotencyKey),
		}, nil
	}

	return &adapter.ChargeResult{
		Success:    true,
		GatewayRef: ref,
		Status:     "completed",
		Raw:        fmt.Sprintf(`{"gateway_ref":%q,"status":"completed","amount":%q,"key":%q}`, ref, amount, idempotencyKey),
	}, nil
}

func (g *simulatedGateway) roll() (time.Duration, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	latency := g.cfg.MinLatency
	if spread := g.cfg.MaxLatency - g.cfg.MinLatency; spread > 0 {
		latency += time.Duration(g.rng.Int63n(int64(spread)))
	}
	return latency, g.rng.Float64() < g.cfg.SuccessRate
}
