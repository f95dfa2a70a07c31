package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/vaultpay/backend/internal/application/adapter"
)

// Gateway is a scripted payment gateway. Outcomes are consumed in order; once
// the script is exhausted every charge succeeds. Charges are recorded so tests
// can assert how many times the external call happened.
type Gateway struct {
	mu       sync.Mutex
	script   []Outcome
	consumed int
	Charges  []ChargeCall
}

// Outcome scripts a single gateway response.
type Outcome struct {
	Decline bool
	Err     error
}

// ChargeCall records one invocation of Charge.
type ChargeCall struct {
	Amount         decimal.Decimal
	IdempotencyKey string
}

// NewGateway creates a scripted gateway with the given outcomes.
func NewGateway(script ...Outcome) *Gateway {
	return &Gateway{script: script}
}

// Charge pops the next scripted outcome.
func (g *Gateway) Charge(ctx context.Context, amount decimal.Decimal, idempotencyKey string) (*adapter.ChargeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Charges = append(g.Charges, ChargeCall{Amount: amount, IdempotencyKey: idempotencyKey})

	var outcome Outcome
	if g.consumed < len(g.script) {
		outcome = g.script[g.consumed]
		g.consumed++
	}

	if outcome.Err != nil {
		return nil, outcome.Err
	}

	ref := fmt.Sprintf("GW-TEST-%06d", len(g.Charges))
	if outcome.Decline {
		return &adapter.ChargeResult{
			Success:    false,
			GatewayRef: ref,
			Status:     "failed",
			Raw:        `{"status":"failed","reason":"insufficient funds at issuer"}`,
		}, nil
	}
	return &adapter.ChargeResult{
		Success:    true,
		GatewayRef: ref,
		Status:     "completed",
		Raw:        `{"status":"completed"}`,
	}, nil
}

// ChargeCount returns how many times Charge was invoked.
func (g *Gateway) ChargeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Charges)
}
