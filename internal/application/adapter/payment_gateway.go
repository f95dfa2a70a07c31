// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChargeResult is the observable outcome of a gateway charge. The gateway is a
// black box: the core handles exactly these two outcomes and nothing else.
type ChargeResult struct {
	Success    bool
	GatewayRef string
	Status     string // "completed" or "failed"
	Raw        string // opaque response payload, stored verbatim on the ledger entry
}

// PaymentGateway is the external payment-processing dependency. Charge has
// variable latency (simulated 0.5-2s) and must never be invoked while a ledger
// unit of work is open: the caller records a durable pending entry first, then
// charges, then finalizes in a second unit.
type PaymentGateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, idempotencyKey string) (*ChargeResult, error)
}
