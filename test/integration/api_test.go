// Package integration exercises the HTTP surface end to end: the wired
// router, controllers, use cases, and repositories against a real (in-memory)
// store, with a deterministic gateway configuration.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vaultpay/backend/config"
	"github.com/vaultpay/backend/internal/infra/dependency"
	"github.com/vaultpay/backend/internal/integration/persistence/model"
	"github.com/vaultpay/backend/test/integration/mock"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db := mock.NewDB(t,
		&model.UserModel{},
		&model.BankAccountModel{},
		&model.VaultModel{},
		&model.TransactionModel{},
	)

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Database: config.DatabaseConfig{
			TxTimeout: 10 * time.Second,
		},
		Redis: config.RedisConfig{
			IdempotencyTTL: time.Minute,
		},
		JWT: config.JWTConfig{
			Secret:            "integration-test-secret",
			AccessTokenExpiry: time.Hour,
		},
		Gateway: config.GatewayConfig{
			MaxAmount:   "100000",
			SuccessRate: 1, // deterministic: every charge completes instantly
		},
	}

	injector := dependency.NewInjector(cfg, db, mock.NewRedis(t))
	return injector.Router.Setup("test")
}

type testClient struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func (c *testClient) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.engine.ServeHTTP(rec, req)

	var parsed map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
			c.t.Fatalf("failed to parse response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, parsed
}

func (c *testClient) expect(method, path string, body any, status int) map[string]any {
	c.t.Helper()
	rec, parsed := c.do(method, path, body)
	if rec.Code != status {
		c.t.Fatalf("%s %s: expected %d, got %d: %s", method, path, status, rec.Code, rec.Body.String())
	}
	return parsed
}

func TestPaymentFlow(t *testing.T) {
	engine := newTestServer(t)
	client := &testClient{t: t, engine: engine}

	// Register and authenticate.
	registered := client.expect(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"full_name": "Asha Rao",
		"email":     "asha@example.com",
		"phone":     "+919876543210",
		"password":  "sufficiently-long",
	}, http.StatusCreated)
	client.token = registered["access_token"].(string)
	if client.token == "" {
		t.Fatal("expected an access token")
	}

	// Link an account; the first one becomes primary.
	linked := client.expect(http.MethodPost, "/api/v1/accounts", map[string]any{
		"account_number":      "1234567890",
		"ifsc_code":           "HDFC0000123",
		"bank_name":           "HDFC",
		"account_holder_name": "Asha Rao",
		"initial_balance":     "10000",
	}, http.StatusCreated)
	accountID := linked["id"].(string)
	if linked["is_primary"] != true {
		t.Error("first linked account must be primary")
	}
	if linked["account_number"] == "1234567890" {
		t.Error("account numbers must be masked in responses")
	}

	// Carve out a vault.
	created := client.expect(http.MethodPost, "/api/v1/vaults", map[string]any{
		"bank_account_id":  accountID,
		"name":             "Groceries",
		"type":             "essentials",
		"allocated_amount": "500",
	}, http.StatusCreated)
	vaultID := created["vault"].(map[string]any)["id"].(string)

	// Pay from the vault.
	paid := client.expect(http.MethodPost, "/api/v1/payments", map[string]any{
		"vault_id":        vaultID,
		"amount":          "120",
		"idempotency_key": "flow-test-payment-1",
		"description":     "weekly groceries",
		"recipient_upi":   "merchant@upi",
	}, http.StatusCreated)
	tx := paid["transaction"].(map[string]any)
	if tx["status"] != "completed" {
		t.Errorf("expected completed payment, got %v", tx["status"])
	}
	if paid["new_balance"].(map[string]any)["remaining"] != "380.00" {
		t.Errorf("expected remaining 380, got %v", paid["new_balance"])
	}

	// The same idempotency key replays without a second charge (200, not 201).
	replayed := client.expect(http.MethodPost, "/api/v1/payments", map[string]any{
		"vault_id":        vaultID,
		"amount":          "120",
		"idempotency_key": "flow-test-payment-1",
	}, http.StatusOK)
	if replayed["replayed"] != true {
		t.Error("expected the replay flag")
	}
	if replayed["transaction"].(map[string]any)["reference"] != tx["reference"] {
		t.Error("replay must return the original entry")
	}

	// Overspending the vault is a 422.
	client.expect(http.MethodPost, "/api/v1/payments", map[string]any{
		"vault_id":        vaultID,
		"amount":          "400",
		"idempotency_key": "flow-test-payment-2",
	}, http.StatusUnprocessableEntity)

	// The ledger lists the payment and the allocation entry.
	listed := client.expect(http.MethodGet, "/api/v1/transactions", nil, http.StatusOK)
	if total := listed["total"].(float64); total != 2 {
		t.Errorf("expected 2 ledger entries, got %v", total)
	}

	// Account summary reflects the allocation.
	summary := client.expect(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%s/summary", accountID), nil, http.StatusOK)
	if summary["allocated_amount"] != "500.00" {
		t.Errorf("expected allocated 500.00, got %v", summary["allocated_amount"])
	}
	if summary["unallocated_amount"] != "9500.00" {
		t.Errorf("expected unallocated 9500.00, got %v", summary["unallocated_amount"])
	}

	// Reconciliation over the ledger reports no drift.
	reconciled := client.expect(http.MethodPost, "/api/v1/analytics/reconcile", nil, http.StatusOK)
	if reconciled["drift_detected"] != false {
		t.Errorf("expected no drift, got %v", reconciled)
	}

	// Insights fall back gracefully with no Gemini key configured.
	insights := client.expect(http.MethodGet, "/api/v1/insights", nil, http.StatusOK)
	if insights["generated"] != false {
		t.Errorf("expected fallback insights without an API key, got %v", insights)
	}
	if len(insights["insights"].([]any)) == 0 {
		t.Error("expected at least one fallback insight")
	}
}

func TestAuthIsRequired(t *testing.T) {
	engine := newTestServer(t)
	client := &testClient{t: t, engine: engine}

	rec, _ := client.do(http.MethodGet, "/api/v1/accounts", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	engine := newTestServer(t)
	client := &testClient{t: t, engine: engine}

	rec, body := client.do(http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("expected ok status, got %v", body)
	}
}
