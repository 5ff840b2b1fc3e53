package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/arfin-foysal/crypto-sub001/internal/adapter/http/dto"
	"github.com/arfin-foysal/crypto-sub001/internal/domain"
	"github.com/arfin-foysal/crypto-sub001/tests/testutil"
)

func TestDepositLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	user := testDB.CreateTestUser(ctx, "depositor", domain.UserStatusActive, decimal.RequireFromString("500"))
	testDB.CreateTestFeeSchedule(ctx, domain.FeeTypeDeposit, decimal.RequireFromString("2"))

	var created dto.TransactionResponse

	t.Run("create pending deposit", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"user_id":  user.ID,
			"amount":   "100",
			"fee_type": "DEPOSIT",
		})

		r := httptest.NewRequest(http.MethodPost, "/api/v1/deposits/", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		if created.Status != "PENDING" {
			t.Errorf("expected PENDING, got %s", created.Status)
		}
		if created.FeeAmount != "2.00" || created.AfterFeeAmount != "98.00" {
			t.Errorf("unexpected fee math: fee=%s net=%s", created.FeeAmount, created.AfterFeeAmount)
		}
		if created.AfterBalance != "598.00" {
			t.Errorf("expected projected balance 598.00, got %s", created.AfterBalance)
		}

		// Pending entries never move the stored balance.
		if balance := testDB.UserBalance(ctx, user.ID); !balance.Equal(decimal.RequireFromString("500")) {
			t.Errorf("expected stored balance 500, got %s", balance)
		}
	})

	t.Run("complete the deposit", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"status": "COMPLETED"})

		r := httptest.NewRequest(http.MethodPatch, "/api/v1/deposits/"+created.ID+"/status", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		if balance := testDB.UserBalance(ctx, user.ID); !balance.Equal(decimal.RequireFromString("598")) {
			t.Errorf("expected stored balance 598, got %s", balance)
		}
	})

	t.Run("completed to pending is rejected", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"status": "PENDING"})

		r := httptest.NewRequest(http.MethodPatch, "/api/v1/deposits/"+created.ID+"/status", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected status %d, got %d: %s", http.StatusUnprocessableEntity, w.Code, w.Body.String())
		}

		var resp dto.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse error response: %v", err)
		}
		if resp.Error != "invalid_status_transition" {
			t.Errorf("expected invalid_status_transition, got %q", resp.Error)
		}
	})

	t.Run("refund does not reverse the balance", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"status": "REFUND"})

		r := httptest.NewRequest(http.MethodPatch, "/api/v1/deposits/"+created.ID+"/status", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		if balance := testDB.UserBalance(ctx, user.ID); !balance.Equal(decimal.RequireFromString("598")) {
			t.Errorf("expected balance unchanged at 598 after refund, got %s", balance)
		}
	})
}

func TestWithdrawalLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	user := testDB.CreateTestUser(ctx, "withdrawer", domain.UserStatusActive, decimal.RequireFromString("500"))

	t.Run("completed withdrawal credits the net amount", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{
			"user_id": user.ID,
			"amount":  "200",
			"status":  "COMPLETED",
		})

		r := httptest.NewRequest(http.MethodPost, "/api/v1/withdrawals/", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		var resp dto.TransactionResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		// No fee schedule seeded, so the net equals the gross amount.
		if resp.AfterFeeAmount != "200.00" {
			t.Errorf("expected net 200.00, got %s", resp.AfterFeeAmount)
		}
		if resp.AfterBalance != "700.00" {
			t.Errorf("expected after balance 700.00, got %s", resp.AfterBalance)
		}

		if balance := testDB.UserBalance(ctx, user.ID); !balance.Equal(decimal.RequireFromString("700")) {
			t.Errorf("expected stored balance 700, got %s", balance)
		}
	})

	t.Run("frozen account cannot withdraw", func(t *testing.T) {
		frozen := testDB.CreateTestUser(ctx, "frozen", domain.UserStatusFrozen, decimal.RequireFromString("100"))

		body, _ := json.Marshal(map[string]any{"user_id": frozen.ID, "amount": "50"})

		r := httptest.NewRequest(http.MethodPost, "/api/v1/withdrawals/", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, r)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected status %d, got %d: %s", http.StatusForbidden, w.Code, w.Body.String())
		}
	})

	t.Run("deposit status route rejects withdrawal entries", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"user_id": user.ID, "amount": "10"})

		r := httptest.NewRequest(http.MethodPost, "/api/v1/withdrawals/", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create withdrawal: %d %s", w.Code, w.Body.String())
		}

		var resp dto.TransactionResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		patch, _ := json.Marshal(map[string]any{"status": "COMPLETED"})
		r = httptest.NewRequest(http.MethodPatch, "/api/v1/deposits/"+resp.ID+"/status", bytes.NewReader(patch))
		r.Header.Set("Content-Type", "application/json")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected status %d, got %d: %s", http.StatusUnprocessableEntity, w.Code, w.Body.String())
		}
	})
}

func TestTransactionHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	router := newTestRouter(t, testDB)

	user := testDB.CreateTestUser(ctx, "history", domain.UserStatusActive, decimal.RequireFromString("1000"))

	for _, amount := range []string{"10", "20", "30"} {
		body, _ := json.Marshal(map[string]any{"user_id": user.ID, "amount": amount})
		r := httptest.NewRequest(http.MethodPost, "/api/v1/deposits/", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create deposit: %d %s", w.Code, w.Body.String())
		}
	}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+user.ID+"/transactions?limit=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp []*dto.TransactionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if len(resp) != 2 {
		t.Errorf("expected 2 entries with limit=2, got %d", len(resp))
	}
}
