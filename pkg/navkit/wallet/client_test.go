package wallet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTopUp(t *testing.T) {
	var got TopUp
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/wallet/topups", r.URL.Path)
		headers = r.Header.Clone()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"transaction_id":"tx-1","balance_cents":9900}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret")
	receipt, err := c.RecordTopUp(context.Background(), TopUp{
		SessionID:   "sess-1",
		OrderID:     "topup-1",
		AmountCents: 5000,
		Outcome:     "succeeded",
	})
	require.NoError(t, err)
	assert.Equal(t, "tx-1", receipt.TransactionID)
	assert.Equal(t, int64(9900), receipt.BalanceCents)

	assert.Equal(t, int64(5000), got.AmountCents)
	assert.Equal(t, "Bearer secret", headers.Get("Authorization"))
	assert.Equal(t, "sess-1", headers.Get("Idempotency-Key"))
}

func TestRecordTopUpBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "order already credited", http.StatusConflict)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k").RecordTopUp(context.Background(), TopUp{OrderID: "o"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReconcileFailed)

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusConflict, serr.StatusCode)
	assert.Contains(t, serr.Error(), "order already credited")
}

func TestRecordTopUpUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "k").RecordTopUp(context.Background(), TopUp{OrderID: "o"})
	assert.ErrorIs(t, err, ErrReconcileFailed)
}

func TestRecordTopUpNilClient(t *testing.T) {
	var c *Client
	receipt, err := c.RecordTopUp(context.Background(), TopUp{OrderID: "topup-1", AmountCents: 100})
	assert.Nil(t, receipt)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReconcileFailed)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Zero(t, svcErr.StatusCode)
}
