package payment_test

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gallerium/marketplace-v2/internal/adapter"
	"github.com/gallerium/marketplace-v2/internal/domain"
	"github.com/gallerium/marketplace-v2/internal/logger"
	"github.com/gallerium/marketplace-v2/internal/mocks"
	"github.com/gallerium/marketplace-v2/internal/providers/payment"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testClientMocks struct {
	ctrl   *gomock.Controller
	http   *mocks.MockHTTPClient
	client *payment.Client
}

func setupTestClient(t *testing.T) *testClientMocks {
	ctrl := gomock.NewController(t)

	tm := &testClientMocks{
		ctrl: ctrl,
		http: mocks.NewMockHTTPClient(ctrl),
	}
	tm.client = payment.NewClient("https://gateway.example", "sk_test_secret", tm.http, adapter.NewJSON())
	return tm
}

func tearDownTestClient(tm *testClientMocks) {
	tm.ctrl.Finish()
}

func TestCharge(t *testing.T) {
	tm := setupTestClient(t)
	defer tearDownTestClient(tm)

	tm.http.EXPECT().
		PostOnce(gomock.Any(), "https://gateway.example/payments", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, headers map[string]string, body io.Reader) (int, []byte, error) {
			assert.Equal(t, "Bearer sk_test_secret", headers["Authorization"])
			assert.Equal(t, "application/json", headers["Content-Type"])

			payload, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.JSONEq(t, `{
				"amount": 15050,
				"currency": "USD",
				"reference": "pay-ref-1",
				"source": {"type": "token", "token": "tok_visa"},
				"customer": {"email": "buyer@example.com"}
			}`, string(payload))

			return 201, []byte(`{"id": "pay_123", "approved": true, "response_code": "10000"}`), nil
		})

	result, err := tm.client.Charge(context.Background(), adapter.ChargeRequest{
		Amount:    15050,
		Currency:  "USD",
		Reference: "pay-ref-1",
		CardToken: "tok_visa",
		Customer:  "buyer@example.com",
	})
	require.NoError(t, err)
	assert.True(t, result.Approved)
	assert.Equal(t, "pay_123", result.PaymentID)
	assert.Equal(t, "10000", result.ResponseCode)
}

func TestChargeOmitsEmptyCustomer(t *testing.T) {
	tm := setupTestClient(t)
	defer tearDownTestClient(tm)

	tm.http.EXPECT().
		PostOnce(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ map[string]string, body io.Reader) (int, []byte, error) {
			payload, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.NotContains(t, string(payload), "customer")
			return 201, []byte(`{"id": "pay_124", "approved": true, "response_code": "10000"}`), nil
		})

	_, err := tm.client.Charge(context.Background(), adapter.ChargeRequest{
		Amount:    100,
		Currency:  "USD",
		Reference: "pay-ref-2",
		CardToken: "tok_visa",
	})
	require.NoError(t, err)
}

func TestChargeDeclinedIsNotAnError(t *testing.T) {
	tm := setupTestClient(t)
	defer tearDownTestClient(tm)

	// The gateway processed the charge and said no. Classification into
	// PaymentDeclined happens in the caller, not here.
	tm.http.EXPECT().
		PostOnce(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(201, []byte(`{"id": "pay_125", "approved": false, "response_code": "20051"}`), nil)

	result, err := tm.client.Charge(context.Background(), adapter.ChargeRequest{
		Amount: 100, Currency: "USD", Reference: "pay-ref-3", CardToken: "tok_visa",
	})
	require.NoError(t, err)
	assert.False(t, result.Approved)
	assert.Equal(t, "20051", result.ResponseCode)
}

func TestChargeTransportFailure(t *testing.T) {
	tm := setupTestClient(t)
	defer tearDownTestClient(tm)

	tm.http.EXPECT().
		PostOnce(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, nil, errors.New("connection reset"))

	_, err := tm.client.Charge(context.Background(), adapter.ChargeRequest{
		Amount: 100, Currency: "USD", Reference: "pay-ref-4", CardToken: "tok_visa",
	})
	var paymentErr *domain.PaymentError
	require.ErrorAs(t, err, &paymentErr)
}

func TestChargeGatewayErrorCarriesBody(t *testing.T) {
	tm := setupTestClient(t)
	defer tearDownTestClient(tm)

	tm.http.EXPECT().
		PostOnce(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(502, []byte(`{"error": "upstream unavailable"}`), nil)

	_, err := tm.client.Charge(context.Background(), adapter.ChargeRequest{
		Amount: 100, Currency: "USD", Reference: "pay-ref-5", CardToken: "tok_visa",
	})
	var paymentErr *domain.PaymentError
	require.ErrorAs(t, err, &paymentErr)
	assert.Contains(t, paymentErr.GatewayBody, "upstream unavailable")
}

func TestRefund(t *testing.T) {
	tm := setupTestClient(t)
	defer tearDownTestClient(tm)

	tm.http.EXPECT().
		PostOnce(gomock.Any(), "https://gateway.example/payments/pay_123/refunds", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ map[string]string, body io.Reader) (int, []byte, error) {
			payload, err := io.ReadAll(body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"amount": 150, "reference": "pay-ref-1"}`, string(payload))
			return 202, []byte(`{}`), nil
		})

	err := tm.client.Refund(context.Background(), adapter.RefundRequest{
		PaymentID: "pay_123",
		Amount:    150,
		Reference: "pay-ref-1",
	})
	require.NoError(t, err)
}

func TestRefundRejected(t *testing.T) {
	tm := setupTestClient(t)
	defer tearDownTestClient(tm)

	tm.http.EXPECT().
		PostOnce(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(400, []byte(`{"error": "already refunded"}`), nil)

	err := tm.client.Refund(context.Background(), adapter.RefundRequest{
		PaymentID: "pay_123",
		Amount:    150,
		Reference: "pay-ref-1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already refunded")
}
