package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ecomstack/ordersaga/internal/order/domain"
	"github.com/ecomstack/ordersaga/pkg/web"
)

// PaymentClient initiates the charge for a persisted order. The call is
// synchronous; any failure bubbles to the saga uncaught.
type PaymentClient struct {
	log  *slog.Logger
	base string
	hc   *http.Client
}

func NewPaymentClient(log *slog.Logger, baseURL string) *PaymentClient {
	return &PaymentClient{log: log, base: baseURL, hc: newHTTPClient()}
}

func (c *PaymentClient) Request(ctx context.Context, payment domain.PaymentRequest) (int, error) {
	body, err := json.Marshal(payment)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, &web.TransportError{Target: "payment-service", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var paymentID int
		if err := json.NewDecoder(resp.Body).Decode(&paymentID); err != nil {
			return 0, &web.TransportError{Target: "payment-service", Err: err}
		}
		return paymentID, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		eb := decodeErrorBody(resp)
		if eb.Message != "" {
			return 0, &web.BusinessError{Msg: eb.Message}
		}
		return 0, &web.BusinessError{Msg: fmt.Sprintf("payment rejected with status %d", resp.StatusCode)}
	default:
		return 0, &web.TransportError{
			Target: "payment-service",
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
}
