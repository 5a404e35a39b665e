package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ecomstack/ordersaga/internal/order/domain"
	"github.com/ecomstack/ordersaga/pkg/web"
)

// ProductClient calls the stock ledger's atomic purchase endpoint. Ledger
// rejections come back as business or validation errors and propagate to the
// saga as-is.
type ProductClient struct {
	log  *slog.Logger
	base string
	hc   *http.Client
}

func NewProductClient(log *slog.Logger, baseURL string) *ProductClient {
	return &ProductClient{
		log:  log,
		base: strings.TrimRight(baseURL, "/"),
		hc:   newHTTPClient(),
	}
}

func (c *ProductClient) Reserve(ctx context.Context, items []domain.PurchaseItem) ([]domain.PurchaseResult, error) {
	body, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/purchase", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &web.TransportError{Target: "product-service", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var results []domain.PurchaseResult
		if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
			return nil, &web.TransportError{Target: "product-service", Err: err}
		}
		return results, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		eb := decodeErrorBody(resp)
		if len(eb.Errors) > 0 {
			return nil, web.FieldErrors(eb.Errors)
		}
		if eb.Message != "" {
			return nil, &web.BusinessError{Msg: eb.Message}
		}
		return nil, &web.BusinessError{Msg: fmt.Sprintf("purchase rejected with status %d", resp.StatusCode)}
	default:
		return nil, &web.TransportError{
			Target: "product-service",
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
}
