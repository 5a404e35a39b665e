package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ecomstack/ordersaga/internal/order/domain"
	"github.com/ecomstack/ordersaga/pkg/web"
)

// CustomerClient is the read-only customer directory lookup. A missing
// customer is (nil, nil); only transport problems are errors.
type CustomerClient struct {
	log  *slog.Logger
	base string
	hc   *http.Client
}

func NewCustomerClient(log *slog.Logger, baseURL string) *CustomerClient {
	return &CustomerClient{
		log:  log,
		base: strings.TrimRight(baseURL, "/"),
		hc:   newHTTPClient(),
	}
}

func (c *CustomerClient) Find(ctx context.Context, customerID string) (*domain.Customer, error) {
	u := fmt.Sprintf("%s/%s", c.base, url.PathEscape(customerID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &web.TransportError{Target: "customer-service", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode == http.StatusOK:
		var customer domain.Customer
		if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
			return nil, &web.TransportError{Target: "customer-service", Err: err}
		}
		if customer.ID == "" {
			return nil, nil
		}
		return &customer, nil
	default:
		return nil, &web.TransportError{
			Target: "customer-service",
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
}
