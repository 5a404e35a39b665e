package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/ecomstack/ordersaga/internal/order/application"
	"github.com/ecomstack/ordersaga/internal/order/domain"
	"github.com/ecomstack/ordersaga/pkg/web"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("order-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.Get("/", h.listOrders)
		r.Get("/{order-id}", h.getOrder)
	})
	r.Get("/api/v1/order-lines/order/{order-id}", h.getOrderLines)
	return r
}

type orderResp struct {
	ID            int                  `json:"id"`
	Reference     string               `json:"reference"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	CustomerID    string               `json:"customerId"`
}

type orderLineResp struct {
	ID        int     `json:"id"`
	ProductID int     `json:"productId"`
	Quantity  float64 `json:"quantity"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateOrder")
	defer span.End()

	var in application.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		web.Fail(w, web.FieldErrors{"body": "invalid order request body"})
		return
	}

	orderID, err := h.service.CreateOrder(ctx, in)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, orderID)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.FindAllOrders(r.Context())
	if err != nil {
		web.Fail(w, err)
		return
	}
	resp := make([]orderResp, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResp(o))
	}
	web.JSON(w, http.StatusOK, resp)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "order-id"))
	if err != nil {
		web.Fail(w, web.FieldErrors{"order-id": "must be an integer"})
		return
	}
	o, err := h.service.FindOrder(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, toOrderResp(o))
}

func (h *Handler) getOrderLines(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "order-id"))
	if err != nil {
		web.Fail(w, web.FieldErrors{"order-id": "must be an integer"})
		return
	}
	lines, err := h.service.FindOrderLines(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	resp := make([]orderLineResp, 0, len(lines))
	for _, l := range lines {
		resp = append(resp, orderLineResp{ID: l.ID, ProductID: l.ProductID, Quantity: l.Quantity})
	}
	web.JSON(w, http.StatusOK, resp)
}

func toOrderResp(o domain.Order) orderResp {
	return orderResp{
		ID:            o.ID,
		Reference:     o.Reference,
		Amount:        o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		CustomerID:    o.CustomerID,
	}
}
