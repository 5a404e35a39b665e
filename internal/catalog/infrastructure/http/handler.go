package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/ecomstack/ordersaga/internal/catalog/application"
	"github.com/ecomstack/ordersaga/internal/catalog/domain"
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
		tracer:  otel.Tracer("product-http"),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Get("/{product-id}", h.getProduct)
		r.Post("/", h.createProduct)
		r.Post("/purchase", h.purchase)
	})
	return r
}

type productReq struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	AvailableQuantity float64         `json:"availableQuantity"`
	Price             decimal.Decimal `json:"price"`
}

type productResp struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	AvailableQuantity float64         `json:"availableQuantity"`
	Price             decimal.Decimal `json:"price"`
}

func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "PurchaseProducts")
	defer span.End()

	var items []domain.PurchaseItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		web.Fail(w, web.FieldErrors{"body": "invalid purchase request body"})
		return
	}

	results, err := h.service.Reserve(ctx, items)
	if err != nil {
		web.Fail(w, asWebError(err))
		return
	}
	web.JSON(w, http.StatusOK, results)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Fail(w, web.FieldErrors{"body": "invalid product body"})
		return
	}
	id, err := h.service.CreateProduct(r.Context(), domain.Product{
		Name:              req.Name,
		Description:       req.Description,
		AvailableQuantity: req.AvailableQuantity,
		Price:             req.Price,
	})
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, id)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "product-id"))
	if err != nil {
		web.Fail(w, web.FieldErrors{"product-id": "must be an integer"})
		return
	}
	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		web.Fail(w, err)
		return
	}
	web.JSON(w, http.StatusOK, toProductResp(p))
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		web.Fail(w, err)
		return
	}
	resp := make([]productResp, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResp(p))
	}
	web.JSON(w, http.StatusOK, resp)
}

func toProductResp(p domain.Product) productResp {
	return productResp{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		AvailableQuantity: p.AvailableQuantity,
		Price:             p.Price,
	}
}

// asWebError folds ledger failures into the shared taxonomy: both missing
// products and short stock abort the batch as business errors.
func asWebError(err error) error {
	var nf *domain.ProductsNotFoundError
	if errors.As(err, &nf) {
		return &web.BusinessError{Msg: nf.Error()}
	}
	var is *domain.InsufficientStockError
	if errors.As(err, &is) {
		return &web.BusinessError{Msg: is.Error()}
	}
	return err
}
