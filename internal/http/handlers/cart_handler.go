package handlers

import (
	"kriya/internal/cart"
	"kriya/internal/currency"
	applog "kriya/internal/log"
	"kriya/internal/services"
	"kriya/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	Cart *services.CartService
}

type addItemRequest struct {
	ProductID string `json:"productId" form:"productId" validate:"required,resid"`
	Quantity  int    `json:"quantity" form:"quantity" validate:"min=0,max=50"`
	Size      string `json:"size" form:"size" validate:"omitempty,max=8,alphanum"`
	Color     string `json:"color" form:"color" validate:"omitempty,max=30"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" form:"quantity" validate:"required,max=50"`
}

type promoRequest struct {
	Code string `json:"code" form:"code" validate:"required,max=32,alphanum"`
}

type lineView struct {
	cart.LineItem
	PriceText     string `json:"priceText"`
	LineTotalText string `json:"lineTotalText"`
}

type summaryView struct {
	cart.Summary
	SubtotalText string `json:"subtotalText"`
	ShippingText string `json:"shippingText"`
	TotalText    string `json:"totalText"`
}

func viewCart(items []cart.LineItem, sum cart.Summary) fiber.Map {
	lines := make([]lineView, 0, len(items))
	for _, it := range items {
		lineTotal := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))).InexactFloat64()
		lines = append(lines, lineView{
			LineItem:      it,
			PriceText:     currency.Format(it.Price),
			LineTotalText: currency.Format(lineTotal),
		})
	}
	return fiber.Map{
		"items": lines,
		"summary": summaryView{
			Summary:      sum,
			SubtotalText: currency.Format(sum.Subtotal),
			ShippingText: currency.Format(sum.Shipping),
			TotalText:    currency.Format(sum.Total),
		},
	}
}

func (h *CartHandler) respond(c *fiber.Ctx, items []cart.LineItem) error {
	return c.JSON(viewCart(items, cart.Summarize(items, h.Cart.Pricing.Shipping)))
}

// GET /api/v1/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv := h.Cart.View(ensureSID(c))
	return c.JSON(viewCart(cv.Items, cv.Summary))
}

// POST /api/v1/cart/items
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addItemRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	sid := ensureSID(c)
	items, err := h.Cart.Add(sid, req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		return fail(c, err)
	}
	applog.Info(c, "cart.add", map[string]any{"product": req.ProductID, "qty": req.Quantity})
	return h.respond(c.Status(fiber.StatusCreated), items)
}

// PATCH /api/v1/cart/items/:id
// A quantity of zero or below removes the product.
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	var req setQuantityRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	return h.respond(c, h.Cart.SetQuantity(ensureSID(c), id, *req.Quantity))
}

// DELETE /api/v1/cart/items/:id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	return h.respond(c, h.Cart.Remove(ensureSID(c), id))
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	return h.respond(c, h.Cart.Clear(ensureSID(c)))
}

// POST /api/v1/cart/promo
func (h *CartHandler) ApplyPromo(c *fiber.Ctx) error {
	var req promoRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	res := h.Cart.ApplyPromo(ensureSID(c), req.Code)
	if !res.Success {
		applog.Security(c, "cart.promo.invalid", map[string]any{"code": req.Code})
		return c.Status(fiber.StatusUnprocessableEntity).JSON(res)
	}
	return c.JSON(fiber.Map{
		"success":      res.Success,
		"discount":     res.Discount,
		"discountText": currency.Format(res.Discount),
		"message":      res.Message,
	})
}
