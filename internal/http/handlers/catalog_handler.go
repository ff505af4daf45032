package handlers

import (
	"strings"

	"kriya/internal/currency"
	"kriya/internal/domain"
	applog "kriya/internal/log"
	"kriya/internal/services"
	"kriya/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

type productView struct {
	domain.Product
	PriceText string `json:"priceText"`
}

func viewProducts(ps []domain.Product) []productView {
	out := make([]productView, 0, len(ps))
	for _, p := range ps {
		out = append(out, productView{Product: p, PriceText: currency.Format(p.Price)})
	}
	return out
}

func viewPage(p services.Page) fiber.Map {
	m := fiber.Map{
		"products": viewProducts(p.Products),
		"page":     p.Page,
		"pageSize": p.PageSize,
		"hasMore":  p.HasMore,
	}
	if p.Category != nil {
		m["category"] = p.Category
	}
	return m
}

// GET /api/v1/categories
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": cats})
}

// GET /api/v1/categories/:id/products?page=&pageSize=
func (h *CatalogHandler) ByCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	page, err := h.Catalog.CategoryPage(id, c.QueryInt("page", 1), c.QueryInt("pageSize", 0))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(viewPage(page))
}

// GET /api/v1/products/:id
func (h *CatalogHandler) Product(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "This item is no longer available"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(productView{Product: p, PriceText: currency.Format(p.Price)})
}

// GET /api/v1/search?q=&category=
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	q := ""
	if strings.TrimSpace(rawQ) != "" {
		var ok bool
		if q, ok = validate.Q(rawQ); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Enter a valid keyword (letters/numbers only)"})
		}
	}
	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		if _, ok := validate.ID(category); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "category"})
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category"})
		}
	}

	page, err := h.Catalog.Search(q, category, c.QueryInt("page", 1), c.QueryInt("pageSize", 0))
	if err != nil {
		applog.Error(c, "search.error", err, nil)
		return err
	}
	out := viewPage(page)
	out["q"] = q
	out["count"] = len(page.Products)
	return c.JSON(out)
}
