package services

import (
	"kriya/internal/domain"
	"kriya/internal/repos"
)

const (
	defaultPageSize = 12
	maxPageSize     = 48
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// Page is one page of a product listing.
type Page struct {
	Category *domain.Category `json:"category,omitempty"`
	Products []domain.Product `json:"products"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	HasMore  bool             `json:"hasMore"`
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

// CategoryPage lists the active products of catID. An unknown category is
// domain.ErrNotFound, not an empty page.
func (s *CatalogService) CategoryPage(catID string, page, pageSize int) (Page, error) {
	cat, err := s.Cats.Get(catID)
	if err != nil {
		return Page{}, err
	}
	p := newPage(page, pageSize)
	ps, err := s.Prods.ListByCategory(catID, p.PageSize+1, p.offset())
	if err != nil {
		return Page{}, err
	}
	p.Category = &cat
	p.fill(ps)
	return p, nil
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Search(q, category string, page, pageSize int) (Page, error) {
	p := newPage(page, pageSize)
	ps, err := s.Prods.Search(q, category, p.PageSize+1, p.offset())
	if err != nil {
		return Page{}, err
	}
	p.fill(ps)
	return p, nil
}

func newPage(page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return Page{Page: page, PageSize: pageSize}
}

func (p Page) offset() int { return (p.Page - 1) * p.PageSize }

// fill takes a result fetched with one extra row to detect a next page.
func (p *Page) fill(ps []domain.Product) {
	if len(ps) > p.PageSize {
		p.HasMore = true
		ps = ps[:p.PageSize]
	}
	if ps == nil {
		ps = []domain.Product{}
	}
	p.Products = ps
}
