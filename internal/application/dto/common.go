package dto

import "github.com/jhoicas/Bizboard-api/internal/domain"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest paginación por número de página (1-based).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica valores por defecto y el límite máximo.
func (p *PageRequest) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
}

// Pagination metadatos de página en respuestas.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination calcula el número de páginas.
func NewPagination(page, limit, total int) *Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Page resultado paginado que devuelven los use cases.
type Page[T any] struct {
	Items      []T
	Pagination *Pagination
}

// APIResponse sobre uniforme de todas las respuestas HTTP.
type APIResponse struct {
	Success          bool                `json:"success"`
	Data             interface{}         `json:"data,omitempty"`
	Message          string              `json:"message,omitempty"`
	Error            string              `json:"error,omitempty"`
	Code             string              `json:"code,omitempty"`
	Pagination       *Pagination         `json:"pagination,omitempty"`
	ValidationErrors []domain.FieldError `json:"validationErrors,omitempty"`
	Stack            string              `json:"stack,omitempty"`
}
