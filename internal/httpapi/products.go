package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iamcryptofennec/simple-store/internal/application/service"
	"github.com/iamcryptofennec/simple-store/internal/catalog"
	"github.com/iamcryptofennec/simple-store/internal/domain"
)

type categoryJSON struct {
	Name     string           `json:"name"`
	Products []domain.Product `json:"products"`
}

type groupedJSON struct {
	Total      int            `json:"total"`
	Categories []categoryJSON `json:"categories"`
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, st, err := s.products.ListProductsWithStats(r.Context())
	if err != nil {
		status, msg := lookupStatus(err)
		writeError(w, status, msg)
		return
	}
	setLookupHeaders(w, st)

	filtered := catalog.FilterBySearch(products, r.URL.Query().Get("q"))
	if filtered == nil {
		filtered = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, filtered)
}

func (s *Server) groupedProducts(w http.ResponseWriter, r *http.Request) {
	products, st, err := s.products.ListProductsWithStats(r.Context())
	if err != nil {
		status, msg := lookupStatus(err)
		writeError(w, status, msg)
		return
	}
	setLookupHeaders(w, st)

	view := catalog.Search(products, r.URL.Query().Get("q"))
	out := groupedJSON{Total: view.Total, Categories: make([]categoryJSON, 0, view.Groups.Len())}
	for _, name := range view.Groups.Categories {
		out.Categories = append(out.Categories, categoryJSON{Name: name, Products: view.Groups.Get(name)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, st, err := s.products.GetProductWithStats(r.Context(), id)
	if err != nil {
		status, msg := lookupStatus(err)
		if status == http.StatusBadGateway {
			s.logger.Warn("Product lookup failed", zap.Int("id", id), zap.Error(err))
		}
		writeError(w, status, msg)
		return
	}
	setLookupHeaders(w, st)
	writeJSON(w, http.StatusOK, product)
}
