package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-product-admin/catalog"
	"github.com/jrsteele09/go-product-admin/internal/errors"
	"github.com/jrsteele09/go-product-admin/permissions"
)

const (
	errMsgProductMissing = "Product not found"
	errMsgNotAuthorized  = "Not authorized to perform this operation"
	errMsgRequestFailed  = "The request could not be completed. Please try again"
)

// ProductRow is one search hit with its resolved category.
type ProductRow struct {
	Product      catalog.Product
	CategoryName string
}

// CategoryHit counts matching products per category for a name search.
type CategoryHit struct {
	CategoryName string
	Count        int
}

// ProductSearchPageData contains data for rendering the search page
type ProductSearchPageData struct {
	AppName      string
	Mode         string // "name" or "sku"
	Query        string
	Error        string
	Results      []ProductRow
	CategoryHits []CategoryHit
	CanManage    bool
}

// ProductSearchHandler renders the product search page and runs the search
// when a query is present (GET /products/search?mode=name&q=...).
func (s *Server) ProductSearchHandler() http.HandlerFunc {
	searchTmpl := MustParseTemplate("product_search.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		mode := r.URL.Query().Get("mode")
		if mode != "sku" {
			mode = "name"
		}
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		data := ProductSearchPageData{
			AppName:   s.config.GetAppName(),
			Mode:      mode,
			Query:     query,
			CanManage: permissions.ForRole(sess.IsAdmin).CanManageCatalog,
		}

		if query == "" {
			if r.URL.Query().Has("q") {
				data.Error = "A search term is required"
			}
			renderPage(w, searchTmpl, data)
			return
		}

		switch mode {
		case "sku":
			product, err := s.api.ProductBySKU(r.Context(), sess.Token, query)
			if err != nil {
				data.Error = searchErrorMessage(err)
			} else {
				data.Results = []ProductRow{{Product: *product}}
			}
		default:
			products, err := s.api.SearchProductsByName(r.Context(), sess.Token, query)
			if err != nil {
				data.Error = searchErrorMessage(err)
				break
			}

			// Resolve each hit's category and the per-category hit counts
			// from the full category listing.
			categories, err := s.api.Categories(r.Context(), sess.Token)
			if err != nil {
				log.Err(err).Msg("Failed to fetch categories for search results")
			}

			hits := make(map[string]int)
			for _, product := range products {
				row := ProductRow{Product: product}
				if category := catalog.CategoryOf(categories, product.ID); category != nil {
					row.CategoryName = category.Name
					hits[category.Name]++
				}
				data.Results = append(data.Results, row)
			}
			for _, category := range categories {
				if count := hits[category.Name]; count > 0 {
					data.CategoryHits = append(data.CategoryHits, CategoryHit{CategoryName: category.Name, Count: count})
				}
			}
		}

		renderPage(w, searchTmpl, data)
	}
}

func searchErrorMessage(err error) string {
	switch {
	case errors.Is(err, errors.ErrNotFound):
		return errMsgProductMissing
	case errors.Is(err, errors.ErrUnauthorized):
		return errMsgNotAuthorized
	default:
		return errMsgRequestFailed
	}
}

// ProductFormPageData drives the create and edit pages through their three
// panels: the form, the confirmation prompt and the saved message.
type ProductFormPageData struct {
	AppName    string
	Title      string
	Action     string // form post target
	Product    catalog.Product
	Price      string
	SKULocked  bool // the edit form addresses a fixed SKU
	Error      string
	SKUError   string
	Confirming bool
	Saved      bool
	SavedDelay int
}

// ProductNewPageHandler displays the product registration form (GET /products/new)
func (s *Server) ProductNewPageHandler() http.HandlerFunc {
	formTmpl := MustParseTemplate("product_form.html")

	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, formTmpl, s.newProductFormData("Register Product", RouteProductNew, catalog.Product{}, ""))
	}
}

// ProductNewSubmissionHandler runs the confirm-then-commit flow for product
// registration (POST /products/new).
func (s *Server) ProductNewSubmissionHandler() http.HandlerFunc {
	formTmpl := MustParseTemplate("product_form.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		sess, _ := SessionFromContext(r.Context())
		product, priceRaw, validationErr := productFromForm(r, r.FormValue("sku"))
		data := s.newProductFormData("Register Product", RouteProductNew, product, priceRaw)

		switch r.FormValue("confirmed") {
		case "no":
			renderPage(w, formTmpl, data)
		case "yes":
			if validationErr != nil {
				data.Error = validationErr.Error()
				renderPage(w, formTmpl, data)
				return
			}
			if err := s.api.CreateProduct(r.Context(), sess.Token, product); err != nil {
				switch {
				case errors.Is(err, errors.ErrConflict):
					data.SKUError = "SKU already exists"
				case errors.Is(err, errors.ErrUnauthorized):
					data.Error = errMsgNotAuthorized
				default:
					log.Err(err).Msg("Product registration failed")
					data.Error = errMsgRequestFailed
				}
				renderPage(w, formTmpl, data)
				return
			}
			data.Saved = true
			renderPage(w, formTmpl, data)
		default:
			if validationErr != nil {
				data.Error = validationErr.Error()
				renderPage(w, formTmpl, data)
				return
			}
			data.Confirming = true
			renderPage(w, formTmpl, data)
		}
	}
}

// ProductEditPageHandler displays the update form prefilled from the API
// (GET /products/{sku}/edit).
func (s *Server) ProductEditPageHandler() http.HandlerFunc {
	formTmpl := MustParseTemplate("product_form.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		sku := r.PathValue("sku")

		data := s.newProductFormData("Update Product", strings.Replace(RouteProductEdit, "{sku}", sku, 1), catalog.Product{SKU: sku}, "")
		data.SKULocked = true

		product, err := s.api.ProductBySKU(r.Context(), sess.Token, sku)
		switch {
		case err == nil:
			data.Product = *product
			data.Price = strconv.FormatFloat(product.Price, 'f', -1, 64)
		case errors.Is(err, errors.ErrNotFound):
			data.Error = errMsgProductMissing
		default:
			log.Err(err).Str("sku", sku).Msg("Failed to fetch product for editing")
		}

		renderPage(w, formTmpl, data)
	}
}

// ProductEditSubmissionHandler runs the confirm-then-commit flow for
// product updates (POST /products/{sku}/edit).
func (s *Server) ProductEditSubmissionHandler() http.HandlerFunc {
	formTmpl := MustParseTemplate("product_form.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		sess, _ := SessionFromContext(r.Context())
		sku := r.PathValue("sku")
		product, priceRaw, validationErr := productFromForm(r, sku)

		data := s.newProductFormData("Update Product", strings.Replace(RouteProductEdit, "{sku}", sku, 1), product, priceRaw)
		data.SKULocked = true

		switch r.FormValue("confirmed") {
		case "no":
			renderPage(w, formTmpl, data)
		case "yes":
			if validationErr != nil {
				data.Error = validationErr.Error()
				renderPage(w, formTmpl, data)
				return
			}
			if err := s.api.UpdateProduct(r.Context(), sess.Token, product); err != nil {
				switch {
				case errors.Is(err, errors.ErrNotFound):
					data.Error = errMsgProductMissing
				case errors.Is(err, errors.ErrUnauthorized):
					data.Error = errMsgNotAuthorized
				default:
					log.Err(err).Str("sku", sku).Msg("Product update failed")
					data.Error = errMsgRequestFailed
				}
				renderPage(w, formTmpl, data)
				return
			}
			data.Saved = true
			renderPage(w, formTmpl, data)
		default:
			if validationErr != nil {
				data.Error = validationErr.Error()
				renderPage(w, formTmpl, data)
				return
			}
			data.Confirming = true
			renderPage(w, formTmpl, data)
		}
	}
}

// ProductDeletePageData contains data for the delete confirmation page
type ProductDeletePageData struct {
	AppName    string
	Product    catalog.Product
	Action     string
	Error      string
	Deleted    bool
	SavedDelay int
}

// ProductDeletePageHandler shows the delete confirmation for a product
// (GET /products/{sku}/delete).
func (s *Server) ProductDeletePageHandler() http.HandlerFunc {
	deleteTmpl := MustParseTemplate("product_delete.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		sku := r.PathValue("sku")

		data := ProductDeletePageData{
			AppName: s.config.GetAppName(),
			Action:  strings.Replace(RouteProductDelete, "{sku}", sku, 1),
			Product: catalog.Product{SKU: sku},
		}

		product, err := s.api.ProductBySKU(r.Context(), sess.Token, sku)
		switch {
		case err == nil:
			data.Product = *product
		case errors.Is(err, errors.ErrNotFound):
			data.Error = errMsgProductMissing
		default:
			data.Error = searchErrorMessage(err)
		}

		renderPage(w, deleteTmpl, data)
	}
}

// ProductDeleteSubmissionHandler performs the deletion after confirmation
// (POST /products/{sku}/delete).
func (s *Server) ProductDeleteSubmissionHandler() http.HandlerFunc {
	deleteTmpl := MustParseTemplate("product_delete.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		if r.FormValue("confirmed") != "yes" {
			http.Redirect(w, r, RouteProductSearch, http.StatusSeeOther)
			return
		}

		sess, _ := SessionFromContext(r.Context())
		sku := r.PathValue("sku")

		data := ProductDeletePageData{
			AppName:    s.config.GetAppName(),
			Action:     strings.Replace(RouteProductDelete, "{sku}", sku, 1),
			Product:    catalog.Product{SKU: sku},
			SavedDelay: int(s.config.GetWelcomeDismissDelay().Seconds()),
		}

		if err := s.api.DeleteProduct(r.Context(), sess.Token, sku); err != nil {
			switch {
			case errors.Is(err, errors.ErrNotFound):
				data.Error = errMsgProductMissing
			case errors.Is(err, errors.ErrUnauthorized):
				data.Error = errMsgNotAuthorized
			default:
				log.Err(err).Str("sku", sku).Msg("Product deletion failed")
				data.Error = errMsgRequestFailed
			}
			renderPage(w, deleteTmpl, data)
			return
		}

		data.Deleted = true
		renderPage(w, deleteTmpl, data)
	}
}

func (s *Server) newProductFormData(title, action string, product catalog.Product, priceRaw string) ProductFormPageData {
	return ProductFormPageData{
		AppName:    s.config.GetAppName(),
		Title:      title,
		Action:     action,
		Product:    product,
		Price:      priceRaw,
		SavedDelay: int(s.config.GetWelcomeDismissDelay().Seconds()),
	}
}

// productFromForm builds a product record from the form fields. Every field
// is required; the price must parse as a number.
func productFromForm(r *http.Request, sku string) (catalog.Product, string, error) {
	product := catalog.Product{
		Name:        strings.TrimSpace(r.FormValue("name")),
		SKU:         strings.TrimSpace(sku),
		Description: strings.TrimSpace(r.FormValue("description")),
		ImageURL:    strings.TrimSpace(r.FormValue("imageUrl")),
	}
	priceRaw := strings.TrimSpace(r.FormValue("price"))

	if product.Name == "" || product.SKU == "" || product.Description == "" || product.ImageURL == "" || priceRaw == "" {
		return product, priceRaw, errors.Wrapf(errors.ErrValidation, "all fields are required")
	}

	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil {
		return product, priceRaw, errors.Wrapf(errors.ErrValidation, "price must be a number")
	}
	product.Price = price

	return product, priceRaw, nil
}
