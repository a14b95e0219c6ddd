package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-product-admin/catalog"
	"github.com/jrsteele09/go-product-admin/internal/errors"
)

// CategoriesPageData contains data for the category listing page
type CategoriesPageData struct {
	AppName    string
	Error      string
	Categories []catalog.Category
}

// CategoriesHandler lists every category with its products (GET /categories)
func (s *Server) CategoriesHandler() http.HandlerFunc {
	listTmpl := MustParseTemplate("categories.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		data := CategoriesPageData{AppName: s.config.GetAppName()}

		categories, err := s.api.Categories(r.Context(), sess.Token)
		if err != nil {
			log.Err(err).Msg("Failed to fetch categories")
			data.Error = searchErrorMessage(err)
		} else {
			data.Categories = catalog.CategoriesByID(catalog.WithProducts(categories))
		}

		renderPage(w, listTmpl, data)
	}
}

// CategoryFormPageData drives the category registration page
type CategoryFormPageData struct {
	AppName    string
	Name       string
	Error      string
	NameError  string
	Confirming bool
	Saved      bool
	SavedDelay int
}

// CategoryNewPageHandler displays the category registration form (GET /categories/new)
func (s *Server) CategoryNewPageHandler() http.HandlerFunc {
	formTmpl := MustParseTemplate("category_new.html")

	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, formTmpl, CategoryFormPageData{AppName: s.config.GetAppName()})
	}
}

// CategoryNewSubmissionHandler runs the confirm-then-commit flow for
// category registration (POST /categories/new).
func (s *Server) CategoryNewSubmissionHandler() http.HandlerFunc {
	formTmpl := MustParseTemplate("category_new.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		sess, _ := SessionFromContext(r.Context())

		data := CategoryFormPageData{
			AppName:    s.config.GetAppName(),
			Name:       strings.TrimSpace(r.FormValue("name")),
			SavedDelay: int(s.config.GetWelcomeDismissDelay().Seconds()),
		}

		switch r.FormValue("confirmed") {
		case "no":
			data.Name = ""
			renderPage(w, formTmpl, data)
		case "yes":
			if data.Name == "" {
				data.Error = "A category name is required"
				renderPage(w, formTmpl, data)
				return
			}
			if err := s.api.CreateCategory(r.Context(), sess.Token, data.Name); err != nil {
				switch {
				case errors.Is(err, errors.ErrConflict):
					data.NameError = "Category already exists"
				case errors.Is(err, errors.ErrUnauthorized):
					data.Error = errMsgNotAuthorized
				default:
					log.Err(err).Msg("Category registration failed")
					data.Error = errMsgRequestFailed
				}
				renderPage(w, formTmpl, data)
				return
			}
			data.Saved = true
			renderPage(w, formTmpl, data)
		default:
			if data.Name == "" {
				data.Error = "A category name is required"
				renderPage(w, formTmpl, data)
				return
			}
			data.Confirming = true
			renderPage(w, formTmpl, data)
		}
	}
}

// CategoryAssignPageData drives the product-to-category association page.
// The product is looked up by SKU before a target category is chosen.
type CategoryAssignPageData struct {
	AppName    string
	SKU        string
	Product    *catalog.Product
	Categories []catalog.Category
	CategoryID int64
	Error      string
	Saved      bool
	SavedDelay int
}

// CategoryAssignPageHandler displays the association page, resolving the
// product when a SKU is provided (GET /categories/assign?sku=...).
func (s *Server) CategoryAssignPageHandler() http.HandlerFunc {
	assignTmpl := MustParseTemplate("category_assign.html")

	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		data := CategoryAssignPageData{
			AppName: s.config.GetAppName(),
			SKU:     strings.TrimSpace(r.URL.Query().Get("sku")),
		}

		if data.SKU != "" {
			product, err := s.api.ProductBySKU(r.Context(), sess.Token, data.SKU)
			if err != nil {
				data.Error = searchErrorMessage(err)
			} else {
				data.Product = product
				categories, err := s.api.CategoriesOnly(r.Context(), sess.Token)
				if err != nil {
					log.Err(err).Msg("Failed to fetch categories for association")
					data.Error = errMsgRequestFailed
				} else {
					data.Categories = categories
				}
			}
		}

		renderPage(w, assignTmpl, data)
	}
}

// CategoryAssignSubmissionHandler associates the resolved product with the
// selected category (POST /categories/assign).
func (s *Server) CategoryAssignSubmissionHandler() http.HandlerFunc {
	assignTmpl := MustParseTemplate("category_assign.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		sess, _ := SessionFromContext(r.Context())

		data := CategoryAssignPageData{
			AppName:    s.config.GetAppName(),
			SKU:        strings.TrimSpace(r.FormValue("sku")),
			SavedDelay: int(s.config.GetWelcomeDismissDelay().Seconds()),
		}

		product, err := s.api.ProductBySKU(r.Context(), sess.Token, data.SKU)
		if err != nil {
			data.Error = searchErrorMessage(err)
			renderPage(w, assignTmpl, data)
			return
		}
		data.Product = product

		categoryID, err := formInt64(r, "categoryId")
		if err != nil {
			data.Error = "A category must be selected"
			s.fillAssignCategories(r, sess.Token, &data)
			renderPage(w, assignTmpl, data)
			return
		}
		data.CategoryID = categoryID

		if err := s.api.AssignProduct(r.Context(), sess.Token, categoryID, product.ID); err != nil {
			switch {
			case errors.Is(err, errors.ErrConflict):
				data.Error = "Product is already in that category"
			case errors.Is(err, errors.ErrUnauthorized):
				data.Error = errMsgNotAuthorized
			default:
				log.Err(err).Str("sku", data.SKU).Int64("categoryID", categoryID).Msg("Product association failed")
				data.Error = errMsgRequestFailed
			}
			s.fillAssignCategories(r, sess.Token, &data)
			renderPage(w, assignTmpl, data)
			return
		}

		data.Saved = true
		renderPage(w, assignTmpl, data)
	}
}

func formInt64(r *http.Request, field string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(r.FormValue(field)), 10, 64)
}

func (s *Server) fillAssignCategories(r *http.Request, tkn string, data *CategoryAssignPageData) {
	categories, err := s.api.CategoriesOnly(r.Context(), tkn)
	if err != nil {
		log.Err(err).Msg("Failed to fetch categories for association")
		return
	}
	data.Categories = categories
}
