package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-product-admin/catalog"
	"github.com/jrsteele09/go-product-admin/internal/errors"
	"github.com/jrsteele09/go-product-admin/internal/utils"
)

// RegisterPageData contains data for rendering the registration page
type RegisterPageData struct {
	AppName       string
	Error         string
	UserNameError string
	EmailError    string
	Registration  catalog.Registration
	BirthDate     string
	Saved         bool
	SavedDelay    int
}

// RegisterPageHandler displays the account registration page (GET /register)
func (s *Server) RegisterPageHandler() http.HandlerFunc {
	registerTmpl := MustParseTemplate("register.html")

	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, registerTmpl, RegisterPageData{AppName: s.config.GetAppName()})
	}
}

// RegisterSubmissionHandler processes the registration form. Uniqueness
// conflicts keep the form populated with the field errors the API named;
// success shows a saved message that returns to the login page.
func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
	registerTmpl := MustParseTemplate("register.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		reg, birthDateRaw, err := registrationFromForm(r)
		data := RegisterPageData{
			AppName:      s.config.GetAppName(),
			Registration: reg,
			BirthDate:    birthDateRaw,
			SavedDelay:   int(s.config.GetWelcomeDismissDelay().Seconds()),
		}
		if err != nil {
			data.Error = err.Error()
			renderPage(w, registerTmpl, data)
			return
		}

		if err := s.api.RegisterAccount(r.Context(), reg); err != nil {
			var conflict *errors.ConflictError
			switch {
			case errors.As(err, &conflict):
				if conflict.Field == errors.ConflictFieldUserName || conflict.Field == errors.ConflictFieldBoth {
					data.UserNameError = "Username already exists"
				}
				if conflict.Field == errors.ConflictFieldEmail || conflict.Field == errors.ConflictFieldBoth {
					data.EmailError = "Email already exists"
				}
			default:
				log.Err(err).Msg("Registration request failed")
				data.Error = "Failed registration attempt. Please try again"
			}
			renderPage(w, registerTmpl, data)
			return
		}

		data.Saved = true
		renderPage(w, registerTmpl, data)
	}
}

// registrationFromForm builds the registration record the API expects:
// phone numbers get the +46 prefix, the birth date is normalised to UTC and
// self-registered accounts are never administrators.
func registrationFromForm(r *http.Request) (catalog.Registration, string, error) {
	reg := catalog.Registration{
		UserName:  strings.TrimSpace(r.FormValue("userName")),
		FirstName: strings.TrimSpace(r.FormValue("firstName")),
		LastName:  strings.TrimSpace(r.FormValue("lastName")),
		Address:   strings.TrimSpace(r.FormValue("address")),
		City:      strings.TrimSpace(r.FormValue("city")),
		Email:     strings.TrimSpace(r.FormValue("email")),
		Password:  r.FormValue("password"),
		Admin:     false,
	}

	if phone := strings.TrimSpace(r.FormValue("phoneNumber")); phone != "" {
		reg.PhoneNumber = "+46" + phone
	}

	if zip := strings.TrimSpace(r.FormValue("zipCode")); zip != "" {
		zipCode, err := strconv.Atoi(zip)
		if err != nil {
			return reg, "", errors.Wrapf(errors.ErrValidation, "zip code must be a number")
		}
		reg.ZipCode = zipCode
	}

	birthDateRaw := r.FormValue("birthDate")
	if birthDateRaw != "" {
		birthDate, err := time.Parse("2006-01-02", birthDateRaw)
		if err != nil {
			return reg, birthDateRaw, errors.Wrapf(errors.ErrValidation, "birth date must be on the form YYYY-MM-DD")
		}
		reg.BirthDate = utils.Ptr(time.Date(birthDate.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	return reg, birthDateRaw, nil
}
