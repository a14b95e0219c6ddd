package productapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-product-admin/catalog"
	"github.com/jrsteele09/go-product-admin/internal/errors"
	"github.com/jrsteele09/go-product-admin/productapi"
)

func TestClient_Login(t *testing.T) {
	t.Run("successful login", func(t *testing.T) {
		var gotBody map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/login", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"token":    "abc.def.ghi",
				"isAdmin":  false,
				"username": "jane.doe",
			})
		}))
		defer srv.Close()

		client := productapi.New(srv.URL)
		result, err := client.Login(context.Background(), "jane.doe", "jane")
		require.NoError(t, err)
		require.Equal(t, "abc.def.ghi", result.Token)
		require.False(t, result.IsAdmin)
		require.Equal(t, "jane.doe", result.Username)
		require.Equal(t, map[string]string{"username": "jane.doe", "password": "jane"}, gotBody)
	})

	t.Run("empty password makes no network call", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer srv.Close()

		client := productapi.New(srv.URL)
		_, err := client.Login(context.Background(), "jane.doe", "")
		require.ErrorIs(t, err, errors.ErrMissingCredentials)
		require.Zero(t, calls)
	})

	t.Run("non-200 is a failed login attempt", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := productapi.New(srv.URL)
		_, err := client.Login(context.Background(), "jane.doe", "wrong")
		require.ErrorIs(t, err, errors.ErrFailedLogin)
	})

	t.Run("200 without a token field is a failed login attempt", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"username": "jane.doe"})
		}))
		defer srv.Close()

		client := productapi.New(srv.URL)
		_, err := client.Login(context.Background(), "jane.doe", "jane")
		require.ErrorIs(t, err, errors.ErrFailedLogin)
	})
}

func TestClient_RegisterAccount(t *testing.T) {
	reg := catalog.Registration{UserName: "jane.doe", Email: "jane@example.com"}

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/login/register-account", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		require.NoError(t, productapi.New(srv.URL).RegisterAccount(context.Background(), reg))
	})

	t.Run("conflict names the colliding field", func(t *testing.T) {
		for _, field := range []string{"both", "userName", "email"} {
			t.Run(field, func(t *testing.T) {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusBadRequest)
					_ = json.NewEncoder(w).Encode(map[string]string{"errorType": field})
				}))
				defer srv.Close()

				err := productapi.New(srv.URL).RegisterAccount(context.Background(), reg)
				require.ErrorIs(t, err, errors.ErrConflict)

				var conflict *errors.ConflictError
				require.ErrorAs(t, err, &conflict)
				require.Equal(t, errors.ConflictField(field), conflict.Field)
			})
		}
	})
}

func TestClient_SearchProductsByName(t *testing.T) {
	t.Run("miss returns not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "ghost", r.URL.Query().Get("name"))
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		products, err := productapi.New(srv.URL).SearchProductsByName(context.Background(), "tok", "ghost")
		require.ErrorIs(t, err, errors.ErrNotFound)
		require.Empty(t, products)
	})

	t.Run("attaches bearer token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode([]catalog.Product{{ID: 1, Name: "chair", SKU: "CH-1"}})
		}))
		defer srv.Close()

		products, err := productapi.New(srv.URL).SearchProductsByName(context.Background(), "tok-123", "chair")
		require.NoError(t, err)
		require.Len(t, products, 1)
		require.Equal(t, "CH-1", products[0].SKU)
	})
}

func TestClient_ProductBySKU(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/CH-1":
			_ = json.NewEncoder(w).Encode(catalog.Product{ID: 1, Name: "chair", SKU: "CH-1", Price: 499})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := productapi.New(srv.URL)

	product, err := client.ProductBySKU(context.Background(), "tok", "CH-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), product.ID)

	_, err = client.ProductBySKU(context.Background(), "tok", "NOPE")
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestClient_CreateProduct_ConflictStatuses(t *testing.T) {
	// Deployed API revisions use both 400 and 409 for "SKU already exists";
	// the client folds them into one outcome.
	for _, status := range []int{http.StatusBadRequest, http.StatusConflict} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		err := productapi.New(srv.URL).CreateProduct(context.Background(), "tok", catalog.Product{SKU: "CH-1"})
		require.ErrorIs(t, err, errors.ErrConflict, "status %d", status)
		srv.Close()
	}
}

func TestClient_Categories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/categories":
			_ = json.NewEncoder(w).Encode([]catalog.Category{
				{ID: 1, Name: "chairs", Products: []catalog.Product{{ID: 7, SKU: "CH-1"}}},
				{ID: 2, Name: "tables"},
			})
		case "/categories/categories-only":
			_ = json.NewEncoder(w).Encode([]catalog.Category{
				{ID: 2, Name: "tables"},
				{ID: 1, Name: "chairs"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := productapi.New(srv.URL)

	t.Run("full listing", func(t *testing.T) {
		categories, err := client.Categories(context.Background(), "tok")
		require.NoError(t, err)
		require.Len(t, categories, 2)
	})

	t.Run("categories-only is sorted by id", func(t *testing.T) {
		categories, err := client.CategoriesOnly(context.Background(), "tok")
		require.NoError(t, err)
		require.Equal(t, int64(1), categories[0].ID)
		require.Equal(t, int64(2), categories[1].ID)
	})
}

func TestClient_AssignProduct(t *testing.T) {
	t.Run("posts to the association path", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		require.NoError(t, productapi.New(srv.URL).AssignProduct(context.Background(), "tok", 3, 7))
		require.Equal(t, "/categories/3/products/7", gotPath)
	})

	t.Run("already associated", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		defer srv.Close()

		err := productapi.New(srv.URL).AssignProduct(context.Background(), "tok", 3, 7)
		require.ErrorIs(t, err, errors.ErrConflict)
	})
}

func TestClient_UnauthorizedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := productapi.New(srv.URL).Categories(context.Background(), "expired")
	require.ErrorIs(t, err, errors.ErrUnauthorized)
}
