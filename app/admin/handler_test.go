package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/shop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// --- Mock Repository ---

type MockAdminRepo struct {
	Admin     []models.Product
	Catalog   []models.Product
	CreateErr error
	DeleteErr error
	ReloadErr error
	LastSaved *shop.ProductFields

	deleteCalled bool
	confirmed    bool
}

func (m *MockAdminRepo) AdminProducts() []models.Product {
	return m.Admin
}

func (m *MockAdminRepo) Products() []models.Product {
	return append(append([]models.Product{}, m.Catalog...), m.Admin...)
}

func (m *MockAdminRepo) CreateProduct(_ context.Context, fields shop.ProductFields) (models.Product, error) {
	m.LastSaved = &fields
	if m.CreateErr != nil {
		return models.Product{}, m.CreateErr
	}
	price, err := decimal.NewFromString(fields.Price)
	if err != nil {
		return models.Product{}, &shop.ValidationError{Message: "invalid number", Fields: []string{"price"}}
	}
	p := models.Product{
		ID:     1700000000000,
		Name:   fields.Name,
		Price:  price,
		Source: models.SourceAdmin,
	}
	m.Admin = append(m.Admin, p)
	return p, nil
}

func (m *MockAdminRepo) DeleteProduct(_ context.Context, id int64, confirm shop.Confirmation) (bool, error) {
	m.deleteCalled = true
	for i, p := range m.Admin {
		if p.ID != id {
			continue
		}
		if !confirm(p) {
			return false, nil
		}
		m.confirmed = true
		if m.DeleteErr != nil {
			return false, m.DeleteErr
		}
		m.Admin = append(m.Admin[:i], m.Admin[i+1:]...)
		return true, nil
	}
	return false, nil
}

func (m *MockAdminRepo) Reload(context.Context) error {
	return m.ReloadErr
}

func adminProduct(id int64, name string) models.Product {
	return models.Product{
		ID:     id,
		Name:   name,
		Price:  decimal.NewFromInt(100),
		Colors: []string{"Navy"},
		Source: models.SourceAdmin,
	}
}

// --- Tests: GET /admin/products ---

func TestHandleGetAll(t *testing.T) {
	testCases := []struct {
		name               string
		mockRepoSetup      func() *MockAdminRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success with multiple products",
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{
					Admin: []models.Product{
						adminProduct(1700000000001, "Linen Blazer"),
						adminProduct(1700000000002, "Wool Overcoat"),
					},
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []map[string]any
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 2)
				assert.Equal(t, "Linen Blazer", resp[0]["name"])
				assert.Equal(t, "admin", resp[1]["source"])
			},
		},
		{
			name: "Success with empty list",
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.JSONEq(t, `[]`, rec.Body.String())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewAdminHandler(mockRepo)
			req := httptest.NewRequest("GET", "/admin/products", nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGetAll(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

// --- Tests: POST /admin/products ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		mockRepoSetup      func() *MockAdminRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockAdminRepo)
	}{
		{
			name:        "Success",
			requestBody: `{"name":"Linen Blazer","price":"320","colors":"Beige, Navy","rating":"","image":"linen.jpg"}`,
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{}
			},
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp CreateResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "Product added successfully!", resp.Message)
				assert.Equal(t, "Linen Blazer", resp.Product.Name)
				assert.Equal(t, 320.0, resp.Product.Price)
			},
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.NotNil(t, repo.LastSaved)
				assert.Equal(t, "Beige, Navy", repo.LastSaved.Colors)
				assert.Equal(t, "linen.jpg", repo.LastSaved.Image)
			},
		},
		{
			name:        "Numeric price and rating",
			requestBody: `{"name":"Silk Tie","price":49.5,"rating":4}`,
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{}
			},
			expectedStatusCode: http.StatusCreated,
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.Equal(t, "49.5", repo.LastSaved.Price)
				assert.Equal(t, "4", repo.LastSaved.Rating)
			},
		},
		{
			name:        "Invalid JSON body",
			requestBody: `{invalid json`,
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Invalid JSON body", errResp["error"])
			},
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.Nil(t, repo.LastSaved, "CreateProduct should not be called with invalid JSON")
			},
		},
		{
			name:        "Blank name is accepted",
			requestBody: `{"name":"","price":"10"}`,
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{}
			},
			expectedStatusCode: http.StatusCreated,
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.NotNil(t, repo.LastSaved)
				assert.Equal(t, "", repo.LastSaved.Name)
			},
		},
		{
			name:        "Missing price is rejected by the store",
			requestBody: `{"name":"No Price"}`,
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]any
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Price and rating must be valid numbers", errResp["error"])
				assert.Equal(t, []any{"price"}, errResp["fields"])
			},
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.NotNil(t, repo.LastSaved, "CreateProduct should validate the price")
				assert.Equal(t, "", repo.LastSaved.Price)
			},
		},
		{
			name:        "Validation error",
			requestBody: `{"name":"Bad Price","price":"abc"}`,
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{CreateErr: &shop.ValidationError{Message: "invalid number", Fields: []string{"price"}}}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp struct {
					Error  string   `json:"error"`
					Fields []string `json:"fields"`
				}
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Price and rating must be valid numbers", errResp.Error)
				assert.Equal(t, []string{"price"}, errResp.Fields)
			},
		},
		{
			name:        "Repository error on create",
			requestBody: `{"name":"Overcoat","price":"500"}`,
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{CreateErr: errors.New("insert failed")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Failed to create product", errResp["error"])
			},
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.NotNil(t, repo.LastSaved, "CreateProduct should have been called")
				assert.Equal(t, "Overcoat", repo.LastSaved.Name)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewAdminHandler(mockRepo)
			req := httptest.NewRequest("POST", "/admin/products", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			handler.HandleCreate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

// --- Tests: DELETE /admin/products/{id} ---

func TestHandleDelete(t *testing.T) {
	testCases := []struct {
		name               string
		productID          string
		query              string
		mockRepoSetup      func() *MockAdminRepo
		expectedStatusCode int
		expectedResponse   DeleteResponse
		checkRepoCall      func(t *testing.T, repo *MockAdminRepo)
	}{
		{
			name:      "Confirmed deletion",
			productID: "1700000000001",
			query:     "?confirm=true",
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{Admin: []models.Product{adminProduct(1700000000001, "Linen Blazer")}}
			},
			expectedStatusCode: http.StatusOK,
			expectedResponse:   DeleteResponse{Deleted: true, Message: "Product deleted successfully"},
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.Empty(t, repo.Admin)
			},
		},
		{
			name:      "Not confirmed",
			productID: "1700000000001",
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{Admin: []models.Product{adminProduct(1700000000001, "Linen Blazer")}}
			},
			expectedStatusCode: http.StatusOK,
			expectedResponse:   DeleteResponse{Deleted: false, Message: "Deletion not confirmed"},
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.Len(t, repo.Admin, 1)
			},
		},
		{
			name:      "Catalog product is not deletable",
			productID: "1",
			query:     "?confirm=true",
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{Catalog: []models.Product{{ID: 1, Source: models.SourceCatalog}}}
			},
			expectedStatusCode: http.StatusOK,
			expectedResponse:   DeleteResponse{Deleted: false, Message: "Only admin products can be deleted"},
		},
		{
			name:      "Invalid id",
			productID: "abc",
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{}
			},
			expectedStatusCode: http.StatusNotFound,
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.False(t, repo.deleteCalled)
			},
		},
		{
			name:      "Repository error on delete",
			productID: "1700000000001",
			query:     "?confirm=1",
			mockRepoSetup: func() *MockAdminRepo {
				return &MockAdminRepo{
					Admin:     []models.Product{adminProduct(1700000000001, "Linen Blazer")},
					DeleteErr: errors.New("write failed"),
				}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkRepoCall: func(t *testing.T, repo *MockAdminRepo) {
				assert.True(t, repo.confirmed)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewAdminHandler(mockRepo)
			req := httptest.NewRequest("DELETE", "/admin/products/"+tc.productID+tc.query, nil)
			req.SetPathValue("id", tc.productID)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleDelete(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.expectedStatusCode == http.StatusOK {
				var resp DeleteResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedResponse, resp)
			}

			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

// --- Tests: POST /admin/catalog/reload ---

func TestHandleReload(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := &MockAdminRepo{
			Catalog: []models.Product{{ID: 1}, {ID: 2}},
			Admin:   []models.Product{adminProduct(1700000000001, "Linen Blazer")},
		}
		rec := httptest.NewRecorder()

		NewAdminHandler(mockRepo).HandleReload(rec, httptest.NewRequest("POST", "/admin/catalog/reload", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp ReloadResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, ReloadResponse{Message: "Catalog reloaded", Total: 3}, resp)
	})

	t.Run("Source failure", func(t *testing.T) {
		mockRepo := &MockAdminRepo{ReloadErr: &shop.LoadError{Source: "products.json", Err: errors.New("missing")}}
		rec := httptest.NewRecorder()

		NewAdminHandler(mockRepo).HandleReload(rec, httptest.NewRequest("POST", "/admin/catalog/reload", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.JSONEq(t, `{"error":"failed to load catalog"}`, rec.Body.String())
	})
}
