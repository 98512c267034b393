package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardapio/internal/models"
	"cardapio/internal/services"

	"github.com/gin-gonic/gin"
)

type stubCustomerService struct {
	customer *models.Customer
	err      error
}

func (s *stubCustomerService) Register(input services.RegisterInput) (*models.Customer, error) {
	return s.customer, s.err
}

func (s *stubCustomerService) Login(email, password string) (*models.Customer, string, error) {
	return s.customer, "token", s.err
}

func (s *stubCustomerService) GetByID(id string) (*models.Customer, error) {
	return s.customer, s.err
}

func (s *stubCustomerService) UpdateProfile(id string, input services.ProfileUpdateInput) (*models.Customer, error) {
	return s.customer, s.err
}

func (s *stubCustomerService) ToggleFavorite(customerID, productID string) (*models.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.customer.ToggleFavorite(productID)
	return s.customer, nil
}

func newFavoritesRouter(svc services.CustomerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCustomerHandler(svc, nil)

	router := gin.New()
	router.POST("/api/me/favorites/:productId", func(c *gin.Context) {
		c.Set("customer_id", "c1")
		handler.ToggleFavorite(c)
	})
	return router
}

func toggleFavorite(t *testing.T, router *gin.Engine, productID string) (int, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/me/favorites/"+productID, nil)
	router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return w.Code, resp
}

func TestToggleFavoriteReportsResultingState(t *testing.T) {
	svc := &stubCustomerService{customer: &models.Customer{ID: "c1", Favorites: []string{"3"}}}
	router := newFavoritesRouter(svc)

	code, resp := toggleFavorite(t, router, "7")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp["is_favorite"] != true {
		t.Errorf("expected is_favorite true after adding, got %v", resp["is_favorite"])
	}
	if favorites, ok := resp["favorites"].([]interface{}); !ok || len(favorites) != 2 {
		t.Errorf("expected 2 favorites, got %v", resp["favorites"])
	}

	code, resp = toggleFavorite(t, router, "7")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp["is_favorite"] != false {
		t.Errorf("expected is_favorite false after removing, got %v", resp["is_favorite"])
	}
}

func TestToggleFavoriteUnknownCustomer(t *testing.T) {
	router := newFavoritesRouter(&stubCustomerService{err: services.ErrCustomerNotFound})

	code, _ := toggleFavorite(t, router, "7")
	if code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
}
