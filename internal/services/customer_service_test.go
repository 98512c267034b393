package services

import (
	"errors"
	"testing"
	"time"

	"cardapio/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type fakeCustomerRepo struct {
	customers map[string]*models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*models.Customer)}
}

func (f *fakeCustomerRepo) Create(c *models.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) GetByID(id string) (*models.Customer, error) {
	if c, ok := f.customers[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeCustomerRepo) GetByEmail(email string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeCustomerRepo) GetAll() ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) GetRegisteredBetween(start, end time.Time) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range f.customers {
		if !c.CreatedAt.Before(start) && !c.CreatedAt.After(end) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) Update(c *models.Customer) error {
	if _, ok := f.customers[c.ID]; !ok {
		return errors.New("not found")
	}
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) Count() (int64, error) {
	return int64(len(f.customers)), nil
}

type fakeCustomerCache struct {
	entries map[string]*models.Customer
}

func newFakeCustomerCache() *fakeCustomerCache {
	return &fakeCustomerCache{entries: make(map[string]*models.Customer)}
}

func (f *fakeCustomerCache) GetCustomer(customerID string) (*models.Customer, error) {
	if c, ok := f.entries[customerID]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, errors.New("customer not cached")
}

func (f *fakeCustomerCache) SetCustomer(c *models.Customer, ttl time.Duration) error {
	clone := *c
	f.entries[c.ID] = &clone
	return nil
}

func (f *fakeCustomerCache) DeleteCustomer(customerID string) error {
	delete(f.entries, customerID)
	return nil
}

func newCustomerFixture() (*fakeCustomerRepo, CustomerService) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo, nil, "test-secret", time.Hour, time.Hour)
	return repo, svc
}

func TestRegisterHashesPasswordAndLowercasesEmail(t *testing.T) {
	_, svc := newCustomerFixture()

	customer, err := svc.Register(RegisterInput{
		Name:     "Maria",
		Email:    "Maria@Example.com",
		Password: "segredo123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if customer.ID == "" {
		t.Error("expected a generated id")
	}
	if customer.Email != "maria@example.com" {
		t.Errorf("expected lowercased email, got %s", customer.Email)
	}
	if customer.PasswordHash == "segredo123" || customer.PasswordHash == "" {
		t.Error("password stored without hashing")
	}
	if customer.Favorites == nil || len(customer.Favorites) != 0 {
		t.Errorf("expected empty favorites list, got %v", customer.Favorites)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	_, svc := newCustomerFixture()

	input := RegisterInput{Name: "Maria", Email: "maria@example.com", Password: "segredo123"}
	if _, err := svc.Register(input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Register(input); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginReturnsSignedToken(t *testing.T) {
	_, svc := newCustomerFixture()

	if _, err := svc.Register(RegisterInput{Name: "Maria", Email: "maria@example.com", Password: "segredo123"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	customer, tokenStr, err := svc.Login("maria@example.com", "segredo123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["customer_id"] != customer.ID {
		t.Errorf("expected customer_id %s, got %v", customer.ID, claims["customer_id"])
	}
	if claims["is_admin"] != false {
		t.Errorf("expected is_admin false, got %v", claims["is_admin"])
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	_, svc := newCustomerFixture()

	if _, err := svc.Register(RegisterInput{Name: "Maria", Email: "maria@example.com", Password: "segredo123"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := svc.Login("maria@example.com", "errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login("ninguem@example.com", "segredo123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestToggleFavoritePersistsThroughRepo(t *testing.T) {
	repo, svc := newCustomerFixture()

	created, err := svc.Register(RegisterInput{Name: "Maria", Email: "maria@example.com", Password: "segredo123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	customer, err := svc.ToggleFavorite(created.ID, "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(customer.Favorites) != 1 || customer.Favorites[0] != "7" {
		t.Errorf("expected favorites [7], got %v", customer.Favorites)
	}

	customer, err = svc.ToggleFavorite(created.ID, "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(customer.Favorites) != 0 {
		t.Errorf("expected empty favorites, got %v", customer.Favorites)
	}

	stored, _ := repo.GetByID(created.ID)
	if len(stored.Favorites) != 0 {
		t.Errorf("repo state out of sync: %v", stored.Favorites)
	}
}

func TestUpdateProfileKeepsUntouchedFields(t *testing.T) {
	_, svc := newCustomerFixture()

	created, err := svc.Register(RegisterInput{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "segredo123",
		Phone:    "45999112233",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateProfile(created.ID, ProfileUpdateInput{Name: "Maria Silva"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Maria Silva" {
		t.Errorf("expected updated name, got %s", updated.Name)
	}
	if updated.Phone != "45999112233" {
		t.Errorf("phone lost on partial update: %s", updated.Phone)
	}
	if updated.Email != "maria@example.com" {
		t.Errorf("email changed on profile update: %s", updated.Email)
	}
}

func TestGetByIDServesFromCache(t *testing.T) {
	repo := newFakeCustomerRepo()
	cache := newFakeCustomerCache()
	cache.entries["c1"] = &models.Customer{ID: "c1", Name: "Maria"}
	svc := NewCustomerService(repo, cache, "test-secret", time.Hour, time.Hour)

	// repo has no such record; a hit must come from the cache alone
	customer, err := svc.GetByID("c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer.Name != "Maria" {
		t.Errorf("expected cached record, got %+v", customer)
	}
}

func TestGetByIDWarmsCacheOnMiss(t *testing.T) {
	repo := newFakeCustomerRepo()
	repo.customers["c1"] = &models.Customer{ID: "c1", Name: "Maria"}
	cache := newFakeCustomerCache()
	svc := NewCustomerService(repo, cache, "test-secret", time.Hour, time.Hour)

	if _, err := svc.GetByID("c1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.entries["c1"]; !ok {
		t.Error("cache not warmed after a repository read")
	}
}

func TestUpdateProfileInvalidatesCache(t *testing.T) {
	repo := newFakeCustomerRepo()
	repo.customers["c1"] = &models.Customer{ID: "c1", Name: "Maria"}
	cache := newFakeCustomerCache()
	cache.entries["c1"] = &models.Customer{ID: "c1", Name: "Maria"}
	svc := NewCustomerService(repo, cache, "test-secret", time.Hour, time.Hour)

	if _, err := svc.UpdateProfile("c1", ProfileUpdateInput{Name: "Maria Silva"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.entries["c1"]; ok {
		t.Error("stale record left in cache after a profile update")
	}

	// the next read must see the new name, not the old cached one
	customer, err := svc.GetByID("c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer.Name != "Maria Silva" {
		t.Errorf("expected refreshed record, got %s", customer.Name)
	}
}

func TestToggleFavoriteInvalidatesCache(t *testing.T) {
	repo := newFakeCustomerRepo()
	repo.customers["c1"] = &models.Customer{ID: "c1", Name: "Maria"}
	cache := newFakeCustomerCache()
	cache.entries["c1"] = &models.Customer{ID: "c1", Name: "Maria"}
	svc := NewCustomerService(repo, cache, "test-secret", time.Hour, time.Hour)

	if _, err := svc.ToggleFavorite("c1", "7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	customer, err := svc.GetByID("c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !customer.IsFavorite("7") {
		t.Errorf("read after toggle served a stale favorites list: %v", customer.Favorites)
	}
}

func TestUpdateProfileRejectsBadPhotoURL(t *testing.T) {
	_, svc := newCustomerFixture()

	created, err := svc.Register(RegisterInput{Name: "Maria", Email: "maria@example.com", Password: "segredo123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.UpdateProfile(created.ID, ProfileUpdateInput{PhotoURL: "javascript:alert(1)"}); !errors.Is(err, ErrInvalidPhotoURL) {
		t.Errorf("expected ErrInvalidPhotoURL, got %v", err)
	}
	if _, err := svc.UpdateProfile(created.ID, ProfileUpdateInput{PhotoURL: "data:image/png;base64,iVBOR"}); err != nil {
		t.Errorf("data URL must be accepted: %v", err)
	}
}
