package services

import (
	"errors"
	"log"
	"net/url"
	"strings"
	"time"

	"cardapio/internal/models"
	"cardapio/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidPhotoURL    = errors.New("invalid photo URL")
)

// CustomerCache keeps the current customer record warm so the portal reads
// it without hitting the database. Reads fall through to the repository on a
// miss; writes invalidate so the next read re-warms. Best-effort: cache
// failures are logged, never surfaced.
type CustomerCache interface {
	GetCustomer(customerID string) (*models.Customer, error)
	SetCustomer(customer *models.Customer, ttl time.Duration) error
	DeleteCustomer(customerID string) error
}

type RegisterInput struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	CPF      string          `json:"cpf"`
	Phone    string          `json:"phone"`
	Address  *models.Address `json:"address,omitempty"`
}

type ProfileUpdateInput struct {
	Name     string          `json:"name"`
	Phone    string          `json:"phone"`
	PhotoURL string          `json:"photo_url"`
	Address  *models.Address `json:"address,omitempty"`
}

type CustomerService interface {
	Register(input RegisterInput) (*models.Customer, error)
	Login(email, password string) (*models.Customer, string, error)
	GetByID(id string) (*models.Customer, error)
	UpdateProfile(id string, input ProfileUpdateInput) (*models.Customer, error)
	ToggleFavorite(customerID, productID string) (*models.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	cache        CustomerCache
	jwtSecret    string
	tokenTTL     time.Duration
	cacheTTL     time.Duration
}

func NewCustomerService(customerRepo repository.CustomerRepository, cache CustomerCache, jwtSecret string, tokenTTL, cacheTTL time.Duration) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		cache:        cache,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		cacheTTL:     cacheTTL,
	}
}

func (s *customerService) Register(input RegisterInput) (*models.Customer, error) {
	if existing, err := s.customerRepo.GetByEmail(input.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		CPF:          input.CPF,
		Phone:        input.Phone,
		Address:      input.Address,
		PasswordHash: string(hash),
		Favorites:    []string{},
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Login(email, password string) (*models.Customer, string, error) {
	customer, err := s.customerRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(customer)
	if err != nil {
		return nil, "", err
	}

	s.cacheCustomer(customer)
	return customer, token, nil
}

func (s *customerService) generateToken(customer *models.Customer) (string, error) {
	claims := jwt.MapClaims{
		"customer_id": customer.ID,
		"is_admin":    customer.IsAdmin,
		"exp":         time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *customerService) GetByID(id string) (*models.Customer, error) {
	if s.cache != nil {
		if customer, err := s.cache.GetCustomer(id); err == nil {
			return customer, nil
		}
	}

	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	s.cacheCustomer(customer)
	return customer, nil
}

func (s *customerService) UpdateProfile(id string, input ProfileUpdateInput) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	if input.PhotoURL != "" {
		if !validPhotoURL(input.PhotoURL) {
			return nil, ErrInvalidPhotoURL
		}
		customer.PhotoURL = input.PhotoURL
	}
	if input.Name != "" {
		customer.Name = input.Name
	}
	if input.Phone != "" {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}

	s.invalidateCustomer(customer.ID)
	return customer, nil
}

// ToggleFavorite flips membership of the product id in the customer's
// favorites with set semantics. The whole record is read, modified and
// written back, so fields the toggle does not touch survive unchanged.
func (s *customerService) ToggleFavorite(customerID, productID string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	customer.ToggleFavorite(productID)

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}

	s.invalidateCustomer(customer.ID)
	return customer, nil
}

func (s *customerService) cacheCustomer(customer *models.Customer) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetCustomer(customer, s.cacheTTL); err != nil {
		log.Printf("Warning: failed to cache customer %s: %v", customer.ID, err)
	}
}

func (s *customerService) invalidateCustomer(customerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteCustomer(customerID); err != nil {
		log.Printf("Warning: failed to invalidate cached customer %s: %v", customerID, err)
	}
}

func validPhotoURL(raw string) bool {
	if strings.HasPrefix(raw, "data:image/") {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}
