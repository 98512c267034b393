package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cardapio/internal/models"
	"cardapio/internal/rabbitmq"
	"cardapio/internal/repository"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

// ValidationError points at the checkout field whose input blocks submission.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// EventPublisher is the handoff to the fulfillment side. Publishing is
// best-effort; a nil publisher disables it.
type EventPublisher interface {
	PublishOrderEvent(event rabbitmq.OrderEvent) error
}

type CheckoutInput struct {
	CustomerID    string                 `json:"-"`
	CustomerName  string                 `json:"customer_name"`
	CustomerPhone string                 `json:"customer_phone"`
	Address       *models.Address        `json:"address,omitempty"`
	DeliveryType  models.FulfillmentType `json:"delivery_type"`
	PaymentMethod models.PaymentMethod   `json:"payment_method"`
	ChangeFor     *float64               `json:"change_for,omitempty"`
	Notes         string                 `json:"notes"`
	TableNumber   string                 `json:"table_number"`
	ComandaNumber string                 `json:"comanda_number"`
}

type CheckoutResult struct {
	Order       *models.Order `json:"order"`
	Summary     string        `json:"summary"`
	WhatsAppURL string        `json:"whatsapp_url"`
}

type CheckoutService interface {
	Checkout(sessionID string, input CheckoutInput) (*CheckoutResult, error)
}

type checkoutService struct {
	store        CartStore
	orderRepo    repository.OrderRepository
	settingsRepo repository.SettingsRepository
	whatsapp     WhatsAppService
	publisher    EventPublisher
}

func NewCheckoutService(store CartStore, orderRepo repository.OrderRepository, settingsRepo repository.SettingsRepository, whatsapp WhatsAppService, publisher EventPublisher) CheckoutService {
	return &checkoutService{
		store:        store,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		whatsapp:     whatsapp,
		publisher:    publisher,
	}
}

// Checkout validates the customer input, freezes the session cart into an
// immutable order and hands it off. The cart is only cleared once the order
// is stored, so a failed submission can be retried without re-entering items.
func (s *checkoutService) Checkout(sessionID string, input CheckoutInput) (*CheckoutResult, error) {
	cart, err := s.store.GetCart(sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	total := cart.Total()
	if err := ValidateCheckout(input, total); err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:            uuid.NewString(),
		CustomerID:    input.CustomerID,
		Items:         cart.Items,
		Total:         total,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerPhone: input.CustomerPhone,
		DeliveryType:  input.DeliveryType,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
		TableNumber:   input.TableNumber,
		ComandaNumber: input.ComandaNumber,
		Status:        models.OrderPending,
		EstimatedTime: cart.EstimatedTime(),
		CreatedAt:     time.Now(),
	}
	if input.DeliveryType == models.FulfillmentDelivery {
		order.Address = input.Address
	}
	if input.PaymentMethod == models.PaymentCash {
		order.ChangeFor = input.ChangeFor
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The order is stored; everything past this point is best-effort.
	if err := s.store.DeleteCart(sessionID); err != nil {
		log.Printf("Warning: failed to clear cart for session %s: %v", sessionID, err)
	}

	if s.publisher != nil {
		event := rabbitmq.OrderEvent{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Type:       "created",
			Status:     string(order.Status),
			Total:      order.Total,
			Occurred:   time.Now(),
		}
		if err := s.publisher.PublishOrderEvent(event); err != nil {
			log.Printf("Warning: failed to publish order event for %s: %v", order.ID, err)
		}
	}

	summary := s.formatSummary(order)

	link, err := s.whatsapp.OrderLink(summary)
	if err != nil {
		log.Printf("Warning: failed to build WhatsApp link for order %s: %v", order.ID, err)
	}
	if err := s.whatsapp.NotifyStore(summary); err != nil {
		log.Printf("Warning: failed to notify store about order %s: %v", order.ID, err)
	}

	return &CheckoutResult{Order: order, Summary: summary, WhatsAppURL: link}, nil
}

// ValidateCheckout enforces the per-fulfillment-mode field requirements.
// Failures never touch the cart.
func ValidateCheckout(input CheckoutInput, total float64) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return &ValidationError{Field: "customer_name", Message: "Por favor, informe seu nome para continuar"}
	}
	if !input.DeliveryType.Valid() {
		return &ValidationError{Field: "delivery_type", Message: "Tipo de atendimento inválido"}
	}
	if !input.PaymentMethod.Valid() {
		return &ValidationError{Field: "payment_method", Message: "Forma de pagamento inválida"}
	}

	switch input.DeliveryType {
	case models.FulfillmentDelivery:
		if input.Address == nil || strings.TrimSpace(input.Address.Street) == "" {
			return &ValidationError{Field: "address.street", Message: "Por favor, informe a rua para entrega"}
		}
		if strings.TrimSpace(input.Address.Number) == "" {
			return &ValidationError{Field: "address.number", Message: "Por favor, informe o número do endereço"}
		}
		if strings.TrimSpace(input.Address.Neighborhood) == "" {
			return &ValidationError{Field: "address.neighborhood", Message: "Por favor, informe o bairro para entrega"}
		}
	case models.FulfillmentLocal:
		if strings.TrimSpace(input.ComandaNumber) == "" {
			return &ValidationError{Field: "comanda_number", Message: "Por favor, informe o número da comanda"}
		}
	}

	if input.PaymentMethod == models.PaymentCash {
		if input.ChangeFor == nil || *input.ChangeFor < total {
			return &ValidationError{Field: "change_for", Message: "Por favor, informe um valor válido para o troco"}
		}
	}

	return nil
}

// formatSummary renders the human-readable order message. The section order
// is a contract with the outbound WhatsApp channel: items (with extras and
// notes), total, fulfillment details, payment, general notes.
func (s *checkoutService) formatSummary(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Olá, Gostaria de fazer um pedido\n\n*Cliente:* %s\n\n*Itens do Pedido:*", order.CustomerName)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "\n• %dx %s → Subtotal: R$ %.2f",
			item.Quantity, item.Product.Name, item.Product.Price*float64(item.Quantity))
		for _, add := range item.Additionals {
			fmt.Fprintf(&b, "\n→ Adicionais: %dx %s", add.Quantity, add.Name)
		}
		if item.Notes != "" {
			fmt.Fprintf(&b, "\n→ Obs: %s", item.Notes)
		}
	}

	fmt.Fprintf(&b, "\n\n*Resumo do Pedido:*\nTotal: R$ %.2f", order.Total)

	switch order.DeliveryType {
	case models.FulfillmentDelivery:
		addr := order.Address
		fmt.Fprintf(&b, "\n\n*Entrega:* Delivery\nEndereço: %s, %s", addr.Street, addr.Number)
		if addr.Complement != "" {
			fmt.Fprintf(&b, " - %s", addr.Complement)
		}
		fmt.Fprintf(&b, "\nBairro: %s", addr.Neighborhood)
	case models.FulfillmentPickup:
		b.WriteString("\n\n*Entrega:* Retirada no Local")
		if settings, err := s.settingsRepo.Get(); err == nil && settings.PickupAddress.Street != "" {
			pickup := settings.PickupAddress
			fmt.Fprintf(&b, "\nRetirada em: %s, %s", pickup.Street, pickup.Number)
			if pickup.Complement != "" {
				fmt.Fprintf(&b, " - %s", pickup.Complement)
			}
		}
	case models.FulfillmentLocal:
		fmt.Fprintf(&b, "\n\n*Entrega:* Consumo no Local\nComanda %s", order.ComandaNumber)
		if order.TableNumber != "" {
			fmt.Fprintf(&b, " - Mesa %s", order.TableNumber)
		}
	}

	fmt.Fprintf(&b, "\n\n*Pagamento:* %s", order.PaymentMethod.Label())
	if order.PaymentMethod == models.PaymentCash && order.ChangeFor != nil {
		fmt.Fprintf(&b, "\nTroco para: R$ %.2f", *order.ChangeFor)
	}

	if order.Notes != "" {
		fmt.Fprintf(&b, "\n\n*Observações Gerais:*\n%s", order.Notes)
	}

	return b.String()
}
