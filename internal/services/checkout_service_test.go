package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"cardapio/internal/models"
	"cardapio/internal/rabbitmq"
)

type fakeCartStore struct {
	carts   map[string]*models.Cart
	deleted []string
	saveErr error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[string]*models.Cart)}
}

func (f *fakeCartStore) GetCart(sessionID string) (*models.Cart, error) {
	if cart, ok := f.carts[sessionID]; ok {
		return cart, nil
	}
	return &models.Cart{}, nil
}

func (f *fakeCartStore) SaveCart(sessionID string, cart *models.Cart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.carts[sessionID] = cart
	return nil
}

func (f *fakeCartStore) DeleteCart(sessionID string) error {
	f.deleted = append(f.deleted, sessionID)
	delete(f.carts, sessionID)
	return nil
}

type fakeOrderRepo struct {
	orders    []*models.Order
	createErr error
}

func (f *fakeOrderRepo) Create(order *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*models.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeOrderRepo) GetByCustomerID(customerID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetByStatus(status models.OrderStatus) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetActiveByComanda(comandaNumber string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.ComandaNumber == comandaNumber && !o.Status.Terminal() {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetByDateRange(start, end time.Time) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if !o.CreatedAt.Before(start) && !o.CreatedAt.After(end) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(order *models.Order) error {
	for i, o := range f.orders {
		if o.ID == order.ID {
			f.orders[i] = order
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeOrderRepo) GetAll() ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

type fakeSettingsRepo struct {
	settings models.Settings
}

func (f *fakeSettingsRepo) Get() (*models.Settings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeSettingsRepo) Save(settings *models.Settings) error {
	f.settings = *settings
	return nil
}

type fakeWhatsApp struct {
	notified []string
}

func (f *fakeWhatsApp) OrderLink(message string) (string, error) {
	return "https://wa.me/5545998498928?text=" + message, nil
}

func (f *fakeWhatsApp) NotifyStore(message string) error {
	f.notified = append(f.notified, message)
	return nil
}

type fakePublisher struct {
	events []rabbitmq.OrderEvent
}

func (f *fakePublisher) PublishOrderEvent(event rabbitmq.OrderEvent) error {
	f.events = append(f.events, event)
	return nil
}

func seedCart(store *fakeCartStore, session string) {
	cart := &models.Cart{}
	cart.AddLine(models.Product{ID: "1", Name: "X-Burguer", Price: 20.0, PreparationTime: 15}, nil, "")
	cart.SetQuantity("1", 2, "", nil)
	store.carts[session] = cart
}

func deliveryInput() CheckoutInput {
	return CheckoutInput{
		CustomerName:  "Maria",
		CustomerPhone: "45999112233",
		DeliveryType:  models.FulfillmentDelivery,
		PaymentMethod: models.PaymentPix,
		Address: &models.Address{
			Street:       "Rua das Flores",
			Number:       "120",
			Neighborhood: "Centro",
		},
	}
}

func newCheckoutFixture() (*fakeCartStore, *fakeOrderRepo, *fakePublisher, CheckoutService) {
	store := newFakeCartStore()
	orderRepo := &fakeOrderRepo{}
	settingsRepo := &fakeSettingsRepo{}
	publisher := &fakePublisher{}
	svc := NewCheckoutService(store, orderRepo, settingsRepo, &fakeWhatsApp{}, publisher)
	return store, orderRepo, publisher, svc
}

func TestCheckoutEmptyCart(t *testing.T) {
	_, _, _, svc := newCheckoutFixture()

	_, err := svc.Checkout("s1", deliveryInput())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutValidationBlocksAndPreservesCart(t *testing.T) {
	store, orderRepo, _, svc := newCheckoutFixture()
	seedCart(store, "s1")

	input := deliveryInput()
	input.Address.Street = ""

	_, err := svc.Checkout("s1", input)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "address.street" {
		t.Errorf("expected field address.street, got %s", vErr.Field)
	}
	if len(orderRepo.orders) != 0 {
		t.Error("order was created despite validation failure")
	}
	if cart, _ := store.GetCart("s1"); cart.IsEmpty() {
		t.Error("cart was cleared on a failed submission")
	}
}

func TestCheckoutValidationMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CheckoutInput)
		field   string
		message string
	}{
		{
			name:    "missing name",
			mutate:  func(in *CheckoutInput) { in.CustomerName = "  " },
			field:   "customer_name",
			message: "Por favor, informe seu nome para continuar",
		},
		{
			name:    "invalid delivery type",
			mutate:  func(in *CheckoutInput) { in.DeliveryType = "drone" },
			field:   "delivery_type",
			message: "Tipo de atendimento inválido",
		},
		{
			name:    "invalid payment",
			mutate:  func(in *CheckoutInput) { in.PaymentMethod = "cheque" },
			field:   "payment_method",
			message: "Forma de pagamento inválida",
		},
		{
			name:    "missing address number",
			mutate:  func(in *CheckoutInput) { in.Address.Number = "" },
			field:   "address.number",
			message: "Por favor, informe o número do endereço",
		},
		{
			name:    "missing neighborhood",
			mutate:  func(in *CheckoutInput) { in.Address.Neighborhood = "" },
			field:   "address.neighborhood",
			message: "Por favor, informe o bairro para entrega",
		},
		{
			name: "missing comanda for dine-in",
			mutate: func(in *CheckoutInput) {
				in.DeliveryType = models.FulfillmentLocal
				in.ComandaNumber = ""
			},
			field:   "comanda_number",
			message: "Por favor, informe o número da comanda",
		},
		{
			name: "cash change below total",
			mutate: func(in *CheckoutInput) {
				in.PaymentMethod = models.PaymentCash
				change := 10.0
				in.ChangeFor = &change
			},
			field:   "change_for",
			message: "Por favor, informe um valor válido para o troco",
		},
		{
			name: "cash without change amount",
			mutate: func(in *CheckoutInput) {
				in.PaymentMethod = models.PaymentCash
				in.ChangeFor = nil
			},
			field:   "change_for",
			message: "Por favor, informe um valor válido para o troco",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := deliveryInput()
			tt.mutate(&input)

			err := ValidateCheckout(input, 40.0)

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, vErr.Field)
			}
			if vErr.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, vErr.Message)
			}
		})
	}
}

func TestCheckoutCashChangeRequiredForPickupToo(t *testing.T) {
	input := deliveryInput()
	input.DeliveryType = models.FulfillmentPickup
	input.Address = nil
	input.PaymentMethod = models.PaymentCash
	change := 30.0
	input.ChangeFor = &change

	err := ValidateCheckout(input, 40.0)

	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "change_for" {
		t.Fatalf("expected change_for validation for pickup, got %v", err)
	}
}

func TestCheckoutSuccessStoresOrderAndClearsCart(t *testing.T) {
	store, orderRepo, publisher, svc := newCheckoutFixture()
	seedCart(store, "s1")

	result, err := svc.Checkout("s1", deliveryInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(orderRepo.orders) != 1 {
		t.Fatalf("expected 1 stored order, got %d", len(orderRepo.orders))
	}
	order := orderRepo.orders[0]
	if order.Status != models.OrderPending {
		t.Errorf("expected pending status, got %s", order.Status)
	}
	if order.Total != 40.0 {
		t.Errorf("expected total 40.00, got %.2f", order.Total)
	}
	if order.EstimatedTime != 30 {
		t.Errorf("expected estimated time 30, got %d", order.EstimatedTime)
	}
	if order.ID == "" {
		t.Error("expected a generated order id")
	}

	if cart, _ := store.GetCart("s1"); !cart.IsEmpty() {
		t.Error("cart should be cleared after a successful checkout")
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != "created" {
		t.Errorf("expected one created event, got %+v", publisher.events)
	}
	if result.WhatsAppURL == "" {
		t.Error("expected a WhatsApp URL")
	}
}

func TestCheckoutRepoFailurePreservesCart(t *testing.T) {
	store, orderRepo, _, svc := newCheckoutFixture()
	seedCart(store, "s1")
	orderRepo.createErr = errors.New("db down")

	_, err := svc.Checkout("s1", deliveryInput())
	if err == nil {
		t.Fatal("expected error")
	}

	if cart, _ := store.GetCart("s1"); cart.IsEmpty() {
		t.Error("cart must survive a failed order creation")
	}
	if len(store.deleted) != 0 {
		t.Error("cart was deleted despite the failure")
	}
}

func TestCheckoutChangeOnlyStoredForCash(t *testing.T) {
	store, orderRepo, _, svc := newCheckoutFixture()
	seedCart(store, "s1")

	input := deliveryInput()
	change := 100.0
	input.ChangeFor = &change // pix payment; must be dropped

	if _, err := svc.Checkout("s1", input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderRepo.orders[0].ChangeFor != nil {
		t.Error("change amount stored for a non-cash payment")
	}
}

func TestCheckoutAddressOnlyStoredForDelivery(t *testing.T) {
	store, orderRepo, _, svc := newCheckoutFixture()
	seedCart(store, "s1")

	input := deliveryInput()
	input.DeliveryType = models.FulfillmentPickup

	if _, err := svc.Checkout("s1", input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderRepo.orders[0].Address != nil {
		t.Error("address stored for a pickup order")
	}
}

func TestSummaryFormatDelivery(t *testing.T) {
	store, _, _, svc := newCheckoutFixture()

	cart := &models.Cart{}
	cart.AddLine(
		models.Product{ID: "1", Name: "X-Burguer", Price: 20.0, PreparationTime: 15},
		[]models.SelectedExtra{{ID: "a1", Name: "Bacon", Price: 5.0, Quantity: 1}},
		"sem cebola",
	)
	cart.SetQuantity("1", 2, "sem cebola", []models.SelectedExtra{{ID: "a1", Name: "Bacon", Price: 5.0, Quantity: 1}})
	store.carts["s1"] = cart

	input := deliveryInput()
	input.Notes = "Entregar na portaria"

	result, err := svc.Checkout("s1", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantParts := []string{
		"Olá, Gostaria de fazer um pedido",
		"*Cliente:* Maria",
		"*Itens do Pedido:*",
		"• 2x X-Burguer → Subtotal: R$ 40.00",
		"→ Adicionais: 1x Bacon",
		"→ Obs: sem cebola",
		"*Resumo do Pedido:*\nTotal: R$ 50.00",
		"*Entrega:* Delivery\nEndereço: Rua das Flores, 120",
		"Bairro: Centro",
		"*Pagamento:* PIX",
		"*Observações Gerais:*\nEntregar na portaria",
	}
	for _, part := range wantParts {
		if !strings.Contains(result.Summary, part) {
			t.Errorf("summary missing %q\n%s", part, result.Summary)
		}
	}
}

func TestSummaryFormatLocalWithCash(t *testing.T) {
	store, _, _, svc := newCheckoutFixture()
	seedCart(store, "s1")

	input := CheckoutInput{
		CustomerName:  "João",
		DeliveryType:  models.FulfillmentLocal,
		PaymentMethod: models.PaymentCash,
		ComandaNumber: "12",
		TableNumber:   "5",
	}
	change := 50.0
	input.ChangeFor = &change

	result, err := svc.Checkout("s1", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantParts := []string{
		"*Entrega:* Consumo no Local\nComanda 12 - Mesa 5",
		"*Pagamento:* Dinheiro",
		"Troco para: R$ 50.00",
	}
	for _, part := range wantParts {
		if !strings.Contains(result.Summary, part) {
			t.Errorf("summary missing %q\n%s", part, result.Summary)
		}
	}
}

func TestSummaryFormatPickupIncludesStoreAddress(t *testing.T) {
	store := newFakeCartStore()
	seedCart(store, "s1")
	settingsRepo := &fakeSettingsRepo{settings: models.Settings{
		PickupAddress: models.PickupAddress{Street: "Rua Santos Dumont", Number: "2005"},
	}}
	svc := NewCheckoutService(store, &fakeOrderRepo{}, settingsRepo, &fakeWhatsApp{}, nil)

	input := deliveryInput()
	input.DeliveryType = models.FulfillmentPickup
	input.Address = nil

	result, err := svc.Checkout("s1", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(result.Summary, "*Entrega:* Retirada no Local\nRetirada em: Rua Santos Dumont, 2005") {
		t.Errorf("summary missing pickup address\n%s", result.Summary)
	}
}
