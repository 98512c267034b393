package services

import (
	"errors"
	"testing"

	"cardapio/internal/models"
)

func TestUpdateStatusAdvancesAndPublishes(t *testing.T) {
	repo := &fakeOrderRepo{orders: []*models.Order{
		{ID: "o1", Status: models.OrderPending, Total: 40.0},
	}}
	publisher := &fakePublisher{}
	svc := NewOrderService(repo, publisher)

	order, err := svc.UpdateStatus("o1", models.OrderPreparing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != models.OrderPreparing {
		t.Errorf("expected preparing, got %s", order.Status)
	}

	stored, _ := repo.GetByID("o1")
	if stored.Status != models.OrderPreparing {
		t.Errorf("status not persisted: %s", stored.Status)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(publisher.events))
	}
	event := publisher.events[0]
	if event.Type != "status_updated" || event.Status != "preparing" || event.OrderID != "o1" {
		t.Errorf("unexpected event: %+v", event)
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	repo := &fakeOrderRepo{orders: []*models.Order{
		{ID: "o1", Status: models.OrderCompleted},
	}}
	publisher := &fakePublisher{}
	svc := NewOrderService(repo, publisher)

	if _, err := svc.UpdateStatus("o1", models.OrderPreparing); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	stored, _ := repo.GetByID("o1")
	if stored.Status != models.OrderCompleted {
		t.Errorf("status changed on a rejected transition: %s", stored.Status)
	}
	if len(publisher.events) != 0 {
		t.Errorf("event published for a rejected transition: %+v", publisher.events)
	}
}

func TestUpdateStatusWithoutPublisher(t *testing.T) {
	repo := &fakeOrderRepo{orders: []*models.Order{
		{ID: "o1", Status: models.OrderReady},
	}}
	svc := NewOrderService(repo, nil)

	order, err := svc.UpdateStatus("o1", models.OrderCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != models.OrderCompleted {
		t.Errorf("expected completed, got %s", order.Status)
	}
}
