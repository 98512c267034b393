package services

import (
	"cardapio/internal/repository"
	"cardapio/pkg/whatsapp"
)

// WhatsAppService turns a finished order summary into the outbound channel:
// the wa.me deep link the customer opens, and an optional gateway
// notification to the store's own number.
type WhatsAppService interface {
	OrderLink(message string) (string, error)
	NotifyStore(message string) error
}

type whatsappService struct {
	client        *whatsapp.Client
	settingsRepo  repository.SettingsRepository
	defaultNumber string
}

func NewWhatsAppService(client *whatsapp.Client, settingsRepo repository.SettingsRepository, defaultNumber string) WhatsAppService {
	return &whatsappService{client: client, settingsRepo: settingsRepo, defaultNumber: defaultNumber}
}

func (s *whatsappService) storeNumber() string {
	if settings, err := s.settingsRepo.Get(); err == nil && settings.WhatsAppNumber != "" {
		return settings.WhatsAppNumber
	}
	return s.defaultNumber
}

func (s *whatsappService) OrderLink(message string) (string, error) {
	return whatsapp.DeepLink(s.storeNumber(), message), nil
}

// NotifyStore is best-effort: without a configured gateway it is a no-op.
func (s *whatsappService) NotifyStore(message string) error {
	if s.client == nil || s.client.BaseURL == "" {
		return nil
	}
	return s.client.SendTextMessage(s.storeNumber(), message)
}
