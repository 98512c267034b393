package services

import (
	"sort"
	"time"

	"cardapio/internal/models"
	"cardapio/internal/repository"
)

// DashboardSummary aggregates the figures the admin dashboard shows.
// Cancelled orders count for volume but not for revenue.
type DashboardSummary struct {
	OrdersToday     int                 `json:"orders_today"`
	RevenueToday    float64             `json:"revenue_today"`
	OrdersMonth     int                 `json:"orders_month"`
	RevenueMonth    float64             `json:"revenue_month"`
	AverageTicket   float64             `json:"average_ticket"`
	StatusBreakdown map[string]int      `json:"status_breakdown"`
	NewCustomers    int                 `json:"new_customers"`
	TotalCustomers  int64               `json:"total_customers"`
	TopProducts     []ProductSalesEntry `json:"top_products"`
}

type ProductSalesEntry struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type ReportService interface {
	DashboardSummary(now time.Time) (*DashboardSummary, error)
}

type reportService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
}

func NewReportService(orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository) ReportService {
	return &reportService{orderRepo: orderRepo, customerRepo: customerRepo}
}

func (s *reportService) DashboardSummary(now time.Time) (*DashboardSummary, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	monthOrders, err := s.orderRepo.GetByDateRange(startOfMonth, now)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		StatusBreakdown: make(map[string]int),
		TopProducts:     []ProductSalesEntry{},
	}

	sales := make(map[string]*ProductSalesEntry)
	paidMonth := 0

	for i := range monthOrders {
		order := &monthOrders[i]
		summary.StatusBreakdown[string(order.Status)]++

		summary.OrdersMonth++
		if order.Status != models.OrderCancelled {
			summary.RevenueMonth += order.Total
			paidMonth++
		}

		if !order.CreatedAt.Before(startOfDay) {
			summary.OrdersToday++
			if order.Status != models.OrderCancelled {
				summary.RevenueToday += order.Total
			}
		}

		if order.Status == models.OrderCancelled {
			continue
		}
		for _, item := range order.Items {
			entry, ok := sales[item.Product.ID]
			if !ok {
				entry = &ProductSalesEntry{ProductID: item.Product.ID, Name: item.Product.Name}
				sales[item.Product.ID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.Subtotal()
		}
	}

	if paidMonth > 0 {
		summary.AverageTicket = summary.RevenueMonth / float64(paidMonth)
	}

	for _, entry := range sales {
		summary.TopProducts = append(summary.TopProducts, *entry)
	}
	sort.Slice(summary.TopProducts, func(i, j int) bool {
		return summary.TopProducts[i].Quantity > summary.TopProducts[j].Quantity
	})
	if len(summary.TopProducts) > 5 {
		summary.TopProducts = summary.TopProducts[:5]
	}

	newCustomers, err := s.customerRepo.GetRegisteredBetween(startOfMonth, now)
	if err != nil {
		return nil, err
	}
	summary.NewCustomers = len(newCustomers)

	total, err := s.customerRepo.Count()
	if err != nil {
		return nil, err
	}
	summary.TotalCustomers = total

	return summary, nil
}
