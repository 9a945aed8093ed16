package services

import (
	"time"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// GetPickupNotifications returns the cached invoices scheduled for pickup
// today at exactly the current minute, excluding completed ones. A minute in
// which nobody calls this is never reported.
func (s *storeService) GetPickupNotifications() []domain.Invoice {
	now := s.now()
	today := now.Format(time.DateOnly)
	minute := now.Format("15:04")

	s.mu.RLock()
	defer s.mu.RUnlock()

	due := []domain.Invoice{}
	for _, inv := range s.invoices {
		if inv.PickupDate == "" || inv.PickupTime == "" || inv.Status == domain.StatusCompleted {
			continue
		}
		pickup, ok := domain.PickupMinute(inv.PickupTime)
		if ok && inv.PickupDate == today && pickup == minute {
			due = append(due, inv)
		}
	}
	return due
}

func (s *storeService) publishPickups() {
	due := s.GetPickupNotifications()
	if len(due) == 0 {
		return
	}
	s.publisher.Publish(domain.StoreEvent{Type: domain.EventPickupDue, Invoices: due})
}
