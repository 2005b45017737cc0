// ABOUTME: Scheduler backend contract for the maintenance agent's five operations
// ABOUTME: MockScheduler returns deterministic data; a production port swaps the body
package agents

import (
	"fmt"
	"time"
)

// Scheduler is the backend behind the maintenance agent's tools. The five
// signatures are the stable contract: a real scheduler API client must
// implement these, not alter them.
type Scheduler interface {
	CheckAvailableSlots(serviceType, preferredDate string) (string, error)
	BookAppointment(customerName, serviceType, date, timeSlot, vehicleInfo string) (string, error)
	GetServiceHistory(customerID string) (string, error)
	CancelAppointment(confirmationNumber string) (string, error)
	GetServicePricing(serviceType string) (string, error)
}

// MockScheduler is the built-in stub backend with deterministic data
type MockScheduler struct {
	// Now is overridable so confirmation numbers are stable in tests
	Now func() time.Time
}

// NewMockScheduler creates the stub backend
func NewMockScheduler() *MockScheduler {
	return &MockScheduler{Now: time.Now}
}

// CheckAvailableSlots lists open appointment slots for a service type
func (m *MockScheduler) CheckAvailableSlots(serviceType, preferredDate string) (string, error) {
	return fmt.Sprintf(`Available slots for %s on %s:
- 09:00 AM
- 11:30 AM
- 02:00 PM
- 04:30 PM

Would you like me to book one of these slots?`, serviceType, preferredDate), nil
}

// BookAppointment books a service appointment and returns the confirmation
func (m *MockScheduler) BookAppointment(customerName, serviceType, date, timeSlot, vehicleInfo string) (string, error) {
	confirmation := fmt.Sprintf("APT-%s", m.Now().Format("20060102150405"))

	vehicleLine := ""
	if vehicleInfo != "" {
		vehicleLine = fmt.Sprintf("Vehicle: %s\n", vehicleInfo)
	}

	return fmt.Sprintf(`✅ Appointment Confirmed!

Confirmation Number: %s
Customer: %s
Service: %s
Date: %s
Time: %s
%s
Please arrive 10 minutes before your scheduled time.
You will receive a reminder 24 hours before your appointment.`,
		confirmation, customerName, serviceType, date, timeSlot, vehicleLine), nil
}

// GetServiceHistory returns a customer's past service records
func (m *MockScheduler) GetServiceHistory(customerID string) (string, error) {
	return `Service History:

1. 2024-01-15 - Oil Change - $49.99 - Completed
2. 2023-10-20 - Tire Rotation - $29.99 - Completed
3. 2023-07-05 - Annual Inspection - $89.99 - Completed
4. 2023-03-12 - Brake Pad Replacement - $249.99 - Completed

Next recommended service: Oil Change (due in ~1,500 miles)`, nil
}

// CancelAppointment cancels an existing appointment
func (m *MockScheduler) CancelAppointment(confirmationNumber string) (string, error) {
	return fmt.Sprintf(`Appointment %s has been cancelled.

If you'd like to reschedule, please let me know your preferred date and time.`, confirmationNumber), nil
}

var servicePricing = map[string]string{
	"oil_change":           "$49.99 - $79.99 (depending on oil type)",
	"tire_rotation":        "$29.99",
	"inspection":           "$89.99",
	"brake_service":        "$149.99 - $399.99",
	"transmission_service": "$149.99 - $249.99",
	"air_filter":           "$24.99 - $49.99",
	"battery_replacement":  "$149.99 - $299.99",
}

// GetServicePricing returns the price range for a service type
func (m *MockScheduler) GetServicePricing(serviceType string) (string, error) {
	key := normalizeServiceKey(serviceType)
	price, ok := servicePricing[key]
	if !ok {
		price = "Please contact us for a quote on this service."
	}
	return fmt.Sprintf("Pricing for %s: %s\n\nPrices may vary based on vehicle make and model.", serviceType, price), nil
}

func normalizeServiceKey(serviceType string) string {
	out := make([]rune, 0, len(serviceType))
	for _, r := range serviceType {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
