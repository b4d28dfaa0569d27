package domain

import (
	"strings"
	"time"

	"github.com/DRSN-tech/inventory-backend/pkg/e"
)

// Supplier описывает поставщика
type Supplier struct {
	ID            int64
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewSupplier(name, contactPerson, phone, email string) *Supplier {
	return &Supplier{
		Name:          name,
		ContactPerson: contactPerson,
		Phone:         phone,
		Email:         email,
	}
}

func (s *Supplier) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return e.ErrNameRequired
	}

	if strings.TrimSpace(s.Email) == "" {
		return e.ErrEmailRequired
	}

	return nil
}
