package delivery

import (
	"strings"
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer represents a delivery recipient belonging to a company.
// Customers created by the sync engine carry the external identity
// (ExternalID, ExternalSource) used for deduplication across syncs.
type Customer struct {
	shared.CompanyEntity
	// ExternalID is the customer's ID on the source platform. Empty for
	// customers created directly on the platform or assembled from webhook
	// billing blocks that carry no stable ID.
	ExternalID string `gorm:"type:varchar(100);index"`
	// ExternalSource names the platform the customer was imported from
	ExternalSource string `gorm:"type:varchar(50)"`
	Name           string `gorm:"type:varchar(200);not null"`
	Phone          string `gorm:"type:varchar(50);index"`
	Email          string `gorm:"type:varchar(200);index"`
	Address        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer for a company
func NewCustomer(companyID uuid.UUID, name string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	return &Customer{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Name:          name,
	}, nil
}

// SetExternalIdentity stamps the external identity on the customer
func (c *Customer) SetExternalIdentity(externalID, source string) {
	c.ExternalID = externalID
	c.ExternalSource = source
	c.UpdatedAt = time.Now()
}

// Merge applies candidate fields over the existing record. Empty candidate
// fields never clear stored values; updates are additive, not destructive.
func (c *Customer) Merge(name, phone, email, address string) {
	if name != "" {
		c.Name = name
	}
	if phone != "" {
		c.Phone = phone
	}
	if email != "" {
		c.Email = strings.ToLower(email)
	}
	if address != "" {
		c.Address = address
	}
	c.UpdatedAt = time.Now()
}
