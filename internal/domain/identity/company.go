package identity

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/fleet/backend/internal/domain/shared"
)

// CompanyStatus represents the status of a company account
type CompanyStatus string

const (
	CompanyStatusActive    CompanyStatus = "active"
	CompanyStatusSuspended CompanyStatus = "suspended"
)

// Company represents a tenant on the delivery platform.
// It owns all riders, orders, customers and integrations, and is the
// authentication principal for inbound webhooks (via APIKey).
type Company struct {
	shared.BaseEntity
	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(200);index"`
	Phone string `gorm:"type:varchar(50)"`
	// APIKey identifies the company on the webhook endpoints (x-api-key header)
	APIKey string `gorm:"type:varchar(64);not null;uniqueIndex"`
	// WebhookSecret is the shared secret used to verify platform signatures.
	// Empty means signature verification is skipped.
	WebhookSecret string `gorm:"type:varchar(128)"`
	// RequireSignature rejects webhooks whose signature does not verify.
	// Defaults to false: many platform signature implementations are broken
	// in practice, so mismatches are logged but accepted.
	RequireSignature bool          `gorm:"not null;default:false"`
	Status           CompanyStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new company with a generated API key
func NewCompany(name, email string) (*Company, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}

	key, err := generateAPIKey()
	if err != nil {
		return nil, err
	}

	return &Company{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      strings.ToLower(email),
		APIKey:     key,
		Status:     CompanyStatusActive,
	}, nil
}

// IsActive returns true if the company account is active
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}

// SetWebhookSecret sets the secret used for webhook signature verification
func (c *Company) SetWebhookSecret(secret string) {
	c.WebhookSecret = secret
	c.UpdatedAt = time.Now()
}

// EnableStrictSignatures turns on rejection of unverifiable webhook signatures
func (c *Company) EnableStrictSignatures() {
	c.RequireSignature = true
	c.UpdatedAt = time.Now()
}

// RotateAPIKey replaces the company's API key
func (c *Company) RotateAPIKey() error {
	key, err := generateAPIKey()
	if err != nil {
		return err
	}
	c.APIKey = key
	c.UpdatedAt = time.Now()
	return nil
}

// generateAPIKey produces a 64-character hex API key
func generateAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", shared.NewDomainError("KEY_GENERATION_FAILED", "Failed to generate API key")
	}
	return hex.EncodeToString(buf), nil
}
