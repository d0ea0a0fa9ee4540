package delivery

import (
	"strings"
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RiderStatus represents the availability of a rider
type RiderStatus string

const (
	RiderStatusAvailable RiderStatus = "available"
	RiderStatusBusy      RiderStatus = "busy"
	RiderStatusOffline   RiderStatus = "offline"
)

// VehicleType represents the rider's vehicle
type VehicleType string

const (
	VehicleTypeBicycle    VehicleType = "bicycle"
	VehicleTypeMotorcycle VehicleType = "motorcycle"
	VehicleTypeCar        VehicleType = "car"
	VehicleTypeVan        VehicleType = "van"
)

// Rider represents a delivery rider belonging to a company
type Rider struct {
	shared.CompanyEntity
	ExternalID     string      `gorm:"type:varchar(100);index"`
	ExternalSource string      `gorm:"type:varchar(50)"`
	Name           string      `gorm:"type:varchar(200);not null"`
	Phone          string      `gorm:"type:varchar(50);index"`
	Email          string      `gorm:"type:varchar(200)"`
	VehicleType    VehicleType `gorm:"type:varchar(20)"`
	Status         RiderStatus `gorm:"type:varchar(20);not null;default:'offline'"`
	Latitude       float64     `gorm:"type:decimal(10,7)"`
	Longitude      float64     `gorm:"type:decimal(10,7)"`
}

// TableName returns the table name for GORM
func (Rider) TableName() string {
	return "riders"
}

// NewRider creates a new rider for a company
func NewRider(companyID uuid.UUID, name string) (*Rider, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Rider name cannot be empty")
	}
	return &Rider{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Name:          name,
		Status:        RiderStatusOffline,
	}, nil
}

// SetExternalIdentity stamps the external identity on the rider
func (r *Rider) SetExternalIdentity(externalID, source string) {
	r.ExternalID = externalID
	r.ExternalSource = source
	r.UpdatedAt = time.Now()
}

// Merge applies candidate fields over the existing record without
// clearing fields the candidate does not carry.
func (r *Rider) Merge(name, phone, email string, vehicleType VehicleType) {
	if name != "" {
		r.Name = name
	}
	if phone != "" {
		r.Phone = phone
	}
	if email != "" {
		r.Email = strings.ToLower(email)
	}
	if vehicleType != "" {
		r.VehicleType = vehicleType
	}
	r.UpdatedAt = time.Now()
}

// UpdateLocation updates the rider's last known position
func (r *Rider) UpdateLocation(lat, lng float64) {
	r.Latitude = lat
	r.Longitude = lng
	r.UpdatedAt = time.Now()
}
