// Package vendorrepo persists vendors, the pickup points every order starts from.
package vendorrepo

import (
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/vendor"

	"github.com/google/uuid"
)

// VendorDTO is the row layout of the vendors table.
type VendorDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
	Lat  float64   `gorm:"type:double precision;not null"`
	Lng  float64   `gorm:"type:double precision;not null"`
}

// TableName overrides GORM's default "vendor_dtos".
func (VendorDTO) TableName() string {
	return "vendors"
}

func fromDomain(v *vendor.Vendor) VendorDTO {
	return VendorDTO{
		ID:   v.ID().Bytes(),
		Name: v.Name(),
		Lat:  v.Location().Lat(),
		Lng:  v.Location().Lng(),
	}
}

func toDomain(dto VendorDTO) (*vendor.Vendor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	return vendor.NewVendor(id, dto.Name, loc)
}
