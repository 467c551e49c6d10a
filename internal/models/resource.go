package models

import (
	"time"
)

// Default confidence assigned to a resource that has never been scored
// by verification history.
const DefaultVerificationConfidence = 50

// Resource represents a physical-world assistance resource: shelters,
// food pantries, dump stations, and so on. All nullable columns use
// pointers to distinguish between zero values and NULL.
//
// The verification summary fields (LastVerifiedAt, VerificationConfidence)
// are a convenience snapshot maintained by verification writes; trust and
// staleness classification is always recomputed from event history on read.
type Resource struct {
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
	Name                   string     `json:"name"`
	Category               Category   `json:"category"`
	County                 string     `json:"county"`
	AccessTier             AccessTier `json:"accessTier"`
	Description            *string    `json:"description,omitempty"`
	Address                *string    `json:"address,omitempty"`
	Town                   *string    `json:"town,omitempty"`
	Phone                  *string    `json:"phone,omitempty"`
	Email                  *string    `json:"email,omitempty"`
	Website                *string    `json:"website,omitempty"`
	HoursOfOperation       *string    `json:"hoursOfOperation,omitempty"`
	Restrictions           *string    `json:"restrictions,omitempty"`
	CostInfo               *string    `json:"costInfo,omitempty"`
	VerificationSource     *string    `json:"verificationSource,omitempty"`
	LanguagesSupported     []string   `json:"languagesSupported,omitempty"`
	Location               *Point     `json:"location,omitempty"`
	LastVerifiedAt         *time.Time `json:"lastVerifiedAt,omitempty"`
	Capacity               *int       `json:"capacity,omitempty"`
	DumpStationFee         *float64   `json:"dumpStationFee,omitempty"`
	PropanePricePerGallon  *float64   `json:"propanePricePerGallon,omitempty"`
	CampingNightlyRate     *float64   `json:"campingNightlyRate,omitempty"`
	CreatedBy              *int64     `json:"createdBy,omitempty"`
	ID                     int64      `json:"id"`
	VerificationConfidence int        `json:"verificationConfidence"`
	SeasonalSummer         bool       `json:"seasonalSummer"`
	SeasonalWinter         bool       `json:"seasonalWinter"`
	IsActive               bool       `json:"isActive"`
}
