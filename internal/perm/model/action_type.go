package model

// Risk levels
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// ActionType is immutable reference data describing a permission code.
// Rows are created and retired by administration tooling; this service only
// reads them.
type ActionType struct {
	ID               string `bson:"_id,omitempty" json:"id"`
	Code             string `bson:"code" json:"code"`
	Name             string `bson:"name" json:"name"`
	Category         string `bson:"category" json:"category"`
	Subcategory      string `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	RiskLevel        string `bson:"risk_level" json:"risk_level"`
	RequiresApproval bool   `bson:"requires_approval" json:"requires_approval"`
	IsSystem         bool   `bson:"is_system" json:"is_system"`
	IsActive         bool   `bson:"is_active" json:"is_active"`
}
