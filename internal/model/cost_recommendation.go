package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recommendation types produced by the analysis worker.
const (
	RecommendationLowMargin  = "low_margin"
	RecommendationCostSpike  = "ingredient_cost_spike"
	RecommendationStalePrice = "stale_selling_price"
)

// CostRecommendation is an advisory analytical artifact shown to the user.
// It is never consumed by any other component.
type CostRecommendation struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	RecipeID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	RecommendationType string          `gorm:"type:varchar(40);not null"`
	Description        string          `gorm:"not null"`
	PotentialSavings   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Priority           string          `gorm:"type:varchar(10);not null;default:'medium'"` // low | medium | high
	IsImplemented      bool            `gorm:"not null;default:false"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}
