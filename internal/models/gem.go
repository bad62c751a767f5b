package models

import "time"

// GemType identifies the kind of stone being sold.
type GemType string

const (
	GemTypeDiamond GemType = "DIAMOND"
	GemTypeRuby    GemType = "RUBY"
	GemTypeEmerald GemType = "EMERALD"
)

// GemTypeValues is the closed set of valid gem types.
var GemTypeValues = []GemType{GemTypeDiamond, GemTypeRuby, GemTypeEmerald}

// GemClarity is the ordinal clarity grade of a gem.
type GemClarity int

const (
	ClaritySI  GemClarity = 1
	ClarityVS  GemClarity = 2
	ClarityVVS GemClarity = 3
	ClarityFL  GemClarity = 4
)

// GemClarityValues is the closed set of valid clarity grades.
var GemClarityValues = []GemClarity{ClaritySI, ClarityVS, ClarityVVS, ClarityFL}

// GemColor is the color grade of a gem. Only priced for diamonds.
type GemColor string

const (
	ColorD GemColor = "D"
	ColorE GemColor = "E"
	ColorG GemColor = "G"
	ColorF GemColor = "F"
	ColorH GemColor = "H"
	ColorI GemColor = "I"
)

// GemColorValues is the closed set of valid color grades.
var GemColorValues = []GemColor{ColorD, ColorE, ColorG, ColorF, ColorH, ColorI}

// GemProperties is the physical grading of a gem, owned 1:1 by its Gem.
type GemProperties struct {
	ID      string      `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Size    float64     `json:"size" gorm:"default:1" validate:"gt=0"`
	Clarity *GemClarity `json:"clarity,omitempty" validate:"omitempty,min=1,max=4"`
	Color   *GemColor   `json:"color,omitempty" validate:"omitempty,oneof=D E G F H I"`
}

// Gem represents a sellable gemstone in the inventory.
// GemPropertiesID carries a unique index so two gems can never share one
// properties row.
type Gem struct {
	ID              string        `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Price           float64       `json:"price"`
	Available       bool          `json:"available"`
	GemType         GemType       `json:"gem_type" gorm:"type:varchar(16)" validate:"required,oneof=DIAMOND RUBY EMERALD"`
	GemPropertiesID string        `json:"gem_properties_id" gorm:"uniqueIndex;type:varchar(36)"`
	GemProperties   GemProperties `json:"gem_properties" gorm:"foreignKey:GemPropertiesID" validate:"-"`
	SellerID        string        `json:"seller_id" gorm:"index;type:varchar(36)"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// GemWithProperties is one listing row: a gem paired with its grading.
type GemWithProperties struct {
	Gem        Gem           `json:"gem"`
	Properties GemProperties `json:"props"`
}

// GemUpdate enumerates every mutable gem field for a full replace.
// The id, seller and properties linkage are never updatable.
type GemUpdate struct {
	Price     float64 `json:"price" validate:"gte=0"`
	Available bool    `json:"available"`
	GemType   GemType `json:"gem_type" validate:"required,oneof=DIAMOND RUBY EMERALD"`
}

// GemPatch is a partial update; nil fields are left untouched.
type GemPatch struct {
	Price     *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Available *bool    `json:"available,omitempty"`
	GemType   *GemType `json:"gem_type,omitempty" validate:"omitempty,oneof=DIAMOND RUBY EMERALD"`
}

// GemFilter holds the optional listing predicates. All are combinable.
type GemFilter struct {
	MinPrice *float64
	MaxPrice *float64
	Types    []GemType
}
