// internal/models/product.go
package models

// Product is one tracked unit. The scan code is minted at creation and
// immutable thereafter; stage and custodian change only through the
// transition engine.
type Product struct {
	BaseModel
	Name             string `json:"name" gorm:"size:255;not null"`
	Description      string `json:"description" gorm:"type:text;not null"`
	ScanCode         string `json:"scan_code" gorm:"size:128;not null;uniqueIndex"`
	ProductType      string `json:"product_type" gorm:"size:100;not null;index"`
	BatchNumber      string `json:"batch_number" gorm:"size:100;not null"`
	ExpiryDate       string `json:"expiry_date" gorm:"size:64;not null"`
	Creator          string `json:"creator" gorm:"size:42;not null;index"`
	CurrentCustodian string `json:"current_custodian" gorm:"size:42;not null;index"`
	Stage            Stage  `json:"stage" gorm:"not null;default:0;index"`
	IsAuthentic      bool   `json:"is_authentic" gorm:"default:true"`
}
