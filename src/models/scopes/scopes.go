package scopes

import "gorm.io/gorm"

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func WithProduct(productId uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("product_id = ?", productId)
	}
}

// NotDenied keeps every rent except denied ones. Both requested and
// approved rents hold their date range.
func NotDenied(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", "DENIED")
}

func WithRequestedStatus(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "REQUESTED")
}
