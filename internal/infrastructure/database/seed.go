package database

import (
	"gridshare-backend/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAssets inserts the demo catalogue when the Assets table is empty.
// Intended for development and test environments only.
func SeedAssets(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Asset{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	assets := []domain.Asset{
		{
			Name:            "Sonnenfeld Brandenburg",
			Category:        domain.CategoryPV,
			CapacityKW:      4800,
			PricePerPercent: 2150,
			Location:        "Brandenburg, DE",
			Description:     "Ground-mounted solar park on former farmland, grid-connected since 2022.",
		},
		{
			Name:            "Nordsee Windpark III",
			Category:        domain.CategoryWind,
			CapacityKW:      12000,
			PricePerPercent: 5400,
			Location:        "Schleswig-Holstein, DE",
			Description:     "Three onshore turbines with a 15-year feed-in agreement.",
		},
		{
			Name:            "Speicher Bayern Süd",
			Category:        domain.CategoryBattery,
			CapacityKW:      2500,
			PricePerPercent: 980,
			Location:        "Bavaria, DE",
			Description:     "Grid-scale battery storage participating in the balancing market.",
		},
	}
	return db.Create(&assets).Error
}

// SeedDemoUser inserts a demo login when no user with that email exists.
func SeedDemoUser(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&domain.User{
		Fullname:     "Demo User",
		Email:        email,
		PasswordHash: string(hash),
	}).Error
}
