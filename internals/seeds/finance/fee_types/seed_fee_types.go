package feetypes

import (
	"encoding/json"
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/model"
)

type FeeTypeSeed struct {
	SchoolID string `json:"school_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func SeedFeeTypesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Reading file:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Cannot read seed file: %v", err)
		return
	}

	var seeds []FeeTypeSeed
	if err := json.Unmarshal(file, &seeds); err != nil {
		log.Printf("❌ Cannot decode seed JSON: %v", err)
		return
	}

	for _, s := range seeds {
		schoolID, err := uuid.Parse(s.SchoolID)
		if err != nil {
			log.Printf("❌ Bad school_id %q, skipping", s.SchoolID)
			continue
		}

		var existing model.FeeType
		if err := db.Where("fee_type_school_id = ? AND fee_type_name = ?", schoolID, s.Name).
			First(&existing).Error; err == nil {
			log.Printf("ℹ️ Fee type %q already exists, skipping...", s.Name)
			continue
		}

		row := model.FeeType{
			FeeTypeSchoolID: schoolID,
			FeeTypeName:     s.Name,
			FeeTypeCategory: s.Category,
			FeeTypeStatus:   model.FeeTypeStatusActive,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("❌ Seed fee type %q failed: %v", s.Name, err)
			continue
		}
		log.Printf("✅ Seeded fee type %q", s.Name)
	}
}
