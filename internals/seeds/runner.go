package seeds

import (
	"gorm.io/gorm"

	feetypes "schoolku_backend/internals/seeds/finance/fee_types"
)

func RunAllSeeds(db *gorm.DB) {
	feetypes.SeedFeeTypesFromJSON(db, "internals/seeds/finance/fee_types/data_fee_types.json")
}
