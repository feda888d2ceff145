// file: internals/features/finance/fees/service/breakdown.go
package service

import (
	"github.com/google/uuid"

	fees "schoolku_backend/internals/features/finance/fees/model"
)

/* =========================================================
   Fee breakdown calculator. Pure — no I/O.

   Per fee line:
     1. base = new-student amount when configured and the
        student is new, else the regular amount.
     2. every qualifying approved discount contributes:
        percentage → round(base * value / 100)
        fixed      → its precomputed calculated amount
        contributions are summed, not capped per discount.
     3. the minimum of all declared max caps bounds the
        SUMMED contribution (the cap of one discount limits
        the combined reduction — intentional, see tests),
        and the discount never exceeds the base.
     4. final = base - discount, never negative.
========================================================= */

func BuildBreakdown(isNewStudent bool, applicable []ApplicableFee, grants []DiscountGrant) []FeeLine {
	lines := make([]FeeLine, 0, len(applicable))

	for _, af := range applicable {
		base := af.Structure.BaseAmountCents(isNewStudent)

		var (
			discount int64
			capCents int64 = -1 // -1 = no declared cap
		)
		for _, g := range grants {
			if !grantApplies(g, af.Type.FeeTypeID) {
				continue
			}

			switch g.CalculationType {
			case fees.DiscountCalculationPercentage:
				discount += PercentOf(base, g.Value)
			case fees.DiscountCalculationFixed:
				if g.CalculatedAmountCents != nil {
					discount += *g.CalculatedAmountCents
				}
			}

			if g.MaxDiscountCents != nil {
				if capCents < 0 || *g.MaxDiscountCents < capCents {
					capCents = *g.MaxDiscountCents
				}
			}
		}

		if capCents >= 0 {
			discount = minCents(discount, capCents)
		}
		discount = minCents(discount, base)
		if discount < 0 {
			discount = 0
		}

		lines = append(lines, FeeLine{
			FeeStructureID:  af.Structure.FeeStructureID,
			FeeTypeID:       af.Type.FeeTypeID,
			FeeTypeName:     af.Type.FeeTypeName,
			FeeTypeCategory: af.Type.FeeTypeCategory,
			OriginalCents:   base,
			DiscountCents:   discount,
			FinalCents:      base - discount,
			IsNewStudent:    isNewStudent,
		})
	}
	return lines
}

func grantApplies(g DiscountGrant, feeTypeID uuid.UUID) bool {
	if g.AppliesToFeeTypeIDs == nil {
		return true
	}
	for _, id := range g.AppliesToFeeTypeIDs {
		if id == feeTypeID {
			return true
		}
	}
	return false
}
