package labor

import (
	"github.com/shopspring/decimal"

	"github.com/JERPCorporation/jerp-compliance/internal/compliance"
	"github.com/JERPCorporation/jerp-compliance/internal/money"
)

// CompensatoryTime converts overtime hours into banked compensatory
// time at time and a half. The FLSA permits comp time in lieu of cash
// overtime for public sector employers only; a private sector request
// is refused with zero hours banked.
func CompensatoryTime(overtimeHours decimal.Decimal, publicSector bool) (decimal.Decimal, error) {
	if overtimeHours.IsNegative() {
		return money.Zero, compliance.Invalid("overtimeHours", money.FormatHours(overtimeHours), "must not be negative")
	}
	if !publicSector {
		return money.Zero, compliance.Invalid("publicSector", "false",
			"compensatory time in lieu of cash overtime is limited to public sector employers")
	}
	return money.RoundHours(overtimeHours.Mul(money.RateTimeHalf)), nil
}
