package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/JERPCorporation/jerp-compliance/internal/compliance"
	"github.com/JERPCorporation/jerp-compliance/internal/money"
)

// Standard selects the accounting regulation family.
type Standard string

const (
	StandardGAAP Standard = "GAAP"
	StandardIFRS Standard = "IFRS"
)

// AccountCategory classifies a balance for the accounting identity.
type AccountCategory string

const (
	CategoryAsset     AccountCategory = "ASSET"
	CategoryLiability AccountCategory = "LIABILITY"
	CategoryEquity    AccountCategory = "EQUITY"
)

// AccountBalance is one account's closing balance by category.
type AccountBalance struct {
	Account  string
	Category AccountCategory
	Balance  decimal.Decimal
}

// RevenueItem is a revenue line with its recognition triggers.
type RevenueItem struct {
	ItemID string
	Amount decimal.Decimal

	// RecognitionDate is when the posting recognizes the revenue.
	RecognitionDate time.Time

	// Earned criteria.
	ServiceDelivered bool
	GoodsDelivered   bool
	DeliveredDate    time.Time

	// Realizable criteria: payment in hand, or reasonably assured.
	PaymentReceived bool
	PaymentAssured  bool
	PaymentDate     time.Time

	// Five-step model criteria (IFRS 15 / ASC 606 contracts).
	ContractIdentified       bool
	PerformanceObligationMet bool
	ObligationDate           time.Time
}

// CostingMethod is the inventory cost-flow assumption.
type CostingMethod string

const (
	MethodFIFO       CostingMethod = "FIFO"
	MethodLIFO       CostingMethod = "LIFO"
	MethodAverage    CostingMethod = "AVERAGE"
	MethodSpecificID CostingMethod = "SPECIFIC_ID"
)

// InventoryFact carries the period's inventory figures for COGS and
// valuation checks.
type InventoryFact struct {
	Method CostingMethod

	BeginningValue decimal.Decimal
	Purchases      decimal.Decimal
	EndingValue    decimal.Decimal
	ReportedCOGS   decimal.Decimal

	// Valuation ceiling inputs for lower-of-cost-or-NRV.
	RecordedValue      decimal.Decimal
	Cost               decimal.Decimal
	NetRealizableValue decimal.Decimal
}

// DepreciationMethod selects the period-charge formula.
type DepreciationMethod string

const (
	MethodStraightLine     DepreciationMethod = "STRAIGHT_LINE"
	MethodDecliningBalance DepreciationMethod = "DECLINING_BALANCE"
	MethodUnitsProduction  DepreciationMethod = "UNITS_OF_PRODUCTION"
	MethodSumOfYearsDigits DepreciationMethod = "SUM_OF_YEARS_DIGITS"
)

// AssetComponent is a separately depreciable part of an asset.
type AssetComponent struct {
	Name            string
	Cost            decimal.Decimal
	UsefulLifeYears int
}

// DepreciableAsset describes an asset for the depreciation checks.
type DepreciableAsset struct {
	AssetID string
	Cost    decimal.Decimal
	Salvage decimal.Decimal

	UsefulLifeYears int
	Method          DepreciationMethod

	// DecliningFactor is the declining-balance multiplier (2 for
	// double-declining). Ignored by other methods.
	DecliningFactor decimal.Decimal

	// Units-of-production inputs: expected total units and the units
	// produced in each period of the asset's life.
	TotalUnits     decimal.Decimal
	UnitsPerPeriod []decimal.Decimal

	Components              []AssetComponent
	DepreciatedAsSingleUnit bool
}

// MethodChange records an accounting-method change or misstatement for
// the materiality check.
type MethodChange struct {
	Description string
	PriorMethod string
	NewMethod   string

	// Impact is the change's effect on the affected base figure.
	Impact decimal.Decimal

	// Base is the figure the impact is measured against (net income,
	// total assets).
	Base decimal.Decimal
}

// PostingFact is the full fact set validated by ValidatePosting. Every
// section is optional; absent sections skip their checks.
type PostingFact struct {
	PostingID string
	Date      time.Time

	Balances      []AccountBalance
	Revenues      []RevenueItem
	Inventory     *InventoryFact
	Assets        []DepreciableAsset
	MethodChanges []MethodChange
}

// Validate rejects malformed posting facts before any engine logic.
func (f PostingFact) Validate() error {
	if f.PostingID == "" {
		return compliance.Invalid("postingId", "", "is required")
	}
	for _, b := range f.Balances {
		switch b.Category {
		case CategoryAsset, CategoryLiability, CategoryEquity:
		default:
			return compliance.Invalid("balances.category", string(b.Category), "unknown account category")
		}
	}
	for _, r := range f.Revenues {
		if r.ItemID == "" {
			return compliance.Invalid("revenues.itemId", "", "is required")
		}
		if r.Amount.IsNegative() {
			return compliance.Invalid("revenues.amount", money.FormatCurrency(r.Amount), "must not be negative")
		}
		if r.RecognitionDate.IsZero() {
			return compliance.Invalid("revenues.recognitionDate", "", "is required")
		}
	}
	if inv := f.Inventory; inv != nil {
		switch inv.Method {
		case MethodFIFO, MethodLIFO, MethodAverage, MethodSpecificID:
		default:
			return compliance.Invalid("inventory.method", string(inv.Method), "unknown costing method")
		}
		for name, v := range map[string]decimal.Decimal{
			"inventory.beginningValue": inv.BeginningValue,
			"inventory.purchases":      inv.Purchases,
			"inventory.endingValue":    inv.EndingValue,
			"inventory.reportedCogs":   inv.ReportedCOGS,
		} {
			if v.IsNegative() {
				return compliance.Invalid(name, money.FormatCurrency(v), "must not be negative")
			}
		}
	}
	for _, a := range f.Assets {
		if err := a.validate(); err != nil {
			return err
		}
	}
	for _, mc := range f.MethodChanges {
		if mc.Base.IsZero() {
			return compliance.Invalid("methodChanges.base", "", "base figure must be non-zero")
		}
	}
	return nil
}

// validate checks a depreciable asset's structural invariants.
func (a DepreciableAsset) validate() error {
	if a.AssetID == "" {
		return compliance.Invalid("assets.assetId", "", "is required")
	}
	if a.Cost.IsZero() || a.Cost.IsNegative() {
		return compliance.Invalid("assets.cost", money.FormatCurrency(a.Cost), "must be positive")
	}
	if a.Salvage.IsNegative() {
		return compliance.Invalid("assets.salvage", money.FormatCurrency(a.Salvage), "must not be negative")
	}
	if a.Salvage.GreaterThan(a.Cost) {
		return compliance.Invalid("assets.salvage", money.FormatCurrency(a.Salvage), "exceeds asset cost")
	}
	switch a.Method {
	case MethodStraightLine, MethodDecliningBalance, MethodUnitsProduction, MethodSumOfYearsDigits:
	default:
		return compliance.Invalid("assets.method", string(a.Method), "unknown depreciation method")
	}
	if a.UsefulLifeYears < 1 {
		return compliance.Invalid("assets.usefulLifeYears", fmt.Sprintf("%d", a.UsefulLifeYears), "must be at least 1")
	}
	if a.Method == MethodDecliningBalance && (a.DecliningFactor.IsZero() || a.DecliningFactor.IsNegative()) {
		return compliance.Invalid("assets.decliningFactor", money.FormatCurrency(a.DecliningFactor), "must be positive")
	}
	if a.Method == MethodUnitsProduction {
		if a.TotalUnits.IsZero() || a.TotalUnits.IsNegative() {
			return compliance.Invalid("assets.totalUnits", money.FormatCurrency(a.TotalUnits), "must be positive")
		}
		if len(a.UnitsPerPeriod) == 0 {
			return compliance.Invalid("assets.unitsPerPeriod", "", "is required for units-of-production")
		}
		sum := money.Zero
		for _, u := range a.UnitsPerPeriod {
			if u.IsNegative() {
				return compliance.Invalid("assets.unitsPerPeriod", money.FormatCurrency(u), "must not be negative")
			}
			sum = sum.Add(u)
		}
		if !sum.Equal(a.TotalUnits) {
			return compliance.Invalid("assets.unitsPerPeriod", money.FormatCurrency(sum), "period units must sum to totalUnits")
		}
	}
	for _, c := range a.Components {
		if c.Cost.IsNegative() {
			return compliance.Invalid("assets.components.cost", money.FormatCurrency(c.Cost), "must not be negative")
		}
		if c.UsefulLifeYears < 1 {
			return compliance.Invalid("assets.components.usefulLifeYears", fmt.Sprintf("%d", c.UsefulLifeYears), "must be at least 1")
		}
	}
	return nil
}
