package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JERPCorporation/jerp-compliance/internal/money"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

func inventory() *InventoryFact {
	return &InventoryFact{
		Method:         MethodFIFO,
		BeginningValue: money.MustParse("10000.00"),
		Purchases:      money.MustParse("50000.00"),
		EndingValue:    money.MustParse("8000.00"),
		ReportedCOGS:   money.MustParse("52000.00"),
	}
}

func TestInventory_COGSIdentityHolds(t *testing.T) {
	engine := &GAAPEngine{}
	set := rules.DefaultSet()

	fact := posting()
	fact.Inventory = inventory()

	violations, err := engine.ValidatePosting(fact, set)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestInventory_COGSMismatch(t *testing.T) {
	engine := &GAAPEngine{}
	set := rules.DefaultSet()

	fact := posting()
	fact.Inventory = inventory()
	fact.Inventory.ReportedCOGS = money.MustParse("53000.00")

	violations, err := engine.ValidatePosting(fact, set)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "GAAP_ASC330", violations[0].Regulation)
	// Reported exceeds the identity by $1,000, signed.
	assert.Equal(t, "1000.00", money.FormatCurrency(violations[0].ImpactOrZero()))
}

func TestInventory_IFRSProhibitsLIFO(t *testing.T) {
	engine := &IFRSEngine{}
	set := rules.DefaultSet()

	// Figures are internally consistent; the method alone violates.
	fact := posting()
	fact.Inventory = inventory()
	fact.Inventory.Method = MethodLIFO

	violations, err := engine.ValidatePosting(fact, set)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "IFRS_IAS2", violations[0].Regulation)
	assert.Equal(t, violation.SeverityCritical, violations[0].Severity)
	assert.Contains(t, violations[0].Description, "LIFO")
	assert.True(t, violations[0].ImpactOrZero().IsZero())
}

func TestInventory_GAAPPermitsLIFO(t *testing.T) {
	engine := &GAAPEngine{}
	set := rules.DefaultSet()

	fact := posting()
	fact.Inventory = inventory()
	fact.Inventory.Method = MethodLIFO

	violations, err := engine.ValidatePosting(fact, set)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestInventory_LowerOfCostOrNRV(t *testing.T) {
	engine := &IFRSEngine{}
	set := rules.DefaultSet()

	fact := posting()
	fact.Inventory = inventory()
	fact.Inventory.RecordedValue = money.MustParse("12000.00")
	fact.Inventory.Cost = money.MustParse("12000.00")
	fact.Inventory.NetRealizableValue = money.MustParse("9000.00")

	violations, err := engine.ValidatePosting(fact, set)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Description, "net realizable value")
	assert.Equal(t, "3000.00", money.FormatCurrency(violations[0].ImpactOrZero()))
}

func TestInventory_RecordedAtCeilingIsFine(t *testing.T) {
	engine := &GAAPEngine{}
	set := rules.DefaultSet()

	fact := posting()
	fact.Inventory = inventory()
	fact.Inventory.RecordedValue = money.MustParse("9000.00")
	fact.Inventory.Cost = money.MustParse("12000.00")
	fact.Inventory.NetRealizableValue = money.MustParse("9000.00")

	violations, err := engine.ValidatePosting(fact, set)
	require.NoError(t, err)
	assert.Empty(t, violations)
}
