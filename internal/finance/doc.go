// Package finance implements the financial rule engines for the GAAP
// and IFRS regulation families.
//
// A posting fact (balances, revenue items, inventory, depreciable
// assets) is validated against the selected standard's identities and
// recognition rules: the balance-sheet identity, revenue recognition
// (earned-and-realizable, plus the five-step model under IFRS),
// inventory valuation (COGS arithmetic, the IFRS LIFO prohibition,
// lower-of-cost-or-NRV), component depreciation under IAS 16, and the
// configurable materiality threshold for method changes.
//
// Engines are pure: facts and an explicit rule set in, violations out.
// Depreciation schedules are computed with exact decimal arithmetic and
// a final-period plug so cumulative depreciation equals cost minus
// salvage exactly at end of life.
package finance
