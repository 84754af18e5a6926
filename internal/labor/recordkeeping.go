package labor

import (
	"fmt"
	"strings"

	"github.com/JERPCorporation/jerp-compliance/internal/compliance"
	"github.com/JERPCorporation/jerp-compliance/internal/rules"
	"github.com/JERPCorporation/jerp-compliance/internal/violation"
)

// RecordKeepingFact reports which of the payroll records required by
// FLSA section 11(c) an employer holds for one employee.
type RecordKeepingFact struct {
	EmployeeID string

	HasName               bool
	HasAddress            bool
	HasSSN                bool
	HasBirthDate          bool
	HasOccupation         bool
	HasHourlyRate         bool
	HasHoursWorkedRecords bool
	HasWagesPaidRecords   bool
}

func (f RecordKeepingFact) Validate() error {
	if f.EmployeeID == "" {
		return compliance.Invalid("employeeId", "", "is required")
	}
	return nil
}

// missingRecords lists the required records the employer lacks, in
// statutory order.
func (f RecordKeepingFact) missingRecords() []string {
	checks := []struct {
		held bool
		name string
	}{
		{f.HasName, "employee full name"},
		{f.HasAddress, "home address"},
		{f.HasSSN, "social security number"},
		{f.HasBirthDate, "birth date"},
		{f.HasOccupation, "occupation"},
		{f.HasHourlyRate, "regular hourly pay rate"},
		{f.HasHoursWorkedRecords, "hours worked records"},
		{f.HasWagesPaidRecords, "wages paid records"},
	}
	var missing []string
	for _, c := range checks {
		if !c.held {
			missing = append(missing, c.name)
		}
	}
	return missing
}

// CheckRecordKeeping audits the eight required payroll records for one
// employee. It returns the names of the missing records and, when any
// are missing, a single violation listing them. A complete record set
// produces neither.
func CheckRecordKeeping(fact RecordKeepingFact, set *rules.Set) ([]string, []violation.Violation, error) {
	if err := fact.Validate(); err != nil {
		return nil, nil, err
	}
	rule, err := set.Resolve("FLSA_211")
	if err != nil {
		return nil, nil, err
	}

	missing := fact.missingRecords()
	if len(missing) == 0 {
		return nil, nil, nil
	}
	desc := fmt.Sprintf("payroll records incomplete: missing %s", strings.Join(missing, ", "))
	return missing, []violation.Violation{
		newViolation(rule, desc, "employee", fact.EmployeeID, nil),
	}, nil
}
