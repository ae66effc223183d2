package ingestion

// SupplyProfile is the contracted power per band in kW.
type SupplyProfile struct {
	ContractedPower PeriodValues
}

// ExtractSupply reads contracted power from the first data row of the supply
// section. Absent columns and a section without data rows give zero power.
func ExtractSupply(g Grid, section Section, fields FieldMap) SupplyProfile {
	var profile SupplyProfile
	rows := section.DataRows(g)
	if len(rows) == 0 {
		return profile
	}
	row := rows[0]
	for p := 0; p < Periods; p++ {
		col := fields.Column(PowerField(p + 1))
		if col < 0 || col >= len(row) {
			continue
		}
		profile.ContractedPower[p] = ParseNumber(row[col])
	}
	return profile
}
