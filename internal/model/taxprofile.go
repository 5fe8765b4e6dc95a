package model

// TaxProfile holds the user's tax situation. The classifier only interpolates
// these fields into the prompt as grounding facts; nothing in the core
// computes deductions from them.
type TaxProfile struct {
	Owner                   string
	FilingStatus            string
	State                   string
	BusinessType            string
	HomeOfficeSquareFeet    int
	BusinessMilesPercentage int
	HasHomeOffice           bool
	UsesVehicleForBusiness  bool
}

// HasContext reports whether the profile carries anything worth including in
// a classification prompt. An all-zero profile is treated as absent so the
// prompt template can omit the section entirely.
func (p *TaxProfile) HasContext() bool {
	if p == nil {
		return false
	}
	return p.BusinessType != "" || p.State != "" || p.FilingStatus != "" ||
		p.HasHomeOffice || p.UsesVehicleForBusiness
}
