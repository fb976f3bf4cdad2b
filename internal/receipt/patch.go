package receipt

// Patch is a partial update for a Result produced by a user correction.
// Nil fields are left untouched. Applying any patch marks the record as
// manually edited; the marker never reverts.
type Patch struct {
	CompanyName    *string
	Amount         *int
	TaxAmount      *int
	Date           *string
	Description    *string
	Category       *Category
	CategoryReason *string
}

// Apply merges the patch into a copy of r and returns the new value.
func (p Patch) Apply(r Result) Result {
	if p.CompanyName != nil {
		r.CompanyName = p.CompanyName
	}
	if p.Amount != nil {
		r.Amount = p.Amount
	}
	if p.TaxAmount != nil {
		r.TaxAmount = p.TaxAmount
	}
	if p.Date != nil {
		r.Date = p.Date
	}
	if p.Description != nil {
		r.Description = p.Description
	}
	if p.Category != nil {
		r.Category = p.Category
	}
	if p.CategoryReason != nil {
		r.CategoryReason = p.CategoryReason
	}
	r.ManuallyEdited = true
	return r
}

// Empty reports whether the patch carries no changes.
func (p Patch) Empty() bool {
	return p.CompanyName == nil &&
		p.Amount == nil &&
		p.TaxAmount == nil &&
		p.Date == nil &&
		p.Description == nil &&
		p.Category == nil &&
		p.CategoryReason == nil
}
