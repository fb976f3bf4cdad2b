// Package receipt holds the domain types shared by the batch pipeline,
// the ledger and the export layers.
package receipt

// Category is one accounting category used for expense classification.
type Category string

// The fixed set of accounting categories the extraction service may assign.
const (
	CategoryTransportation Category = "交通費"
	CategoryConsumables    Category = "消耗品費"
	CategoryEntertainment  Category = "接待交際費"
	CategoryCommunication  Category = "通信費"
	CategoryRent           Category = "地代家賃"
	CategoryUtilities      Category = "水道光熱費"
	CategoryBooks          Category = "新聞図書費"
	CategoryAdvertising    Category = "広告宣伝費"
	CategoryInsurance      Category = "保険料"
	CategoryRepairs        Category = "修繕費"
	CategoryTaxes          Category = "租税公課"
	CategoryOutsourcing    Category = "外注費"
	CategoryWelfare        Category = "福利厚生費"
	CategoryOfficeSupplies Category = "事務用品費"
	CategoryTravel         Category = "旅費交通費"
	CategoryMeeting        Category = "会議費"
	CategoryMiscellaneous  Category = "雑費"
)

// Categories lists every accounting category in display order.
var Categories = []Category{
	CategoryTransportation,
	CategoryConsumables,
	CategoryEntertainment,
	CategoryCommunication,
	CategoryRent,
	CategoryUtilities,
	CategoryBooks,
	CategoryAdvertising,
	CategoryInsurance,
	CategoryRepairs,
	CategoryTaxes,
	CategoryOutsourcing,
	CategoryWelfare,
	CategoryOfficeSupplies,
	CategoryTravel,
	CategoryMeeting,
	CategoryMiscellaneous,
}

// Result is the outcome of extracting one submitted file: either a fully
// populated record, or a failure carrying only FileName and Error.
// Amounts are whole yen.
type Result struct {
	ID             string    `json:"id"`
	FileName       string    `json:"file_name"`
	FilePath       string    `json:"file_path"`
	CompanyName    *string   `json:"company_name"`
	Amount         *int      `json:"amount"`
	TaxAmount      *int      `json:"tax_amount"`
	Date           *string   `json:"date"`
	Description    *string   `json:"description"`
	Category       *Category `json:"category"`
	CategoryReason *string   `json:"category_reason"`
	Confidence     *float64  `json:"confidence"`
	Error          string    `json:"error,omitempty"`
	ManuallyEdited bool      `json:"is_manually_edited"`
}

// Failed reports whether the record represents a per-file failure.
func (r *Result) Failed() bool {
	return r.Error != ""
}

// CategoryTotal is one aggregated group derived from the ledger.
// It is recomputed on demand and never stored.
type CategoryTotal struct {
	Category    Category `json:"category"`
	Count       int      `json:"count"`
	TotalAmount int      `json:"total_amount"`
}
