package receipt

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func catPtr(v Category) *Category { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestPatchApplyMergesOnlySetFields(t *testing.T) {
	base := Result{
		ID:          "r1",
		FileName:    "a.jpg",
		CompanyName: strPtr("ローソン"),
		Amount:      intPtr(1000),
		Confidence:  floatPtr(0.8),
	}

	got := Patch{Amount: intPtr(500)}.Apply(base)

	want := base
	want.Amount = intPtr(500)
	want.ManuallyEdited = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchApplyLatchesManuallyEdited(t *testing.T) {
	r := Result{ID: "r1"}
	r = Patch{Category: catPtr(CategoryMiscellaneous)}.Apply(r)
	if !r.ManuallyEdited {
		t.Fatal("ManuallyEdited = false after first patch")
	}
	r = Patch{}.Apply(r)
	if !r.ManuallyEdited {
		t.Error("ManuallyEdited reverted")
	}
}

func TestPatchEmpty(t *testing.T) {
	if !(Patch{}).Empty() {
		t.Error("zero patch should be empty")
	}
	if (Patch{Date: strPtr("2025-01-01")}).Empty() {
		t.Error("patch with a field should not be empty")
	}
}

func TestResultFailed(t *testing.T) {
	if (&Result{FileName: "a.jpg"}).Failed() {
		t.Error("record without error reported as failed")
	}
	if !(&Result{FileName: "a.jpg", Error: "boom"}).Failed() {
		t.Error("errored record not reported as failed")
	}
}

func TestResultWireFormat(t *testing.T) {
	payload := `{
		"id": "abc",
		"file_name": "receipt.jpg",
		"file_path": "/2025/receipt.jpg",
		"company_name": "ファミリーマート",
		"amount": 860,
		"tax_amount": 78,
		"date": "2025-03-15",
		"description": null,
		"category": "消耗品費",
		"category_reason": "文具の購入",
		"confidence": 0.87,
		"error": null,
		"is_manually_edited": false
	}`

	var got Result
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.ID != "abc" || got.FileName != "receipt.jpg" {
		t.Errorf("identity fields: %+v", got)
	}
	if got.Description != nil {
		t.Error("null description should stay nil")
	}
	if got.Category == nil || *got.Category != CategoryConsumables {
		t.Errorf("category = %v", got.Category)
	}
	if got.Failed() {
		t.Error("null error should not mark the record failed")
	}
}

func TestCategoriesCoverFixedEnumeration(t *testing.T) {
	if len(Categories) != 17 {
		t.Errorf("categories = %d, want 17", len(Categories))
	}
	seen := make(map[Category]bool)
	for _, c := range Categories {
		if seen[c] {
			t.Errorf("duplicate category %s", c)
		}
		seen[c] = true
	}
}
