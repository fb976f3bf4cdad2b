package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/receipt-lens/receipt-lens/internal/receipt"
	"github.com/receipt-lens/receipt-lens/internal/summary"
)

// csvHeader is the column header row, in Japanese for accounting use.
var csvHeader = []string{
	"No.",
	"ファイル名",
	"日付",
	"会社名・店名",
	"品目・但し書き",
	"金額（税込）",
	"消費税額",
	"勘定科目",
	"分類理由",
	"信頼度",
	"手動修正",
}

// WriteCSV writes the records as a Shift-JIS (CP932) encoded CSV so the
// file opens cleanly in Japanese Excel. After the data rows it appends a
// per-category summary section ordered by descending total. Errored
// records are excluded throughout.
func WriteCSV(w io.Writer, records []receipt.Result) error {
	enc := transform.NewWriter(w, encoding.ReplaceUnsupported(japanese.ShiftJIS.NewEncoder()))
	cw := csv.NewWriter(enc)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, row := range Rows(records) {
		record := []string{
			strconv.Itoa(i + 1),
			row.FileName,
			row.Date,
			row.CompanyName,
			row.Description,
			optionalInt(row.Amount),
			optionalInt(row.TaxAmount),
			row.Category,
			row.CategoryReason,
			formatConfidence(row.Confidence),
			editedMark(row.ManuallyEdited),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writeSummary(cw, records); err != nil {
		return err
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize encoding: %w", err)
	}
	return nil
}

func writeSummary(cw *csv.Writer, records []receipt.Result) error {
	totals := summary.Totals(records)

	rows := [][]string{
		{},
		{"勘定科目別集計"},
		{"勘定科目", "件数", "合計金額"},
	}
	for _, t := range totals {
		rows = append(rows, []string{
			string(t.Category),
			strconv.Itoa(t.Count),
			strconv.Itoa(t.TotalAmount),
		})
	}
	rows = append(rows, []string{"合計", "", strconv.Itoa(summary.GrandTotal(totals))})

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	return nil
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatConfidence(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.0f%%", *v*100)
}

func editedMark(edited bool) string {
	if edited {
		return "○"
	}
	return ""
}
