package report

import (
	"strconv"
	"strings"

	"sanhuu/internal/core"
)

// bom is the UTF-8 byte order mark. Spreadsheet tools use it to detect the
// encoding; without it Cyrillic text opens as mojibake in Excel.
const bom = "\uFEFF"

// crlf is the line separator of the delimited export.
const crlf = "\r\n"

// csvHeaders are the transaction table columns, in export order.
var csvHeaders = []string{"Огноо", "Төрөл", "Ангилал", "Дүн", "Тайлбар"}

// BuildCSV renders the snapshot and its aggregation as the delimited export:
// header row, blank line, three money-formatted summary rows, blank line,
// category summary, blank line, then the header row again followed by one
// row per transaction in the order supplied.
//
// Summary and category rows carry money-formatted values; the per-transaction
// amount column stays the raw number so spreadsheets can sum it.
func BuildCSV(txs []core.Transaction, agg Result) string {
	var lines []string

	lines = append(lines, joinFields(csvHeaders))
	lines = append(lines, "")
	lines = append(lines, quoteField("Нийт орлого")+","+quoteField(core.FormatMoney(agg.TotalIncome)))
	lines = append(lines, quoteField("Нийт зарлага")+","+quoteField(core.FormatMoney(agg.TotalExpense)))
	lines = append(lines, quoteField("Цэвэр ашиг")+","+quoteField(core.FormatMoney(agg.NetProfit)))
	lines = append(lines, "")

	lines = append(lines, quoteField("Ангилал")+","+quoteField("Нийт дүн"))
	for _, cat := range agg.ByCategory {
		lines = append(lines, quoteField(cat.Category)+","+quoteField(core.FormatMoney(cat.Total)))
	}
	lines = append(lines, "")

	lines = append(lines, joinFields(csvHeaders))
	for _, tx := range txs {
		lines = append(lines, joinFields([]string{
			tx.Date,
			tx.Kind.Label(),
			tx.Category,
			strconv.FormatInt(tx.Amount, 10),
			tx.Description,
		}))
	}

	return bom + strings.Join(lines, crlf)
}

func joinFields(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quoteField(f)
	}
	return strings.Join(quoted, ",")
}
