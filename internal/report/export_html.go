package report

import (
	"strings"

	"sanhuu/internal/core"
)

const (
	profitColor = "#059669"
	lossColor   = "#dc2626"
	cellStyle   = "padding:6px;border:1px solid #e5e7eb"
)

// BuildHTML renders the snapshot and its aggregation as a self-contained
// printable document: title, period label, three summary cards, the
// category summary table and the full transaction table. Styling is inline
// only, so the artifact can be saved, mailed or printed to PDF as-is.
// String building is deliberate here; the document is an export artifact
// with a fixed shape, not a view.
func BuildHTML(txs []core.Transaction, agg Result, periodLabel string) string {
	var b strings.Builder

	b.WriteString("<!doctype html>\n<html>\n<head>\n<meta charset=\"utf-8\" />\n")
	b.WriteString("<title>Report - " + escapeText(periodLabel) + "</title>\n")
	b.WriteString(`<style>
  body { font-family: Arial, Helvetica, sans-serif; color: #111827; padding: 20px; }
  h1 { font-size: 18px; margin-bottom: 4px; }
  .summary { display:flex; gap:12px; margin-bottom:12px; }
  .card { padding:10px; border-radius:6px; background:#f3f4f6; min-width:120px; }
  .card .label { font-size:12px; color:#6b7280; }
  .card .value { font-weight:700; }
  table { border-collapse: collapse; width:100%; margin-top:8px; }
  th { text-align:left; padding:8px; border-bottom:1px solid #e5e7eb; background:#f9fafb; }
</style>
`)
	b.WriteString("</head>\n<body>\n")
	b.WriteString("<h1>ДУГУЙ БИЗНЕСИЙН САНХҮҮГИЙН ТАЙЛАН</h1>\n")
	b.WriteString("<div style=\"margin-bottom:8px\"><strong>" + escapeText(periodLabel) + "</strong></div>\n")

	b.WriteString("<div class=\"summary\">\n")
	writeCard(&b, "Нийт орлого", agg.TotalIncome, profitColor)
	writeCard(&b, "Нийт зарлага", agg.TotalExpense, lossColor)
	netColor := profitColor
	if agg.NetProfit < 0 {
		netColor = lossColor
	}
	writeCard(&b, "Цэвэр ашиг", agg.NetProfit, netColor)
	b.WriteString("</div>\n")

	b.WriteString("<h3>Ангиллын нэгтгэл</h3>\n<table>\n")
	b.WriteString("<thead><tr><th>Ангилал</th><th style=\"text-align:right\">Нийт дүн</th></tr></thead>\n<tbody>\n")
	for _, cat := range agg.ByCategory {
		b.WriteString("<tr><td style=\"" + cellStyle + "\">" + escapeText(cat.Category) + "</td>")
		b.WriteString("<td style=\"" + cellStyle + ";text-align:right\">" + escapeText(core.FormatMoney(cat.Total)) + "</td></tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")

	b.WriteString("<h3 style=\"margin-top:12px\">Гүйлгээний жагсаалт</h3>\n<table>\n")
	b.WriteString("<thead><tr><th>Огноо</th><th>Төрөл</th><th>Ангилал</th><th style=\"text-align:right\">Дүн</th><th>Тайлбар</th></tr></thead>\n<tbody>\n")
	for _, tx := range txs {
		b.WriteString("<tr>")
		b.WriteString("<td style=\"" + cellStyle + "\">" + escapeText(core.FormatDate(tx.Date)) + "</td>")
		b.WriteString("<td style=\"" + cellStyle + "\">" + escapeText(tx.Kind.Label()) + "</td>")
		b.WriteString("<td style=\"" + cellStyle + "\">" + escapeText(tx.Category) + "</td>")
		b.WriteString("<td style=\"" + cellStyle + ";text-align:right\">" + escapeText(core.FormatMoney(tx.Amount)) + "</td>")
		b.WriteString("<td style=\"" + cellStyle + "\">" + escapeText(tx.Description) + "</td>")
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n</body>\n</html>\n")

	return b.String()
}

func writeCard(b *strings.Builder, label string, amount int64, color string) {
	b.WriteString("<div class=\"card\"><div class=\"label\">" + escapeText(label) + "</div>")
	b.WriteString("<div class=\"value\" style=\"color:" + color + "\">" + escapeText(core.FormatMoney(amount)) + "</div></div>\n")
}
