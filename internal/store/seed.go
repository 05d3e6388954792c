package store

import "sanhuu/internal/core"

// Seed returns the demo dataset installed on first start when no snapshot
// has been persisted yet.
func Seed() []core.Transaction {
	return []core.Transaction{
		{ID: "1", Date: "2025-12-01", Kind: core.Income, Category: "Борлуулалт", Amount: 2500000, Description: "Michelin дугуй 20 ширхэг"},
		{ID: "2", Date: "2025-12-01", Kind: core.Expense, Category: "Худалдан авалт", Amount: 1800000, Description: "Дугуй импорт"},
		{ID: "3", Date: "2025-12-02", Kind: core.Income, Category: "Борлуулалт", Amount: 1200000, Description: "Bridgestone дугуй 10 ширхэг"},
		{ID: "4", Date: "2025-12-02", Kind: core.Expense, Category: "Тээвэр", Amount: 150000, Description: "Ачаа тээвэрлэх зардал"},
		{ID: "5", Date: "2025-12-03", Kind: core.Expense, Category: "Гааль", Amount: 300000, Description: "Гаалийн татвар"},
		{ID: "6", Date: "2025-12-04", Kind: core.Income, Category: "Борлуулалт", Amount: 3200000, Description: "Continental дугуй 25 ширхэг"},
		{ID: "7", Date: "2025-12-05", Kind: core.Expense, Category: "Цалин хөлс", Amount: 800000, Description: "Ажилтны цалин"},
		{ID: "8", Date: "2025-12-06", Kind: core.Income, Category: "Борлуулалт", Amount: 1800000, Description: "Pirelli дугуй 15 ширхэг"},
		{ID: "9", Date: "2025-12-07", Kind: core.Expense, Category: "Түрээс", Amount: 500000, Description: "Агуулахын түрээс"},
		{ID: "10", Date: "2025-12-08", Kind: core.Income, Category: "Борлуулалт", Amount: 2800000, Description: "Goodyear дугуй 20 ширхэг"},
		{ID: "11", Date: "2025-11-28", Kind: core.Income, Category: "Борлуулалт", Amount: 1500000, Description: "Сарын сүүлийн борлуулалт"},
		{ID: "12", Date: "2025-11-25", Kind: core.Expense, Category: "Маркетинг", Amount: 200000, Description: "Сурталчилгааны зардал"},
		{ID: "13", Date: "2025-11-20", Kind: core.Income, Category: "Борлуулалт", Amount: 4200000, Description: "Том захиалгын борлуулалт"},
		{ID: "14", Date: "2025-11-15", Kind: core.Expense, Category: "Худалдан авалт", Amount: 2800000, Description: "Шинэ дугуй импорт"},
		{ID: "15", Date: "2025-11-10", Kind: core.Income, Category: "Борлуулалт", Amount: 1900000, Description: "Жирийн борлуулалт"},
	}
}
