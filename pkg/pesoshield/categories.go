package pesoshield

// CategoryKey identifies one of the fixed budget categories. The set is
// closed; aggregations always produce a value for every key, treating a
// missing key as an implicit zero.
type CategoryKey string

const (
	CategoryAlimentos  CategoryKey = "alimentos"
	CategoryServicios  CategoryKey = "servicios"
	CategoryTransporte CategoryKey = "transporte"
	CategorySalud      CategoryKey = "salud"
	CategoryOtros      CategoryKey = "otros"
)

// Category is a budget category with its display label and glyph.
type Category struct {
	Key   CategoryKey
	Label string
	Icon  string
}

// BudgetCategories is the fixed category set, in display order.
var BudgetCategories = []Category{
	{Key: CategoryAlimentos, Label: "Alimentos", Icon: "🛒"},
	{Key: CategoryServicios, Label: "Servicios (luz, gas, agua)", Icon: "💡"},
	{Key: CategoryTransporte, Label: "Transporte", Icon: "🚌"},
	{Key: CategorySalud, Label: "Salud y medicamentos", Icon: "💊"},
	{Key: CategoryOtros, Label: "Otros gastos", Icon: "📦"},
}

// categoryShortLabels are the short names used in alert copy.
var categoryShortLabels = map[CategoryKey]string{
	CategoryAlimentos:  "Alimentos",
	CategoryServicios:  "Servicios",
	CategoryTransporte: "Transporte",
	CategorySalud:      "Salud",
	CategoryOtros:      "Otros",
}

// CategoryLabel returns the short display label for a category key. An
// unknown key falls back to the key itself.
func CategoryLabel(key CategoryKey) string {
	if label, ok := categoryShortLabels[key]; ok {
		return label
	}
	return string(key)
}

// ValidCategory reports whether key belongs to the fixed category set.
func ValidCategory(key CategoryKey) bool {
	_, ok := categoryShortLabels[key]
	return ok
}

// zeroByCategory returns the full category set mapped to zero. Aggregators
// start from this so stored data can never shrink the key set.
func zeroByCategory() map[CategoryKey]float64 {
	out := make(map[CategoryKey]float64, len(BudgetCategories))
	for _, c := range BudgetCategories {
		out[c.Key] = 0
	}
	return out
}
