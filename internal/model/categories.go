package model

// IncomeCategory is the category assigned to every income entry. Income is
// always delivery work; the platform goes in the description.
const IncomeCategory = "delivery"

// IncomePlatforms lists the delivery platforms offered when recording income.
var IncomePlatforms = []string{
	"iFood",
	"Rappi",
	"Uber Eats",
	"99Food",
	"James",
	"Freelance",
	"Outros",
}

// ExpenseCategory pairs a stored category value with its display label.
type ExpenseCategory struct {
	Value string
	Label string
}

// ExpenseCategories lists the recognized expense categories.
var ExpenseCategories = []ExpenseCategory{
	{Value: "combustivel", Label: "Combustível"},
	{Value: "alimentacao", Label: "Alimentação"},
	{Value: "manutencao", Label: "Manutenção"},
	{Value: "aluguel", Label: "Aluguel"},
	{Value: "pensao", Label: "Pensão Alimentícia"},
	{Value: "taxas", Label: "Taxas"},
	{Value: "outros", Label: "Outros"},
}

// ExpenseCategoryLabel returns the display label for a category value.
func ExpenseCategoryLabel(value string) (string, bool) {
	for _, c := range ExpenseCategories {
		if c.Value == value {
			return c.Label, true
		}
	}
	return "", false
}

// ValidExpenseCategory reports whether value is a recognized category.
func ValidExpenseCategory(value string) bool {
	_, ok := ExpenseCategoryLabel(value)
	return ok
}
