package finance

import "github.com/Veraticus/exodo/internal/model"

// DefaultCategories returns the categories seeded into an empty store.
func DefaultCategories() []model.Category {
	return []model.Category{
		{ID: "cat_salario", Name: "Salário", Type: model.DirectionIncome, Icon: "Briefcase", Color: "#16a34a", IsDefault: true},
		{ID: "cat_invest", Name: "Investimentos", Type: model.DirectionIncome, Icon: "TrendingUp", Color: "#0ea5e9", IsDefault: true},
		{ID: "cat_extra", Name: "Renda Extra", Type: model.DirectionIncome, Icon: "PlusCircle", Color: "#8b5cf6", IsDefault: true},
		{ID: "cat_casa", Name: "Moradia", Type: model.DirectionExpense, Icon: "Home", Color: "#ea580c", IsDefault: true},
		{ID: "cat_ali", Name: "Alimentação", Type: model.DirectionExpense, Icon: "ShoppingCart", Color: "#dc2626", IsDefault: true},
		{ID: "cat_trans", Name: "Transporte", Type: model.DirectionExpense, Icon: "Car", Color: "#f59e0b", IsDefault: true},
		{ID: "cat_lazer", Name: "Lazer", Type: model.DirectionExpense, Icon: "Smile", Color: "#ec4899", IsDefault: true},
		{ID: "cat_saude", Name: "Saúde", Type: model.DirectionExpense, Icon: "Heart", Color: "#ef4444", IsDefault: true},
		{ID: "cat_edu", Name: "Educação", Type: model.DirectionExpense, Icon: "Book", Color: "#6366f1", IsDefault: true},
		{ID: "cat_card", Name: "Pagamento de Cartão", Type: model.DirectionExpense, Icon: "CreditCard", Color: "#64748b", IsDefault: true},
	}
}
