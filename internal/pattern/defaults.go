package pattern

import "github.com/Veraticus/exodo/internal/model"

// DefaultRules recognize common Brazilian statement descriptions and map
// them to the seeded categories.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:       "Salary",
			Pattern:    `\b(SALARIO|SAL[AÁ]RIO|FOLHA\s*PGTO|PROVENTOS|PAGTO\s*SALARIO)\b`,
			IsRegex:    true,
			CategoryID: "cat_salario",
			Direction:  model.DirectionIncome,
			Priority:   100,
		},
		{
			Name:       "Investment income",
			Pattern:    `\b(RENDIMENTOS?|JUROS|DIVIDENDOS?|CDB|TESOURO|RESGATE)\b`,
			IsRegex:    true,
			CategoryID: "cat_invest",
			Direction:  model.DirectionIncome,
			Priority:   95,
		},
		{
			Name:       "Card bill",
			Pattern:    `\b(PAGTO\s*FATURA|PAGAMENTO\s*FATURA|FATURA\s*CART[AÃ]O)\b`,
			IsRegex:    true,
			CategoryID: "cat_card",
			Direction:  model.DirectionExpense,
			Priority:   90,
		},
		{
			Name:       "Housing",
			Pattern:    `\b(ALUGUEL|CONDOMINIO|CONDOM[IÍ]NIO|ENERGIA|ENEL|CEMIG|COPEL|SABESP|AGUA|INTERNET|VIVO|CLARO)\b`,
			IsRegex:    true,
			CategoryID: "cat_casa",
			Direction:  model.DirectionExpense,
			Priority:   80,
		},
		{
			Name:       "Food",
			Pattern:    `\b(IFOOD|SUPERMERCADO|PADARIA|RESTAURANTE|ACOUGUE|HORTIFRUTI|CARREFOUR|ASSAI|ATACADAO)\b`,
			IsRegex:    true,
			CategoryID: "cat_ali",
			Direction:  model.DirectionExpense,
			Priority:   70,
		},
		{
			Name:       "Transport",
			Pattern:    `\b(UBER|99APP|99\s*POP|POSTO|COMBUSTIVEL|SHELL|IPIRANGA|ESTACIONAMENTO|PEDAGIO|SEM\s*PARAR)\b`,
			IsRegex:    true,
			CategoryID: "cat_trans",
			Direction:  model.DirectionExpense,
			Priority:   70,
		},
		{
			Name:       "Health",
			Pattern:    `\b(FARMACIA|FARM[AÁ]CIA|DROGARIA|DROGA\s*RAIA|DROGASIL|HOSPITAL|CLINICA|LABORATORIO|UNIMED)\b`,
			IsRegex:    true,
			CategoryID: "cat_saude",
			Direction:  model.DirectionExpense,
			Priority:   70,
		},
		{
			Name:       "Education",
			Pattern:    `\b(ESCOLA|FACULDADE|UNIVERSIDADE|CURSO|LIVRARIA|MENSALIDADE)\b`,
			IsRegex:    true,
			CategoryID: "cat_edu",
			Direction:  model.DirectionExpense,
			Priority:   60,
		},
		{
			Name:       "Leisure",
			Pattern:    `\b(NETFLIX|SPOTIFY|DISNEY|CINEMA|INGRESSO|STEAM|PLAYSTATION|BAR)\b`,
			IsRegex:    true,
			CategoryID: "cat_lazer",
			Direction:  model.DirectionExpense,
			Priority:   50,
		},
	}
}
