package remote

import (
	"time"

	"github.com/Veraticus/exodo/internal/model"
)

// Row types mirror the hosted tables. Column names follow the JSON field
// names of the models so both backends share one vocabulary.

type accountRow struct {
	ID             string `gorm:"primaryKey"`
	UserID         string `gorm:"index;not null"`
	Name           string
	Type           string
	Bank           string
	Color          string
	InitialBalance float64
	CurrentBalance float64
}

func (accountRow) TableName() string { return "accounts" }

type cardRow struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"index;not null"`
	Name       string
	Brand      string
	Bank       string
	Color      string
	Limit      float64 `gorm:"column:limit"`
	LimitUsed  float64
	ClosingDay int
	DueDay     int
}

func (cardRow) TableName() string { return "cards" }

type categoryRow struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index;not null"`
	Name      string
	Type      string
	Icon      string
	Color     string
	IsDefault bool
}

func (categoryRow) TableName() string { return "categories" }

type transactionRow struct {
	Date          time.Time           `gorm:"type:date"`
	CreatedAt     time.Time
	Installments  *model.Installments `gorm:"serializer:json"`
	ID            string              `gorm:"primaryKey"`
	UserID        string              `gorm:"index;not null"`
	Description   string
	Type          string
	CategoryID    string
	Status        string
	PaymentMethod string
	AccountID     string
	CardID        string
	RecurrenceID  string `gorm:"index"`
	Observation   string
	Amount        float64
}

func (transactionRow) TableName() string { return "transactions" }

type transferRow struct {
	Date          time.Time `gorm:"type:date"`
	CreatedAt     time.Time
	ID            string `gorm:"primaryKey"`
	UserID        string `gorm:"index;not null"`
	Description   string
	FromAccountID string
	ToAccountID   string
	Amount        float64
}

func (transferRow) TableName() string { return "transfers" }

type recurringRow struct {
	LastGenerated *time.Time `gorm:"type:date"`
	StartDate     *time.Time `gorm:"type:date"`
	EndDate       *time.Time `gorm:"type:date"`
	ID            string     `gorm:"primaryKey"`
	UserID        string     `gorm:"index;not null"`
	Description   string
	CategoryID    string
	Type          string
	Frequency     string
	AccountID     string
	PaymentMethod string
	Amount        float64
	DayOfMonth    int
	Active        bool
	AutoCreate    bool
}

func (recurringRow) TableName() string { return "recurring_expenses" }

type goalRow struct {
	Deadline      *time.Time `gorm:"type:date"`
	StartDate     time.Time  `gorm:"type:date"`
	ID            string     `gorm:"primaryKey"`
	UserID        string     `gorm:"index;not null"`
	Name          string
	Icon          string
	Status        string
	History       []model.Contribution `gorm:"serializer:json"`
	TargetAmount  float64
	CurrentAmount float64
}

func (goalRow) TableName() string { return "goals" }

type budgetRow struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"index;not null"`
	CategoryID string `gorm:"index"`
	Amount     float64
	Alert80    bool `gorm:"column:alert_80"`
	Alert100   bool `gorm:"column:alert_100"`
}

func (budgetRow) TableName() string { return "budgets" }

type tabler interface {
	TableName() string
}

func tables() []any {
	return []any{
		&categoryRow{},
		&accountRow{},
		&cardRow{},
		&transactionRow{},
		&transferRow{},
		&recurringRow{},
		&goalRow{},
		&budgetRow{},
	}
}

func tableName(m any) string {
	if t, ok := m.(tabler); ok {
		return t.TableName()
	}
	return "unknown"
}

func fromAccount(userID string, a model.Account) accountRow {
	return accountRow{
		ID:             a.ID,
		UserID:         userID,
		Name:           a.Name,
		Type:           string(a.Type),
		Bank:           a.Bank,
		Color:          a.Color,
		InitialBalance: a.InitialBalance,
		CurrentBalance: a.CurrentBalance,
	}
}

func (r accountRow) model() model.Account {
	return model.Account{
		ID:             r.ID,
		Name:           r.Name,
		Type:           model.AccountType(r.Type),
		Bank:           r.Bank,
		Color:          r.Color,
		InitialBalance: r.InitialBalance,
		CurrentBalance: r.CurrentBalance,
	}
}

func fromCard(userID string, c model.Card) cardRow {
	return cardRow{
		ID:         c.ID,
		UserID:     userID,
		Name:       c.Name,
		Brand:      string(c.Brand),
		Bank:       c.Bank,
		Color:      c.Color,
		Limit:      c.Limit,
		LimitUsed:  c.LimitUsed,
		ClosingDay: c.ClosingDay,
		DueDay:     c.DueDay,
	}
}

func (r cardRow) model() model.Card {
	return model.Card{
		ID:         r.ID,
		Name:       r.Name,
		Brand:      model.CardBrand(r.Brand),
		Bank:       r.Bank,
		Color:      r.Color,
		Limit:      r.Limit,
		LimitUsed:  r.LimitUsed,
		ClosingDay: r.ClosingDay,
		DueDay:     r.DueDay,
	}
}

func fromCategory(userID string, c model.Category) categoryRow {
	return categoryRow{
		ID:        c.ID,
		UserID:    userID,
		Name:      c.Name,
		Type:      string(c.Type),
		Icon:      c.Icon,
		Color:     c.Color,
		IsDefault: c.IsDefault,
	}
}

func (r categoryRow) model() model.Category {
	return model.Category{
		ID:        r.ID,
		Name:      r.Name,
		Type:      model.Direction(r.Type),
		Icon:      r.Icon,
		Color:     r.Color,
		IsDefault: r.IsDefault,
	}
}

func fromTransaction(userID string, t model.Transaction) transactionRow {
	return transactionRow{
		Date:          t.Date,
		CreatedAt:     t.CreatedAt,
		Installments:  t.Installments,
		ID:            t.ID,
		UserID:        userID,
		Description:   t.Description,
		Type:          string(t.Direction),
		CategoryID:    t.CategoryID,
		Status:        string(t.Status),
		PaymentMethod: string(t.PaymentMethod),
		AccountID:     t.AccountID,
		CardID:        t.CardID,
		RecurrenceID:  t.RecurrenceID,
		Observation:   t.Observation,
		Amount:        t.Amount,
	}
}

func (r transactionRow) model() model.Transaction {
	return model.Transaction{
		Date:          model.DateOnly(r.Date),
		CreatedAt:     r.CreatedAt,
		Installments:  r.Installments,
		ID:            r.ID,
		Description:   r.Description,
		Direction:     model.Direction(r.Type),
		CategoryID:    r.CategoryID,
		Status:        model.Status(r.Status),
		PaymentMethod: model.PaymentMethod(r.PaymentMethod),
		AccountID:     r.AccountID,
		CardID:        r.CardID,
		RecurrenceID:  r.RecurrenceID,
		Observation:   r.Observation,
		Amount:        r.Amount,
	}
}

func fromTransfer(userID string, t model.Transfer) transferRow {
	return transferRow{
		Date:          t.Date,
		CreatedAt:     t.CreatedAt,
		ID:            t.ID,
		UserID:        userID,
		Description:   t.Description,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
	}
}

func (r transferRow) model() model.Transfer {
	return model.Transfer{
		Date:          model.DateOnly(r.Date),
		CreatedAt:     r.CreatedAt,
		ID:            r.ID,
		Description:   r.Description,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
	}
}

func fromRecurring(userID string, r model.RecurringExpense) recurringRow {
	return recurringRow{
		LastGenerated: r.LastGenerated,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		ID:            r.ID,
		UserID:        userID,
		Description:   r.Description,
		CategoryID:    r.CategoryID,
		Type:          string(r.Type),
		Frequency:     r.Frequency,
		AccountID:     r.AccountID,
		PaymentMethod: string(r.PaymentMethod),
		Amount:        r.Amount,
		DayOfMonth:    r.DayOfMonth,
		Active:        r.Active,
		AutoCreate:    r.AutoCreate,
	}
}

func (r recurringRow) model() model.RecurringExpense {
	return model.RecurringExpense{
		LastGenerated: r.LastGenerated,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		ID:            r.ID,
		Description:   r.Description,
		CategoryID:    r.CategoryID,
		Type:          model.RecurrenceType(r.Type),
		Frequency:     r.Frequency,
		AccountID:     r.AccountID,
		PaymentMethod: model.PaymentMethod(r.PaymentMethod),
		Amount:        r.Amount,
		DayOfMonth:    r.DayOfMonth,
		Active:        r.Active,
		AutoCreate:    r.AutoCreate,
	}
}

func fromGoal(userID string, g model.Goal) goalRow {
	return goalRow{
		Deadline:      g.Deadline,
		StartDate:     g.StartDate,
		ID:            g.ID,
		UserID:        userID,
		Name:          g.Name,
		Icon:          g.Icon,
		Status:        string(g.Status),
		History:       g.History,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
	}
}

func (r goalRow) model() model.Goal {
	return model.Goal{
		Deadline:      r.Deadline,
		StartDate:     r.StartDate,
		ID:            r.ID,
		Name:          r.Name,
		Icon:          r.Icon,
		Status:        model.GoalStatus(r.Status),
		History:       r.History,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
	}
}

func fromBudget(userID string, b model.Budget) budgetRow {
	return budgetRow{
		ID:         b.ID,
		UserID:     userID,
		CategoryID: b.CategoryID,
		Amount:     b.Amount,
		Alert80:    b.Alert80,
		Alert100:   b.Alert100,
	}
}

func (r budgetRow) model() model.Budget {
	return model.Budget{
		ID:         r.ID,
		CategoryID: r.CategoryID,
		Amount:     r.Amount,
		Alert80:    r.Alert80,
		Alert100:   r.Alert100,
	}
}
