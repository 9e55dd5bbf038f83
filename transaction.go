package financia

import "time"

// TransactionType partitions transactions into money in and money out.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is one income or expense entry. Persistence lives entirely on
// the backend; the client only moves these over an authenticated channel.
type Transaction struct {
	ID        string          `json:"id,omitempty"`
	Title     string          `json:"title"`
	Amount    float64         `json:"amount"`
	Type      TransactionType `json:"type"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}
