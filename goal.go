package financia

import "time"

// Goal is a savings target the account holder is working toward.
type Goal struct {
	ID            string    `json:"id,omitempty"`
	Title         string    `json:"title"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	Deadline      time.Time `json:"deadline,omitempty"`
}
