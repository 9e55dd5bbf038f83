package financia

// Category labels transactions for reporting.
type Category struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}
