package model

// Sample is one backstory to adjudicate, as read from the input dataset
type Sample struct {
	ID        string `json:"id"`
	BookID    string `json:"book_id"`
	Character string `json:"character"`
	Backstory string `json:"backstory"`
	TrueLabel int    `json:"true_label"` // Evaluation only, -1 when unlabeled
}

// Result is the adjudication outcome for one sample
type Result struct {
	ID            string         `json:"id"`
	BookID        string         `json:"book_id"`
	Character     string         `json:"character"`
	Prediction    int            `json:"prediction"` // 1 = consistent, 0 = contradictory
	TrueLabel     int            `json:"true_label"` // -1 when unlabeled
	Rationale     string         `json:"rationale"`
	Deliberations []Deliberation `json:"deliberations,omitempty"`
}
