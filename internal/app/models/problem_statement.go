package models

import "time"

// ProblemStatement is an open research question posted for others to pick up
type ProblemStatement struct {
	ID           uint      `json:"id"`
	PSID         string    `json:"psid"`
	Title        string    `json:"shortDesc"`
	Description  string    `json:"longDesc"`
	Theme        string    `json:"theme"`
	Category     string    `json:"category"`
	UploadedBy   string    `json:"uploadedBy"`
	Organization string    `json:"organization"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary drops the long description for listings
func (p ProblemStatement) Summary() ProblemStatementSummary {
	return ProblemStatementSummary{
		ID:           p.ID,
		PSID:         p.PSID,
		Title:        p.Title,
		Theme:        p.Theme,
		Category:     p.Category,
		Organization: p.Organization,
		CreatedAt:    p.CreatedAt,
	}
}

// ProblemStatementSummary is the listing form of a ProblemStatement
type ProblemStatementSummary struct {
	ID           uint      `json:"id"`
	PSID         string    `json:"psid"`
	Title        string    `json:"shortDesc"`
	Theme        string    `json:"theme"`
	Category     string    `json:"category"`
	Organization string    `json:"organization"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Uploader is the public view of whoever posted a problem statement
type Uploader struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Type  UserType `json:"type"`
}

// ProblemStatementDetail is a problem statement with its uploader, when still registered
type ProblemStatementDetail struct {
	ProblemStatement
	Uploader *Uploader `json:"uploader,omitempty"`
}
