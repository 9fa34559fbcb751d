package dto

import "github.com/yigit/researchconnect/internal/app/models"

// CreateProblemStatementRequest is the body of POST /problem-statements
type CreateProblemStatementRequest struct {
	Title        string `json:"shortDesc" yaml:"shortDesc" binding:"required,nonblank"`
	Description  string `json:"longDesc" yaml:"longDesc" binding:"required,nonblank"`
	Theme        string `json:"theme" yaml:"theme" binding:"required,nonblank"`
	Category     string `json:"category" yaml:"category" binding:"required,nonblank"`
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty"`
}

// UpdateProblemStatementRequest is the body of PUT /problem-statements/{id}. Nil or empty fields are left unchanged.
type UpdateProblemStatementRequest struct {
	Title        *string `json:"shortDesc,omitempty" yaml:"shortDesc,omitempty"`
	Description  *string `json:"longDesc,omitempty" yaml:"longDesc,omitempty"`
	Theme        *string `json:"theme,omitempty" yaml:"theme,omitempty"`
	Category     *string `json:"category,omitempty" yaml:"category,omitempty"`
	Organization *string `json:"organization,omitempty" yaml:"organization,omitempty"`
}

// ProblemStatementSummariesResponse is returned by the public listings.
// Category echoes the search term.
type ProblemStatementSummariesResponse struct {
	ProblemStatements []models.ProblemStatementSummary `json:"problemStatements"`
	Category          string                           `json:"category,omitempty"`
	Count             int                              `json:"count"`
}

// ProblemStatementsResponse is returned by GET /problem-statements/my
type ProblemStatementsResponse struct {
	ProblemStatements []models.ProblemStatement `json:"problemStatements"`
	Count             int                       `json:"count"`
}

// ProblemStatementResponse wraps a created or updated problem statement
type ProblemStatementResponse struct {
	Message          string                  `json:"message"`
	ProblemStatement models.ProblemStatement `json:"problemStatement"`
}

// DeleteProblemStatementResponse confirms a deletion
type DeleteProblemStatementResponse struct {
	Message string `json:"message"`
	PSID    string `json:"psid"`
}
