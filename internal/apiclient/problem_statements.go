package apiclient

import (
	"context"
	"net/url"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
)

// ListProblemStatements returns a summary of every problem statement. No login needed.
func (c *Client) ListProblemStatements(ctx context.Context) (*dto.ProblemStatementSummariesResponse, error) {
	var out dto.ProblemStatementSummariesResponse
	if err := c.getAnonymous(ctx, "/problem-statements", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchProblemStatements matches category case-insensitively. No login needed.
func (c *Client) SearchProblemStatements(ctx context.Context, category string) (*dto.ProblemStatementSummariesResponse, error) {
	query := url.Values{}
	query.Set("category", category)

	var out dto.ProblemStatementSummariesResponse
	if err := c.getAnonymous(ctx, "/problem-statements/search", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProblemStatement fetches one problem statement by psid or numeric id
func (c *Client) GetProblemStatement(ctx context.Context, ref string) (*models.ProblemStatementDetail, error) {
	var out models.ProblemStatementDetail
	if err := c.getAnonymous(ctx, pathf("/problem-statements/%s", ref), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProblemStatement posts a problem statement owned by the caller
func (c *Client) CreateProblemStatement(ctx context.Context, req dto.CreateProblemStatementRequest) (*models.ProblemStatement, error) {
	var out dto.ProblemStatementResponse
	if err := c.post(ctx, "/problem-statements", req, &out); err != nil {
		return nil, err
	}
	return &out.ProblemStatement, nil
}

// ListMyProblemStatements returns the caller's uploads in full
func (c *Client) ListMyProblemStatements(ctx context.Context) (*dto.ProblemStatementsResponse, error) {
	var out dto.ProblemStatementsResponse
	if err := c.get(ctx, "/problem-statements/my", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProblemStatement changes the non-empty fields of req. Uploader only.
func (c *Client) UpdateProblemStatement(ctx context.Context, ref string, req dto.UpdateProblemStatementRequest) (*models.ProblemStatement, error) {
	var out dto.ProblemStatementResponse
	if err := c.put(ctx, pathf("/problem-statements/%s", ref), req, &out); err != nil {
		return nil, err
	}
	return &out.ProblemStatement, nil
}

// DeleteProblemStatement removes a problem statement. Uploader or faculty.
func (c *Client) DeleteProblemStatement(ctx context.Context, ref string) (*dto.DeleteProblemStatementResponse, error) {
	var out dto.DeleteProblemStatementResponse
	if err := c.delete(ctx, pathf("/problem-statements/%s", ref), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
