package apiclient

import (
	"context"
	"net/url"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
)

// ExploreFilter narrows the explore listing. Empty fields do not filter.
type ExploreFilter struct {
	Type   models.UserType
	Search string
}

func (f ExploreFilter) query() url.Values {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

// StudentProfile returns the caller's student profile
func (c *Client) StudentProfile(ctx context.Context) (*models.StudentProfile, error) {
	var out dto.StudentProfileResponse
	if err := c.get(ctx, "/profile/student", nil, &out); err != nil {
		return nil, err
	}
	return &out.Student, nil
}

// UpdateStudentProfile creates or replaces the caller's student profile
func (c *Client) UpdateStudentProfile(ctx context.Context, profile models.StudentProfile) (*models.StudentProfile, error) {
	var out dto.StudentProfileResponse
	if err := c.put(ctx, "/profile/student", profile, &out); err != nil {
		return nil, err
	}
	return &out.Student, nil
}

// Recommendations returns projects ranked against the caller's profile
func (c *Client) Recommendations(ctx context.Context) (*dto.RecommendationsResponse, error) {
	var out dto.RecommendationsResponse
	if err := c.get(ctx, "/profile/student/recommendations", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserProfile returns the public profile of uid
func (c *Client) UserProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := c.get(ctx, pathf("/profile/user/%s", uid), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Explore lists discoverable users
func (c *Client) Explore(ctx context.Context, filter ExploreFilter) (*dto.ExploreResponse, error) {
	var out dto.ExploreResponse
	if err := c.get(ctx, "/profile/explore", filter.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
