package apiclient

import (
	"context"
	"strconv"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
)

// Apply submits an application to a project. Students only.
func (c *Client) Apply(ctx context.Context, pid string, req dto.ApplyRequest) (*models.Application, error) {
	var out dto.ApplicationResponse
	if err := c.post(ctx, pathf("/projects/%s/apply", pid), req, &out); err != nil {
		return nil, err
	}
	return &out.Application, nil
}

// Retract withdraws the caller's application. The API refuses once it is accepted.
func (c *Client) Retract(ctx context.Context, pid string) (string, error) {
	var out dto.MessageResponse
	if err := c.delete(ctx, pathf("/projects/%s/retract", pid), &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ApplicationStatus reports whether the caller applied to pid
func (c *Client) ApplicationStatus(ctx context.Context, pid string) (*dto.ApplicationStatusResponse, error) {
	var out dto.ApplicationStatusResponse
	if err := c.get(ctx, pathf("/projects/%s/application-status", pid), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PastApplicants lists the accepted and rejected applications of a project
func (c *Client) PastApplicants(ctx context.Context, pid string) (*dto.ApplicationsResponse, error) {
	var out dto.ApplicationsResponse
	if err := c.get(ctx, pathf("/projects/%s/past-applicants", pid), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyApplications lists the caller's applications
func (c *Client) MyApplications(ctx context.Context) (*dto.ApplicationsResponse, error) {
	var out dto.ApplicationsResponse
	if err := c.get(ctx, "/applications/my", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyAppliedProjects lists (pid, status) pairs for the caller's applications
func (c *Client) MyAppliedProjects(ctx context.Context) (*dto.AppliedProjectsResponse, error) {
	var out dto.AppliedProjectsResponse
	if err := c.get(ctx, "/applications/my/applied-projects", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AllApplications lists applications to every project the caller owns. Faculty only.
func (c *Client) AllApplications(ctx context.Context) (*dto.AllApplicationsResponse, error) {
	var out dto.AllApplicationsResponse
	if err := c.get(ctx, "/applications/all", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApplicationForProject finds the caller's application to pid among MyApplications.
// It returns nil without error when there is none.
func (c *Client) ApplicationForProject(ctx context.Context, pid string) (*models.Application, error) {
	apps, err := c.MyApplications(ctx)
	if err != nil {
		return nil, err
	}
	for i := range apps.Applications {
		if apps.Applications[i].PID == pid {
			return &apps.Applications[i], nil
		}
	}
	return nil, nil
}

// UpdateApplicationStatus moves an application to status
func (c *Client) UpdateApplicationStatus(ctx context.Context, pid string, applicationID uint, status models.ApplicationStatus) (*models.Application, error) {
	var out dto.ApplicationResponse
	path := pathf("/projects/%s/applications/%s", pid, strconv.FormatUint(uint64(applicationID), 10))
	if err := c.put(ctx, path, dto.StatusUpdateRequest{Status: string(status)}, &out); err != nil {
		return nil, err
	}
	return &out.Application, nil
}

// SendFeedback attaches feedback to an application
func (c *Client) SendFeedback(ctx context.Context, pid string, applicationID uint, feedback string) (string, error) {
	var out dto.MessageResponse
	path := pathf("/projects/%s/applications/%s/feedback", pid, strconv.FormatUint(uint64(applicationID), 10))
	if err := c.post(ctx, path, dto.FeedbackRequest{Feedback: feedback}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ScheduleInterview sets the interview slot and moves the application to interview
func (c *Client) ScheduleInterview(ctx context.Context, pid string, applicationID uint, req dto.InterviewRequest) (*models.Application, error) {
	var out dto.ApplicationResponse
	path := pathf("/projects/%s/applications/%s/schedule-interview", pid, strconv.FormatUint(uint64(applicationID), 10))
	if err := c.post(ctx, path, req, &out); err != nil {
		return nil, err
	}
	return &out.Application, nil
}
