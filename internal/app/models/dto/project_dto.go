package dto

// CreateProjectRequest is the body of POST /projects
type CreateProjectRequest struct {
	Name           string   `json:"name" yaml:"name" binding:"required,nonblank"`
	ShortDesc      string   `json:"sdesc" yaml:"sdesc" binding:"required,nonblank"`
	LongDesc       string   `json:"ldesc" yaml:"ldesc"`
	IsActive       bool     `json:"isActive" yaml:"isActive"`
	Tags           []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	WorkingUsers   []string `json:"workingUsers,omitempty" yaml:"workingUsers,omitempty"`
	FieldOfStudy   string   `json:"fieldOfStudy,omitempty" yaml:"fieldOfStudy,omitempty"`
	Specialization string   `json:"specialization,omitempty" yaml:"specialization,omitempty"`
	Duration       string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	PositionType   []string `json:"positionType,omitempty" yaml:"positionType,omitempty"`
	Deadline       string   `json:"deadline,omitempty" yaml:"deadline,omitempty" binding:"omitempty,deadline"`
}

// UpdateProjectRequest is the body of PUT /projects/{pid}. Nil fields are left unchanged.
type UpdateProjectRequest struct {
	Name           *string   `json:"name,omitempty" yaml:"name,omitempty"`
	ShortDesc      *string   `json:"sdesc,omitempty" yaml:"sdesc,omitempty"`
	LongDesc       *string   `json:"ldesc,omitempty" yaml:"ldesc,omitempty"`
	IsActive       *bool     `json:"isActive,omitempty" yaml:"isActive,omitempty"`
	Tags           *[]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	FieldOfStudy   *string   `json:"fieldOfStudy,omitempty" yaml:"fieldOfStudy,omitempty"`
	Specialization *string   `json:"specialization,omitempty" yaml:"specialization,omitempty"`
	Duration       *string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	PositionType   *[]string `json:"positionType,omitempty" yaml:"positionType,omitempty"`
	Deadline       *string   `json:"deadline,omitempty" yaml:"deadline,omitempty" binding:"omitempty,deadline"`
}

// ApplyRequest is the body of POST /projects/{pid}/apply
type ApplyRequest struct {
	Availability     string `json:"availability" yaml:"availability" binding:"required"`
	Motivation       string `json:"motivation" yaml:"motivation" binding:"required"`
	PriorProjects    string `json:"priorProjects" yaml:"priorProjects"`
	CVLink           string `json:"cvLink" yaml:"cvLink"`
	PublicationsLink string `json:"publicationsLink" yaml:"publicationsLink"`
}

// StatusUpdateRequest changes an application's status
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// FeedbackRequest sends feedback to an applicant
type FeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

// InterviewRequest schedules an interview
type InterviewRequest struct {
	InterviewDate    string `json:"interviewDate" yaml:"interviewDate" binding:"required"`
	InterviewTime    string `json:"interviewTime" yaml:"interviewTime" binding:"required"`
	InterviewDetails string `json:"interviewDetails,omitempty" yaml:"interviewDetails,omitempty"`
}

// ExploreQuery binds the explore filters
type ExploreQuery struct {
	Type   string `form:"type" binding:"omitempty,oneof=stu fac"`
	Search string `form:"search"`
}
