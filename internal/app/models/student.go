package models

// StudentProfile is the student's CV as edited on the profile page
type StudentProfile struct {
	UID              string   `json:"uid,omitempty" yaml:"uid,omitempty"`
	Institution      string   `json:"institution,omitempty" yaml:"institution,omitempty"`
	Degree           string   `json:"degree,omitempty" yaml:"degree,omitempty"`
	Location         string   `json:"location,omitempty" yaml:"location,omitempty"`
	Dates            string   `json:"dates,omitempty" yaml:"dates,omitempty"`
	WorkEx           string   `json:"workEx,omitempty" yaml:"workEx,omitempty"`
	Projects         []string `json:"projects,omitempty" yaml:"projects,omitempty"`
	PlatformProjects []uint   `json:"platformProjects,omitempty" yaml:"platformProjects,omitempty"`
	Skills           []string `json:"skills,omitempty" yaml:"skills,omitempty"`
	Activities       []string `json:"activities,omitempty" yaml:"activities,omitempty"`
	ResumeLink       string   `json:"resumeLink,omitempty" yaml:"resumeLink,omitempty"`
	PublicationsLink string   `json:"publicationsLink,omitempty" yaml:"publicationsLink,omitempty"`
	ResearchInterest string   `json:"researchInterest,omitempty" yaml:"researchInterest,omitempty"`
	Intention        string   `json:"intention,omitempty" yaml:"intention,omitempty"`

	EducationDetails  []Education   `json:"educationDetails,omitempty" yaml:"educationDetails,omitempty"`
	ExperienceDetails []Experience  `json:"experienceDetails,omitempty" yaml:"experienceDetails,omitempty"`
	PublicationsList  []Publication `json:"publicationsList,omitempty" yaml:"publicationsList,omitempty"`
	ProjectsDetails   []ProjectItem `json:"projectsDetails,omitempty" yaml:"projectsDetails,omitempty"`

	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	// PersonalInfo is a JSON document (phone, linkedin, github, ...)
	PersonalInfo     string `json:"personalInfo,omitempty" yaml:"personalInfo,omitempty"`
	DiscoveryEnabled *bool  `json:"discoveryEnabled,omitempty" yaml:"discoveryEnabled,omitempty"`
}

// Discoverable reports whether the profile may appear in explore results.
// Profiles opt out explicitly; an unset flag means visible.
func (p *StudentProfile) Discoverable() bool {
	return p.DiscoveryEnabled == nil || *p.DiscoveryEnabled
}

type Education struct {
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Field       string `json:"field" yaml:"field"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Current     bool   `json:"current,omitempty" yaml:"current,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Experience struct {
	Title       string `json:"title" yaml:"title"`
	Company     string `json:"company" yaml:"company"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Current     bool   `json:"current,omitempty" yaml:"current,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Publication struct {
	Title   string `json:"title" yaml:"title"`
	Authors string `json:"authors" yaml:"authors"`
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
	Link    string `json:"link,omitempty" yaml:"link,omitempty"`
}

type ProjectItem struct {
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Technologies []string `json:"technologies,omitempty" yaml:"technologies,omitempty"`
	Link         string   `json:"link,omitempty" yaml:"link,omitempty"`
}
