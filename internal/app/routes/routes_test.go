package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/researchconnect/internal/app/controllers"
	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/app/models/dto"
	"github.com/yigit/researchconnect/internal/app/repositories"
	"github.com/yigit/researchconnect/internal/app/routes"
	"github.com/yigit/researchconnect/internal/app/services"
	"github.com/yigit/researchconnect/internal/middleware"
	"github.com/yigit/researchconnect/internal/pkg/auth"
)

type sentMail struct {
	kind  string
	to    string
	code  string
	token string
}

// recordingMailer keeps every message so tests can read codes and tokens back
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) record(s sentMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, s)
	return nil
}

func (m *recordingMailer) SendVerificationCode(to, _, code, token string) error {
	return m.record(sentMail{kind: "verify", to: to, code: code, token: token})
}

func (m *recordingMailer) SendPasswordReset(to, _, token string) error {
	return m.record(sentMail{kind: "reset", to: to, token: token})
}

func (m *recordingMailer) SendWelcomeEmail(to, _ string) error {
	return m.record(sentMail{kind: "welcome", to: to})
}

func (m *recordingMailer) SendApplicationUpdate(to, _, _, subject, _ string) error {
	return m.record(sentMail{kind: "update:" + subject, to: to})
}

// last returns the most recent mail of kind sent to addr
func (m *recordingMailer) last(kind, addr string) (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].kind == kind && m.sent[i].to == addr {
			return m.sent[i], true
		}
	}
	return sentMail{}, false
}

type harness struct {
	t      *testing.T
	router *gin.Engine
	mailer *recordingMailer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithCooldown(t, nil)
}

func newHarnessWithCooldown(t *testing.T, cooldown *middleware.Cooldown) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repositories.NewRepositories()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "routes-test", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	mailer := &recordingMailer{}
	lgr := zerolog.Nop()

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewAuthController(repos, jwtService, mailer, lgr),
		controllers.NewProjectController(repos, lgr),
		controllers.NewApplicationController(repos, mailer, lgr),
		controllers.NewProfileController(repos, services.NewRecommendationService(), lgr),
		controllers.NewRoadmapController(repos, services.NewRoadmapService(), cooldown, lgr),
		controllers.NewProblemStatementController(repos, lgr),
		middleware.NewAuthMiddleware(jwtService),
	)
	return &harness{t: t, router: router, mailer: mailer}
}

func (h *harness) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

const password = "secret123"

// signupVerified registers an account, confirms it with the mailed code and logs in
func (h *harness) signupVerified(name, addr string, userType models.UserType) (string, models.User) {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/v1/auth/signup", "", dto.SignupRequest{Name: name, Email: addr, Password: password, Type: userType})
	require.Equal(h.t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode[dto.SignupResponse](h.t, rec).User

	mail, ok := h.mailer.last("verify", addr)
	require.True(h.t, ok)
	rec = h.do(http.MethodPost, "/v1/auth/verify-code", "", dto.VerifyCodeRequest{Email: addr, Code: mail.code})
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(http.MethodPost, "/v1/auth/login", "", dto.LoginRequest{Email: addr, Password: password})
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[dto.TokenResponse](h.t, rec).Token, user
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Services are Healthy"}`, rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	h := newHarness(t)

	t.Run("invalid user type", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/v1/auth/signup", "", dto.SignupRequest{Name: "X", Email: "x@uni.edu", Password: password, Type: "admin"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid user type. Must be 'fac' or 'stu'", decode[dto.ErrorResponse](t, rec).Error)
	})

	rec := h.do(http.MethodPost, "/v1/auth/signup", "", dto.SignupRequest{Name: "Ada", Email: "ada@uni.edu", Password: password, Type: models.UserTypeStudent})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("unverified login", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/v1/auth/login", "", dto.LoginRequest{Email: "ada@uni.edu", Password: password})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		body := decode[dto.ErrorResponse](t, rec)
		require.NotNil(t, body.EmailVerified)
		assert.False(t, *body.EmailVerified)
	})

	t.Run("wrong code", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/v1/auth/verify-code", "", dto.VerifyCodeRequest{Email: "ada@uni.edu", Code: "000000"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("verify by link", func(t *testing.T) {
		mail, ok := h.mailer.last("verify", "ada@uni.edu")
		require.True(t, ok)
		rec := h.do(http.MethodPost, "/v1/auth/verify-email", "", dto.TokenRequest{Token: mail.token})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		_, welcomed := h.mailer.last("welcome", "ada@uni.edu")
		assert.True(t, welcomed)

		rec = h.do(http.MethodPost, "/v1/auth/send-verification-code", "", dto.EmailRequest{Email: "ada@uni.edu"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	var token string
	t.Run("login and me", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/v1/auth/login", "", dto.LoginRequest{Email: "ada@uni.edu", Password: "wrong-pass"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = h.do(http.MethodPost, "/v1/auth/login", "", dto.LoginRequest{Email: "ada@uni.edu", Password: password})
		require.Equal(t, http.StatusOK, rec.Code)
		token = decode[dto.TokenResponse](t, rec).Token

		rec = h.do(http.MethodGet, "/v1/auth/me", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		me := decode[dto.MeResponse](t, rec)
		assert.Equal(t, "ada@uni.edu", me.User.Email)
		assert.True(t, me.User.EmailVerified)
	})

	t.Run("refresh", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/v1/auth/refresh", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, decode[dto.TokenResponse](t, rec).Token)

		rec = h.do(http.MethodPost, "/v1/auth/refresh", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("password reset", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/v1/auth/forgot-password", "", dto.EmailRequest{Email: "nobody@uni.edu"})
		assert.Equal(t, http.StatusOK, rec.Code)
		_, sent := h.mailer.last("reset", "nobody@uni.edu")
		assert.False(t, sent)

		rec = h.do(http.MethodPost, "/v1/auth/forgot-password", "", dto.EmailRequest{Email: "ada@uni.edu"})
		require.Equal(t, http.StatusOK, rec.Code)
		mail, ok := h.mailer.last("reset", "ada@uni.edu")
		require.True(t, ok)

		rec = h.do(http.MethodPost, "/v1/auth/verify-reset-token", "", dto.TokenRequest{Token: mail.token})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ada@uni.edu", decode[dto.VerifyResetTokenResponse](t, rec).Email)

		rec = h.do(http.MethodPost, "/v1/auth/reset-password", "", dto.ResetPasswordRequest{Token: mail.token, NewPassword: "brand-new"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = h.do(http.MethodPost, "/v1/auth/reset-password", "", dto.ResetPasswordRequest{Token: mail.token, NewPassword: "again-new"})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "reset tokens are single use")

		rec = h.do(http.MethodPost, "/v1/auth/login", "", dto.LoginRequest{Email: "ada@uni.edu", Password: "brand-new"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("protected route without token", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/v1/projects", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authorization header required", decode[dto.ErrorResponse](t, rec).Error)
	})
}

func TestProjectLifecycle(t *testing.T) {
	h := newHarness(t)
	fac, _ := h.signupVerified("Prof Turing", "turing@uni.edu", models.UserTypeFaculty)
	other, _ := h.signupVerified("Prof Hopper", "hopper@uni.edu", models.UserTypeFaculty)
	stu, student := h.signupVerified("Ada", "ada@uni.edu", models.UserTypeStudent)

	create := dto.CreateProjectRequest{Name: "Raft at scale", ShortDesc: "Distributed consensus", IsActive: true, Tags: []string{"go", "databases"}}

	rec := h.do(http.MethodPost, "/v1/projects", stu, create)
	assert.Equal(t, http.StatusForbidden, rec.Code, "students cannot post projects")

	rec = h.do(http.MethodPost, "/v1/projects", fac, create)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	project := decode[models.Project](t, rec)
	require.NotEmpty(t, project.PID)

	rec = h.do(http.MethodPost, "/v1/projects", fac, create)
	assert.Equal(t, http.StatusConflict, rec.Code)

	base := "/v1/projects/" + project.PID

	t.Run("read", func(t *testing.T) {
		rec := h.do(http.MethodGet, base, stu, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[models.Project](t, rec)
		require.NotNil(t, got.User)
		assert.Equal(t, "Prof Turing", got.User.Name)

		rec = h.do(http.MethodGet, "/v1/projects/student?page=1&pageSize=10", stu, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[dto.StudentProjectsResponse](t, rec)
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, 10, page.PageSize)

		rec = h.do(http.MethodGet, "/v1/projects/my", other, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, decode[dto.ProjectListResponse](t, rec).Count)

		rec = h.do(http.MethodGet, "/v1/projects/unknown", stu, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("only the creator edits", func(t *testing.T) {
		name := "Raft at planet scale"
		rec := h.do(http.MethodPut, base, other, dto.UpdateProjectRequest{Name: &name})
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = h.do(http.MethodPut, base, fac, dto.UpdateProjectRequest{Name: &name})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decode[dto.ProjectResponse](t, rec)
		assert.Equal(t, name, updated.Project.Name)
		assert.Equal(t, []string{"go", "databases"}, updated.Project.Tags)
	})

	var appID uint
	t.Run("apply", func(t *testing.T) {
		apply := dto.ApplyRequest{Availability: "20h/week", Motivation: "I like consensus"}
		rec := h.do(http.MethodPost, base+"/apply", fac, apply)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = h.do(http.MethodPost, base+"/apply", stu, apply)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		app := decode[dto.ApplicationResponse](t, rec).Application
		assert.Equal(t, models.StatusUnderReview, app.Status)
		appID = app.ID

		rec = h.do(http.MethodPost, base+"/apply", stu, apply)
		assert.Equal(t, http.StatusConflict, rec.Code)

		_, notified := h.mailer.last("update:New application received", "turing@uni.edu")
		assert.True(t, notified)

		rec = h.do(http.MethodGet, base+"/application-status", stu, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		status := decode[dto.ApplicationStatusResponse](t, rec)
		assert.True(t, status.HasApplied)

		rec = h.do(http.MethodGet, "/v1/applications/my/applied-projects", stu, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []models.AppliedProject{{PID: project.PID, Status: models.StatusUnderReview}},
			decode[dto.AppliedProjectsResponse](t, rec).AppliedProjects)
	})

	appPath := base + "/applications/" + jsonNumber(appID)

	t.Run("review", func(t *testing.T) {
		rec := h.do(http.MethodGet, base+"/applications", other, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = h.do(http.MethodGet, base+"/applications", fac, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		apps := decode[dto.ApplicationsResponse](t, rec)
		require.Equal(t, 1, apps.Count)
		require.NotNil(t, apps.Applications[0].User)
		assert.Equal(t, "Ada", apps.Applications[0].User.Name)

		rec = h.do(http.MethodPut, appPath, fac, dto.StatusUpdateRequest{Status: "maybe"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = h.do(http.MethodPost, appPath+"/schedule-interview", fac,
			dto.InterviewRequest{InterviewDate: "2025-07-01", InterviewTime: "10:00", InterviewDetails: "Room 4"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, models.StatusInterview, decode[dto.ApplicationResponse](t, rec).Application.Status)

		rec = h.do(http.MethodPost, appPath+"/feedback", fac, dto.FeedbackRequest{Feedback: "Great chat"})
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = h.do(http.MethodPut, appPath, fac, dto.StatusUpdateRequest{Status: string(models.StatusAccepted)})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = h.do(http.MethodGet, base+"/working-users", stu, nil)
		require.Equal(t, http.StatusOK, rec.Code, "members can see the team")
		members := decode[dto.WorkingUsersResponse](t, rec)
		require.Equal(t, 1, members.Count)
		assert.Equal(t, student.UID, members.WorkingUsers[0].UID)

		rec = h.do(http.MethodGet, base+"/working-users", other, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = h.do(http.MethodDelete, base+"/retract", stu, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Cannot retract an accepted application", decode[dto.ErrorResponse](t, rec).Error)

		rec = h.do(http.MethodGet, "/v1/applications/all", fac, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		all := decode[dto.AllApplicationsResponse](t, rec)
		assert.Equal(t, 1, all.Total)
	})

	t.Run("remove member", func(t *testing.T) {
		rec := h.do(http.MethodDelete, base+"/working-users/"+student.UID, other, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = h.do(http.MethodDelete, base+"/working-users/"+student.UID, fac, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = h.do(http.MethodGet, base+"/past-applicants", fac, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		past := decode[dto.ApplicationsResponse](t, rec)
		require.Equal(t, 1, past.Count)
		assert.Equal(t, models.StatusRejected, past.Applications[0].Status)
	})

	t.Run("delete", func(t *testing.T) {
		rec := h.do(http.MethodDelete, base, other, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = h.do(http.MethodDelete, base, fac, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, project.PID, decode[dto.DeleteProjectResponse](t, rec).ProjectID)

		rec = h.do(http.MethodGet, "/v1/applications/my", stu, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, decode[dto.ApplicationsResponse](t, rec).Count)
	})
}

func TestProjectValidation(t *testing.T) {
	h := newHarness(t)
	fac, _ := h.signupVerified("Prof", "prof@uni.edu", models.UserTypeFaculty)

	rec := h.do(http.MethodPost, "/v1/projects", fac, dto.CreateProjectRequest{Name: "Raft", ShortDesc: "x", Deadline: "next spring"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, "Deadline", body.Field)

	rec = h.do(http.MethodPost, "/v1/projects", fac, dto.CreateProjectRequest{Name: "  ", ShortDesc: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodPost, "/v1/projects", fac, dto.CreateProjectRequest{Name: "Raft", ShortDesc: "x", Deadline: "01/07/2030"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	pid := decode[models.Project](t, rec).PID

	bad := "soon"
	rec = h.do(http.MethodPut, "/v1/projects/"+pid, fac, dto.UpdateProjectRequest{Deadline: &bad})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRetractBeforeDecision(t *testing.T) {
	h := newHarness(t)
	fac, _ := h.signupVerified("Prof", "prof@uni.edu", models.UserTypeFaculty)
	stu, _ := h.signupVerified("Stu", "stu@uni.edu", models.UserTypeStudent)

	rec := h.do(http.MethodPost, "/v1/projects", fac, dto.CreateProjectRequest{Name: "Closed", ShortDesc: "x", IsActive: false})
	require.Equal(t, http.StatusCreated, rec.Code)
	closed := decode[models.Project](t, rec)

	rec = h.do(http.MethodPost, "/v1/projects/"+closed.PID+"/apply", stu, dto.ApplyRequest{Availability: "a", Motivation: "m"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodPost, "/v1/projects", fac, dto.CreateProjectRequest{Name: "Open", ShortDesc: "x", IsActive: true})
	require.Equal(t, http.StatusCreated, rec.Code)
	open := decode[models.Project](t, rec)

	rec = h.do(http.MethodDelete, "/v1/projects/"+open.PID+"/retract", stu, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodPost, "/v1/projects/"+open.PID+"/apply", stu, dto.ApplyRequest{Availability: "a", Motivation: "m"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = h.do(http.MethodDelete, "/v1/projects/"+open.PID+"/retract", stu, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodGet, "/v1/projects/"+open.PID+"/application-status", stu, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[dto.ApplicationStatusResponse](t, rec).HasApplied)
}

func TestProfileAndRecommendations(t *testing.T) {
	h := newHarness(t)
	fac, _ := h.signupVerified("Prof", "prof@uni.edu", models.UserTypeFaculty)
	stu, student := h.signupVerified("Ada", "ada@uni.edu", models.UserTypeStudent)
	hidden, _ := h.signupVerified("Hidden", "hidden@uni.edu", models.UserTypeStudent)

	rec := h.do(http.MethodGet, "/v1/profile/student/recommendations", stu, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "recommendations need a profile")

	profile := models.StudentProfile{
		Institution:      "MIT",
		Skills:           []string{"Go", "Databases"},
		ResearchInterest: "distributed databases consensus",
	}
	rec = h.do(http.MethodPut, "/v1/profile/student", stu, profile)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = h.do(http.MethodPut, "/v1/profile/student", stu, profile)
	require.Equal(t, http.StatusOK, rec.Code)

	off := false
	rec = h.do(http.MethodPut, "/v1/profile/student", hidden, models.StudentProfile{Institution: "MIT", DiscoveryEnabled: &off})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = h.do(http.MethodPost, "/v1/projects", fac, dto.CreateProjectRequest{
		Name: "Raft", ShortDesc: "Distributed consensus for databases", IsActive: true, Tags: []string{"go", "databases"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("recommendations", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/v1/profile/student/recommendations", stu, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		recs := decode[dto.RecommendationsResponse](t, rec)
		require.Equal(t, 1, recs.Count)
		assert.GreaterOrEqual(t, recs.Recommendations[0].MatchScore, services.MinMatchScore)
	})

	t.Run("public profile", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/v1/profile/user/"+student.UID, fac, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[models.UserProfile](t, rec)
		require.NotNil(t, got.Student)
		assert.Equal(t, "MIT", got.Student.Institution)
	})

	t.Run("explore", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/v1/profile/explore?type=stu&search=mit", fac, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		users := decode[dto.ExploreResponse](t, rec)
		require.Equal(t, 1, users.Count, "profiles with discovery off are hidden")
		assert.Equal(t, student.UID, users.Users[0].UID)

		rec = h.do(http.MethodGet, "/v1/profile/explore?type=admin", fac, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("faculty have no student profile", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/v1/profile/student", fac, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRoadmapCache(t *testing.T) {
	h := newHarness(t)
	stu, _ := h.signupVerified("Ada", "ada@uni.edu", models.UserTypeStudent)
	peer, _ := h.signupVerified("Grace", "grace@uni.edu", models.UserTypeStudent)

	rec := h.do(http.MethodPost, "/v1/roadmap/generate", stu, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	prefs := models.RoadmapPreferences{
		FieldOfStudy:    "Computer Science",
		ExperienceLevel: "beginner",
		Goals:           "publish",
		TimeCommitment:  10,
		InterestAreas:   "NLP",
	}
	rec = h.do(http.MethodPost, "/v1/roadmap/preferences", stu, prefs)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(http.MethodPost, "/v1/roadmap/generate", stu, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[dto.RoadmapResponse](t, rec)
	assert.False(t, first.Cached)
	assert.NotEmpty(t, first.Roadmap.Nodes)

	rec = h.do(http.MethodPost, "/v1/roadmap/generate", stu, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[dto.RoadmapResponse](t, rec)
	assert.True(t, second.Cached)
	assert.NotEqual(t, first.RoadmapID, second.RoadmapID, "a cache hit is recorded as a new history entry")
	assert.Equal(t, first.Roadmap, second.Roadmap)

	t.Run("cache is shared across users", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/v1/roadmap/preferences", peer, prefs)
		require.Equal(t, http.StatusCreated, rec.Code)
		rec = h.do(http.MethodPost, "/v1/roadmap/generate", peer, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[dto.RoadmapResponse](t, rec)
		assert.True(t, got.Cached)
		assert.Equal(t, first.Roadmap, got.Roadmap)
	})

	prefs.Goals = "industry"
	rec = h.do(http.MethodPost, "/v1/roadmap/preferences", stu, prefs)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = h.do(http.MethodPost, "/v1/roadmap/generate", stu, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[dto.RoadmapResponse](t, rec).Cached)

	rec = h.do(http.MethodGet, "/v1/roadmap/history", stu, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[[]models.RoadmapRecord](t, rec)
	require.Len(t, history, 3)
	assert.Equal(t, services.GeneratedBy, history[0].GeneratedBy)
	assert.Equal(t, services.CachedBy, history[1].GeneratedBy)
	assert.Equal(t, services.GeneratedBy, history[2].GeneratedBy)
}

var placementPrefs = models.PlacementPreferences{
	TimelineWeeks:  8,
	TimeCommitment: 10,
	IntensityType:  "regular",
	PrepAreas:      "dsa, system design",
	CurrentLevels:  "beginner",
	Goals:          "internship",
}

func TestPlacementRoadmapHistory(t *testing.T) {
	h := newHarness(t)
	stu, _ := h.signupVerified("Ada", "ada@uni.edu", models.UserTypeStudent)

	rec := h.do(http.MethodPost, "/v1/roadmap/placement/preferences", stu, placementPrefs)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(http.MethodPost, "/v1/roadmap/placement/generate", stu, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[dto.RoadmapResponse](t, rec)
	assert.False(t, first.Cached)

	rec = h.do(http.MethodPost, "/v1/roadmap/placement/generate", stu, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[dto.RoadmapResponse](t, rec)
	assert.True(t, second.Cached)
	assert.Equal(t, first.RoadmapID, second.RoadmapID, "unchanged placement answers reuse the history entry")

	rec = h.do(http.MethodGet, "/v1/roadmap/history", stu, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.RoadmapRecord](t, rec), 1)
}

func TestPlacementRoadmapCooldown(t *testing.T) {
	h := newHarnessWithCooldown(t, middleware.NewCooldown(time.Hour))
	stu, _ := h.signupVerified("Ada", "ada@uni.edu", models.UserTypeStudent)
	peer, _ := h.signupVerified("Grace", "grace@uni.edu", models.UserTypeStudent)

	for _, token := range []string{stu, peer} {
		rec := h.do(http.MethodPost, "/v1/roadmap/placement/preferences", token, placementPrefs)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := h.do(http.MethodPost, "/v1/roadmap/placement/generate", stu, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodPost, "/v1/roadmap/placement/generate", stu, nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, dto.ErrorCodeRateLimited, body.Code)
	assert.Positive(t, body.RetryAfter)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	rec = h.do(http.MethodPost, "/v1/roadmap/placement/generate", peer, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "the cooldown is per user")

	rec = h.do(http.MethodPost, "/v1/roadmap/generate", stu, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "research generation has no cooldown")
}

func TestProblemStatements(t *testing.T) {
	h := newHarness(t)
	fac, _ := h.signupVerified("Prof", "prof@uni.edu", models.UserTypeFaculty)
	stu, student := h.signupVerified("Ada", "ada@uni.edu", models.UserTypeStudent)
	other, _ := h.signupVerified("Grace", "grace@uni.edu", models.UserTypeStudent)

	create := dto.CreateProblemStatementRequest{
		Title:        "Flood forecasting",
		Description:  "Predict river floods from sensor data",
		Theme:        "Disaster management",
		Category:     "Software",
		Organization: "Water board",
	}

	rec := h.do(http.MethodPost, "/v1/problem-statements", "", create)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(http.MethodPost, "/v1/problem-statements", stu, dto.CreateProblemStatementRequest{Title: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodPost, "/v1/problem-statements", stu, create)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dto.ProblemStatementResponse](t, rec).ProblemStatement
	assert.NotEmpty(t, created.PSID)
	assert.Equal(t, student.UID, created.UploadedBy)

	rec = h.do(http.MethodPost, "/v1/problem-statements", stu, create)
	assert.Equal(t, http.StatusConflict, rec.Code)

	hardware := create
	hardware.Title, hardware.Category = "Crop sensor", "Hardware"
	rec = h.do(http.MethodPost, "/v1/problem-statements", other, hardware)
	require.Equal(t, http.StatusCreated, rec.Code)
	crop := decode[dto.ProblemStatementResponse](t, rec).ProblemStatement

	t.Run("public listing and search", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/v1/problem-statements", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		list := decode[dto.ProblemStatementSummariesResponse](t, rec)
		require.Equal(t, 2, list.Count)
		assert.Equal(t, created.PSID, list.ProblemStatements[0].PSID)

		rec = h.do(http.MethodGet, "/v1/problem-statements/search?category=soft", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		found := decode[dto.ProblemStatementSummariesResponse](t, rec)
		require.Equal(t, 1, found.Count)
		assert.Equal(t, "soft", found.Category)
		assert.Equal(t, created.PSID, found.ProblemStatements[0].PSID)

		rec = h.do(http.MethodGet, "/v1/problem-statements/search", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get by psid or id", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/v1/problem-statements/"+created.PSID, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[models.ProblemStatementDetail](t, rec)
		assert.Equal(t, create.Description, got.Description)
		require.NotNil(t, got.Uploader)
		assert.Equal(t, "Ada", got.Uploader.Name)

		rec = h.do(http.MethodGet, "/v1/problem-statements/"+jsonNumber(crop.ID), "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, crop.PSID, decode[models.ProblemStatementDetail](t, rec).PSID)

		rec = h.do(http.MethodGet, "/v1/problem-statements/missing", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("my problem statements", func(t *testing.T) {
		rec := h.do(http.MethodGet, "/v1/problem-statements/my", stu, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		mine := decode[dto.ProblemStatementsResponse](t, rec)
		require.Equal(t, 1, mine.Count)
		assert.Equal(t, create.Description, mine.ProblemStatements[0].Description)
	})

	t.Run("only the uploader updates", func(t *testing.T) {
		theme := "Climate"
		rec := h.do(http.MethodPut, "/v1/problem-statements/"+created.PSID, other, dto.UpdateProblemStatementRequest{Theme: &theme})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = h.do(http.MethodPut, "/v1/problem-statements/"+created.PSID, stu, dto.UpdateProblemStatementRequest{Theme: &theme})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decode[dto.ProblemStatementResponse](t, rec).ProblemStatement
		assert.Equal(t, theme, updated.Theme)
		assert.Equal(t, create.Title, updated.Title)
	})

	t.Run("uploader or faculty delete", func(t *testing.T) {
		rec := h.do(http.MethodDelete, "/v1/problem-statements/"+created.PSID, other, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = h.do(http.MethodDelete, "/v1/problem-statements/"+crop.PSID, fac, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, crop.PSID, decode[dto.DeleteProblemStatementResponse](t, rec).PSID)

		rec = h.do(http.MethodDelete, "/v1/problem-statements/"+created.PSID, stu, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = h.do(http.MethodGet, "/v1/problem-statements", "", nil)
		assert.Equal(t, 0, decode[dto.ProblemStatementSummariesResponse](t, rec).Count)
	})
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
