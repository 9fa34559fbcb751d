package services

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/researchconnect/internal/app/models"
)

func student() models.StudentProfile {
	return models.StudentProfile{
		UID:              "s1",
		Skills:           []string{"Go", "Machine Learning", "Databases"},
		ResearchInterest: "distributed databases consensus",
	}
}

func consensusProject(pid string) models.Project {
	return models.Project{
		PID:       pid,
		Name:      "Raft at scale",
		ShortDesc: "Distributed consensus for databases",
		Tags:      []string{"go", "databases"},
		IsActive:  true,
		Creator:   "f1",
	}
}

func TestMatchScore(t *testing.T) {
	score, reasons := MatchScore(student(), nil, consensusProject("p1"))

	assert.InDelta(t, 64.0, score, 0.05)
	assert.Contains(t, reasons, "Several relevant skills")
	assert.Contains(t, reasons, "Strong research interest alignment")
	assert.Contains(t, reasons, "Strong tag alignment")
}

func TestMatchScore_EmptyProfile(t *testing.T) {
	score, reasons := MatchScore(models.StudentProfile{UID: "s1"}, nil, consensusProject("p1"))
	assert.Zero(t, score)
	assert.Equal(t, []string{"Complete your profile for better matches"}, reasons)
}

func TestMatchScore_FieldOfStudyBonus(t *testing.T) {
	p := consensusProject("p1")
	p.FieldOfStudy = "Computer Science"

	base, _ := MatchScore(student(), nil, p)
	withPrefs, reasons := MatchScore(student(), &models.RoadmapPreferences{FieldOfStudy: "computer-science"}, p)

	assert.Greater(t, withPrefs, base)
	assert.Contains(t, reasons, "Matches your field of study")
	assert.LessOrEqual(t, withPrefs, 100.0)
}

func TestRecommend_Filters(t *testing.T) {
	svc := NewRecommendationService()
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	good := consensusProject("good")

	inactive := consensusProject("inactive")
	inactive.IsActive = false

	applied := consensusProject("applied")

	own := consensusProject("own")
	own.Creator = "s1"

	expired := consensusProject("expired")
	expired.Deadline = "2025-05-01"

	stillOpen := consensusProject("open")
	stillOpen.Deadline = "01/07/2025"

	unrelated := models.Project{PID: "poetry", ShortDesc: "Medieval poetry", Tags: []string{"poetry"}, IsActive: true, Creator: "f2"}

	recs := svc.Recommend(RecommendationInput{
		Student:  student(),
		Projects: []models.Project{good, inactive, applied, own, expired, stillOpen, unrelated},
		Applied:  map[string]bool{"applied": true},
	})

	pids := make([]string, 0, len(recs))
	for _, r := range recs {
		pids = append(pids, r.PID)
		assert.GreaterOrEqual(t, r.MatchScore, MinMatchScore)
		assert.NotEmpty(t, r.MatchReasons)
	}
	assert.ElementsMatch(t, []string{"good", "open"}, pids)
}

func TestRecommend_OrderAndCap(t *testing.T) {
	svc := NewRecommendationService()

	weaker := consensusProject("weaker")
	weaker.Tags = []string{"go"}

	projects := []models.Project{weaker}
	for i := 0; i < MaxRecommendations+5; i++ {
		projects = append(projects, consensusProject(string(rune('a'+i))))
	}

	recs := svc.Recommend(RecommendationInput{Student: student(), Projects: projects})
	require.Len(t, recs, MaxRecommendations)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].MatchScore, recs[i].MatchScore)
	}
	for _, r := range recs {
		assert.NotEqual(t, "weaker", r.PID, "lower-scoring project should fall off the capped list")
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"nlp", "vision"}, splitList(`["nlp", " vision "]`))
	assert.Equal(t, []string{"dsa", "system design"}, splitList(`{"system design": 2, "dsa": 1}`))
	assert.Equal(t, []string{"a", "b"}, splitList("a, ,b"))
	assert.Empty(t, splitList("  "))
}

func TestPreferenceHash(t *testing.T) {
	p := models.RoadmapPreferences{FieldOfStudy: "CS", Goals: "PhD"}
	h1, err := PreferenceHash(p)
	require.NoError(t, err)
	h2, err := PreferenceHash(p)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	p.Goals = "Industry"
	h3, err := PreferenceHash(p)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestRoadmapService_Research(t *testing.T) {
	rm := NewRoadmapService().Research(models.RoadmapPreferences{
		FieldOfStudy:    "Computer Science",
		ExperienceLevel: "beginner",
		Goals:           "publish a paper",
		TimeCommitment:  20,
		InterestAreas:   "NLP, Robotics",
	})

	require.Len(t, rm.Nodes, 5)
	assert.Equal(t, "foundations", rm.Nodes[0].ID)
	assert.Equal(t, "Explore NLP", rm.Nodes[1].Title)
	assert.Equal(t, "2 weeks", rm.Nodes[0].Duration)
	assert.Equal(t, "first-project", rm.Nodes[4].ID)

	for i := 0; i < len(rm.Nodes)-1; i++ {
		assert.Equal(t, []string{rm.Nodes[i+1].ID}, rm.Nodes[i].NextNodes)
	}
	assert.Empty(t, rm.Nodes[4].NextNodes)
}

func TestRoadmapService_Placement(t *testing.T) {
	rm := NewRoadmapService().Placement(models.PlacementPreferences{
		TimelineWeeks: 8,
		IntensityType: "intense",
		PrepAreas:     `["DSA", "System Design"]`,
		Goals:         "SDE internship",
	})

	require.Len(t, rm.Nodes, 3)
	assert.Equal(t, "4 weeks", rm.Nodes[0].Duration)
	assert.Equal(t, "Intense practice on DSA.", rm.Nodes[0].Description)
	assert.Equal(t, "mock-interviews", rm.Nodes[2].ID)
	assert.Contains(t, rm.Nodes[2].Description, "none listed")
	assert.Equal(t, "8 weeks", rm.TotalTime)
}

func TestRoadmapService_DedupeSharesInFlightBuild(t *testing.T) {
	svc := NewRoadmapService()
	var builds atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	build := func() (string, error) {
		builds.Add(1)
		once.Do(func() { close(started) })
		<-release
		return `{"title":"shared"}`, nil
	}

	const n = 5
	results := make([]string, n)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = svc.Dedupe(models.RoadmapPlacement, "h1", build)
	}()
	<-started

	for i := 1; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = svc.Dedupe(models.RoadmapPlacement, "h1", build)
		}(i)
	}
	// give the followers time to join the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for i, r := range results {
		assert.Equal(t, `{"title":"shared"}`, r, "caller %d", i)
	}
}

func TestRoadmapService_DedupeKeysAndErrors(t *testing.T) {
	svc := NewRoadmapService()

	_, err := svc.Dedupe(models.RoadmapResearch, "h1", func() (string, error) { return "", errors.New("generator down") })
	assert.EqualError(t, err, "generator down")

	// a finished call does not stick, and kinds never share a key
	research, err := svc.Dedupe(models.RoadmapResearch, "h1", func() (string, error) { return "research", nil })
	require.NoError(t, err)
	placement, err := svc.Dedupe(models.RoadmapPlacement, "h1", func() (string, error) { return "placement", nil })
	require.NoError(t, err)
	assert.Equal(t, "research", research)
	assert.Equal(t, "placement", placement)
}
