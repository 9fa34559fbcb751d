package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/pkg/helpers"
)

const (
	// MinMatchScore is the score a project needs to be recommended
	MinMatchScore = 20.0
	// MaxRecommendations caps the result list
	MaxRecommendations = 20
)

// RecommendationService ranks projects for a student
type RecommendationService struct {
	now func() time.Time
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService() *RecommendationService {
	return &RecommendationService{now: time.Now}
}

// RecommendationInput is everything the scorer looks at
type RecommendationInput struct {
	Student     models.StudentProfile
	Preferences *models.RoadmapPreferences
	Projects    []models.Project
	// Applied holds the pids the student already applied to
	Applied map[string]bool
}

// Recommend scores every open project the student has not applied to and
// returns the best ones, highest score first.
func (s *RecommendationService) Recommend(in RecommendationInput) []models.RecommendedProject {
	out := make([]models.RecommendedProject, 0)
	for _, p := range in.Projects {
		if !p.IsActive || in.Applied[p.PID] || p.Creator == in.Student.UID || s.pastDeadline(p.Deadline) {
			continue
		}
		score, reasons := MatchScore(in.Student, in.Preferences, p)
		if score < MinMatchScore {
			continue
		}
		out = append(out, models.RecommendedProject{Project: p, MatchScore: score, MatchReasons: reasons})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	return out
}

func (s *RecommendationService) pastDeadline(deadline string) bool {
	if deadline == "" {
		return false
	}
	d, ok := helpers.ParseDeadline(deadline)
	return ok && d.Before(s.now())
}

// MatchScore rates a project against a profile on a 0-100 scale
func MatchScore(student models.StudentProfile, prefs *models.RoadmapPreferences, p models.Project) (float64, []string) {
	hasSkills := len(student.Skills) > 0
	if !hasSkills && student.ResearchInterest == "" && student.Intention == "" {
		return 0, []string{"Complete your profile for better matches"}
	}

	var score float64
	var reasons []string

	terms := append([]string{}, p.Tags...)
	if p.FieldOfStudy != "" {
		terms = append(terms, p.FieldOfStudy)
	}
	if p.Specialization != "" {
		terms = append(terms, p.Specialization)
	}
	for _, w := range tokenize(p.ShortDesc + " " + p.LongDesc) {
		if len(w) > 4 {
			terms = append(terms, w)
		}
	}

	if hasSkills {
		score += jaccard(student.Skills, terms) * 30
		matched := 0
		for _, skill := range student.Skills {
			for _, t := range terms {
				if fuzzyMatch(skill, t) {
					matched++
					break
				}
			}
		}
		switch {
		case matched >= 3:
			reasons = append(reasons, "Multiple matching skills")
		case matched == 2:
			reasons = append(reasons, "Several relevant skills")
		case matched == 1:
			reasons = append(reasons, "Relevant skills match")
		}
	}

	if student.ResearchInterest != "" {
		sim := textSimilarity(student.ResearchInterest, p.ShortDesc+" "+p.LongDesc)
		score += sim * 25
		if sim > 0.5 {
			reasons = append(reasons, "Strong research interest alignment")
		} else if sim > 0.3 {
			reasons = append(reasons, "Moderate research interest match")
		}
	}

	if student.Intention != "" {
		if sim := textSimilarity(student.Intention, p.ShortDesc+" "+p.LongDesc); sim > 0.3 {
			score += sim * 10
			reasons = append(reasons, "Aligns with your career goals")
		}
	}

	field := 0.0
	if prefs != nil && prefs.FieldOfStudy != "" && p.FieldOfStudy != "" && fuzzyMatch(prefs.FieldOfStudy, p.FieldOfStudy) {
		field += 20
		reasons = append(reasons, "Matches your field of study")
	}
	if p.Specialization != "" {
		for _, skill := range student.Skills {
			if fuzzyMatch(skill, p.Specialization) {
				field += 15
				reasons = append(reasons, "Specialization matches your skills")
				break
			}
		}
	}
	score += math.Min(field, 20)

	if len(p.Tags) > 0 && hasSkills {
		tagScore := jaccard(student.Skills, p.Tags) * 15
		score += tagScore
		if tagScore > 10 {
			reasons = append(reasons, "Strong tag alignment")
		}
	}

	return math.Round(math.Min(score, 100)*10) / 10, reasons
}

func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// fuzzyMatch treats "machine-learning" and "Machine Learning" as equal,
// and accepts containment either way
func fuzzyMatch(a, b string) bool {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setB := make(map[string]bool, len(b))
	for _, s := range b {
		setB[normalize(s)] = true
	}
	union := make(map[string]bool, len(a)+len(b))
	for k := range setB {
		union[k] = true
	}
	inter := 0
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		n := normalize(s)
		if seen[n] {
			continue
		}
		seen[n] = true
		union[n] = true
		if setB[n] {
			inter++
			continue
		}
		for k := range setB {
			if fuzzyMatch(n, k) {
				inter++
				break
			}
		}
	}
	return math.Min(float64(inter)/float64(len(union))*2, 1)
}

// textSimilarity is the share of significant words of a found in b
func textSimilarity(a, b string) float64 {
	words := make(map[string]bool)
	for _, w := range tokenize(b) {
		words[w] = true
	}
	total, hits := 0, 0
	for _, w := range tokenize(a) {
		if len(w) <= 3 {
			continue
		}
		total++
		if words[w] {
			hits++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
