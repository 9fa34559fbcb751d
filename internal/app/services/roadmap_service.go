package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/yigit/researchconnect/internal/app/models"
)

// History markers for how a roadmap reached the user
const (
	// GeneratedBy marks roadmaps produced by the rule-based generator
	GeneratedBy = "template"
	// CachedBy marks roadmaps served from the shared cache
	CachedBy = "template-cached"
	// SharedBy marks roadmaps another in-flight request generated
	SharedBy = "template-dedup-cached"
)

// RoadmapService turns a questionnaire into a roadmap
type RoadmapService struct {
	inflight singleflight.Group
}

// NewRoadmapService creates a new RoadmapService
func NewRoadmapService() *RoadmapService {
	return &RoadmapService{}
}

// Dedupe runs build once for concurrent callers with the same kind and hash.
// Callers that arrive while it runs wait and get its result; build only runs
// in the first caller's goroutine.
func (s *RoadmapService) Dedupe(kind, hash string, build func() (string, error)) (string, error) {
	v, err, _ := s.inflight.Do(kind+":"+hash, func() (interface{}, error) {
		return build()
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// PreferenceHash fingerprints a questionnaire so an unchanged one reuses its roadmap
func PreferenceHash(prefs interface{}) (string, error) {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return "", fmt.Errorf("failed to hash preferences: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// Research builds a research roadmap: foundations, one node per interest area, then the research track
func (s *RoadmapService) Research(prefs models.RoadmapPreferences) models.Roadmap {
	hours := prefs.TimeCommitment
	if hours <= 0 {
		hours = 5
	}
	pace := "4 weeks"
	if hours >= 15 {
		pace = "2 weeks"
	}

	nodes := []models.RoadmapNode{{
		ID:          "foundations",
		Title:       "Foundations of " + prefs.FieldOfStudy,
		Description: fmt.Sprintf("Review the core material of %s at the %s level.", prefs.FieldOfStudy, prefs.ExperienceLevel),
		Category:    "foundation",
		Duration:    pace,
		Resources:   []string{"Introductory course notes", "Survey papers in " + prefs.FieldOfStudy},
		Skills:      []string{prefs.FieldOfStudy},
	}}

	for i, area := range splitList(prefs.InterestAreas) {
		nodes = append(nodes, models.RoadmapNode{
			ID:          fmt.Sprintf("interest-%d", i+1),
			Title:       "Explore " + area,
			Description: fmt.Sprintf("Read recent work on %s and reproduce one result.", area),
			Category:    "specialization",
			Duration:    pace,
			Resources:   []string{"Recent conference proceedings on " + area},
			Skills:      []string{area},
		})
	}

	nodes = append(nodes,
		models.RoadmapNode{
			ID:          "literature-review",
			Title:       "Literature review",
			Description: "Write a short review that frames an open question.",
			Category:    "research",
			Duration:    pace,
			Resources:   []string{"Google Scholar", "arXiv"},
			Skills:      []string{"academic writing"},
		},
		models.RoadmapNode{
			ID:          "first-project",
			Title:       "First research project",
			Description: "Join a faculty project on the platform and contribute an experiment. Goal: " + prefs.Goals,
			Category:    "project",
			Duration:    "8 weeks",
			Resources:   []string{"ResearchConnect project listings"},
			Skills:      []string{"experiment design"},
		},
	)
	link(nodes)

	return models.Roadmap{
		Title:       prefs.FieldOfStudy + " research roadmap",
		Description: fmt.Sprintf("A path from %s-level foundations to a first research contribution.", prefs.ExperienceLevel),
		TotalTime:   fmt.Sprintf("%d steps at %d hours/week", len(nodes), hours),
		Nodes:       nodes,
	}
}

// Placement builds a week-by-week placement preparation roadmap
func (s *RoadmapService) Placement(prefs models.PlacementPreferences) models.Roadmap {
	areas := splitList(prefs.PrepAreas)
	if len(areas) == 0 {
		areas = []string{"Data structures and algorithms"}
	}

	weeks := prefs.TimelineWeeks
	per := weeks / len(areas)
	if per < 1 {
		per = 1
	}

	nodes := make([]models.RoadmapNode, 0, len(areas)+1)
	for i, area := range areas {
		nodes = append(nodes, models.RoadmapNode{
			ID:          fmt.Sprintf("prep-%d", i+1),
			Title:       area,
			Description: fmt.Sprintf("%s practice on %s.", capitalize(prefs.IntensityType), area),
			Category:    "preparation",
			Duration:    fmt.Sprintf("%d weeks", per),
			Resources:   []string{"Practice problem sets", "Mock interviews"},
			Skills:      []string{area},
		})
	}
	nodes = append(nodes, models.RoadmapNode{
		ID:          "mock-interviews",
		Title:       "Mock interviews",
		Description: "Full interview loops under time pressure. Targets: " + orNone(prefs.TargetCompanies),
		Category:    "assessment",
		Duration:    "1 week",
		Resources:   []string{"Peer mock interviews"},
		Skills:      []string{"communication"},
	})
	link(nodes)

	return models.Roadmap{
		Title:       fmt.Sprintf("%d-week placement plan", weeks),
		Description: "Preparation plan for: " + prefs.Goals,
		TotalTime:   fmt.Sprintf("%d weeks", weeks),
		Nodes:       nodes,
	}
}

func link(nodes []models.RoadmapNode) {
	for i := range nodes {
		nodes[i].NextNodes = []string{}
		if i+1 < len(nodes) {
			nodes[i].NextNodes = append(nodes[i].NextNodes, nodes[i+1].ID)
		}
	}
}

// splitList accepts a JSON array, a JSON object (its keys) or a comma separated list
func splitList(s string) []string {
	s = strings.TrimSpace(s)
	var arr []string
	if err := json.Unmarshal([]byte(s), &arr); err == nil {
		return trimAll(arr)
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err == nil {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return trimAll(keys)
	}
	return trimAll(strings.Split(s, ","))
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none listed"
	}
	return s
}
