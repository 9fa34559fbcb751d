package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/researchconnect/internal/app/models"
	"github.com/yigit/researchconnect/internal/pkg/apperrors"
)

// cacheEntry is a roadmap shared by everyone who submits the same questionnaire
type cacheEntry struct {
	data  string
	usage int
}

// RoadmapRepository stores questionnaires, generated roadmaps and the roadmap cache
type RoadmapRepository struct {
	mu        sync.RWMutex
	research  map[string]models.RoadmapPreferences
	placement map[string]models.PlacementPreferences
	records   []models.RoadmapRecord
	cache     map[string]*cacheEntry
	nextID    uint
	now       func() time.Time
}

// NewRoadmapRepository creates a new RoadmapRepository
func NewRoadmapRepository() *RoadmapRepository {
	return &RoadmapRepository{
		research:  make(map[string]models.RoadmapPreferences),
		placement: make(map[string]models.PlacementPreferences),
		cache:     make(map[string]*cacheEntry),
		now:       time.Now,
	}
}

func cacheKey(kind, hash string) string {
	return kind + ":" + hash
}

// CachedRoadmap returns the roadmap of kind built from preferences hashing to hash,
// whoever generated it, and counts the reuse
func (r *RoadmapRepository) CachedRoadmap(ctx context.Context, kind, hash string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.cache[cacheKey(kind, hash)]
	if !ok {
		return "", false
	}
	e.usage++
	return e.data, true
}

// CacheRoadmap stores data for kind and hash. An existing entry wins.
func (r *RoadmapRepository) CacheRoadmap(ctx context.Context, kind, hash, data string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cache[cacheKey(kind, hash)]; !ok {
		r.cache[cacheKey(kind, hash)] = &cacheEntry{data: data, usage: 1}
	}
}

// CacheUsage reports how many times the cached roadmap was served, its creation included
func (r *RoadmapRepository) CacheUsage(ctx context.Context, kind, hash string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.cache[cacheKey(kind, hash)]; ok {
		return e.usage
	}
	return 0
}

// SavePreferences stores uid's research questionnaire and reports whether it was created
func (r *RoadmapRepository) SavePreferences(ctx context.Context, uid string, prefs models.RoadmapPreferences) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.research[uid]
	r.research[uid] = prefs
	return !existed
}

// Preferences returns uid's research questionnaire
func (r *RoadmapRepository) Preferences(ctx context.Context, uid string) (models.RoadmapPreferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.research[uid]
	if !ok {
		return models.RoadmapPreferences{}, apperrors.NewResourceNotFoundError("No preferences found")
	}
	return p, nil
}

// SavePlacementPreferences stores uid's placement questionnaire and reports whether it was created
func (r *RoadmapRepository) SavePlacementPreferences(ctx context.Context, uid string, prefs models.PlacementPreferences) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.placement[uid]
	r.placement[uid] = prefs
	return !existed
}

// PlacementPreferences returns uid's placement questionnaire
func (r *RoadmapRepository) PlacementPreferences(ctx context.Context, uid string) (models.PlacementPreferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.placement[uid]
	if !ok {
		return models.PlacementPreferences{}, apperrors.NewResourceNotFoundError("No placement preferences found")
	}
	return p, nil
}

// FindByHash returns uid's roadmap of kind generated from the same preferences
func (r *RoadmapRepository) FindByHash(ctx context.Context, uid, kind, hash string) (models.RoadmapRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if rec.UserID == uid && rec.RoadmapType == kind && rec.PreferenceHash == hash {
			return rec, true
		}
	}
	return models.RoadmapRecord{}, false
}

// AddRecord stores a generated roadmap and assigns its id
func (r *RoadmapRepository) AddRecord(ctx context.Context, rec models.RoadmapRecord) models.RoadmapRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now()
	rec.ID = r.nextID
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.records = append(r.records, rec)
	return rec
}

// History returns uid's roadmaps, newest first
func (r *RoadmapRepository) History(ctx context.Context, uid string) []models.RoadmapRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.RoadmapRecord, 0)
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID == uid {
			out = append(out, r.records[i])
		}
	}
	return out
}
