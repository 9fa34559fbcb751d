package services

// Services defined in this package:
// - RecommendationService: scores projects against a student profile
// - RoadmapService: builds research and placement roadmaps from a questionnaire
//
// Both are deterministic so the stub's responses are stable across runs.
