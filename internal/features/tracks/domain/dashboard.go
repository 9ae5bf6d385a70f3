package domain

import catalogue "prepdash/internal/features/catalogue/domain"

// TrackView is one matched track as shown on the dashboard.
type TrackView struct {
	ID             string               `json:"id"`
	Domain         catalogue.Domain     `json:"domain"`
	DomainInfo     catalogue.DomainInfo `json:"domain_info"`
	Level          string               `json:"level"`
	LanguageOrTech string               `json:"language_or_tech"`
	TotalTopics    int                  `json:"total_topics"`
	Completed      int                  `json:"completed"`
	Completion     int                  `json:"completion"`
}

// Dashboard is the derived view of a learner's progress.
type Dashboard struct {
	Tracks           []TrackView `json:"tracks"`
	GlobalCompletion int         `json:"global_completion"`
}

// SelectTrackRequest is sent when the learner opens a track.
type SelectTrackRequest struct {
	Domain         catalogue.Domain `json:"domain" binding:"required"`
	LanguageOrTech string           `json:"language_or_tech" binding:"required"`
	Level          string           `json:"level"`
}

// Navigation tells the UI where to go next.
type Navigation struct {
	Route string `json:"route"`
}
