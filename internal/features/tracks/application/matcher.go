package application

import (
	"math"
	"strings"

	catalogue "prepdash/internal/features/catalogue/domain"
	"prepdash/internal/features/tracks/domain"
)

// Match returns the catalogue tracks the learner is enrolled in, in catalogue
// order. Missing preferences or a missing per-domain config yield no tracks
// for that scope rather than an error.
func Match(progress domain.UserProgress, tracks []catalogue.CurriculumTrack) []catalogue.CurriculumTrack {
	if progress.Preferences == nil {
		return nil
	}

	var matched []catalogue.CurriculumTrack
	for _, t := range tracks {
		if !progress.IsActive(t.Domain) {
			continue
		}
		cfg, ok := progress.Preferences.Configs[t.Domain]
		if !ok {
			continue
		}
		if !strings.EqualFold(t.Level, cfg.EffectiveLevel()) {
			continue
		}
		if cfg.Tech == nil || !cfg.Tech.Accepts(t.LanguageOrTech) {
			continue
		}
		matched = append(matched, t)
	}
	return matched
}

// completedIn counts the topics of t present in completed.
func completedIn(t catalogue.CurriculumTrack, completed domain.StringSet) int {
	n := 0
	for _, topic := range t.Topics {
		if completed.Has(topic.ID) {
			n++
		}
	}
	return n
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// TrackCompletion is the rounded percentage of t's topics in completed.
func TrackCompletion(t catalogue.CurriculumTrack, completed domain.StringSet) int {
	return percent(completedIn(t, completed), len(t.Topics))
}

// GlobalCompletion pools the topics of all matched tracks. Completed topics
// outside the matched tracks do not count.
func GlobalCompletion(matched []catalogue.CurriculumTrack, completed domain.StringSet) int {
	var done, total int
	for _, t := range matched {
		done += completedIn(t, completed)
		total += len(t.Topics)
	}
	return percent(done, total)
}
