package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/aide-sh/aide/internal/constants"
	"github.com/aide-sh/aide/internal/similarity"
)

// ContextBundle is the retrieved context for one incoming query.
type ContextBundle struct {
	RecentInteractions []Interaction      `json:"recent_interactions"`
	Preferences        map[string]float64 `json:"user_preferences"`
	SimilarQueries     []SimilarQuery     `json:"similar_past_queries"`
	EmotionalTone      string             `json:"emotional_state"`
	TimeContext        TimeContext        `json:"time_context"`
	FrequencyScore     int                `json:"frequency_score"`
}

// SimilarQuery is one past interaction judged similar to the current query.
type SimilarQuery struct {
	Query      string    `json:"query"`
	Response   string    `json:"response"`
	Similarity float64   `json:"similarity"`
	Timestamp  time.Time `json:"timestamp"`
}

// TimeContext captures when the query happened.
type TimeContext struct {
	Hour      int    `json:"hour"`
	DayOfWeek string `json:"day_of_week"`
	Month     string `json:"month"`
	IsWeekend bool   `json:"is_weekend"`
	TimeOfDay string `json:"time_of_day"`
}

// AsMap flattens the bundle into the opaque context shape stored on an
// interaction.
func (c ContextBundle) AsMap() map[string]any {
	return map[string]any{
		"recent_interactions":  c.RecentInteractions,
		"user_preferences":     c.Preferences,
		"similar_past_queries": c.SimilarQueries,
		"emotional_state":      c.EmotionalTone,
		"time_context":         c.TimeContext,
		"frequency_score":      c.FrequencyScore,
	}
}

// Emotional tone indicator sets, evaluated in this fixed order. Ties go to
// the earlier set; no hits at all yields "neutral".
var toneSets = []struct {
	name       string
	indicators []string
}{
	{"positive", []string{"good", "great", "excellent", "amazing", "wonderful", "happy", "love"}},
	{"negative", []string{"bad", "terrible", "awful", "hate", "sad", "angry", "frustrated"}},
	{"excited", []string{"excited", "thrilled", "awesome", "fantastic", "incredible"}},
	{"confused", []string{"confused", "dont understand", "don't understand", "help", "unclear"}},
}

// BuildContext computes the context bundle for a query: the most recent
// short-term interactions, the full preference table, up to three similar
// past queries, the detected emotional tone, the time-of-day context, and
// the frequency score of the normalized query.
func (s *Store) BuildContext(query string) ContextBundle {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := s.shortTerm
	if len(recent) > constants.RecentContextWindow {
		recent = recent[len(recent)-constants.RecentContextWindow:]
	}
	recentCopy := make([]Interaction, len(recent))
	copy(recentCopy, recent)

	prefs := make(map[string]float64, len(s.preferences))
	for k, v := range s.preferences {
		prefs[k] = v
	}

	return ContextBundle{
		RecentInteractions: recentCopy,
		Preferences:        prefs,
		SimilarQueries:     s.findSimilar(query),
		EmotionalTone:      s.detectTone(),
		TimeContext:        timeContext(s.nowFunc()),
		FrequencyScore:     s.frequency[normalize(query)],
	}
}

// findSimilar scores every episodic interaction against the query with
// Jaccard similarity over lowercased word sets, keeps candidates above the
// similarity threshold, and returns the top few by similarity descending.
// Equal scores are broken by timestamp descending then query ascending, so
// retrieval is deterministic across runs. Caller must hold s.mu.
func (s *Store) findSimilar(query string) []SimilarQuery {
	var candidates []SimilarQuery
	for _, inter := range s.episodic {
		score := similarity.Score(query, inter.UserInput)
		if score > s.tuning.SimilarityThreshold {
			candidates = append(candidates, SimilarQuery{
				Query:      inter.UserInput,
				Response:   inter.AIResponse,
				Similarity: score,
				Timestamp:  inter.Timestamp,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Similarity != candidates[j].Similarity {
			return candidates[i].Similarity > candidates[j].Similarity
		}
		if !candidates[i].Timestamp.Equal(candidates[j].Timestamp) {
			return candidates[i].Timestamp.After(candidates[j].Timestamp)
		}
		return candidates[i].Query < candidates[j].Query
	})

	if len(candidates) > constants.MaxSimilarQueries {
		candidates = candidates[:constants.MaxSimilarQueries]
	}
	return candidates
}

// detectTone scans the most recent short-term inputs for tone indicators,
// tallying one point per indicator hit, and returns the set with the
// highest tally. Caller must hold s.mu.
func (s *Store) detectTone() string {
	if len(s.shortTerm) == 0 {
		return "neutral"
	}

	recent := s.shortTerm
	if len(recent) > constants.EmotionalToneWindow {
		recent = recent[len(recent)-constants.EmotionalToneWindow:]
	}

	best := "neutral"
	bestScore := 0
	for _, set := range toneSets {
		score := 0
		for _, inter := range recent {
			input := strings.ToLower(inter.UserInput)
			for _, indicator := range set.indicators {
				if strings.Contains(input, indicator) {
					score++
				}
			}
		}
		if score > bestScore {
			best = set.name
			bestScore = score
		}
	}
	return best
}

// timeContext classifies a moment into the assistant's time-of-day scheme.
func timeContext(now time.Time) TimeContext {
	return TimeContext{
		Hour:      now.Hour(),
		DayOfWeek: now.Weekday().String(),
		Month:     now.Month().String(),
		IsWeekend: now.Weekday() == time.Saturday || now.Weekday() == time.Sunday,
		TimeOfDay: TimeOfDay(now.Hour()),
	}
}

// TimeOfDay maps an hour to its named period.
func TimeOfDay(hour int) string {
	switch {
	case hour >= constants.MorningStartHour && hour < constants.AfternoonStartHour:
		return "morning"
	case hour >= constants.AfternoonStartHour && hour < constants.EveningStartHour:
		return "afternoon"
	case hour >= constants.EveningStartHour && hour < constants.NightStartHour:
		return "evening"
	default:
		return "night"
	}
}
