// Package constants provides named constants used throughout the aide codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

import "time"

// Memory constants
const (
	// ShortTermCapacity is the number of interactions kept in the
	// short-term recency buffer. The oldest entry is evicted on overflow.
	ShortTermCapacity = 50

	// RecentContextWindow is how many short-term interactions are included
	// in a context bundle.
	RecentContextWindow = 5

	// EmotionalToneWindow is how many recent interactions are scanned when
	// detecting emotional tone.
	EmotionalToneWindow = 3

	// InteractionIDLength is the length in hex characters of a derived
	// interaction fingerprint.
	InteractionIDLength = 12

	// DefaultEffectiveness is the effectiveness score assigned to a new
	// interaction before any feedback arrives.
	DefaultEffectiveness = 0.5
)

// Similarity constants
const (
	// SimilarityThreshold is the minimum Jaccard similarity for a past
	// interaction to count as similar to the current query.
	SimilarityThreshold = 0.3

	// MaxSimilarQueries is the maximum number of similar past queries
	// returned in a context bundle.
	MaxSimilarQueries = 3
)

// Preference learning constants
const (
	// PreferenceStep is the weight adjustment applied to each qualifying
	// token when a positive or negative cue is present. Positive cues add
	// the step, negative cues subtract it.
	PreferenceStep = 0.1

	// TopPreferences is how many preference entries the stats report lists.
	TopPreferences = 10

	// TopCommands is how many command-frequency entries the stats report lists.
	TopCommands = 10
)

// Neural weight constants
const (
	// FeedbackReinforceThreshold is the effectiveness score above which
	// feedback reinforces the neural weights referenced by the
	// interaction's context.
	FeedbackReinforceThreshold = 0.7

	// FeedbackWeightStep is the weight increase applied on positive feedback.
	FeedbackWeightStep = 0.01

	// PatternWeightStep is the smaller weight increase applied by the
	// background pattern-analysis sweep.
	PatternWeightStep = 0.005

	// MaxNeuralWeight is the clamp ceiling for any neural weight.
	MaxNeuralWeight = 1.0

	// MinPatternSample is the minimum number of episodic interactions
	// before the pattern-analysis sweep does any work.
	MinPatternSample = 10
)

// Cleanup policy constants
const (
	// CleanupDaysThreshold is the default age in days beyond which a
	// low-effectiveness interaction becomes eligible for removal.
	CleanupDaysThreshold = 30

	// CleanupScoreThreshold is the effectiveness score below which an old
	// interaction is removed. Interactions at or above it are retained.
	CleanupScoreThreshold = 0.4
)

// Background cadence constants
const (
	// PersistInterval is how often in-memory state is flushed to durable
	// storage and the pattern-analysis sweep runs.
	PersistInterval = 300 * time.Second

	// ReminderSweepInterval is how often due reminders are checked.
	ReminderSweepInterval = 30 * time.Second

	// ReminderFireWindow is the tolerance around a reminder's scheduled
	// time within which it fires.
	ReminderFireWindow = 60 * time.Second
)

// Time-of-day hour bounds. Each period spans [start, next start).
const (
	MorningStartHour   = 5
	AfternoonStartHour = 12
	EveningStartHour   = 17
	NightStartHour     = 21
)

// Task constants
const (
	// DefaultMonitorDuration is the sampling window in seconds for the
	// resource_monitoring operation when no duration param is given.
	DefaultMonitorDuration = 60

	// CleanupFileAge is how old a temp file must be before the
	// system_cleanup operation removes it.
	CleanupFileAge = 24 * time.Hour

	// MaxFinishedTasks bounds the task table: beyond this many completed
	// or failed envelopes, the oldest finished ones are evicted. Pending
	// tasks are never evicted.
	MaxFinishedTasks = 100
)
