// Package memory implements the assistant's interaction store and context
// retrieval: a bounded short-term recency buffer, an episodic map of all
// past interactions, learned preference weights, command frequencies, and a
// small table of tunable neural weights.
//
// Construction never fails: storage load errors are logged and the store
// falls back to empty in-memory structures. Durability is best-effort; the
// owner is expected to call Persist on a cadence and once at shutdown.
package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aide-sh/aide/internal/constants"
	"github.com/aide-sh/aide/internal/storage"
)

// Interaction is one stored exchange between the user and the assistant.
type Interaction struct {
	ID            string         `json:"id"`
	Timestamp     time.Time      `json:"timestamp"`
	UserInput     string         `json:"user_input"`
	AIResponse    string         `json:"ai_response"`
	Context       map[string]any `json:"context"`
	Effectiveness float64        `json:"effectiveness_score"`
}

// Stats summarizes memory usage for reporting.
type Stats struct {
	ShortTermCount   int                `json:"short_term_count"`
	EpisodicCount    int                `json:"episodic_count"`
	SemanticCount    int                `json:"semantic_count"`
	ProceduralCount  int                `json:"procedural_count"`
	TopPreferences   []Preference       `json:"top_preferences"`
	MostUsedCommands []CommandCount     `json:"most_used_commands"`
	NeuralWeights    map[string]float64 `json:"neural_weights"`
}

// Preference is one token weight in the learned preference table.
type Preference struct {
	Token  string  `json:"token"`
	Weight float64 `json:"weight"`
}

// CommandCount is one entry of the command-frequency table.
type CommandCount struct {
	Command string `json:"command"`
	Count   int    `json:"count"`
}

// persistedMemory is the whole-document shape of the memory store on disk.
type persistedMemory struct {
	Episodic    map[string]Interaction `json:"episodic"`
	Semantic    map[string]string      `json:"semantic"`
	Procedural  map[string]string      `json:"procedural"`
	Preferences map[string]float64     `json:"preferences"`
	Frequency   map[string]int         `json:"frequency"`
}

// Tuning holds the configurable memory knobs. Zero-valued fields fall
// back to the package defaults, so an empty Tuning is always usable.
type Tuning struct {
	ShortTermCapacity   int
	SimilarityThreshold float64
	CleanupDays         int
	CleanupScore        float64
}

// withDefaults fills unset knobs from the package defaults.
func (t Tuning) withDefaults() Tuning {
	if t.ShortTermCapacity <= 0 {
		t.ShortTermCapacity = constants.ShortTermCapacity
	}
	if t.SimilarityThreshold <= 0 {
		t.SimilarityThreshold = constants.SimilarityThreshold
	}
	if t.CleanupDays <= 0 {
		t.CleanupDays = constants.CleanupDaysThreshold
	}
	if t.CleanupScore <= 0 {
		t.CleanupScore = constants.CleanupScoreThreshold
	}
	return t
}

// Store holds all memory state. Safe for concurrent use; mutation is
// guarded by one coarse mutex, which is all the eventual-consistency
// persistence model requires.
type Store struct {
	mu     sync.Mutex
	docs   storage.DocumentStore
	logger *slog.Logger
	tuning Tuning

	// nowFunc is the injectable clock used for timestamps and cleanup.
	nowFunc func() time.Time

	shortTerm   []Interaction
	episodic    map[string]Interaction
	semantic    map[string]string
	procedural  map[string]string
	preferences map[string]float64
	frequency   map[string]int
	weights     map[string]float64
}

// defaultWeights returns the initial neural weight table.
func defaultWeights() map[string]float64 {
	return map[string]float64{
		"greeting_importance":  0.7,
		"task_completion":      0.9,
		"emotional_support":    0.8,
		"information_accuracy": 0.95,
		"response_speed":       0.6,
	}
}

// NewStore creates a Store with default tuning.
func NewStore(docs storage.DocumentStore, logger *slog.Logger) *Store {
	return NewTunedStore(docs, logger, Tuning{})
}

// NewTunedStore creates a Store backed by docs, loading any persisted
// state. Unset tuning fields take the package defaults. A failed or
// malformed load is logged and replaced with empty defaults; construction
// itself never fails.
func NewTunedStore(docs storage.DocumentStore, logger *slog.Logger, tuning Tuning) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	tuning = tuning.withDefaults()

	s := &Store{
		docs:        docs,
		logger:      logger,
		tuning:      tuning,
		nowFunc:     time.Now,
		shortTerm:   make([]Interaction, 0, tuning.ShortTermCapacity),
		episodic:    make(map[string]Interaction),
		semantic:    make(map[string]string),
		procedural:  make(map[string]string),
		preferences: make(map[string]float64),
		frequency:   make(map[string]int),
		weights:     defaultWeights(),
	}
	s.load()
	return s
}

// load restores persisted state, substituting defaults on any failure.
func (s *Store) load() {
	var mem persistedMemory
	if ok, err := storage.LoadInto(s.docs, storage.DocMemory, &mem); err != nil {
		s.logger.Warn("memory document unreadable, starting empty", "error", err)
	} else if ok {
		if mem.Episodic != nil {
			s.episodic = mem.Episodic
		}
		if mem.Semantic != nil {
			s.semantic = mem.Semantic
		}
		if mem.Procedural != nil {
			s.procedural = mem.Procedural
		}
		if mem.Preferences != nil {
			s.preferences = mem.Preferences
		}
		if mem.Frequency != nil {
			s.frequency = mem.Frequency
		}
	}

	loaded := make(map[string]float64)
	if ok, err := storage.LoadInto(s.docs, storage.DocWeights, &loaded); err != nil {
		s.logger.Warn("neural weights unreadable, using defaults", "error", err)
	} else if ok {
		// Overlay known keys; unknown persisted keys are kept as-is.
		for k, v := range loaded {
			s.weights[k] = v
		}
	}
}

// Persist flushes all memory state to durable storage. The maps are
// cloned under the lock so marshalling never races concurrent writers;
// the disk writes happen outside it.
func (s *Store) Persist() error {
	s.mu.Lock()
	mem := persistedMemory{
		Episodic:    maps.Clone(s.episodic),
		Semantic:    maps.Clone(s.semantic),
		Procedural:  maps.Clone(s.procedural),
		Preferences: maps.Clone(s.preferences),
		Frequency:   maps.Clone(s.frequency),
	}
	weights := maps.Clone(s.weights)
	s.mu.Unlock()

	if err := s.docs.Save(storage.DocMemory, mem); err != nil {
		return fmt.Errorf("persisting memory: %w", err)
	}
	if err := s.docs.Save(storage.DocWeights, weights); err != nil {
		return fmt.Errorf("persisting neural weights: %w", err)
	}
	return nil
}

// Record stores a completed exchange: appends to the short-term buffer
// (evicting the oldest past capacity), inserts into the episodic map under
// a fresh unique id, increments the command frequency of the normalized
// input, and applies preference-weight extraction. The stored interaction
// is returned. Durability is deferred to the persistence cadence.
func (s *Store) Record(userInput, aiResponse string, context map[string]any) Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	inter := Interaction{
		ID:            s.deriveID(now, userInput),
		Timestamp:     now,
		UserInput:     userInput,
		AIResponse:    aiResponse,
		Context:       context,
		Effectiveness: constants.DefaultEffectiveness,
	}

	s.shortTerm = append(s.shortTerm, inter)
	if len(s.shortTerm) > s.tuning.ShortTermCapacity {
		s.shortTerm = s.shortTerm[len(s.shortTerm)-s.tuning.ShortTermCapacity:]
	}

	s.episodic[inter.ID] = inter
	s.frequency[normalize(userInput)]++
	s.extractPreferences(userInput)

	return inter
}

// deriveID fingerprints an interaction from its timestamp and input.
// On the rare collision, a counter is mixed in until the id is unique
// within the episodic map. Caller must hold s.mu.
func (s *Store) deriveID(t time.Time, input string) string {
	for n := 0; ; n++ {
		seed := fmt.Sprintf("%d%s%d", t.UnixNano(), input, n)
		sum := sha256.Sum256([]byte(seed))
		id := hex.EncodeToString(sum[:])[:constants.InteractionIDLength]
		if _, exists := s.episodic[id]; !exists {
			return id
		}
	}
}

// Feedback sets the effectiveness score of a stored interaction. When the
// score clears the reinforcement threshold, every neural weight whose name
// appears as a key in that interaction's stored context is raised by the
// feedback step, clamped to the maximum.
func (s *Store) Feedback(interactionID string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inter, ok := s.episodic[interactionID]
	if !ok {
		return fmt.Errorf("unknown interaction: %s", interactionID)
	}

	inter.Effectiveness = score
	s.episodic[interactionID] = inter

	if score > constants.FeedbackReinforceThreshold {
		for key, weight := range s.weights {
			if _, present := inter.Context[key]; present {
				s.weights[key] = clamp(weight + constants.FeedbackWeightStep)
			}
		}
	}
	return nil
}

// ReinforcePatterns is the background pattern-analysis sweep: once enough
// episodic history exists, interactions with above-threshold effectiveness
// whose input contains a greeting token nudge greeting_importance upward.
func (s *Store) ReinforcePatterns() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.episodic) < constants.MinPatternSample {
		return
	}

	greetingTokens := []string{"hi", "hello", "hey", "good morning"}
	for _, inter := range s.episodic {
		if inter.Effectiveness <= constants.FeedbackReinforceThreshold {
			continue
		}
		input := strings.ToLower(inter.UserInput)
		for _, tok := range greetingTokens {
			if strings.Contains(input, tok) {
				s.weights["greeting_importance"] = clamp(
					s.weights["greeting_importance"] + constants.PatternWeightStep)
				break
			}
		}
	}
}

// Cleanup permanently removes episodic interactions older than the given
// day threshold whose effectiveness is below the tuned cleanup score.
// A zero or negative threshold means the tuned default. All other
// interactions are retained indefinitely. Returns the number of
// interactions removed.
func (s *Store) Cleanup(daysThreshold int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if daysThreshold <= 0 {
		daysThreshold = s.tuning.CleanupDays
	}
	cutoff := s.nowFunc().AddDate(0, 0, -daysThreshold)
	removed := 0
	for id, inter := range s.episodic {
		if inter.Timestamp.Before(cutoff) && inter.Effectiveness < s.tuning.CleanupScore {
			delete(s.episodic, id)
			removed++
		}
	}

	if removed > 0 {
		s.logger.Info("cleaned up old memories", "removed", removed)
	}
	return removed
}

// Stats returns memory usage counts, the top preferences by weight, the
// most used commands by frequency, and the full neural weight table.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := make([]Preference, 0, len(s.preferences))
	for tok, w := range s.preferences {
		prefs = append(prefs, Preference{Token: tok, Weight: w})
	}
	sort.Slice(prefs, func(i, j int) bool {
		if prefs[i].Weight != prefs[j].Weight {
			return prefs[i].Weight > prefs[j].Weight
		}
		return prefs[i].Token < prefs[j].Token
	})
	if len(prefs) > constants.TopPreferences {
		prefs = prefs[:constants.TopPreferences]
	}

	cmds := make([]CommandCount, 0, len(s.frequency))
	for cmd, n := range s.frequency {
		cmds = append(cmds, CommandCount{Command: cmd, Count: n})
	}
	sort.Slice(cmds, func(i, j int) bool {
		if cmds[i].Count != cmds[j].Count {
			return cmds[i].Count > cmds[j].Count
		}
		return cmds[i].Command < cmds[j].Command
	})
	if len(cmds) > constants.TopCommands {
		cmds = cmds[:constants.TopCommands]
	}

	weights := make(map[string]float64, len(s.weights))
	for k, v := range s.weights {
		weights[k] = v
	}

	return Stats{
		ShortTermCount:   len(s.shortTerm),
		EpisodicCount:    len(s.episodic),
		SemanticCount:    len(s.semantic),
		ProceduralCount:  len(s.procedural),
		TopPreferences:   prefs,
		MostUsedCommands: cmds,
		NeuralWeights:    weights,
	}
}

// PreferenceWeight returns the learned weight for a token (zero if unseen).
func (s *Store) PreferenceWeight(token string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferences[strings.ToLower(token)]
}

// normalize maps an input to its command-frequency key.
func normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func clamp(w float64) float64 {
	if w > constants.MaxNeuralWeight {
		return constants.MaxNeuralWeight
	}
	return w
}
