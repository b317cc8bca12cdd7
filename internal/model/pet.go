// Package model defines the core pet state types.
package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxFeed is the number of feedings allowed per day.
	MaxFeed = 5
	// ShortTermCap is how many turns short-term memory retains.
	ShortTermCap = 10
	// DefaultName is the display name of the pet.
	DefaultName = "奶龙"
)

var (
	ErrInvalidMood    = errors.New("invalid mood")
	ErrUnknownSpecies = errors.New("unknown species")
)

// Mood is the pet's current emotion label.
type Mood string

const (
	MoodHappy     Mood = "happy"
	MoodExcited   Mood = "excited"
	MoodSatisfied Mood = "satisfied"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodAngry     Mood = "angry"
	MoodScared    Mood = "scared"
)

// Moods lists the closed mood set in display order.
var Moods = []Mood{MoodHappy, MoodExcited, MoodSatisfied, MoodNeutral, MoodSad, MoodAngry, MoodScared}

var moodLabels = map[Mood]string{
	MoodHappy:     "开心",
	MoodExcited:   "兴奋",
	MoodSatisfied: "满意",
	MoodNeutral:   "中性",
	MoodSad:       "难过",
	MoodAngry:     "生气",
	MoodScared:    "害怕",
}

// Valid reports whether m belongs to the closed mood set.
func (m Mood) Valid() bool {
	_, ok := moodLabels[m]
	return ok
}

// Positive moods earn double experience.
func (m Mood) Positive() bool {
	return m == MoodHappy || m == MoodExcited || m == MoodSatisfied
}

// Label returns the Chinese display label.
func (m Mood) Label() string {
	if l, ok := moodLabels[m]; ok {
		return l
	}
	return string(m)
}

// ParseMood accepts either the English id or the Chinese label.
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	m := Mood(strings.ToLower(s))
	if m.Valid() {
		return m, nil
	}
	for id, label := range moodLabels {
		if label == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMood, s)
}

// Species is the kind of animal the pet is.
type Species string

const (
	SpeciesCat Species = "cat"
	SpeciesDog Species = "dog"
)

type speciesInfo struct {
	label       string
	personality string
}

var species = map[Species]speciesInfo{
	SpeciesCat: {label: "猫", personality: "可爱黏人"},
	SpeciesDog: {label: "狗", personality: "热情活泼"},
}

// Valid reports whether s is a known species.
func (s Species) Valid() bool {
	_, ok := species[s]
	return ok
}

// Label returns the Chinese display label.
func (s Species) Label() string {
	if info, ok := species[s]; ok {
		return info.label
	}
	return string(s)
}

// Personality returns the personality derived from the species, or "" if unknown.
func (s Species) Personality() string {
	return species[s].personality
}

// ParseSpecies accepts either the English id or the Chinese label.
func ParseSpecies(s string) (Species, error) {
	s = strings.TrimSpace(s)
	sp := Species(strings.ToLower(s))
	if sp.Valid() {
		return sp, nil
	}
	for id, info := range species {
		if info.label == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSpecies, s)
}

// Roles of a conversation turn.
const (
	RoleUser = "user"
	RolePet  = "pet"
)

// Turn is one message in a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LongTermMemory holds facts that outlive the short-term window.
type LongTermMemory struct {
	UserLikes []string          `json:"user_likes"`
	PetHabits map[string]string `json:"pet_habits"`
}

// PetState is the full persisted aggregate.
type PetState struct {
	Name            string         `json:"name"`
	Species         Species        `json:"species"`
	Personality     string         `json:"personality"`
	Mood            Mood           `json:"mood"`
	Exp             int            `json:"exp"`
	Level           int            `json:"level"`
	FeedCount       int            `json:"feed_count"`
	MaxFeed         int            `json:"max_feed"`
	FeedDay         string         `json:"feed_day,omitempty"`
	ShortTermMemory []Turn         `json:"short_term_memory"`
	LongTermMemory  LongTermMemory `json:"long_term_memory"`
}

// NewPetState returns the default state for a fresh pet.
func NewPetState(name string, sp Species) *PetState {
	if name == "" {
		name = DefaultName
	}
	return &PetState{
		Name:            name,
		Species:         sp,
		Personality:     sp.Personality(),
		Mood:            MoodNeutral,
		Exp:             0,
		Level:           1,
		MaxFeed:         MaxFeed,
		ShortTermMemory: []Turn{},
		LongTermMemory: LongTermMemory{
			UserLikes: []string{},
			PetHabits: map[string]string{},
		},
	}
}

// LevelFor derives the level from experience.
func LevelFor(exp int) int {
	return 1 + exp/10
}

// Clone returns a deep copy.
func (s *PetState) Clone() *PetState {
	out := *s
	out.ShortTermMemory = make([]Turn, len(s.ShortTermMemory))
	copy(out.ShortTermMemory, s.ShortTermMemory)
	out.LongTermMemory.UserLikes = make([]string, len(s.LongTermMemory.UserLikes))
	copy(out.LongTermMemory.UserLikes, s.LongTermMemory.UserLikes)
	out.LongTermMemory.PetHabits = make(map[string]string, len(s.LongTermMemory.PetHabits))
	for k, v := range s.LongTermMemory.PetHabits {
		out.LongTermMemory.PetHabits[k] = v
	}
	return &out
}
