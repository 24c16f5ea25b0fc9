// Package npc provides enemy type profiles and the live enemy actors with
// their behavior state machine.
package npc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Enemy type identifiers of the canonical roster.
const (
	TypeTracksuitGoon = "tracksuit_goon"
	TypePastaDealer   = "pasta_dealer"
	TypeEnforcer      = "enforcer"
	TypeEarlGreyAgent = "earl_grey_agent"
	TypeMiniBoss      = "mini_boss"
)

// Template defines an enemy type's stat profile, loadable from YAML.
type Template struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	MaxHP  int     `yaml:"max_hp"`
	Speed  float64 `yaml:"speed"`
	Damage int     `yaml:"damage"`
	// AttackCooldown optionally overrides the shared attack cooldown (e.g. "900ms").
	// Empty means the shared value applies.
	AttackCooldown string `yaml:"attack_cooldown"`
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, MaxHP >= 1, Speed >= 0,
// Damage >= 0, and AttackCooldown is empty or a positive duration.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("enemy template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("enemy template %q: name must not be empty", t.ID)
	}
	if t.MaxHP < 1 {
		return fmt.Errorf("enemy template %q: max_hp must be >= 1", t.ID)
	}
	if t.Speed < 0 {
		return fmt.Errorf("enemy template %q: speed must be >= 0", t.ID)
	}
	if t.Damage < 0 {
		return fmt.Errorf("enemy template %q: damage must be >= 0", t.ID)
	}
	if t.AttackCooldown != "" {
		d, err := time.ParseDuration(t.AttackCooldown)
		if err != nil {
			return fmt.Errorf("enemy template %q: attack_cooldown %q is not a valid duration: %w", t.ID, t.AttackCooldown, err)
		}
		if d <= 0 {
			return fmt.Errorf("enemy template %q: attack_cooldown must be positive", t.ID)
		}
	}
	return nil
}

// AttackCooldownMs returns the override in milliseconds, or fallback when none is set.
//
// Precondition: t has passed Validate.
func (t *Template) AttackCooldownMs(fallback int64) int64 {
	if t.AttackCooldown == "" {
		return fallback
	}
	d, err := time.ParseDuration(t.AttackCooldown)
	if err != nil {
		return fallback
	}
	return d.Milliseconds()
}

// DefaultTemplates returns the canonical enemy roster.
//
// Postcondition: Every returned template passes Validate.
func DefaultTemplates() []*Template {
	return []*Template{
		{ID: TypeTracksuitGoon, Name: "Tracksuit Goon", MaxHP: 60, Speed: 80, Damage: 8},
		{ID: TypePastaDealer, Name: "Pasta Dealer", MaxHP: 78, Speed: 60, Damage: 5},
		{ID: TypeEnforcer, Name: "Enforcer", MaxHP: 125, Speed: 70, Damage: 15},
		{ID: TypeEarlGreyAgent, Name: "Earl Grey Agent", MaxHP: 92, Speed: 100, Damage: 12},
		{ID: TypeMiniBoss, Name: "Mini Boss", MaxHP: 200, Speed: 80, Damage: 10, AttackCooldown: "900ms"},
	}
}

// LoadTemplateFromBytes parses a single enemy template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing enemy template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir in lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate failure.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading enemy dir %q: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var templates []*Template
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
