package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PaulDouglasAGI/war/internal/sim"
)

// RolesConfig is the on-disk role stat table.
type RolesConfig struct {
	Roles []RoleDef `yaml:"roles"`
}

// RoleDef is one role's stat line as it appears in roles.yaml.
type RoleDef struct {
	Name   string `yaml:"name"`
	Health int    `yaml:"health"`
	Damage int    `yaml:"damage"`
	Speed  int    `yaml:"speed"`
	Cost   int    `yaml:"cost"`
}

// Default returns a RolesConfig mirroring the built-in table, usable for
// writing a starter file.
func Default() *RolesConfig {
	table := sim.DefaultRoles()
	c := &RolesConfig{}
	for r := sim.RoleInfantry; r <= sim.RoleCommander; r++ {
		s := table[r]
		c.Roles = append(c.Roles, RoleDef{
			Name:   r.String(),
			Health: s.Health,
			Damage: s.Damage,
			Speed:  s.Speed,
			Cost:   s.Cost,
		})
	}
	return c
}

// LoadRoles reads and validates a role table from a YAML file.
func LoadRoles(path string) (*RolesConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c RolesConfig
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return &c, nil
}

// Validate rejects unknown role names, duplicates, and non-positive stats.
// Startup is the only safe place to fail; the core treats the table as
// trusted once the battle begins.
func (c *RolesConfig) Validate() error {
	if len(c.Roles) == 0 {
		return fmt.Errorf("no roles defined")
	}
	seen := make(map[string]bool)
	for _, d := range c.Roles {
		if _, ok := sim.ParseRole(d.Name); !ok {
			return fmt.Errorf("unknown role %q", d.Name)
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate role %q", d.Name)
		}
		seen[d.Name] = true
		if d.Health <= 0 || d.Damage <= 0 || d.Speed <= 0 || d.Cost <= 0 {
			return fmt.Errorf("role %q: health, damage, speed and cost must all be positive", d.Name)
		}
	}
	return nil
}

// Table converts the config into the core's role table. Roles absent from
// the file keep their built-in stats.
func (c *RolesConfig) Table() sim.RoleTable {
	table := sim.DefaultRoles()
	for _, d := range c.Roles {
		r, ok := sim.ParseRole(d.Name)
		if !ok {
			continue // Validate has already rejected these
		}
		table[r] = sim.RoleStats{
			Health: d.Health,
			Damage: d.Damage,
			Speed:  d.Speed,
			Cost:   d.Cost,
		}
	}
	return table
}
