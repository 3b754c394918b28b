// Package platform defines the closed set of server platforms a plugin archive
// can target and helpers for parsing and matching platform tags.
package platform

import (
	"fmt"
	"strings"
)

// Tag identifies one of the supported server platforms.
type Tag string

// Supported platform tags.
const (
	BungeeCord Tag = "bungeecord"
	Bukkit     Tag = "bukkit"
	Velocity   Tag = "velocity"
	Folia      Tag = "folia"
)

// All returns every supported platform tag.
func All() []Tag {
	return []Tag{BungeeCord, Bukkit, Velocity, Folia}
}

// Parse converts a user-supplied string into a Tag.
func Parse(s string) (Tag, error) {
	tag := Tag(strings.ToLower(strings.TrimSpace(s)))
	if !tag.IsValid() {
		return "", fmt.Errorf("unknown platform %q (valid: %s)", s, strings.Join(Names(), ", "))
	}
	return tag, nil
}

// IsValid reports whether the tag is one of the supported platforms.
func (t Tag) IsValid() bool {
	switch t {
	case BungeeCord, Bukkit, Velocity, Folia:
		return true
	}
	return false
}

// String returns the canonical lowercase name of the tag.
func (t Tag) String() string {
	return string(t)
}

// Names returns the canonical names of all supported tags.
func Names() []string {
	tags := All()
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.String())
	}
	return names
}

// Contains reports whether the given tag set includes tag.
func Contains(tags []Tag, tag Tag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Union merges two tag sets, preserving the order of first occurrence.
func Union(a, b []Tag) []Tag {
	merged := make([]Tag, 0, len(a)+len(b))
	for _, t := range a {
		if !Contains(merged, t) {
			merged = append(merged, t)
		}
	}
	for _, t := range b {
		if !Contains(merged, t) {
			merged = append(merged, t)
		}
	}
	return merged
}

// Key returns a canonical representation of a tag set, usable as a map key.
// The set is rendered sorted so that order of construction does not matter.
func Key(tags []Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range All() {
		if Contains(tags, t) {
			names = append(names, t.String())
		}
	}
	return strings.Join(names, ",")
}
