package where

import "github.com/gamesgamesgamesgamesgames/quickslice-sub000/internal/field"

// ReferencesActorHandle reports whether clause (at any depth) filters on
// the actorHandle field, which is what triggers the record LEFT JOIN
// actor relationship.
func ReferencesActorHandle(c Clause) bool {
	for name := range c.Fields {
		if field.IsActorHandle(name) {
			return true
		}
	}
	for _, child := range c.And {
		if ReferencesActorHandle(child) {
			return true
		}
	}
	for _, child := range c.Or {
		if ReferencesActorHandle(child) {
			return true
		}
	}
	return false
}
