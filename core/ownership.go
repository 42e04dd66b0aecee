package core

// CanView reports whether id may see a record owned by owner.
// A nil owner marks a public record.
func CanView(id Identity, owner *int64) bool {
	if owner == nil {
		return true
	}
	uid, ok := id.UserID()
	return ok && *owner == uid
}

// CanMutate uses the same rule as CanView: there are no separate
// read and write roles.
func CanMutate(id Identity, owner *int64) bool {
	return CanView(id, owner)
}

// Scope is the set of records a listing may return: every public record
// plus, when UserID is set, the records owned by that user.
type Scope struct {
	UserID *int64
}

func ScopeOf(id Identity) Scope {
	return Scope{UserID: id.Owner()}
}

func (s Scope) Includes(owner *int64) bool {
	if owner == nil {
		return true
	}
	return s.UserID != nil && *s.UserID == *owner
}

func visibleTags(id Identity, tags []Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if CanView(id, t.OwnerID) {
			out = append(out, t)
		}
	}
	return out
}
