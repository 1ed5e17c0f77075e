package types

// Cleanliness is a resource's history flag. Dirty means "used since it was
// last transferred", which is the precondition for a holder to release the
// resource on request.
type Cleanliness uint8

const (
	Clean Cleanliness = iota
	Dirty
)

// String returns a lower-case name to be used in logging.
func (c Cleanliness) String() string {
	switch c {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	default:
		return "invalid"
	}
}

// ResourceValue is the unit of exclusive possession: an immutable
// (id, cleanliness) record. State changes produce a new value, they never
// mutate one in place.
type ResourceValue struct {
	ID          ResourceID
	Cleanliness Cleanliness
}

func CleanResource(id ResourceID) ResourceValue {
	return ResourceValue{ID: id, Cleanliness: Clean}
}

func DirtyResource(id ResourceID) ResourceValue {
	return ResourceValue{ID: id, Cleanliness: Dirty}
}

// Soil returns the value as it looks after its holder has eaten with it.
// This and the clean-reset inside Transfer are the only two places
// cleanliness changes.
func (v ResourceValue) Soil() ResourceValue {
	return ResourceValue{ID: v.ID, Cleanliness: Dirty}
}

func (v ResourceValue) IsDirty() bool {
	return v.Cleanliness == Dirty
}
