package authz

// Owned is implemented by resources that have an owning user
type Owned interface {
	OwnerID() uint
}

// Owner is the owner constraint handed to the engine. The zero value
// means "no owner constraint", used when the resource does not exist yet.
type Owner struct {
	ID    uint
	Known bool
}

// NoOwner is passed on the create path
var NoOwner = Owner{}

// OwnedBy returns an owner constraint for the given user ID
func OwnedBy(id uint) Owner {
	return Owner{ID: id, Known: true}
}

// OwnerOf extracts the owner of an existing resource. A nil resource
// yields NoOwner.
func OwnerOf(r Owned) Owner {
	if r == nil {
		return NoOwner
	}
	return OwnedBy(r.OwnerID())
}
