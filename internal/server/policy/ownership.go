package policy

import "strings"

// OwnershipCheck reports whether a principal owns the resource identified by
// key. The relational and the path-based checks implement the same interface
// so the two stay in lockstep if ownership transfer is ever introduced.
type OwnershipCheck interface {
	Owns(p Principal, key string) bool
}

// IdentityOwnership treats the key as the owner's user ID. This is the
// relational check applied to rows that carry an owner foreign key.
type IdentityOwnership struct{}

func (IdentityOwnership) Owns(p Principal, ownerID string) bool {
	return p.Is(ownerID)
}

// PathOwnership treats the key as an object-storage path following the
// "{owner_id}/{filename}" convention: the first path segment owns the
// object. Paths without a separator have no owner segment and are owned by
// nobody.
type PathOwnership struct{}

func (PathOwnership) Owns(p Principal, path string) bool {
	seg := OwnerSegment(path)
	return seg != "" && p.Is(seg)
}

// OwnerSegment extracts the owner segment of an object-storage path, or ""
// when the path does not conform to the "{owner_id}/{filename}" convention.
func OwnerSegment(path string) string {
	i := strings.IndexByte(path, '/')
	if i <= 0 || i == len(path)-1 {
		return ""
	}
	return path[:i]
}
