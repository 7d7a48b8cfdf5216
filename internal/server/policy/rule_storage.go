package policy

import "context"

// StorageRule mirrors listing ownership onto the object store, keyed by the
// "{owner_id}/{filename}" path convention instead of a row lookup. It must
// stay in lockstep with the relational ownership rule; both go through
// OwnershipCheck implementations for that reason.
type StorageRule struct {
	admin AdminChecker
	owner PathOwnership
}

func NewStorageRule(admin AdminChecker) *StorageRule {
	return &StorageRule{admin: admin}
}

// CanRead: object reads are unconditionally public.
func (r *StorageRule) CanRead(ctx context.Context, p Principal, path string) bool {
	return true
}

// CanWrite gates writes, updates and deletes alike: the path's owner segment
// must equal the principal's identity, or the principal must be an admin.
// Non-conforming paths have no owner and are writable by admins only.
func (r *StorageRule) CanWrite(ctx context.Context, p Principal, path string) bool {
	return r.owner.Owns(p, path) || r.admin.IsAdmin(ctx, p)
}
