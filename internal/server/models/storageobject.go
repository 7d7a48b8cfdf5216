package models

// StorageObject describes an uploaded media object. Ownership is structural:
// it is derived from the first segment of the key ("{owner_id}/{filename}"),
// not from a foreign key, so the object store can be gated without a row
// lookup.
type StorageObject struct {
	Key         string
	ContentType string
	Size        int64
}
