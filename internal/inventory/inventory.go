// Package inventory keeps the local view of the files a user has stored:
// what is under their prefix, how big it is and a short-lived URL to read
// it. The view is a cache of the object store, rebuilt wholesale on every
// refresh.
package inventory

import (
	"time"
)

// ObjectRecord is one stored file.
type ObjectRecord struct {
	Key          string
	DisplayName  string
	SizeBytes    int64
	LastModified time.Time

	// AccessURL is a presigned read URL valid for the browse TTL from
	// the refresh that produced it. Empty when URLUnavailable is set.
	AccessURL      string
	URLUnavailable bool
}

// Inventory is a complete snapshot of one namespace. Values are never
// modified after they are published.
type Inventory struct {
	Namespace   string
	Records     []ObjectRecord
	RefreshedAt time.Time

	// Stale marks a snapshot kept from an earlier refresh because the
	// latest listing failed.
	Stale bool
}

// Len returns the number of records.
func (inv Inventory) Len() int {
	return len(inv.Records)
}

// Keys returns the record keys in inventory order.
func (inv Inventory) Keys() []string {
	keys := make([]string, len(inv.Records))
	for i, r := range inv.Records {
		keys[i] = r.Key
	}
	return keys
}

// Find returns the record stored under key.
func (inv Inventory) Find(key string) (ObjectRecord, bool) {
	for _, r := range inv.Records {
		if r.Key == key {
			return r, true
		}
	}
	return ObjectRecord{}, false
}

// At returns the n-th record, 1-based as shown to the user.
func (inv Inventory) At(n int) (ObjectRecord, bool) {
	if n < 1 || n > len(inv.Records) {
		return ObjectRecord{}, false
	}
	return inv.Records[n-1], true
}

func (inv Inventory) markedStale() Inventory {
	out := inv
	out.Records = append([]ObjectRecord(nil), inv.Records...)
	out.Stale = true
	return out
}
