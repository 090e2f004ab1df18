package common

import "time"

const (
	// UsersPrefix is the first segment of every object key owned by a user.
	UsersPrefix = "users"

	// FilesSegment separates the user namespace from uploaded objects.
	FilesSegment = "files"

	// BrowseURLTTL is the lifetime of the access URL attached to inventory records.
	BrowseURLTTL = time.Hour

	// ShareURLTTL is the lifetime of a share link.
	ShareURLTTL = 72 * time.Hour

	// MaxBatchSize is the default number of files accepted in one upload selection.
	MaxBatchSize = 5
)
