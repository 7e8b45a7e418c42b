package domain

// Keys under which the session writes through to persistent storage. The
// session service is the sole writer for both.
const (
	StorageKeyToken = "token"
	StorageKeyUser  = "user"
)
