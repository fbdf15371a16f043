package common

// DefaultFolder is the root folder assigned to stored files when the caller
// does not specify one.
const DefaultFolder = "/"

// MillisPerDay converts scheduler intervals (whole days) to epoch-ms offsets.
const MillisPerDay int64 = 24 * 60 * 60 * 1000
