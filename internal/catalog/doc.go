// Package catalog persists organized frames in SQLite so past runs stay
// queryable: which nights were shot, how many subs exist per target and
// filter, and which run placed each file.
//
// The store applies WAL journaling and retries busy errors with backoff so
// a catalog query can run while an organize run is importing.
package catalog
