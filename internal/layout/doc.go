// Package layout turns classifications into destination paths: the fixed
// directory hierarchy grammar, the session-date derivation, and the
// collision-safe destination filenames ordered by true capture time.
package layout
