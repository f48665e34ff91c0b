// Package thermal buckets sensor temperatures into discrete path segments:
// single rounded degrees for calibration darks, tolerance-windowed
// floor/ceil ranges for session frames, and above/below outlier slots for
// frames that fall outside their group's window.
package thermal
