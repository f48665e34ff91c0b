// Package frame holds the frame classification core: the metadata record
// read from one exposure file, the closed frame-type set, and the
// category-specific normalization rules that decide which header fields
// survive into path building.
package frame
