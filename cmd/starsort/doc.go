// Command starsort organizes astronomical FITS exposures into a clean,
// deterministic library: session trees for lights and flats, a shared
// calibration library for darks and biases, temperature-bucketed folders,
// and a per-run audit log plus sqlite catalog.
package main
