// Package organizer orchestrates an organize run end to end: scanning the
// input tree, extracting and classifying headers, resolving temperature
// groups, copying frames into the destination hierarchy, and recording the
// run in the audit log and catalog.
//
// A run is two passes over the chronologically sorted frames. The first
// observes temperatures so every group's range is final before placement;
// the second resolves directories and filenames and performs the verified
// copies. Outlier decisions stay chronological while directory placement is
// independent of capture order.
package organizer
