// Package transform provides forest pre-processing applied before layout.
//
// [PruneSolists] removes isolated vertices, typically detections that were
// never linked into a track. [SortDaughters] runs a sorter over every
// division and stores the result in the forest, so that a later layout
// with the identity sorter reproduces it. [AddMarkers] adds the reference
// points of a geometric sorter as stand-alone vertices for inspection.
//
// All functions leave their input untouched unless documented otherwise.
package transform
