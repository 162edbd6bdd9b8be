// Package frame provides a small ordered table used to align per-ticker
// time series onto a shared date axis.
//
// A Frame holds string cells in row-major order under a fixed column header.
// The zero cell value "" marks a missing observation. Frames are built once
// and treated as immutable; every operation returns a new Frame.
package frame
