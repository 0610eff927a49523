// Package extsort implements an external sort of a binary file of
// fixed-width numeric records under a caller-specified memory budget.
//
// The engine runs in two phases sharing a worker pool (package pool) and a
// double-buffered run reader (package merge): a chunking phase partitions
// the input into in-memory sort chunks sized to the budget, sorts each
// stably, and writes them as intermediate runs; a k-way merge phase merges
// all runs into the final output using a min-heap and double-buffered
// asynchronous writeback.
//
// extsort is NOT a stable sort across runs: ties from different runs may
// appear in either order in the output, though ties within a single run
// preserve their original relative order.
package extsort
