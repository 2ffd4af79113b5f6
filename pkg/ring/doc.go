// Package ring implements a bounded, lock-free single-producer/single-
// consumer queue used to decouple each sampling tier from the writer thread.
// Capacity is fixed at construction and rounded up to a power of two so the
// index wrap can use a mask instead of a modulo. Overflow drops the newest
// sample and increments a counter rather than blocking the producer, since a
// stalled writer must never throttle the fast sampling tier.
package ring
