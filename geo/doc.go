/*
Package geo provides the coordinate and polyline primitives the prediction
engine is built on.

Coordinates are plain WGS84 degrees with no datum correction. Out-of-range
values are reported by Valid and must be rejected by callers - nothing in
this package clamps them silently.

A Shape is an ordered polyline of segments with precomputed lengths,
running from a route's origin to its terminus. Segment ordering is what
"ahead"/"behind" comparisons in the engine rely on, so shapes must be
contiguous: segment i ends where segment i+1 starts. NewShape guarantees
this by construction.

Projection onto a shape is deterministic: every segment is evaluated and
the global minimum-distance snap wins, with ties broken by the earliest
segment index.
*/
package geo
