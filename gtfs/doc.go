/*
Package gtfs loads GTFS static data and materializes the prediction
engine's inputs: per-trip route shapes with precomputed segment lengths,
per-trip stop-time sequences and the global stop list.

The package is data-source agnostic - it accepts raw zip bytes or a local
path and builds an in-memory index; HTTP download is a thin helper on top.
Parse the feed once at startup and keep the index in memory: GTFS is static
data and the index is read-only after construction, so it can be shared by
any number of concurrent prediction batches.
*/
package gtfs
