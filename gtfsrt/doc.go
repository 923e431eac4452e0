// Package gtfsrt fetches GTFS-Realtime VehiclePositions feeds and converts
// their entities into the prediction engine's vehicle fixes.
//
// The Feed wrapper keeps the latest decoded batch in memory behind a
// read-write lock so a background refresh loop and request handlers can
// share it; the snapshot handed out by Vehicles is a copy and stays valid
// across refreshes.
package gtfsrt
