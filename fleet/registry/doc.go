// Package registry implements the in-memory Resource Store for ships.
//
// The Registry is a map from ship ID to Ship guarded by a single
// sync.RWMutex. It lives exactly as long as the process: there is no
// persistence layer behind it and no transactional machinery beyond one
// atomic read-modify-write per request.
//
// IDs are UUIDs assigned at insertion and never reused. Names carry no
// uniqueness constraint.
package registry
