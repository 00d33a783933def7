// Package store binds the proxy container layer, the value encoder,
// and the append-only log writer into a store handle.
//
// A Store owns a root mapping. Every mutating call on the root or on
// any container reachable from it is validated, applied to the live
// structure, rendered as exactly one statement, and appended to the
// log with a durability barrier before the call returns. Reads never
// touch the log. Replaying the log (package replay) reproduces the
// live structure.
//
// Containers read out of the store are proxies, not raw values:
// mutating a nested list obtained from a map is transparently logged.
// Assigning a container value copies it — the store never aliases
// caller-owned mutable state, since an unmanaged mutation would
// silently diverge from the log. A proxy that has been overwritten or
// deleted is detached; mutating it fails with ErrInvalidMutation.
//
// One Store owns exclusive write access to one log target for its
// lifetime. Calls are not internally synchronized; callers mutating
// from multiple goroutines must serialize.
package store
