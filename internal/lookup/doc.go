// Package lookup resolves remote data without blocking the UI goroutine.
//
// A Cache is a write-once, mutex-guarded map shared by every consumer of one
// remote source. A Requester runs fetches on background goroutines and hands
// results back through a small bounded channel that the UI drains with a
// non-blocking Poll on a fixed interval:
//   - each Submit supersedes the previous one; older results are drained and discarded
//   - after PollConfig.MaxAttempts polls without a result the request is abandoned
//   - the background fetch is never cancelled by the requester, only ignored
package lookup
