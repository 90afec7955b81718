package refresh

// ProgressFunc receives a live progress event each time a work item reaches
// a terminal outcome: items completed so far, total items in the session,
// and a display label for the item that just finished (the fund name when
// known, otherwise the key). Delivery is fire-and-forget and always comes
// from the goroutine running the session, never concurrently. A session
// with no work items emits no events.
type ProgressFunc func(completed, total int, label string)
