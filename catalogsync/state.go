package catalogsync

// State describes where a collection sits in its load cycle.
//
// A cold collection walks Empty -> Loading -> Ready. When cached data is
// available the walk is Empty -> CachedReady -> Refreshing -> Ready: the
// cached data is served immediately and a background refresh replaces it.
// Error is terminal only for the current attempt; the next read retries.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateCachedReady
	StateRefreshing
	StateReady
	StateError
)

var stateNames = map[State]string{
	StateEmpty:       "empty",
	StateLoading:     "loading",
	StateCachedReady: "cached_ready",
	StateRefreshing:  "refreshing",
	StateReady:       "ready",
	StateError:       "error",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
