package tui

import "sync/atomic"

// ID of the user whose credential the TUI is currently acting under.
// Zero means nobody is signed in. Written from the bubbletea update loop
// and read by commands running on their own goroutines, hence atomic.
var sessionUserID atomic.Int64

func setSessionUserID(userID int64) {
	sessionUserID.Store(userID)
}

func getSessionUserID() int64 {
	return sessionUserID.Load()
}

func clearSessionUserID() {
	sessionUserID.Store(0)
}
