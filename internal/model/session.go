package model

// Session identifies the caller of authorization-sensitive operations.
//
// It is an explicit value passed into service calls, not mutable state on
// the store: the same store can serve many logical sessions concurrently,
// and "logging out" is simply discarding the value. A session with
// UserID <= 0 is anonymous.
type Session struct {
	UserID int64
}

// Anonymous is the unauthenticated session.
var Anonymous = Session{}

// Authenticated reports whether the session belongs to a real user.
func (s Session) Authenticated() bool {
	return s.UserID > 0
}
