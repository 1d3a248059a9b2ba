package catalog

// Session tracks the currently authenticated user. It starts empty, is
// populated by a successful login and cleared by logout. At most one user
// is current at a time; the zero user id means no session.
type Session struct {
	userID   int
	username string
}

// Active reports whether a user is logged in.
func (s *Session) Active() bool {
	return s.userID > 0
}

// UserID returns the current user's id, or 0 when no session is active.
func (s *Session) UserID() int {
	return s.userID
}

// Username returns the current user's username, or "" when no session is active.
func (s *Session) Username() string {
	return s.username
}

func (s *Session) begin(userID int, username string) {
	s.userID = userID
	s.username = username
}

func (s *Session) end() {
	s.userID = 0
	s.username = ""
}
