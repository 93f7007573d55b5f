package user

// Identity is the authenticated caller, resolved by the HTTP layer from JWT
// claims and threaded explicitly into every service call. Services never read
// ambient session state.
type Identity struct {
	UserID     string
	EmployeeID string
	Role       Role
}
