package session

// Messages used when the backend gives no reason of its own.
const (
	MsgLoginFailed        = "Login failed"
	MsgRegisterFailed     = "Registration failed"
	MsgRegistered         = "Registration successful. You can now log in."
	MsgVerificationFailed = "Token verification failed"
)

// Backend routes used by the session.
const (
	PathLogin    = "/api/login"
	PathRegister = "/api/register"
	PathMe       = "/api/me"
)
