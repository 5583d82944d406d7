package errors

// Body is the JSON error body of the HTTP API: a short title, a human
// message and the machine-readable code.
type Body struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    Code   `json:"code,omitempty"`
}

// Err converts a decoded body back into an *Error. The code falls back to
// FromStatus(status) when the body carries none, and the message falls back
// to the title.
func (b Body) Err(status int) *Error {
	code := b.Code
	if code == "" {
		code = FromStatus(status)
	}
	msg := b.Message
	if msg == "" {
		msg = b.Error
	}
	return &Error{Code: code, Message: msg}
}
