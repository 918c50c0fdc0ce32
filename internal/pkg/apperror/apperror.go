package apperror

// AppError carries an HTTP status code together with a user-facing message.
// Handlers rely on it to translate service errors without switching on every sentinel.
type AppError struct {
	Code    int    // HTTP status code (e.g. 400, 404, 409)
	Message string // Message returned to the client
	Err     error  // Underlying cause, never exposed to the client
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates an AppError that wraps an underlying error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
