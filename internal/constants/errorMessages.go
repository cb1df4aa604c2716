package constants

const (
	MsgBoreholeAdded = "Borehole added successfully!"
)

const (
	ErrHoleIDExists         = "Hole ID already exists"
	ErrInvalidBody          = "request body must be valid JSON"
	ErrUnsupportedMediaType = "Content-Type must be application/json, application/x-www-form-urlencoded or multipart/form-data"
	ErrBodyTooLarge         = "request body too large"
	ErrNotFound             = "Not found"
	ErrMethodNotAllowed     = "Method not allowed"
	ErrTooManyRequests      = "Too many requests"
)
