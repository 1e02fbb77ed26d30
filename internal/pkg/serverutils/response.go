package serverutils

// Response is the envelope every JSON endpoint returns.
type Response[T any] struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Data    T          `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries a machine-readable code next to the user-facing text.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Response[any] {
	return Response[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// CodedErrorResponse is ErrorResponse with an error body, used when the
// client branches on errorCode.
func CodedErrorResponse(code int, errorCode, message string) Response[any] {
	res := ErrorResponse(code, message)
	res.Error = &ErrorBody{Code: errorCode, Message: message}
	return res
}
