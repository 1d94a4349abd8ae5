package serverutils

type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) BaseResponse[any] {
	return BaseResponse[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// ErrorResponseWithData is used when the client needs a payload to render the
// failure, e.g. the editor's error toast.
func ErrorResponseWithData[T any](code int, message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: false,
		Code:    code,
		Message: message,
		Data:    data,
	}
}
