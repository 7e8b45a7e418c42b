package domain

// Envelope is the uniform wrapper for every remote call result. Data is a
// pointer so that "no payload" and "zero payload" stay distinguishable.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Empty is the payload type for endpoints that return no data.
type Empty struct{}

// OK builds a success envelope around data.
func OK[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: &data}
}

// Fail builds a failure envelope carrying a best-effort reason.
func Fail[T any](message string) Envelope[T] {
	return Envelope[T]{Success: false, Message: message}
}
