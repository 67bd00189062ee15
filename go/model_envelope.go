package libraryserver

// Envelope wraps every successful /api payload.
type Envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// Ack is the body of operations that return no data.
type Ack struct {
	Success bool `json:"success"`
}

func ok[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: data}
}
