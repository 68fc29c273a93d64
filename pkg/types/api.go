package types

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: validation failed
	Error string `json:"error" example:"validation failed"`
	// HTTP status code.
	// example: 422
	Code int `json:"code" example:"422"`
	// Per-field problems, present on validation failures.
	Detail []Issue `json:"detail,omitempty"`
}

// Issue describes one offending input of a request.
type Issue struct {
	// Location of the input: source ("path", "query", "body") followed by
	// the field name and, for sequences, the element index.
	// example: ["query","q"]
	Loc []any `json:"loc"`
	// Human readable problem description.
	// example: String should have at least 3 characters
	Msg string `json:"msg" example:"String should have at least 3 characters"`
	// Machine readable problem kind.
	// example: string_too_short
	Type string `json:"type" example:"string_too_short"`
	// The offending raw input, when there was one.
	Input any `json:"input,omitempty"`
}

// MessageResponse is returned by GET /.
type MessageResponse struct {
	// example: Hello World
	Message string `json:"message" example:"Hello World"`
}

// ModelResponse is returned by GET /models/{model_name}.
type ModelResponse struct {
	// example: alexnet
	ModelName ModelName `json:"model_name" example:"alexnet"`
	// example: Deep Learning FTW!
	Message string `json:"message" example:"Deep Learning FTW!"`
}

// ItemRef is an entry of the canned item listing.
type ItemRef struct {
	// example: Foo
	ItemID string `json:"item_id" example:"Foo"`
}

// ItemsResponse is returned by the query-constraint demo routes.
type ItemsResponse struct {
	Items []ItemRef `json:"items"`
	// Echo of the query, omitted when not supplied.
	Q string `json:"q,omitempty"`
}

// QueryListResponse echoes a sequence query parameter.
type QueryListResponse struct {
	Q []string `json:"q"`
}

// UserResponse is returned by the /users routes.
type UserResponse struct {
	// example: the current user
	UserID string `json:"user_id" example:"the current user"`
}

// UpdatedItemResponse is returned by PUT /items/{item_id}.
type UpdatedItemResponse struct {
	ItemID int `json:"item_id" example:"42"`
	Item
}

// ItemQueryResponse echoes a text item id and optional query.
type ItemQueryResponse struct {
	// example: foo
	ItemID string `json:"item_id" example:"foo"`
	Q      string `json:"q,omitempty"`
}

// ItemNumberResponse echoes an integer item id and optional query.
type ItemNumberResponse struct {
	// example: 42
	ItemID int    `json:"item_id" example:"42"`
	Q      string `json:"q,omitempty"`
}
