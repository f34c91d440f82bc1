package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	accountHandler accountHandler
	projectHandler projectHandler
	flowHandler    flowHandler
	imageHandler   imageHandler
}

// registerRequest is the register payload
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the login payload
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateEmailRequest is the email-change payload
type updateEmailRequest struct {
	Email string `json:"email"`
}

// saveFlowRequest carries the serialized flow document
type saveFlowRequest struct {
	Flow string `json:"flow"`
}

// uploadImageRequest carries one node's data-URI-encoded image
type uploadImageRequest struct {
	NodeID    string `json:"nodeId"`
	ImageData string `json:"imageData"`
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error  string `json:"error" example:"internal server error"`
	Status string `json:"status" example:"error"`
	Field  string `json:"field,omitempty" example:"name"`
}
