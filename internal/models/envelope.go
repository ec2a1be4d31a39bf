package models

// Action names accepted by the action endpoint.
const (
	ActionGetPreview    = "GET_PREVIEW"
	ActionCreateProduct = "CREATE_PRODUCT"
)

// DefaultErrorMessage is used when a failure carries no message.
const DefaultErrorMessage = "Something went wrong"

// ActionRequest is the inbound request envelope.
type ActionRequest struct {
	Action  string         `json:"action"`
	Payload *ActionPayload `json:"payload"`
}

// ActionPayload carries the arguments of an action.
type ActionPayload struct {
	ShopifyStore string   `json:"shopifyStore"`
	SKU          string   `json:"sku,omitempty"`
	Product      *Product `json:"product,omitempty"`
}

// Envelope is the uniform response returned for every action.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *string     `json:"error"`
}

// Succeeded wraps data in a successful envelope.
func Succeeded(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// Failed wraps an error message in a failed envelope.
func Failed(message string) Envelope {
	if message == "" {
		message = DefaultErrorMessage
	}
	return Envelope{Success: false, Error: &message}
}
