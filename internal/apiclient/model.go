package apiclient

import "io"

// MenuItem is a single dish returned by the analyze-menu endpoint.
type MenuItem struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Ingredients []string `json:"ingredients"`
	Allergens   []string `json:"allergens,omitempty"`
}

// Product is a recommended catalog entry.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
}

// Upload is the file sent as the multipart "file" field.
type Upload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Response is a raw HTTP result. Non-2xx statuses are not errors at this layer.
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the status is 2xx.
func (r Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}
