package todo

// Greeting is the body of the home endpoint.
type Greeting struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}
