package models

// Notification is a text report pushed to the farm operator.
type Notification struct {
	To      string `json:"to" binding:"required"`
	Title   string `json:"title"`
	Message string `json:"message" binding:"required"`
}

// Body joins the title and message the way they are delivered.
func (n Notification) Body() string {
	if n.Title == "" {
		return n.Message
	}
	return n.Title + "\n" + n.Message
}
