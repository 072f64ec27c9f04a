package domain

// User is the authenticated identity attached to orders for record-keeping.
type User struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}
