package domain

// Product is a catalog entry shown to users.
// Products are identified by their position in the list,
// so deleting one shifts every later index down by one.
type Product struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Contact is a published contact entry (e.g. a support e-mail).
// Same position-based identity as Product.
type Contact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Contact fields editable through the admin panel
const (
	ContactFieldName  = "name"
	ContactFieldValue = "value"
)
