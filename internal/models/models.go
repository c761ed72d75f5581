package models

// All lists every persisted model, parents before children.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Product{},
		&Order{},
		&OrderItem{},
	}
}
