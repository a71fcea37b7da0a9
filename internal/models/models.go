package models

// All returns every model that needs a table.
func All() []any {
	return []any{
		&User{},
		&UserData{},
	}
}
