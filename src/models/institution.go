package models

type Institution struct {
	ID   string `json:"institution_id"`
	Name string `json:"name"`
}
