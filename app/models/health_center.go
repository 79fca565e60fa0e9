package models

// HealthCenter is one row of the reference dataset after cleaning.
type HealthCenter struct {
	Name         string `json:"name" bson:"name"`                 // Center name, unique within a dataset
	StreetType   string `json:"street_type" bson:"street_type"`   // Raw street type code (AVE, R, ...)
	StreetName   string `json:"street_name" bson:"street_name"`   // Street name as published
	Number       string `json:"number,omitempty" bson:"number"`   // Building number, empty when unknown
	Neighborhood string `json:"neighborhood" bson:"neighborhood"` // Popular neighborhood name
	Phone        string `json:"phone" bson:"phone"`               // Formatted phones joined by " / "
	Address      string `json:"address" bson:"address"`           // Derived display address
	District     string `json:"district" bson:"district"`         // Health district
}

// Entities are the place references extracted from a message. An empty
// field means the entity was not found. At most one of Neighborhood and
// District is set.
type Entities struct {
	CenterName   string `json:"centro_saude" bson:"centro_saude"`
	Neighborhood string `json:"bairro" bson:"bairro"`
	District     string `json:"distrito" bson:"distrito"`
}

// IsEmpty reports whether no entity was extracted.
func (e Entities) IsEmpty() bool {
	return e.CenterName == "" && e.Neighborhood == "" && e.District == ""
}
