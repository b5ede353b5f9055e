package models

type CatalogSymptom struct {
	Category SymptomCategory `json:"category"`
	Name     string          `json:"name"`
	Label    string          `json:"label"`
}

// DefaultSymptomCatalog lists the symptoms offered by the log form. Records
// may still carry names outside the catalog.
func DefaultSymptomCatalog() []CatalogSymptom {
	return []CatalogSymptom{
		{Category: CategoryEndo, Name: "cramping", Label: "Cramping"},
		{Category: CategoryEndo, Name: "pelvic_pain", Label: "Pelvic pain"},
		{Category: CategoryEndo, Name: "back_pain", Label: "Back pain"},
		{Category: CategoryEndo, Name: "fatigue", Label: "Fatigue"},
		{Category: CategoryEndo, Name: "headache", Label: "Headache"},
		{Category: CategoryEndo, Name: "nausea", Label: "Nausea"},
		{Category: CategoryIBS, Name: "bloating", Label: "Bloating"},
		{Category: CategoryIBS, Name: "abdominal_pain", Label: "Abdominal pain"},
		{Category: CategoryIBS, Name: "diarrhea", Label: "Diarrhea"},
		{Category: CategoryIBS, Name: "constipation", Label: "Constipation"},
		{Category: CategoryIBS, Name: "gas", Label: "Gas"},
		{Category: CategoryIBS, Name: "urgency", Label: "Urgency"},
	}
}
