package factories

// Factory groups inspection cameras by production site. Region is the
// prefix used for region-level filtering of inspections.
type Factory struct {
	FactoryID string   `json:"factory_id"`
	Region    string   `json:"region"`
	Cameras   []string `json:"cameras"`
}
