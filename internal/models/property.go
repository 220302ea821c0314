package models

// PropertyRecord is the normalized parcel description produced by the
// acquisition layer. The analyzer treats it as read-only input; missing
// optional fields default to zero values rather than failing an analysis.
type PropertyRecord struct {
	APN            string   `json:"apn"`
	Address        string   `json:"address"`
	AllAddresses   []string `json:"all_addresses,omitempty"`
	Zone           string   `json:"zone"`
	HeightDistrict string   `json:"height_district"`
	LotAreaSqFt    float64  `json:"lot_area_sqft"`
	ExistingUnits  int      `json:"existing_units"`
	BuildingSqFt   float64  `json:"building_sf"`
	YearBuilt      string   `json:"year_built"`
	IsRSO          bool     `json:"is_rso"`
	UseCode        string   `json:"use_code"`
	UseDescription string   `json:"use_description,omitempty"`

	// RawHazards carries the county hazard indicator flags keyed by the
	// source layer name (METHANE_ZONE, ALQUIST_PRIOLO_FAULT_ZONE, ...).
	RawHazards map[string]bool `json:"raw_hazards,omitempty"`

	// Transit holds the nested transit-proximity attributes when the source
	// provided them. ManualTOCTier is a hand-supplied fallback tier used
	// when no tier can be extracted from Transit.
	Transit       *TransitProximity `json:"transit,omitempty"`
	ManualTOCTier int               `json:"toc_tier,omitempty"`
}

// TransitProximity mirrors the layered attribute structure returned by the
// transit/housing GIS layers. Layer names and attribute keys are
// source-defined and not normalized here.
type TransitProximity struct {
	Layers map[string]map[string]string `json:"layers"`
}
