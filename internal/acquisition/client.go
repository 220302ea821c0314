package acquisition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/parcelworks/lotscope/internal/config"
	"github.com/parcelworks/lotscope/internal/models"
)

// ErrNotFound is returned when the county service has no parcel matching
// the query. It is the only failure callers should surface as a 404.
var ErrNotFound = errors.New("parcel not found")

// Client queries the county parcel GIS service and maps its raw attribute
// payloads into normalized PropertyRecords.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a county parcel client from config.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		baseURL: cfg.ParcelServiceURL,
	}
}

type queryResponse struct {
	Features []struct {
		Attributes map[string]any `json:"attributes"`
	} `json:"features"`
}

func (c *Client) query(ctx context.Context, params url.Values) (*queryResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build parcel query: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parcel service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("parcel service returned status %d", resp.StatusCode)
	}

	var out queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode parcel response: %w", err)
	}
	return &out, nil
}

// ResolveAddress finds the APN for a street address, trying an exact situs
// match before falling back to a partial match.
func (c *Client) ResolveAddress(ctx context.Context, address string) (string, error) {
	normalized := strings.ToUpper(NormalizeAddress(address))
	if normalized == "" {
		return "", ErrNotFound
	}

	wheres := []string{
		fmt.Sprintf("SitusAddress = '%s' OR SitusFullAddress LIKE '%%%s%%'", normalized, normalized),
		fmt.Sprintf("SitusAddress LIKE '%%%s%%' OR SitusFullAddress LIKE '%%%s%%'", normalized, normalized),
	}
	for _, where := range wheres {
		params := url.Values{}
		params.Set("where", where)
		params.Set("outFields", "AIN,APN,SitusAddress,SitusFullAddress")
		params.Set("f", "json")
		params.Set("returnGeometry", "false")
		params.Set("resultRecordCount", "5")

		resp, err := c.query(ctx, params)
		if err != nil {
			return "", err
		}
		if len(resp.Features) == 0 {
			continue
		}
		attrs := resp.Features[0].Attributes
		if apn := attrString(attrs, "AIN", "APN"); apn != "" {
			return apn, nil
		}
	}
	return "", ErrNotFound
}

// FetchByAPN retrieves the full parcel record, including every situs
// address registered against the APN.
func (c *Client) FetchByAPN(ctx context.Context, apn string) (*models.PropertyRecord, error) {
	clean := nonDigits.ReplaceAllString(apn, "")
	params := url.Values{}
	params.Set("where", fmt.Sprintf("AIN='%s' OR APN='%s'", clean, clean))
	params.Set("outFields", "*")
	params.Set("f", "json")
	params.Set("returnGeometry", "true")

	resp, err := c.query(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(resp.Features) == 0 {
		return nil, ErrNotFound
	}

	addresses, err := c.allAddresses(ctx, clean)
	if err != nil {
		// Address enumeration is best effort; the primary situs address
		// from the parcel record still applies.
		addresses = nil
	}

	rec := mapRecord(resp.Features[0].Attributes)
	rec.AllAddresses = addresses
	return &rec, nil
}

func (c *Client) allAddresses(ctx context.Context, apn string) ([]string, error) {
	params := url.Values{}
	params.Set("where", fmt.Sprintf("AIN='%s' OR APN='%s'", apn, apn))
	params.Set("outFields", "SitusAddress,SitusFullAddress")
	params.Set("f", "json")
	params.Set("returnGeometry", "false")

	resp, err := c.query(ctx, params)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for _, f := range resp.Features {
		for _, key := range []string{"SitusAddress", "SitusFullAddress"} {
			if addr := strings.TrimSpace(attrString(f.Attributes, key)); addr != "" {
				seen[addr] = true
			}
		}
	}

	addresses := make([]string, 0, len(seen))
	for addr := range seen {
		addresses = append(addresses, addr)
	}
	sort.Strings(addresses)
	return addresses, nil
}

// Hazard layers carried through from the raw attributes when present.
var hazardKeys = []string{"METHANE_ZONE", "ALQUIST_PRIOLO_FAULT_ZONE", "LIQUEFACTION"}

// mapRecord converts raw county attributes into a PropertyRecord. Missing
// fields default to zero values; the engine degrades gracefully from there.
func mapRecord(attrs map[string]any) models.PropertyRecord {
	useCode := attrString(attrs, "UseCode")
	existingUnits := attrInt(attrs, "Units1", "Units")

	yearBuilt := attrString(attrs, "YearBuilt1", "YearBuilt")
	if yearBuilt == "0" {
		yearBuilt = ""
	}

	// Zone and height district inferred from use when the zoning layer is
	// not part of the county payload.
	zone, heightDistrict := "", ""
	switch {
	case useCode == "0500":
		zone, heightDistrict = "R4", "2"
	case strings.HasPrefix(useCode, "1"):
		zone, heightDistrict = "R1", "1"
	}
	if z := attrString(attrs, "ZONE_CMPLT", "Zoning"); z != "" {
		zone = z
		heightDistrict = ""
	}

	hazards := map[string]bool{}
	for _, key := range hazardKeys {
		if attrBool(attrs, key) {
			hazards[key] = true
		}
	}

	return models.PropertyRecord{
		APN:            FormatAPN(attrString(attrs, "AIN", "APN")),
		Address:        attrString(attrs, "SitusAddress"),
		Zone:           zone,
		HeightDistrict: heightDistrict,
		LotAreaSqFt:    attrFloat(attrs, "Shape.STArea()", "LotArea"),
		ExistingUnits:  existingUnits,
		BuildingSqFt:   attrFloat(attrs, "SQFTmain1", "BuildingSqFt"),
		YearBuilt:      yearBuilt,
		IsRSO:          useCode == "0500" && existingUnits >= 2,
		UseCode:        useCode,
		UseDescription: attrString(attrs, "UseDescription"),
		RawHazards:     hazards,
	}
}

func attrString(attrs map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := attrs[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v != 0 {
				return strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
	}
	return ""
}

func attrFloat(attrs map[string]any, keys ...string) float64 {
	for _, key := range keys {
		switch v := attrs[key].(type) {
		case float64:
			if v != 0 {
				return v
			}
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil && f != 0 {
				return f
			}
		}
	}
	return 0
}

func attrInt(attrs map[string]any, keys ...string) int {
	return int(attrFloat(attrs, keys...))
}

func attrBool(attrs map[string]any, keys ...string) bool {
	for _, key := range keys {
		switch v := attrs[key].(type) {
		case bool:
			if v {
				return true
			}
		case float64:
			if v != 0 {
				return true
			}
		case string:
			switch strings.ToUpper(strings.TrimSpace(v)) {
			case "", "N", "NO", "FALSE", "0", "NULL":
			default:
				return true
			}
		}
	}
	return false
}
