package acquisition

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelworks/lotscope/internal/config"
)

func feature(attrs map[string]any) map[string]any {
	return map[string]any{"attributes": attrs}
}

func writeFeatures(w http.ResponseWriter, features ...map[string]any) {
	if features == nil {
		features = []map[string]any{}
	}
	json.NewEncoder(w).Encode(map[string]any{"features": features})
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.Config{
		ParcelServiceURL: srv.URL,
		RequestTimeout:   2 * time.Second,
	})
}

func TestFetchByAPN(t *testing.T) {
	t.Run("should map county attributes onto the record", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("outFields") == "SitusAddress,SitusFullAddress" {
				writeFeatures(w,
					feature(map[string]any{"SitusAddress": "617 S BURLINGTON AVE"}),
					feature(map[string]any{"SitusAddress": "619 S BURLINGTON AVE", "SitusFullAddress": "617 S BURLINGTON AVE"}),
				)
				return
			}
			assert.Contains(t, r.URL.Query().Get("where"), "5123018021")
			writeFeatures(w, feature(map[string]any{
				"AIN":            "5123018021",
				"SitusAddress":   "617 S BURLINGTON AVE",
				"UseCode":        "0500",
				"UseDescription": "Five or more apartments",
				"YearBuilt1":     float64(1965),
				"Units1":         float64(8),
				"SQFTmain1":      float64(7200),
				"Shape.STArea()": 10000.0,
				"METHANE_ZONE":   "Y",
				"LIQUEFACTION":   "N",
			}))
		})

		rec, err := client.FetchByAPN(context.Background(), "5123-018-021")
		require.NoError(t, err)

		assert.Equal(t, "5123-018-021", rec.APN)
		assert.Equal(t, "617 S BURLINGTON AVE", rec.Address)
		assert.Equal(t, "R4", rec.Zone)
		assert.Equal(t, "2", rec.HeightDistrict)
		assert.Equal(t, 10000.0, rec.LotAreaSqFt)
		assert.Equal(t, 8, rec.ExistingUnits)
		assert.Equal(t, 7200.0, rec.BuildingSqFt)
		assert.Equal(t, "1965", rec.YearBuilt)
		assert.True(t, rec.IsRSO)
		assert.True(t, rec.RawHazards["METHANE_ZONE"])
		assert.False(t, rec.RawHazards["LIQUEFACTION"])
		assert.Equal(t, []string{"617 S BURLINGTON AVE", "619 S BURLINGTON AVE"}, rec.AllAddresses)
	})

	t.Run("should prefer the explicit zoning layer over use-code inference", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeFeatures(w, feature(map[string]any{
				"AIN":        "5123018021",
				"UseCode":    "0500",
				"ZONE_CMPLT": "R3-1VL",
			}))
		})

		rec, err := client.FetchByAPN(context.Background(), "5123018021")
		require.NoError(t, err)
		assert.Equal(t, "R3-1VL", rec.Zone)
		assert.Equal(t, "", rec.HeightDistrict)
	})

	t.Run("should return ErrNotFound for unknown parcels", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeFeatures(w)
		})

		_, err := client.FetchByAPN(context.Background(), "5123018021")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should surface upstream failures", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		})

		_, err := client.FetchByAPN(context.Background(), "5123018021")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "503")
	})
}

func TestResolveAddress(t *testing.T) {
	t.Run("should resolve an exact situs match", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			where := r.URL.Query().Get("where")
			assert.Contains(t, where, "617 S BURLINGTON AVE")
			writeFeatures(w, feature(map[string]any{"AIN": "5123018021"}))
		})

		apn, err := client.ResolveAddress(context.Background(), "617 S Burlington Ave, Los Angeles, CA 90057")
		require.NoError(t, err)
		assert.Equal(t, "5123018021", apn)
	})

	t.Run("should fall back to a partial match", func(t *testing.T) {
		var calls int
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				writeFeatures(w)
				return
			}
			assert.Contains(t, r.URL.Query().Get("where"), "LIKE")
			writeFeatures(w, feature(map[string]any{"APN": "5123018021"}))
		})

		apn, err := client.ResolveAddress(context.Background(), "617 S Burlington Ave")
		require.NoError(t, err)
		assert.Equal(t, "5123018021", apn)
		assert.Equal(t, 2, calls)
	})

	t.Run("should return ErrNotFound when nothing matches", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeFeatures(w)
		})

		_, err := client.ResolveAddress(context.Background(), "1 NOWHERE ST")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should reject empty addresses without a query", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		_, err := client.ResolveAddress(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAttrHelpers(t *testing.T) {
	attrs := map[string]any{
		"s":     "value",
		"empty": "",
		"num":   float64(1965),
		"zero":  float64(0),
		"yes":   "Y",
		"no":    "N",
		"null":  "NULL",
		"one":   float64(1),
		"bool":  true,
	}

	assert.Equal(t, "value", attrString(attrs, "missing", "s"))
	assert.Equal(t, "1965", attrString(attrs, "empty", "num"))
	assert.Equal(t, "", attrString(attrs, "zero", "missing"))

	assert.Equal(t, 1965.0, attrFloat(attrs, "num"))
	assert.Equal(t, 0.0, attrFloat(attrs, "s"))
	assert.Equal(t, 1965, attrInt(attrs, "zero", "num"))

	assert.True(t, attrBool(attrs, "yes"))
	assert.True(t, attrBool(attrs, "one"))
	assert.True(t, attrBool(attrs, "bool"))
	assert.False(t, attrBool(attrs, "no"))
	assert.False(t, attrBool(attrs, "null"))
	assert.False(t, attrBool(attrs, "missing"))
}

func TestMapRecordUseCodeInference(t *testing.T) {
	rec := mapRecord(map[string]any{"UseCode": "1100", "Units1": float64(1)})
	assert.Equal(t, "R1", rec.Zone)
	assert.Equal(t, "1", rec.HeightDistrict)
	assert.False(t, rec.IsRSO)

	rec = mapRecord(map[string]any{"UseCode": "0500", "Units1": float64(1)})
	assert.False(t, rec.IsRSO, "single unit cannot be rent stabilized")

	rec = mapRecord(map[string]any{"YearBuilt1": "0"})
	assert.Equal(t, "", rec.YearBuilt)
	assert.False(t, strings.HasPrefix(rec.Zone, "R"))
}
