package vin_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"diaglistapp/internal/vin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDecoder(t *testing.T, handler http.HandlerFunc) *vin.Decoder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	d := vin.New()
	d.BaseURL = srv.URL
	return d
}

func vpicResponse(pairs map[string]string) string {
	body := `{"Results":[`
	first := true
	for variable, value := range pairs {
		if !first {
			body += ","
		}
		first = false
		body += fmt.Sprintf(`{"Variable":%q,"Value":%q}`, variable, value)
	}
	return body + `]}`
}

func TestDecodeRejectsShortVIN(t *testing.T) {
	d := vin.New()

	_, err := d.Decode(context.Background(), "  ABC123  ")
	assert.ErrorIs(t, err, vin.ErrTooShort)
}

func TestDecodeParsesVehicle(t *testing.T) {
	d := testDecoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/DecodeVin/JTMBFREV8HJ123456", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		fmt.Fprint(w, vpicResponse(map[string]string{
			"Make":       "TOYOTA",
			"Model":      "RAV4",
			"Body Class": "Sport Utility Vehicle (SUV)",
			"Drive Type": "4WD/4-Wheel Drive/4x4",
		}))
	})

	info, err := d.Decode(context.Background(), "JTMBFREV8HJ123456")
	require.NoError(t, err)
	assert.Equal(t, "TOYOTA", info.Make)
	assert.Equal(t, "RAV4", info.Model)
	assert.Equal(t, "TOYOTA RAV4", info.Car())
}

func TestDecodeNoMatch(t *testing.T) {
	d := testDecoder(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, vpicResponse(map[string]string{"Error Code": "8"}))
	})

	_, err := d.Decode(context.Background(), "0000000000")
	assert.ErrorIs(t, err, vin.ErrNoMatch)
}

func TestDecodeNullValuesIgnored(t *testing.T) {
	d := testDecoder(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Results":[{"Variable":"Make","Value":"KIA"},{"Variable":"Model","Value":null}]}`)
	})

	info, err := d.Decode(context.Background(), "XWEHC512AJ0000000")
	require.NoError(t, err)
	assert.Equal(t, "KIA", info.Make)
	assert.Equal(t, "KIA", info.Car())
}

func TestDecodeServerError(t *testing.T) {
	d := testDecoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := d.Decode(context.Background(), "JTMBFREV8HJ123456")
	assert.Error(t, err)
}

func TestSuspensionHints(t *testing.T) {
	cases := []struct {
		name      string
		bodyClass string
		driveType string
		front     string
		rear      string
	}{
		{"independent body", "Independent Suspension Chassis", "FWD/Front-Wheel Drive", "independent", ""},
		{"independent body rear drive", "Independent Suspension Chassis", "RWD/Rear-Wheel Drive", "independent", "independent"},
		{"dependent body", "Dependent Axle Truck", "4WD", "dependent", "dependent"},
		{"no hint", "Sedan/Saloon", "FWD/Front-Wheel Drive", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := testDecoder(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, vpicResponse(map[string]string{
					"Make":       "TEST",
					"Model":      "CAR",
					"Body Class": tc.bodyClass,
					"Drive Type": tc.driveType,
				}))
			})

			info, err := d.Decode(context.Background(), "1234567890A")
			require.NoError(t, err)
			assert.Equal(t, tc.front, info.FrontSuspension)
			assert.Equal(t, tc.rear, info.RearSuspension)
		})
	}
}
