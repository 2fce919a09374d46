// Package vin decodes vehicle identification numbers through the
// public NHTSA vPIC service.
package vin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public vPIC vehicles API.
const DefaultBaseURL = "https://vpic.nhtsa.dot.gov/api/vehicles"

var (
	// ErrTooShort is returned for inputs under ten characters.
	ErrTooShort = errors.New("vin must be at least 10 characters")

	// ErrNoMatch is returned when the service knows neither make nor
	// model for the given number.
	ErrNoMatch = errors.New("no vehicle data for vin")
)

// VehicleInfo is the decoded result plus the suspension hints derived
// from it. Hints may be empty when the body class gives nothing away.
type VehicleInfo struct {
	Make            string `json:"make"`
	Model           string `json:"model"`
	BodyClass       string `json:"bodyClass"`
	DriveType       string `json:"driveType"`
	FrontSuspension string `json:"frontSuspension"`
	RearSuspension  string `json:"rearSuspension"`
}

// Car returns the "Make Model" display string for the car field.
func (v VehicleInfo) Car() string {
	return strings.TrimSpace(v.Make + " " + v.Model)
}

// Decoder queries the vPIC decode endpoint.
type Decoder struct {
	BaseURL string
	Client  *http.Client
}

// New creates a decoder against the public service.
func New() *Decoder {
	return &Decoder{
		BaseURL: DefaultBaseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type decodeResponse struct {
	Results []struct {
		Variable string `json:"Variable"`
		Value    string `json:"Value"`
	} `json:"Results"`
}

// Decode looks up a VIN. The ten character minimum matches what the
// service accepts for partial numbers.
func (d *Decoder) Decode(ctx context.Context, vin string) (VehicleInfo, error) {
	vin = strings.TrimSpace(vin)
	if len(vin) < 10 {
		return VehicleInfo{}, ErrTooShort
	}

	endpoint := fmt.Sprintf("%s/DecodeVin/%s?format=json", d.BaseURL, url.PathEscape(vin))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return VehicleInfo{}, fmt.Errorf("failed to build vin request: %w", err)
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return VehicleInfo{}, fmt.Errorf("vin request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VehicleInfo{}, fmt.Errorf("vin service returned status %d", resp.StatusCode)
	}

	var decoded decodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return VehicleInfo{}, fmt.Errorf("failed to parse vin response: %w", err)
	}

	fields := make(map[string]string, len(decoded.Results))
	for _, r := range decoded.Results {
		if r.Value != "" {
			fields[r.Variable] = r.Value
		}
	}

	info := VehicleInfo{
		Make:      fields["Make"],
		Model:     fields["Model"],
		BodyClass: fields["Body Class"],
		DriveType: fields["Drive Type"],
	}
	if info.Make == "" && info.Model == "" {
		return VehicleInfo{}, ErrNoMatch
	}

	info.FrontSuspension, info.RearSuspension = suspensionHints(info.BodyClass, info.DriveType)
	return info, nil
}

// suspensionHints guesses suspension types from the decoded body class
// and drive type. The service rarely states the suspension outright,
// so the guess is conservative and the form keeps it editable.
func suspensionHints(bodyClass, driveType string) (front, rear string) {
	bodyClass = strings.ToLower(bodyClass)
	driveType = strings.ToLower(driveType)

	switch {
	case strings.Contains(bodyClass, "mcpherson"):
		front = "mcpherson"
	case strings.Contains(bodyClass, "independent"):
		front = "independent"
	case strings.Contains(bodyClass, "dependent"):
		front = "dependent"
	}

	switch {
	case strings.Contains(driveType, "rear") && strings.Contains(bodyClass, "independent"):
		rear = "independent"
	case strings.Contains(bodyClass, "dependent"):
		rear = "dependent"
	}
	return front, rear
}
