//go:build unit

package dto

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSearchCriteria_Normalize(t *testing.T) {
	normalizeRequest := func(in, want SearchCriteria) func(t *testing.T) {
		return func(t *testing.T) {
			in.Normalize()

			if diff := cmp.Diff(want, in); diff != "" {
				t.Fatalf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("defaults", normalizeRequest(
		SearchCriteria{
			Origin:        "  Delhi (DEL)  ",
			Destination:   " Mumbai (BOM)",
			DepartureDate: "2026-12-15",
		},
		SearchCriteria{
			Origin:        "Delhi (DEL)",
			Destination:   "Mumbai (BOM)",
			DepartureDate: "2026-12-15",
			TripType:      TripTypeOneWay,
			Passengers:    1,
		},
	))

	t.Run("oneway_drops_return_date", normalizeRequest(
		SearchCriteria{
			Origin:        "DEL",
			Destination:   "BOM",
			DepartureDate: "2026-12-15",
			ReturnDate:    "2026-12-20",
			TripType:      TripTypeOneWay,
			Passengers:    2,
		},
		SearchCriteria{
			Origin:        "DEL",
			Destination:   "BOM",
			DepartureDate: "2026-12-15",
			TripType:      TripTypeOneWay,
			Passengers:    2,
		},
	))

	t.Run("roundtrip_keeps_return_date", normalizeRequest(
		SearchCriteria{
			Origin:        "DEL",
			Destination:   "BOM",
			DepartureDate: "2026-12-15",
			ReturnDate:    "2026-12-20",
			TripType:      TripTypeRoundTrip,
			Passengers:    2,
		},
		SearchCriteria{
			Origin:        "DEL",
			Destination:   "BOM",
			DepartureDate: "2026-12-15",
			ReturnDate:    "2026-12-20",
			TripType:      TripTypeRoundTrip,
			Passengers:    2,
		},
	))
}

func TestSearchCriteria_Validate(t *testing.T) {
	_ = InitValidator()

	validateRequest := func(req SearchCriteria, wantMsg string) func(t *testing.T) {
		return func(t *testing.T) {
			req.Normalize()
			err := req.Validate()

			if wantMsg == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}

			if diff := cmp.Diff(wantMsg, err.Error()); diff != "" {
				t.Fatalf("Validate() error message mismatch (-want +got):\n%s", diff)
			}
		}
	}

	t.Run("valid_oneway", validateRequest(SearchCriteria{
		Origin:        "Delhi (DEL)",
		Destination:   "Mumbai (BOM)",
		DepartureDate: "2026-12-15",
		Passengers:    2,
	}, ""))

	t.Run("missing_origin", validateRequest(SearchCriteria{
		Destination:   "Mumbai (BOM)",
		DepartureDate: "2026-12-15",
	}, "origin is a required field"))

	t.Run("missing_departure_date", validateRequest(SearchCriteria{
		Origin:      "Delhi (DEL)",
		Destination: "Mumbai (BOM)",
	}, "departure_date is a required field"))

	t.Run("roundtrip_without_return_date", validateRequest(SearchCriteria{
		Origin:        "Delhi (DEL)",
		Destination:   "Mumbai (BOM)",
		DepartureDate: "2026-12-15",
		TripType:      TripTypeRoundTrip,
	}, "return_date is required for a round-trip"))

	t.Run("too_many_passengers", validateRequest(SearchCriteria{
		Origin:        "Delhi (DEL)",
		Destination:   "Mumbai (BOM)",
		DepartureDate: "2026-12-15",
		Passengers:    11,
	}, "passengers must be 10 or less"))
}

func TestPassenger_Validate(t *testing.T) {
	_ = InitValidator()

	validateRequest := func(p Passenger, wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			err := ValidateSingleError(&p)
			if (err != nil) != wantErr {
				t.Fatalf("ValidateSingleError() error = %v, wantErr %v", err, wantErr)
			}
		}
	}

	t.Run("valid", validateRequest(Passenger{Name: "Asha Rao", Age: 34, Gender: "Female"}, false))
	t.Run("missing_name", validateRequest(Passenger{Age: 34, Gender: "Female"}, true))
	t.Run("zero_age", validateRequest(Passenger{Name: "Asha Rao", Gender: "Female"}, true))
	t.Run("age_over_limit", validateRequest(Passenger{Name: "Asha Rao", Age: 121, Gender: "Female"}, true))
	t.Run("unknown_gender", validateRequest(Passenger{Name: "Asha Rao", Age: 34, Gender: "X"}, true))
}
