package events

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// Criteria is the validated, structured representation of a request's
// filters. Fields are nil or empty when the matching parameter was absent.
type Criteria struct {
	Org          string
	Around       *AroundSpec
	Countries    []string
	UpdatedAfter *int64
}

// AroundSpec is a proximity query: origin point plus radius in kilometers.
type AroundSpec struct {
	Longitude float64
	Latitude  float64
	RadiusKm  float64
}

// ValidationError describes a single rejected query parameter.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseCriteria turns raw query parameters into Criteria. Validation is not
// fail-fast: every recognized parameter is checked independently and all
// violations are collected. When any violation exists, no criteria is
// returned.
func ParseCriteria(values url.Values) (Criteria, []ValidationError) {
	var errs []ValidationError
	criteria := Criteria{}

	if org := values.Get("org"); org != "" {
		if strings.Contains(org, ",") || org != strings.ToLower(org) {
			errs = append(errs, ValidationError{
				Code:    "wrong_org_param",
				Message: "org must be a single lowercase token without separators",
			})
		} else {
			criteria.Org = org
		}
	}

	if raw := values.Get("around"); raw != "" {
		around, aroundErrs := parseAround(raw)
		if len(aroundErrs) > 0 {
			errs = append(errs, aroundErrs...)
		} else {
			criteria.Around = &around
		}
	}

	if raw := values.Get("country"); raw != "" {
		codes, countryErrs := parseCountries(raw)
		if len(countryErrs) > 0 {
			errs = append(errs, countryErrs...)
		} else {
			criteria.Countries = codes
		}
	}

	// updated_after and updated_at name the same recency threshold;
	// updated_after wins when both are present.
	raw := values.Get("updated_after")
	if raw == "" {
		raw = values.Get("updated_at")
	}
	if raw != "" {
		threshold, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || threshold < 0 {
			errs = append(errs, ValidationError{
				Code:    "wrong_updated_at_param",
				Message: "updated threshold must be a non-negative epoch second",
			})
		} else {
			criteria.UpdatedAfter = &threshold
		}
	}

	if len(errs) > 0 {
		return Criteria{}, errs
	}
	return criteria, nil
}

func parseAround(raw string) (AroundSpec, []ValidationError) {
	var errs []ValidationError

	tokens := strings.Split(raw, ",")
	parsed := [3]float64{math.NaN(), math.NaN(), math.NaN()}
	wellFormed := len(tokens) == 3
	for i, token := range tokens {
		value, err := strconv.ParseFloat(token, 64)
		if err != nil {
			wellFormed = false
			continue
		}
		if i < len(parsed) {
			parsed[i] = value
		}
	}
	if !wellFormed {
		errs = append(errs, ValidationError{
			Code:    "wrong_around_param",
			Message: "around must be three numbers: <lon>,<lat>,<radius_km>",
		})
	}

	lon, lat, radius := parsed[0], parsed[1], parsed[2]

	// Range checks run against the parsed values regardless of the
	// well-formedness check above. An unparsable token stays NaN, and every
	// comparison against NaN is false, so that token passes the range checks
	// without an extra error.
	if lon <= -180 || lon > 180 {
		errs = append(errs, ValidationError{
			Code:    "wrong_around_param",
			Message: "around longitude must be within (-180, 180]",
		})
	}
	if lat < -90 || lat > 90 {
		errs = append(errs, ValidationError{
			Code:    "wrong_around_param",
			Message: "around latitude must be within [-90, 90]",
		})
	}
	if radius <= 0 {
		errs = append(errs, ValidationError{
			Code:    "wrong_around_param",
			Message: "around radius must be greater than zero",
		})
	}

	return AroundSpec{Longitude: lon, Latitude: lat, RadiusKm: radius}, errs
}

func parseCountries(raw string) ([]string, []ValidationError) {
	codes := strings.Split(raw, ",")
	var errs []ValidationError
	for _, code := range codes {
		var violations []string
		if code != strings.ToUpper(code) {
			violations = append(violations, "must be uppercase")
		}
		if !containsLetter(code) {
			violations = append(violations, "must contain at least one letter")
		}
		if len(code) != 2 {
			violations = append(violations, "must be exactly 2 characters")
		}
		if len(violations) > 0 {
			// One entry per offending code, keyed by its literal value.
			errs = append(errs, ValidationError{
				Code:    "wrong_country_param/" + code,
				Message: "country code " + strings.Join(violations, ", "),
			})
		}
	}
	return codes, errs
}

func containsLetter(value string) bool {
	for _, r := range value {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
