package domain

import (
	"strings"

	"ridetracker/internal/domain/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const PlatformBolt = "bolt"

var BuiltInPlatforms = []string{PlatformBolt, "uber", "careem", "dtc"}

var BuiltInPickupLocations = []string{
	"airport_t1",
	"airport_t2",
	"airport_t3",
	"dubai_mall",
	"atlantis_the_palm",
	"global_village",
	"other",
}

var airportTerminals = map[string]bool{
	"airport_t1": true,
	"airport_t2": true,
	"airport_t3": true,
}

var landmarks = map[string]bool{
	"dubai_mall":        true,
	"atlantis_the_palm": true,
	"global_village":    true,
}

// NormalizeIdentifier is the canonical form used for rule matching and storage.
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func IsAirport(pickup string) bool {
	return airportTerminals[NormalizeIdentifier(pickup)]
}

func IsLandmark(pickup string) bool {
	return landmarks[NormalizeIdentifier(pickup)]
}

func IsBuiltInPlatform(name string) bool {
	return contains(BuiltInPlatforms, NormalizeIdentifier(name))
}

func IsBuiltInPickupLocation(name string) bool {
	return contains(BuiltInPickupLocations, NormalizeIdentifier(name))
}

// AllPlatforms returns built-ins followed by the user's custom platforms.
func AllPlatforms(s models.Settings) []string {
	return mergeIdentifiers(BuiltInPlatforms, s.CustomPlatforms)
}

// AllPickupLocations returns built-ins followed by the user's custom locations.
func AllPickupLocations(s models.Settings) []string {
	return mergeIdentifiers(BuiltInPickupLocations, s.CustomPickupLocations)
}

func mergeIdentifiers(builtIn, custom []string) []string {
	out := make([]string, 0, len(builtIn)+len(custom))
	seen := map[string]bool{}
	for _, list := range [][]string{builtIn, custom} {
		for _, v := range list {
			key := NormalizeIdentifier(v)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// DisplayName turns "airport_t1" into "Airport T1" for exports.
// Casers keep state, so each call gets its own.
func DisplayName(id string) string {
	words := strings.Fields(strings.ReplaceAll(strings.TrimSpace(id), "_", " "))
	return cases.Title(language.Und).String(strings.Join(words, " "))
}
