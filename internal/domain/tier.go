package domain

import "strings"

// TierOf classifies a class into its age tier by name convention.
// Classes that match neither the children nor the adolescent markers
// fall through to the adult tier.
func TierOf(className string) string {
	for _, m := range ChildrenMarkers {
		if strings.Contains(className, m) {
			return TierChildren
		}
	}
	for _, m := range AdolescentMarkers {
		if strings.Contains(className, m) {
			return TierAdolescents
		}
	}
	return TierAdults
}
