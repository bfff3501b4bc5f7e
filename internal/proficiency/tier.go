package proficiency

import (
	"fmt"
	"strings"
)

// Tier is a discrete proficiency classification.
type Tier string

const (
	Beginner     Tier = "Beginner"
	Intermediate Tier = "Intermediate"
	Advanced     Tier = "Advanced"
)

// AllTiers lists the tiers from lowest to highest.
var AllTiers = []Tier{Beginner, Intermediate, Advanced}

func (t Tier) String() string { return string(t) }

// ParseTier parses a tier name case-insensitively.
func ParseTier(s string) (Tier, error) {
	for _, t := range AllTiers {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown proficiency level %q (want Beginner, Intermediate or Advanced)", s)
}
