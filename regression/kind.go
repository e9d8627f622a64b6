package regression

import "strings"

// ModelKind identifies which mass-balance calibration model to fit.
type ModelKind int

const (
	// ModelDistributed is the single-slope model: biomarker = β0 + β1·primary.
	// Non-primary exposure loads on the intercept.
	ModelDistributed ModelKind = iota
	// ModelHousehold is the two-slope model:
	// biomarker = β0 + β1·primary + β2·compoundMean.
	ModelHousehold
)

var kindNames = map[ModelKind]string{
	ModelDistributed: "distributed",
	ModelHousehold:   "household",
}

// String returns the model kind name.
func (k ModelKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

var kindFromName = map[string]ModelKind{
	"distributed": ModelDistributed,
	"household":   ModelHousehold,
}

// KindFromString returns the ModelKind for a name (case-insensitive).
// The second return value reports whether the name was recognized.
func KindFromString(name string) (ModelKind, bool) {
	k, ok := kindFromName[strings.ToLower(name)]

	return k, ok
}

// NumCoefficients returns the number of fitted coefficients for the kind,
// including the intercept.
func (k ModelKind) NumCoefficients() int {
	if k == ModelHousehold {
		return 3
	}

	return 2
}
