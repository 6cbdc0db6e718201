package world

// CrimeType enumerates recordable crimes.
type CrimeType string

const (
	CrimeTheft       CrimeType = "theft"
	CrimeAssault     CrimeType = "assault"
	CrimeMurder      CrimeType = "murder"
	CrimeTrespassing CrimeType = "trespassing"
	CrimeFraud       CrimeType = "fraud"
	CrimeVandalism   CrimeType = "vandalism"
	CrimeSmuggling   CrimeType = "smuggling"
	CrimeOther       CrimeType = "other"
)

// ValidCrimeType reports whether t is a known crime type.
func ValidCrimeType(t CrimeType) bool {
	switch t {
	case CrimeTheft, CrimeAssault, CrimeMurder, CrimeTrespassing,
		CrimeFraud, CrimeVandalism, CrimeSmuggling, CrimeOther:
		return true
	}
	return false
}

// CrimeSeverity ranks how serious a crime is.
type CrimeSeverity string

const (
	SeverityMinor    CrimeSeverity = "minor"
	SeverityModerate CrimeSeverity = "moderate"
	SeveritySevere   CrimeSeverity = "severe"
)

// ValidCrimeSeverity reports whether s is a known severity.
func ValidCrimeSeverity(s CrimeSeverity) bool {
	switch s {
	case SeverityMinor, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// Crime records a single committed crime. Crimes are append-only.
type Crime struct {
	ID            string        `json:"id"`
	Type          CrimeType     `json:"type"`
	Description   string        `json:"description,omitempty"`
	Severity      CrimeSeverity `json:"severity"`
	WasDetected   bool          `json:"wasDetected"`
	VictimNpcID   string        `json:"victimNpcId,omitempty"`
	WitnessNpcIDs []string      `json:"witnessNpcIds,omitempty"`
	LocationID    string        `json:"locationId,omitempty"`
	ActionIndex   int           `json:"actionIndex"`
}

// Bounty is an active monetary claim against the player. Exactly one of
// IssuerFactionID / IssuerNpcID is set.
type Bounty struct {
	ID              string   `json:"id"`
	IssuerFactionID string   `json:"issuerFactionId,omitempty"`
	IssuerNpcID     string   `json:"issuerNpcId,omitempty"`
	Amount          int      `json:"amount"`
	Reason          string   `json:"reason"`
	CrimeIDs        []string `json:"crimeIds,omitempty"`
	IsActive        bool     `json:"isActive"`
}
