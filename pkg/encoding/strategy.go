// Package encoding resolves the character encoding of legacy wordlist files
// and converts their contents to UTF-8. Detection never fails outright: every
// file resolves to some encoding, with windows-1252 as the ultimate fallback
// because most legacy wordlists (rockyou.txt and friends) use it.
package encoding

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Candidate pairs an x/text encoding implementation with its IANA name.
type Candidate struct {
	Name string
	Enc  encoding.Encoding
}

// The closed list of encodings this tool knows how to handle. UTF-8 uses the
// BOM-stripping variant so a leading byte order mark never leaks into the
// first line of a file.
var (
	UTF8        = Candidate{Name: "utf-8", Enc: unicode.UTF8BOM}
	Windows1252 = Candidate{Name: "windows-1252", Enc: charmap.Windows1252}
	ISO8859_15  = Candidate{Name: "iso-8859-15", Enc: charmap.ISO8859_15}
	ISO8859_2   = Candidate{Name: "iso-8859-2", Enc: charmap.ISO8859_2}
)

// WordlistCandidates lists the supported encodings in priority order,
// reflecting how often each shows up in real password wordlists.
var WordlistCandidates = []Candidate{UTF8, Windows1252, ISO8859_15, ISO8859_2}

// DefaultLegacy is the single-byte encoding assumed when nothing else fits.
func DefaultLegacy() Candidate { return Windows1252 }

// lookupCandidate maps an IANA name back to a supported candidate.
func lookupCandidate(name string) (Candidate, bool) {
	for _, c := range WordlistCandidates {
		if c.Name == name {
			return c, true
		}
	}
	return Candidate{}, false
}

// Basis records how a profile's encoding was chosen.
type Basis string

const (
	// BasisDetected means the statistical guesser picked it and the sample validated.
	BasisDetected Basis = "detected"
	// BasisHeuristic means the ordered heuristic chain picked it.
	BasisHeuristic Basis = "heuristic"
	// BasisForced means the strategy mandated a fixed encoding.
	BasisForced Basis = "forced"
	// BasisFallback means nothing validated and the legacy default was assumed.
	BasisFallback Basis = "fallback"
)

// Profile is the resolved encoding for one file, immutable once built.
type Profile struct {
	Candidate
	Basis Basis
}

// Mode selects how the handler resolves encodings.
type Mode int

const (
	// ModeAuto samples each file and runs detection plus heuristics.
	ModeAuto Mode = iota
	// ModeForce applies one fixed encoding to every file.
	ModeForce
	// ModeSequence tries an ordered list, accepting the first that validates.
	ModeSequence
)

// Strategy describes the encoding resolution policy for a run.
type Strategy struct {
	Mode     Mode
	Forced   Candidate
	Sequence []Candidate
}

// AutoDetect resolves each file independently via detection and heuristics.
func AutoDetect() Strategy {
	return Strategy{Mode: ModeAuto}
}

// Force applies the given encoding to all files without sampling.
func Force(c Candidate) Strategy {
	return Strategy{Mode: ModeForce, Forced: c}
}

// TrySequence validates candidates in order and accepts the first match,
// defaulting to the legacy encoding when none validate.
func TrySequence(cs ...Candidate) Strategy {
	return Strategy{Mode: ModeSequence, Sequence: cs}
}

// DefaultWordlistStrategy tries the supported encodings in priority order.
func DefaultWordlistStrategy() Strategy {
	return TrySequence(WordlistCandidates...)
}
