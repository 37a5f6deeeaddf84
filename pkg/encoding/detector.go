package encoding

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

const (
	// sampleSize is how much of a file is read for detection. 8KB is enough
	// for the statistical guesser while keeping large runs cheap.
	sampleSize = 8192

	// maxDetectionFileSize is the ceiling above which sampling is skipped and
	// the legacy default is assumed outright.
	maxDetectionFileSize = 100 * 1024 * 1024

	// nullThreshold rejects a decoded sample with more than 5% NUL characters.
	nullThreshold = 0.05

	// binaryNullThreshold flags a raw sample as binary above 10% NUL bytes.
	binaryNullThreshold = 0.10
)

// heuristicRules is the ordered fallback chain applied when statistical
// detection fails validation. The first matching rule wins, so new encodings
// can be slotted in without touching control flow.
var heuristicRules = []struct {
	name  string
	match func(sample []byte) bool
	pick  Candidate
}{
	{"utf8-bom", hasUTF8BOM, UTF8},
	{"valid-utf8", utf8.Valid, UTF8},
	{"high-bytes", hasHighBytes, Windows1252},
	{"ascii", func([]byte) bool { return true }, UTF8},
}

func hasUTF8BOM(sample []byte) bool {
	return len(sample) >= 3 && bytes.Equal(sample[:3], []byte{0xEF, 0xBB, 0xBF})
}

func hasHighBytes(sample []byte) bool {
	for _, b := range sample {
		if b > 127 {
			return true
		}
	}
	return false
}

// Detect resolves the encoding of the file at path with auto-detection.
// It never fails to produce a profile; only filesystem errors propagate.
func Detect(path string) (Profile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if info.Size() == 0 {
		return Profile{Candidate: UTF8, Basis: BasisDetected}, nil
	}
	if info.Size() > maxDetectionFileSize {
		// Sampling multi-GB files is not worth it; legacy wordlists dominate
		// at that size.
		return Profile{Candidate: DefaultLegacy(), Basis: BasisFallback}, nil
	}

	sample, err := readSample(path)
	if err != nil {
		return Profile{}, err
	}

	if guess, ok := detectStatistical(sample); ok {
		return Profile{Candidate: guess, Basis: BasisDetected}, nil
	}

	return heuristicDetect(sample), nil
}

// readSample reads up to sampleSize bytes and trims any trailing partial
// UTF-8 sequence so a truncated rune does not poison validation.
func readSample(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for encoding detection: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, sampleSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("failed to read sample from %s: %w", path, err)
	}
	sample := buf[:n]
	if n == sampleSize {
		sample = trimPartialRune(sample)
	}
	return sample, nil
}

// trimPartialRune drops a trailing incomplete multi-byte sequence.
func trimPartialRune(sample []byte) []byte {
	for i := 0; i < utf8.UTFMax && i < len(sample); i++ {
		end := len(sample) - 1 - i
		b := sample[end]
		if b < 0x80 {
			return sample
		}
		if b >= 0xC0 { // leading byte of a multi-byte sequence
			if utf8.Valid(sample[end:]) {
				return sample
			}
			return sample[:end]
		}
	}
	return sample
}

// detectStatistical runs the charset guesser over the sample and keeps the
// result only if the guesser is confident, the guess names a supported
// candidate, and the sample validates under it. An uncertain guess (the
// guesser's own windows-1252 default) is discarded so the heuristic chain
// can prefer valid UTF-8 content.
func detectStatistical(sample []byte) (Candidate, bool) {
	_, name, certain := charset.DetermineEncoding(sample, "")
	if !certain {
		return Candidate{}, false
	}
	cand, ok := lookupCandidate(name)
	if !ok {
		return Candidate{}, false
	}
	if !validateSample(sample, cand) {
		return Candidate{}, false
	}
	return cand, true
}

// heuristicDetect walks the ordered rule chain. The final catch-all rule
// guarantees a result.
func heuristicDetect(sample []byte) Profile {
	for _, rule := range heuristicRules {
		if rule.match(sample) {
			return Profile{Candidate: rule.pick, Basis: BasisHeuristic}
		}
	}
	return Profile{Candidate: DefaultLegacy(), Basis: BasisFallback}
}

// validateSample decodes the sample under the candidate encoding and rejects
// it on decode failure, excessive NUL characters, or the absence of any
// plausible wordlist content.
func validateSample(sample []byte, c Candidate) bool {
	if len(sample) == 0 {
		return true
	}

	if c.Name == UTF8.Name && !utf8.Valid(sample) {
		return false
	}

	decoded, _, err := transform.Bytes(c.Enc.NewDecoder(), sample)
	if err != nil {
		return false
	}

	var nulls, total int
	hasContent := false
	for _, r := range string(decoded) {
		total++
		if r == 0 {
			nulls++
		}
		if r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSpace(r)) {
			hasContent = true
		}
	}
	if total > 0 && float64(nulls)/float64(total) > nullThreshold {
		return false
	}
	return hasContent
}

// ValidateFile reports whether the file's sample decodes cleanly under the
// given candidate. Used by the try-sequence strategy.
func ValidateFile(path string, c Candidate) (bool, error) {
	sample, err := readSample(path)
	if err != nil {
		return false, err
	}
	return validateSample(sample, c), nil
}

// IsLikelyBinary reports whether the file's sample looks like binary data.
// Binary inputs are skipped rather than merged as garbage.
func IsLikelyBinary(path string) (bool, error) {
	sample, err := readSample(path)
	if err != nil {
		return false, err
	}
	if len(sample) == 0 {
		return false, nil
	}
	nulls := bytes.Count(sample, []byte{0x00})
	return float64(nulls)/float64(len(sample)) > binaryNullThreshold, nil
}
