package credentials

// Mask lengths used for secrets echoed to human-readable output
const (
	MaskPrefixLen = 8
	MaskSuffixLen = 4
)

// Mask returns a truncated display form of a secret showing only the
// first prefixLen and last suffixLen characters. Secrets too short to
// keep anything hidden collapse to "***". Mask is pure formatting; the
// values returned to callers are never masked.
func Mask(secret string, prefixLen, suffixLen int) string {
	if prefixLen < 0 {
		prefixLen = 0
	}
	if suffixLen < 0 {
		suffixLen = 0
	}
	if len(secret) <= prefixLen+suffixLen {
		return "***"
	}
	return secret[:prefixLen] + "..." + secret[len(secret)-suffixLen:]
}

// MaskDefault masks a secret with the standard display lengths
func MaskDefault(secret string) string {
	return Mask(secret, MaskPrefixLen, MaskSuffixLen)
}
