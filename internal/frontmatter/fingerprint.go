package frontmatter

import (
	"strings"

	"github.com/inful/mdfp"
)

// Keys excluded from the fingerprint hash.
const (
	KeyFingerprint = mdfp.FingerprintField
	KeyUID         = "uid"
)

// Fingerprint computes the content fingerprint of a page: its frontmatter
// without the fingerprint and uid keys, serialized with LF newlines and one
// trailing newline trimmed, hashed together with the body.
func Fingerprint(fields Fields, body []byte) (string, error) {
	hashed := fields.Without(KeyFingerprint, KeyUID)
	fm := ""
	if len(hashed) > 0 {
		serialized, err := SerializeYAML(hashed)
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(serialized), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}

// Compose builds a page from fields and body, storing the page fingerprint
// under KeyFingerprint.
func Compose(fields Fields, body []byte) ([]byte, error) {
	fp, err := Fingerprint(fields, body)
	if err != nil {
		return nil, err
	}
	fm, err := SerializeYAML(fields.Set(KeyFingerprint, fp))
	if err != nil {
		return nil, err
	}
	return Join(fm, body), nil
}

// ReadFingerprint returns the fingerprint stored in a page's frontmatter.
func ReadFingerprint(content []byte) (string, bool) {
	fm, _, had, err := Split(content)
	if err != nil || !had {
		return "", false
	}
	fields, err := ParseYAML(fm)
	if err != nil {
		return "", false
	}
	fp, ok := fields[KeyFingerprint].(string)
	return fp, ok && fp != ""
}

// Verify recomputes the fingerprint of a page and compares it to the stored
// one. ok is false when the page has no fingerprint or it does not match.
func Verify(content []byte) (stored, computed string, ok bool, err error) {
	fm, body, had, err := Split(content)
	if err != nil || !had {
		return "", "", false, err
	}
	fields, err := ParseFields(fm)
	if err != nil {
		return "", "", false, err
	}
	if v, found := fields.Get(KeyFingerprint); found {
		stored, _ = v.(string)
	}
	computed, err = Fingerprint(fields, body)
	if err != nil {
		return stored, "", false, err
	}
	return stored, computed, stored != "" && stored == computed, nil
}
