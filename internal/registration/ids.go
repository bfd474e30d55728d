package registration

import "strings"

const (
	// DelegateIDPrefix is printed on every pass. Changing it invalidates
	// passes that were already issued.
	DelegateIDPrefix = "JAS26-10"
	delegateIDFiller = "000"
	delegateIDSuffix = 3
)

// DelegateID derives the visible delegate id from the identity's unique id:
// the prefix followed by the last three characters of uniqueID, or a fixed
// filler when uniqueID is empty.
func DelegateID(uniqueID string) string {
	if uniqueID == "" {
		return DelegateIDPrefix + delegateIDFiller
	}
	r := []rune(uniqueID)
	if len(r) > delegateIDSuffix {
		r = r[len(r)-delegateIDSuffix:]
	}
	return DelegateIDPrefix + string(r)
}

const (
	// MobilePrefix is the country code stored in front of every mobile number.
	MobilePrefix = "+91"
	// MobileDigits is the number of local digits a complete number carries.
	MobileDigits = 10
)

// NormalizeMobile strips non-digits from the local part the user typed, keeps
// at most MobileDigits of them and prepends MobilePrefix. A value that already
// carries the prefix is treated as a stored number, so normalizing is idempotent.
func NormalizeMobile(local string) string {
	local = strings.TrimPrefix(local, MobilePrefix)
	var b strings.Builder
	b.WriteString(MobilePrefix)
	n := 0
	for _, r := range local {
		if n == MobileDigits {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			n++
		}
	}
	return b.String()
}

// MobileLocal returns the digits after the country code.
func MobileLocal(mobile string) string {
	return strings.TrimPrefix(mobile, MobilePrefix)
}
