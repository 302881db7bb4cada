package identifier

import "strings"

// ARN is a parsed Amazon Resource Name: six colon-delimited segments whose
// trailing resource part may itself contain colons or slashes.
type ARN struct {
	Partition string
	Service   string
	Region    string
	AccountID string
	Resource  string
}

// ParseARN splits an identity string into its ARN segments. It returns false
// for anything that is not a six-segment "arn:"-prefixed string.
func ParseARN(s string) (ARN, bool) {
	if !strings.HasPrefix(s, "arn:") {
		return ARN{}, false
	}
	parts := strings.SplitN(s, ":", 6)
	if len(parts) != 6 {
		return ARN{}, false
	}
	return ARN{
		Partition: parts[1],
		Service:   parts[2],
		Region:    parts[3],
		AccountID: parts[4],
		Resource:  parts[5],
	}, true
}

// resourceName returns the last path segment of the resource part, stripping
// any "kind/" (and optional intermediate path) prefix.
func (a ARN) resourceName() string {
	if idx := strings.LastIndex(a.Resource, "/"); idx >= 0 {
		return a.Resource[idx+1:]
	}
	return a.Resource
}
