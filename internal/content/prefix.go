package content

import "errors"

// ErrEmptyTypeID is returned when a Content Hub type identifier is empty.
var ErrEmptyTypeID = errors.New("content: type identifier is empty")

// FieldPrefix returns the prefix the Content Hub uses for the fields of the
// given type. GraphQL names cannot start with a digit, so a leading digit is
// replaced by an underscore: "123abc" becomes "_23abc".
func FieldPrefix(typeID string) (string, error) {
	if typeID == "" {
		return "", ErrEmptyTypeID
	}
	if c := typeID[0]; c >= '0' && c <= '9' {
		return "_" + typeID[1:], nil
	}
	return typeID, nil
}
