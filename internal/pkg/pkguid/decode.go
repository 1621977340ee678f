package pkguid

// Decode splits the decimal form of a packed ID into its parts.
//
// Decode keeps no state and is safe for concurrent use. Any string that is
// not a base-10 unsigned 64-bit integer yields a *MalformedIDError.
func Decode(s string) (Parts, error) {
	id, err := ParseID(s)
	if err != nil {
		return Parts{}, err
	}
	return id.Parts(), nil
}
