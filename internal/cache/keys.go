package cache

// KeyPrefix is the prefix of every key owned by the service.
const KeyPrefix = "patisserie:"

// RefPrefix returns the prefix shared by every key cached for ref.
func RefPrefix(ref string) string {
	return KeyPrefix + ref + ":"
}
