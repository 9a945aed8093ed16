package mapping

// stringPtr returns nil for the empty string so optional text columns stay NULL.
func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
