package describer

// normalizeTags maps empty tag sets to nil so encoders omit the field
// entirely instead of emitting an empty object.
func normalizeTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	return tags
}
