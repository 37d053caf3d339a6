package utils

// FilterSliceString returns slice without any of the filtered values.
func FilterSliceString(slice []string, filters ...string) []string {
	var out = make([]string, 0, len(slice))

sliceloop:
	for _, v := range slice {
		for _, filter := range filters {
			if v == filter {
				continue sliceloop
			}
		}
		out = append(out, v)
	}
	return out
}
