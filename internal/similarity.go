package internal

// similarity returns the number of bytes shared by a and b, counted the way
// PHP's similar_text does: take the longest common substring (the first one
// found on ties), then recurse on the text left and right of it.
func similarity(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	posA, posB, longest := 0, 0, 0
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			k := 0
			for i+k < len(a) && j+k < len(b) && a[i+k] == b[j+k] {
				k++
			}
			if k > longest {
				posA, posB, longest = i, j, k
			}
		}
	}
	if longest == 0 {
		return 0
	}

	return longest +
		similarity(a[:posA], b[:posB]) +
		similarity(a[posA+longest:], b[posB+longest:])
}
