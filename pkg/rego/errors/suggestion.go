package errors

import (
	"fmt"
	"slices"
)

var futureKeywords = []string{"contains", "every", "if", "in"}

// SuggestKeyword suggests a fix for the misuse of a reserved keyword.
func SuggestKeyword(keyword string, inImport bool) string {
	switch {
	case inImport:
		return fmt.Sprintf("'%s' is reserved and cannot be imported or used as an alias", keyword)
	case slices.Contains(futureKeywords, keyword):
		return fmt.Sprintf("rename the variable, or import future.keywords.%s to use '%s' as a keyword", keyword, keyword)
	default:
		return fmt.Sprintf("'%s' is reserved; rename the variable", keyword)
	}
}

// SuggestName suggests the closest known name when an unknown one is used.
// It uses Levenshtein distance and returns "" when nothing is close.
func SuggestName(unknown string, known []string) string {
	if len(known) == 0 {
		return ""
	}

	minDistance := 1000
	var bestMatch string

	for _, name := range known {
		dist := levenshteinDistance(unknown, name)
		if dist < minDistance {
			minDistance = dist
			bestMatch = name
		}
	}

	// Only suggest if the distance is reasonable (< 4 edits)
	if minDistance < 4 {
		return fmt.Sprintf("did you mean '%s'?", bestMatch)
	}
	return ""
}

func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
