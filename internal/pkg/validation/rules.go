package validation

import (
	"regexp"
	"time"
)

// Domain rule constants for exam records.
var (
	// CourseCodePattern matches the 7-character course code: two digits
	// followed by five uppercase letters (e.g. "01ABCDE").
	CourseCodePattern = `^\d\d[A-Z]{5}$`

	// CourseCodeLength is the exact length of a course code.
	CourseCodeLength = 7

	// Passing score bounds, 30L encoded as 31.
	ScoreMin = 18
	ScoreMax = 31

	// DateLayout is the strict date format accepted on the wire.
	DateLayout = "2006-01-02"
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	CourseCode *regexp.Regexp
}{
	CourseCode: regexp.MustCompile(CourseCodePattern),
}

// IsValidCourseCode reports whether code has the required shape.
func IsValidCourseCode(code string) bool {
	return len(code) == CourseCodeLength && CompiledPatterns.CourseCode.MatchString(code)
}

// IsValidScore reports whether score is inside the accepted range.
func IsValidScore(score int) bool {
	return score >= ScoreMin && score <= ScoreMax
}

// ParseExamDate parses a date string under the strict YYYY-MM-DD layout.
// Round-tripping the parsed value rejects inputs the layout would otherwise
// normalize (e.g. "2021-5-06").
func ParseExamDate(value string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	if t.Format(DateLayout) != value {
		return time.Time{}, false
	}
	return t, true
}
