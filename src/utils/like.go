package utils

import "strings"

// LikeEscapeChar is the escape character used with LikePrefix patterns.
// A backslash is avoided because MySQL treats it as a string-literal escape.
const LikeEscapeChar = "!"

var likeEscaper = strings.NewReplacer(
	LikeEscapeChar, LikeEscapeChar+LikeEscapeChar,
	"%", LikeEscapeChar+"%",
	"_", LikeEscapeChar+"_",
)

// LikePrefix turns a literal, case-insensitive prefix into a LIKE pattern.
func LikePrefix(prefix string) string {
	return likeEscaper.Replace(strings.ToLower(prefix)) + "%"
}
