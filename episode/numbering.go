package episode

import (
	"regexp"
	"strconv"

	"github.com/samber/mo"
)

var (
	// "Þáttur 4 af 10"
	ofPattern = regexp.MustCompile(`^\S+\s(?P<number>[0-9]+) af (?P<count>[0-9]+)`)
	// "4. kafli"
	chapterPattern = regexp.MustCompile(`^(?P<number>[0-9]+)\. kafli`)
)

// ParseNumbering extracts the episode number and, when given, the episode count from an episode title.
// Titles that follow neither convention yield no numbering.
func ParseNumbering(title string) (number, count mo.Option[int]) {
	number, count = mo.None[int](), mo.None[int]()

	if m := ofPattern.FindStringSubmatch(title); m != nil {
		number = atoi(m[ofPattern.SubexpIndex("number")])
		count = atoi(m[ofPattern.SubexpIndex("count")])
		return
	}

	if m := chapterPattern.FindStringSubmatch(title); m != nil {
		number = atoi(m[chapterPattern.SubexpIndex("number")])
	}
	return
}

func atoi(s string) mo.Option[int] {
	n, err := strconv.Atoi(s)
	if err != nil {
		return mo.None[int]()
	}
	return mo.Some(n)
}
