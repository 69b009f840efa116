package parsers

import (
	"regexp"
	"strconv"
	"strings"

	"log-analyzer/internal/models"
)

// userAgentField is the position of $http_user_agent among the quoted fields of
// the ui_short format: "$request", "$http_referer", "$http_user_agent", ...
const userAgentField = 2

var durationPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ParseLine extracts a record from one access log line in the nginx ui_short format:
//
//	1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/25019354 HTTP/1.1" 200 927 "-" "Lynx/2.8.8dev.9" "-" "1498697422-2190034393-4708-9752759" "dc7161be3" 0.390
//
// The URL is the second token of the first quoted field, the duration is the last
// whitespace-delimited token and must be a non-negative decimal number.
func ParseLine(line string) (models.LogRecord, bool) {
	quoted := quotedFields(line)
	if len(quoted) == 0 {
		return models.LogRecord{}, false
	}

	requestTokens := strings.Fields(line[quoted[0].start:quoted[0].end])
	if len(requestTokens) < 2 {
		return models.LogRecord{}, false
	}

	trimmed := strings.TrimRight(line, " \t\r")
	sep := strings.LastIndexAny(trimmed, " \t")
	// the duration must follow the request field
	if sep < quoted[0].end {
		return models.LogRecord{}, false
	}
	durationToken := trimmed[sep+1:]
	if !durationPattern.MatchString(durationToken) {
		return models.LogRecord{}, false
	}
	duration, err := strconv.ParseFloat(durationToken, 64)
	if err != nil {
		return models.LogRecord{}, false
	}

	record := models.LogRecord{
		URL:             requestTokens[1],
		DurationSeconds: duration,
	}
	if len(quoted) > userAgentField {
		ua := line[quoted[userAgentField].start:quoted[userAgentField].end]
		if ua != "-" {
			record.UserAgent = ua
		}
	}
	return record, true
}

type span struct {
	start, end int
}

// quotedFields returns the byte spans of the contents of each closed double-quoted field.
func quotedFields(line string) []span {
	var spans []span
	for offset := 0; offset < len(line); {
		open := strings.IndexByte(line[offset:], '"')
		if open < 0 {
			break
		}
		start := offset + open + 1
		closing := strings.IndexByte(line[start:], '"')
		if closing < 0 {
			break
		}
		end := start + closing
		spans = append(spans, span{start: start, end: end})
		offset = end + 1
	}
	return spans
}
