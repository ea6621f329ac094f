package gitcore

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// LogFieldSep and LogRecordSep are the byte delimiters Git emits when the
// log is produced with the format string
// "%H%x00%P%x00%an%x00%ae%x00%aI%x00%cn%x00%ce%x00%cI%x00%s%x00%b%x01".
const (
	LogFieldSep  = 0x00
	LogRecordSep = 0x01
)

// minLogFields is the minimum number of 0x00-separated fields a record
// must have to be parsed; the body (field index 9) may be absent.
const minLogFields = 9

// ParseErrorKind tags the three recoverable parse-error categories.
type ParseErrorKind int

const (
	ErrMalformedRecord ParseErrorKind = iota
	ErrInvalidHash
	ErrInvalidDate
)

func (k ParseErrorKind) String() string {
	switch k {
	case ErrMalformedRecord:
		return "malformed-record"
	case ErrInvalidHash:
		return "invalid-hash"
	case ErrInvalidDate:
		return "invalid-date"
	default:
		return "unknown"
	}
}

// ParseError describes one dropped record. RecordPreview is truncated to
// at most 100 bytes so a huge commit body never blows up error output.
type ParseError struct {
	Kind          ParseErrorKind
	Message       string
	RecordPreview string
	Field         string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func previewOf(record []byte) string {
	const maxPreview = 100
	if len(record) > maxPreview {
		record = record[:maxPreview]
	}
	return string(record)
}

// ParseResult is the tagged success/partial-failure result of a parse:
// successfully parsed items alongside any recoverable errors.
type ParseResult[T any] struct {
	Commits []T
	Errors  []ParseError
}

// ParseLog tokenizes a Git log buffer produced with the format contract
// documented on LogFieldSep/LogRecordSep into commits, skipping and
// reporting malformed records without aborting the whole parse.
func ParseLog(buf []byte) ParseResult[Commit] {
	var result ParseResult[Commit]

	records := bytes.Split(buf, []byte{LogRecordSep})
	for _, record := range records {
		if len(bytes.TrimSpace(record)) == 0 {
			continue
		}
		fields := bytes.Split(record, []byte{LogFieldSep})
		if len(fields) < minLogFields {
			result.Errors = append(result.Errors, ParseError{
				Kind:          ErrMalformedRecord,
				Message:       fmt.Sprintf("record has %d fields, want at least %d", len(fields), minLogFields),
				RecordPreview: previewOf(record),
			})
			continue
		}

		hashStr := lowerHex(strings.TrimSpace(string(fields[0])))
		hash, err := ParseHash(hashStr)
		if err != nil {
			result.Errors = append(result.Errors, ParseError{
				Kind:          ErrInvalidHash,
				Message:       err.Error(),
				RecordPreview: previewOf(record),
				Field:         "hash",
			})
			continue
		}

		parents := parseParents(string(fields[1]))

		authorName := string(fields[2])
		authorEmail := string(fields[3])
		authoredAt, err := parseISODate(string(fields[4]))
		if err != nil {
			result.Errors = append(result.Errors, ParseError{
				Kind:          ErrInvalidDate,
				Message:       err.Error(),
				RecordPreview: previewOf(record),
				Field:         "authored-at",
			})
			continue
		}

		committerName := string(fields[5])
		committerEmail := string(fields[6])
		committedAt, err := parseISODate(string(fields[7]))
		if err != nil {
			result.Errors = append(result.Errors, ParseError{
				Kind:          ErrInvalidDate,
				Message:       err.Error(),
				RecordPreview: previewOf(record),
				Field:         "committed-at",
			})
			continue
		}

		subject := string(fields[8])
		var body string
		if len(fields) > 9 {
			bodyFields := fields[9:]
			bodyBytes := bytes.Join(bodyFields, []byte{LogFieldSep})
			body = strings.TrimSpace(string(bodyBytes))
		}

		result.Commits = append(result.Commits, Commit{
			Hash:        hashFromValidated(string(hash)),
			Parents:     parents,
			Author:      Identity{Name: authorName, Email: authorEmail},
			Committer:   Identity{Name: committerName, Email: committerEmail},
			AuthoredAt:  authoredAt,
			CommittedAt: committedAt,
			Subject:     subject,
			Body:        body,
		})
	}

	return result
}

// parseParents splits a whitespace-separated parent-hash list, dropping
// empty tokens and any token that fails hash validation rather than
// failing the whole record.
func parseParents(field string) []Hash {
	tokens := strings.Fields(field)
	parents := make([]Hash, 0, len(tokens))
	for _, t := range tokens {
		h, err := ParseHash(lowerHex(t))
		if err != nil {
			continue
		}
		parents = append(parents, h)
	}
	return parents
}

func parseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("gitcore: invalid ISO-8601 date %q: %w", s, err)
	}
	return t, nil
}
