package session

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/99minutos/auth-gateway/internal/core/domain"
)

// Header is the first line of every session snapshot.
var Header = []string{
	"session_id", "user_id", "email", "username", "role",
	"access_token", "refresh_token", "expires_at",
}

const fieldCount = 8

// WriteSnapshot encodes sessions as CSV, header first, one row per session.
// Fields holding a comma or quote are quoted; all other rows are plain comma
// separated values terminated by "\n". Line breaks inside a field are dropped
// so every record stays on one line.
func WriteSnapshot(w io.Writer, sessions []domain.Session) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, s := range sessions {
		u := s.User
		row := []string{
			s.ID, u.ID, u.Email, u.Username, u.Role,
			u.AccessToken, u.RefreshToken, strconv.FormatUint(u.ExpiresAt, 10),
		}
		for i := range row {
			row[i] = lineBreaks.Replace(row[i])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write session %s: %w", s.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var lineBreaks = strings.NewReplacer("\r", "", "\n", "")

// ReadSnapshot decodes a snapshot one line at a time. The first line is always
// treated as the header. A line that does not parse as a quoted CSV record is
// split on plain commas instead, so a stray quote only affects its own row.
// Rows with fewer than eight fields are skipped; an unparsable expires_at
// becomes 0.
func ReadSnapshot(r io.Reader) ([]domain.Session, error) {
	br := bufio.NewReader(r)

	var sessions []domain.Session
	first := true
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return sessions, fmt.Errorf("read snapshot: %w", err)
		}
		eof := err != nil

		line = strings.TrimRight(line, "\r\n")
		if first {
			first = false
		} else if s, ok := parseRow(line); ok {
			sessions = append(sessions, s)
		}

		if eof {
			return sessions, nil
		}
	}
}

func parseRow(line string) (domain.Session, bool) {
	if line == "" {
		return domain.Session{}, false
	}

	rec := splitRecord(line)
	if len(rec) < fieldCount {
		return domain.Session{}, false
	}

	expiresAt, err := strconv.ParseUint(rec[7], 10, 64)
	if err != nil {
		expiresAt = 0
	}
	return domain.Session{
		ID: rec[0],
		User: domain.User{
			ID:           rec[1],
			Email:        rec[2],
			Username:     rec[3],
			Role:         rec[4],
			AccessToken:  rec[5],
			RefreshToken: rec[6],
			ExpiresAt:    expiresAt,
		},
	}, true
}

// splitRecord prefers strict CSV parsing and falls back to the plain layout.
func splitRecord(line string) []string {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	rec, err := cr.Read()
	if err == nil && len(rec) >= fieldCount {
		return rec
	}
	return strings.Split(line, ",")
}
