package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/99minutos/auth-gateway/internal/core/domain"
)

func TestWriteSnapshot_PlainLayout(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSnapshot(&buf, []domain.Session{{ID: "s1", User: user("u1")}})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	want := "session_id,user_id,email,username,role,access_token,refresh_token,expires_at\n" +
		"s1,u1,u1@example.com,u1,authenticated,at-u1,rt-u1,1700000000\n"
	if buf.String() != want {
		t.Fatalf("unexpected snapshot:\n%s", buf.String())
	}
}

func TestWriteSnapshot_EmptyTableWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != strings.Join(Header, ",")+"\n" {
		t.Fatalf("unexpected snapshot: %q", buf.String())
	}
}

func TestSnapshot_CommaInFieldSurvives(t *testing.T) {
	u := user("u1")
	u.Username = "doe, jane"

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, []domain.Session{{ID: "s1", User: u}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0].User.Username != "doe, jane" || got[0].User.ExpiresAt != 1700000000 {
		t.Fatalf("unexpected sessions: %+v", got)
	}
}

func TestReadSnapshot_SkipsMalformedRows(t *testing.T) {
	in := "session_id,user_id,email,username,role,access_token,refresh_token,expires_at\n" +
		"s1,u1,a@x.io,alice,authenticated,at,rt,123\n" +
		"short,row\n" +
		"\n" +
		"s2,u2,b@x.io,bob,authenticated,at2,rt2,not-a-number\n" +
		"s3,u3,c@x.io,carol,authenticated,at3,rt3,456,extra\n"

	got, err := ReadSnapshot(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 sessions, got %d: %+v", len(got), got)
	}
	if got[0].ID != "s1" || got[0].User.ExpiresAt != 123 {
		t.Fatalf("unexpected first session: %+v", got[0])
	}
	if got[1].ID != "s2" || got[1].User.ExpiresAt != 0 {
		t.Fatalf("unparsable expires_at should become 0: %+v", got[1])
	}
	if got[2].ID != "s3" || got[2].User.ExpiresAt != 456 {
		t.Fatalf("extra fields should be ignored: %+v", got[2])
	}
}

func TestReadSnapshot_FirstLineIsAlwaysHeader(t *testing.T) {
	in := "s0,u0,z@x.io,zed,authenticated,at,rt,1\n" +
		"s1,u1,a@x.io,alice,authenticated,at,rt,2\n"

	got, err := ReadSnapshot(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("expected only s1, got %+v", got)
	}
}

func TestReadSnapshot_Empty(t *testing.T) {
	got, err := ReadSnapshot(strings.NewReader(""))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no sessions, got %+v", got)
	}
}

func TestReadSnapshot_StrayQuoteOnlyAffectsItsRow(t *testing.T) {
	in := "session_id,user_id,email,username,role,access_token,refresh_token,expires_at\n" +
		"s1,u1,a@x,\"bob,user,at,rt,1\n" +
		"s2,u2,b@x.io,carol,authenticated,at2,rt2,2\n" +
		"s3,u3,c@x.io,dave,authenticated,at3,rt3,3\n"

	got, err := ReadSnapshot(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 sessions, got %d: %+v", len(got), got)
	}
	if got[0].ID != "s1" || got[0].User.Username != "\"bob" || got[0].User.ExpiresAt != 1 {
		t.Fatalf("plain row should load as written: %+v", got[0])
	}
	if got[1].ID != "s2" || got[2].ID != "s3" || got[2].User.ExpiresAt != 3 {
		t.Fatalf("rows after the quote must survive: %+v", got[1:])
	}
}

func TestReadSnapshot_CRLFAndMissingTrailingNewline(t *testing.T) {
	in := "session_id,user_id,email,username,role,access_token,refresh_token,expires_at\r\n" +
		"s1,u1,a@x.io,alice,authenticated,at,rt,7\r\n" +
		"s2,u2,b@x.io,bob,authenticated,at2,rt2,8"

	got, err := ReadSnapshot(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 || got[0].User.ExpiresAt != 7 || got[1].User.ExpiresAt != 8 {
		t.Fatalf("unexpected sessions: %+v", got)
	}
}

func TestWriteSnapshot_DropsLineBreaksAndQuotesQuotes(t *testing.T) {
	u := user("u1")
	u.Username = "ja\r\nne"
	u.Role = `say "hi"`

	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, []domain.Session{{ID: "s1", User: u}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 2 {
		t.Fatalf("expected header and one row, got %d lines:\n%s", lines, buf.String())
	}

	got, err := ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0].User.Username != "jane" || got[0].User.Role != `say "hi"` {
		t.Fatalf("unexpected sessions: %+v", got)
	}
}
