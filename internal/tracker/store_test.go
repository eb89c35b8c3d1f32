// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package tracker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "applications.csv")
	require.NoError(t, Init(path))
	s, err := Open(path, nil, WithClock(fixedNow))
	require.NoError(t, err)
	return s
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "applications.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0640))
	return path
}

func TestInitCreatesHeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "applications.csv")
	require.NoError(t, Init(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "company,role,location,date_applied,status,source,notes\n", string(data))

	err = Init(path)
	require.True(t, IsKind(err, KindAlreadyExists), "got %v", err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"), nil)
	require.True(t, IsKind(err, KindNotFound), "got %v", err)
	require.Contains(t, err.Error(), "jt init")
}

func TestLoadSchemaMismatch(t *testing.T) {
	path := writeFile(t, "company,role,status\nAcme,Engineer,applied\n")
	_, err := Open(path, nil)
	require.True(t, IsKind(err, KindSchemaMismatch), "got %v", err)
	require.Contains(t, err.Error(), "location, date_applied, source, notes")
}

func TestLoadEmptyFileIsSchemaMismatch(t *testing.T) {
	path := writeFile(t, "")
	_, err := Open(path, nil)
	require.True(t, IsKind(err, KindSchemaMismatch), "got %v", err)
}

func TestLoadMalformedCSV(t *testing.T) {
	path := writeFile(t, "company,role,location,date_applied,status,source,notes\n\"Acme,Engineer\n")
	_, err := Open(path, nil)
	require.True(t, IsKind(err, KindStorageUnavailable), "got %v", err)
}

func TestLoadReordersColumnsAndFillsShortRows(t *testing.T) {
	path := writeFile(t, "\ufeffnotes,status,role,company,extra,source,date_applied,location\n"+
		"call back,interview,Engineer,Acme,x\n")
	s, err := Open(path, nil)
	require.NoError(t, err)

	want := []Application{{Company: "Acme", Role: "Engineer", Status: StatusInterview, Notes: "call back"}}
	if diff := cmp.Diff(want, s.Applications()); diff != "" {
		t.Errorf("Applications() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	s.apps = []Application{
		{Company: "Acme", Role: "Engineer", Location: "Remote", DateApplied: "2025-01-02", Status: StatusApplied, Source: "LinkedIn", Notes: "said \"hi\", twice"},
		{Company: "Globex", Role: "SRE", DateApplied: "2025-01-03", Status: StatusOffer, Notes: "line one\nline two"},
		{Company: "Initech", Role: "QA", DateApplied: "2025-01-04", Status: StatusRejected},
	}
	require.NoError(t, s.Save())

	reloaded, err := Open(s.Path(), nil)
	require.NoError(t, err)
	if diff := cmp.Diff(s.apps, reloaded.Applications()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAddFoldsCRLFSoReloadMatches(t *testing.T) {
	s := newTestStore(t)
	added, err := s.Add(Application{Company: "Acme", Role: "Engineer", Notes: "line1\r\nline2"})
	require.NoError(t, err)
	require.Equal(t, "line1\nline2", added.Notes)

	updated, err := s.Update("Acme", "Engineer", Changes{Notes: "call\r\nback"})
	require.NoError(t, err)

	reloaded, err := Open(s.Path(), nil)
	require.NoError(t, err)
	if diff := cmp.Diff([]Application{updated}, reloaded.Applications()); diff != "" {
		t.Errorf("reload mismatch (-want +got):\n%s", diff)
	}
}

func TestAddDefaultsAndTrims(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Add(Application{Company: "  Acme ", Role: " Engineer", Location: " Berlin ", Source: " referral "})
	require.NoError(t, err)
	want := Application{Company: "Acme", Role: "Engineer", Location: "Berlin", DateApplied: "2025-03-14", Status: StatusApplied, Source: "referral"}
	require.Equal(t, want, got)

	reloaded, err := Open(s.Path(), nil)
	require.NoError(t, err)
	require.Equal(t, []Application{want}, reloaded.Applications())
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name string
		app  Application
		kind Kind
	}{
		{"missing company", Application{Company: "  ", Role: "Engineer"}, KindMissingRequiredField},
		{"missing role", Application{Company: "Acme"}, KindMissingRequiredField},
		{"bad status", Application{Company: "Acme", Role: "Engineer", Status: "Pending"}, KindInvalidStatus},
		{"bad date", Application{Company: "Acme", Role: "Engineer", DateApplied: "14/03/2025"}, KindInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			_, err := s.Add(tt.app)
			require.True(t, IsKind(err, tt.kind), "got %v", err)
			require.Empty(t, s.Applications())
		})
	}
}

func TestAddDuplicateKey(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(Application{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)

	_, err = s.Add(Application{Company: "Acme", Role: "Engineer", Status: "interview"})
	require.True(t, IsKind(err, KindDuplicateKey), "got %v", err)
	require.Len(t, s.Applications(), 1)

	// Same company, different role is fine.
	_, err = s.Add(Application{Company: "Acme", Role: "Manager"})
	require.NoError(t, err)
}

func TestAddThenListByStatus(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(Application{Company: "Acme", Role: "Engineer", Status: "applied"})
	require.NoError(t, err)

	got, err := s.List(Filter{Status: "applied"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Acme", got[0].Company)
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)
	for _, a := range []Application{
		{Company: "Acme", Role: "Engineer", Status: "applied"},
		{Company: "Acme", Role: "Manager", Status: "interview"},
		{Company: "acme", Role: "Engineer", Status: "applied"},
		{Company: "Globex", Role: "SRE", Status: "Interview"},
	} {
		_, err := s.Add(a)
		require.NoError(t, err)
	}

	roles := func(apps []Application) []string {
		var out []string
		for _, a := range apps {
			out = append(out, a.Company+"/"+a.Role)
		}
		return out
	}

	got, err := s.List(Filter{})
	require.NoError(t, err)
	require.Len(t, got, 4)

	got, err = s.List(Filter{Company: " Acme "})
	require.NoError(t, err)
	require.Equal(t, []string{"Acme/Engineer", "Acme/Manager"}, roles(got))

	got, err = s.List(Filter{Status: " INTERVIEW"})
	require.NoError(t, err)
	require.Equal(t, []string{"Acme/Manager", "Globex/SRE"}, roles(got))

	got, err = s.List(Filter{Status: "interview", Company: "Acme"})
	require.NoError(t, err)
	require.Equal(t, []string{"Acme/Manager"}, roles(got))

	got, err = s.List(Filter{Status: "offer"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestListRejectsInvalidStatusOnEmptyTable(t *testing.T) {
	s := newTestStore(t)
	_, err := s.List(Filter{Status: "Pending"})
	require.True(t, IsKind(err, KindInvalidStatus), "got %v", err)
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(Application{Company: "Acme", Role: "Engineer", Notes: "first"})
	require.NoError(t, err)

	got, err := s.Update("Acme", "Engineer", Changes{Status: " Interview "})
	require.NoError(t, err)
	require.Equal(t, StatusInterview, got.Status)
	require.Equal(t, "first", got.Notes)

	got, err = s.Update("Acme", "Engineer", Changes{Notes: " onsite next week "})
	require.NoError(t, err)
	require.Equal(t, StatusInterview, got.Status)
	require.Equal(t, "onsite next week", got.Notes)

	reloaded, err := Open(s.Path(), nil)
	require.NoError(t, err)
	require.Equal(t, []Application{got}, reloaded.Applications())
}

func TestUpdateNotFoundLeavesFileUnchanged(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(Application{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	_, err = s.Update("Acme", "engineer", Changes{Status: "offer"})
	require.True(t, IsKind(err, KindNotFound), "got %v", err)

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
}

func TestUpdateErrors(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(Application{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)

	_, err = s.Update("Acme", "Engineer", Changes{})
	require.True(t, IsKind(err, KindNothingToUpdate), "got %v", err)

	_, err = s.Update("Acme", "Engineer", Changes{Status: "Pending"})
	require.True(t, IsKind(err, KindInvalidStatus), "got %v", err)

	_, err = s.Update("", "Engineer", Changes{Status: "offer"})
	require.True(t, IsKind(err, KindMissingRequiredField), "got %v", err)
}

func TestUpdateAmbiguousMatch(t *testing.T) {
	path := writeFile(t, "company,role,location,date_applied,status,source,notes\n"+
		"Acme,Engineer,,2025-01-01,applied,,\n"+
		"Acme,Engineer,,2025-01-02,applied,,\n")
	s, err := Open(path, nil)
	require.NoError(t, err)

	_, err = s.Update("Acme", "Engineer", Changes{Status: "offer"})
	require.True(t, IsKind(err, KindAmbiguousMatch), "got %v", err)
}

func TestSummarize(t *testing.T) {
	s := newTestStore(t)
	require.Equal(t, Summary{Total: 0, ByStatus: []Bucket{}, BySource: []Bucket{}}, s.Summarize())

	for _, a := range []Application{
		{Company: "A", Role: "1", Status: "applied", Source: "LinkedIn"},
		{Company: "B", Role: "1", Status: "applied"},
		{Company: "C", Role: "1", Status: "interview", Source: "LinkedIn"},
		{Company: "D", Role: "1", Status: "offer", Source: "referral"},
	} {
		_, err := s.Add(a)
		require.NoError(t, err)
	}

	want := Summary{
		Total:    4,
		ByStatus: []Bucket{{"applied", 2}, {"interview", 1}, {"offer", 1}},
		BySource: []Bucket{{"LinkedIn", 2}, {UnknownSource, 1}, {"referral", 1}},
	}
	if diff := cmp.Diff(want, s.Summarize()); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompaniesAndRoles(t *testing.T) {
	s := newTestStore(t)
	for _, a := range []Application{
		{Company: "Globex", Role: "SRE"},
		{Company: "Acme", Role: "Manager"},
		{Company: "Acme", Role: "Engineer"},
	} {
		_, err := s.Add(a)
		require.NoError(t, err)
	}
	require.Equal(t, []string{"Acme", "Globex"}, s.Companies())
	require.Equal(t, []string{"Engineer", "Manager"}, s.Roles("Acme"))
	require.Equal(t, []string{"Engineer", "Manager", "SRE"}, s.Roles(""))
}

func TestUpdateWhitespaceValues(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Add(Application{Company: "Acme", Role: "Engineer", Notes: "first"})
	require.NoError(t, err)

	_, err = s.Update("Acme", "Engineer", Changes{Status: "   "})
	require.True(t, IsKind(err, KindInvalidStatus), "got %v", err)
	require.Contains(t, err.Error(), "status cannot be empty")

	got, err := s.Update("Acme", "Engineer", Changes{Notes: "  "})
	require.NoError(t, err)
	require.Empty(t, got.Notes)
	require.Equal(t, StatusApplied, got.Status)
}

func TestPaddedKeysFromFileStillMatch(t *testing.T) {
	path := writeFile(t, "company,role,location,date_applied,status,source,notes\n"+
		" Acme , Engineer ,,2025-01-01,applied,,\n")
	s, err := Open(path, nil)
	require.NoError(t, err)

	got, err := s.Update(" Acme", "Engineer ", Changes{Status: "offer"})
	require.NoError(t, err)
	require.Equal(t, StatusOffer, got.Status)

	matched, err := s.List(Filter{Company: "Acme"})
	require.NoError(t, err)
	require.Len(t, matched, 1)

	_, err = s.Add(Application{Company: "Acme", Role: "Engineer"})
	require.True(t, IsKind(err, KindDuplicateKey), "got %v", err)
}
