package config

import (
	"os"
	"path/filepath"
	"testing"

	"kat/internal/testutil"
	appErr "kat/pkg/errors"
)

const sampleKattisrc = `[user]
username: alice
token: 0123abcd

[kattis]
hostname: open.kattis.com
loginurl: https://open.kattis.com/login
submissionurl: https://open.kattis.com/submit
submissionsurl: https://open.kattis.com/submissions
`

func TestLoadKattisrc(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "kattisrc", sampleKattisrc)

	rc, err := LoadKattisrc(path)
	testutil.MustNoError(t, err)
	testutil.AssertEqual(t, rc, Kattisrc{
		Username:       "alice",
		Token:          "0123abcd",
		Hostname:       "open.kattis.com",
		LoginURL:       "https://open.kattis.com/login",
		SubmissionURL:  "https://open.kattis.com/submit",
		SubmissionsURL: "https://open.kattis.com/submissions",
	})
}

func TestLoadKattisrcErrors(t *testing.T) {
	_, err := LoadKattisrc(filepath.Join(t.TempDir(), "kattisrc"))
	testutil.AssertCode(t, err, appErr.CredentialsMissing)

	path := testutil.WriteFile(t, t.TempDir(), "kattisrc", "[user]\nusername: alice\n")
	_, err = LoadKattisrc(path)
	testutil.AssertCode(t, err, appErr.CredentialsMissing)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	testutil.MustNoError(t, LoadEnv(filepath.Join(dir, ".env")))

	path := testutil.WriteFile(t, dir, ".env", "KAT_TEST_ONLY_VALUE=from-file\n")
	t.Setenv("KAT_TEST_ONLY_VALUE", "")
	os.Unsetenv("KAT_TEST_ONLY_VALUE")
	testutil.MustNoError(t, LoadEnv(path))
	testutil.AssertEqual(t, os.Getenv("KAT_TEST_ONLY_VALUE"), "from-file")
}
