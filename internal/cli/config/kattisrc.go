package config

import (
	"os"

	appErr "kat/pkg/errors"

	"github.com/go-ini/ini"
)

// Kattisrc holds the judge credentials file.
type Kattisrc struct {
	Username       string
	Token          string
	Hostname       string
	LoginURL       string
	SubmissionURL  string
	SubmissionsURL string
}

// LoadKattisrc reads the INI credentials file downloaded from the judge.
func LoadKattisrc(path string) (Kattisrc, error) {
	var rc Kattisrc
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return rc, appErr.Newf(appErr.CredentialsMissing, "no kattisrc file found at %s", path)
		}
		return rc, appErr.Wrapf(err, appErr.ConfigInvalid, "stat kattisrc failed: %v", err)
	}
	file, err := ini.Load(path)
	if err != nil {
		return rc, appErr.Wrapf(err, appErr.ConfigInvalid, "parse kattisrc %s failed: %v", path, err)
	}

	user := file.Section("user")
	rc.Username = user.Key("username").String()
	rc.Token = user.Key("token").String()
	kattis := file.Section("kattis")
	rc.Hostname = kattis.Key("hostname").String()
	rc.LoginURL = kattis.Key("loginurl").String()
	rc.SubmissionURL = kattis.Key("submissionurl").String()
	rc.SubmissionsURL = kattis.Key("submissionsurl").String()

	if rc.Username == "" || rc.Token == "" {
		return rc, appErr.Newf(appErr.CredentialsMissing, "kattisrc %s has no username or token", path)
	}
	return rc, nil
}
