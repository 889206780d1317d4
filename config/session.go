// Package config loads and saves the small piece of state a client needs
// to resume a session across restarts: the two bootstrap root ids handed
// out by DirectoryHelper the first time a user's root or configuration
// root is touched.
//
// Grounded in the teacher's config package, which builds an upspin.Config
// from a YAML file of key/value pairs; this is the same idea scaled down
// to the two fields this implementation actually needs to persist.
package config // import "github.com/maidsafe-archive/safe-nfs-go/config"

import (
	"encoding/hex"
	"io"
	"io/ioutil"
	"os"
	osuser "os/user"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"

	"github.com/maidsafe-archive/safe-nfs-go/errors"
	"github.com/maidsafe-archive/safe-nfs-go/netclient"
	"github.com/maidsafe-archive/safe-nfs-go/netid"
)

// Session is the persisted state of a client's bootstrap roots. A zero
// Session (both ids zero) is valid: it simply means neither root has been
// created yet, and DirectoryHelper will bootstrap them on first use.
type Session struct {
	UserName            string `yaml:"username"`
	UserRootID          string `yaml:"user_root_id,omitempty"`
	ConfigurationRootID string `yaml:"configuration_root_id,omitempty"`
}

// yamlSession mirrors Session's field layout and is the type Load and Save
// hand to yaml. Both root ids are already hex strings in Session (see
// encodeID/decodeID), so the two types convert directly into each other.
type yamlSession struct {
	UserName            string `yaml:"username"`
	UserRootID          string `yaml:"user_root_id,omitempty"`
	ConfigurationRootID string `yaml:"configuration_root_id,omitempty"`
}

// New returns an empty session for userName, with no roots bootstrapped.
func New(userName string) Session {
	return Session{UserName: userName}
}

// UserRootIDName decodes the persisted user root id, if any.
func (s Session) UserRootIDName() (netid.NetworkName, bool) {
	return decodeID(s.UserRootID)
}

// ConfigurationRootIDName decodes the persisted configuration root id, if any.
func (s Session) ConfigurationRootIDName() (netid.NetworkName, bool) {
	return decodeID(s.ConfigurationRootID)
}

// SetUserRootID records id as the session's bootstrapped user root.
func (s Session) SetUserRootID(id netid.NetworkName) Session {
	s.UserRootID = encodeID(id)
	return s
}

// SetConfigurationRootID records id as the session's bootstrapped
// configuration root.
func (s Session) SetConfigurationRootID(id netid.NetworkName) Session {
	s.ConfigurationRootID = encodeID(id)
	return s
}

func encodeID(id netid.NetworkName) string {
	if id.IsZero() {
		return ""
	}
	return id.String()
}

func decodeID(hexID string) (netid.NetworkName, bool) {
	if hexID == "" {
		return netid.NetworkName{}, false
	}
	var id netid.NetworkName
	n, err := hex.Decode(id[:], []byte(hexID))
	if err != nil || n != len(id) {
		return netid.NetworkName{}, false
	}
	return id, true
}

// Load reads a Session from r, formatted as YAML with the keys username,
// user_root_id, and configuration_root_id.
func Load(r io.Reader) (Session, error) {
	const op = "config.Load"
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return Session{}, errors.E(op, err)
	}
	var ys yamlSession
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Session{}, errors.E(op, errors.ParameterInvalid, errors.Errorf("parsing YAML session: %v", err))
	}
	return Session(ys), nil
}

// Save writes s to w as YAML.
func Save(w io.Writer, s Session) error {
	const op = "config.Save"
	data, err := yaml.Marshal(yamlSession(s))
	if err != nil {
		return errors.E(op, err)
	}
	_, err = w.Write(data)
	if err != nil {
		return errors.E(op, err)
	}
	return nil
}

// FromFile loads a Session from the named file. If name is not absolute
// and cannot be opened directly, $HOME/.safe-nfs/<name> is tried next.
func FromFile(name string) (Session, error) {
	const op = "config.FromFile"
	f, err := os.Open(name)
	if err != nil && !filepath.IsAbs(name) && os.IsNotExist(err) {
		home, errHome := Homedir()
		if errHome == nil {
			f, err = os.Open(filepath.Join(home, ".safe-nfs", name))
		}
	}
	if err != nil {
		return Session{}, errors.E(op, err)
	}
	defer f.Close()
	return Load(f)
}

// SaveToFile persists s to the named file, creating its parent directory
// under $HOME/.safe-nfs if name is not absolute.
func SaveToFile(name string, s Session) error {
	const op = "config.SaveToFile"
	path := name
	if !filepath.IsAbs(name) {
		home, err := Homedir()
		if err != nil {
			return errors.E(op, err)
		}
		dir := filepath.Join(home, ".safe-nfs")
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.E(op, err)
		}
		path = filepath.Join(dir, name)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.E(op, err)
	}
	defer f.Close()
	return Save(f, s)
}

// ApplyTo seeds client's bootstrap roots from s, so a client resumes
// whatever was bootstrapped in a previous run instead of creating fresh
// roots.
func ApplyTo(client netclient.Client, s Session) {
	if id, ok := s.UserRootIDName(); ok {
		client.SetUserRootDirectoryID(id)
	}
	if id, ok := s.ConfigurationRootIDName(); ok {
		client.SetConfigurationRootDirectoryID(id)
	}
}

// CaptureFrom returns a Session reflecting client's current bootstrap
// roots, to be persisted for the next run.
func CaptureFrom(client netclient.Client, userName string) Session {
	s := New(userName)
	if id := client.UserRootDirectoryID(); !id.IsZero() {
		s = s.SetUserRootID(id)
	}
	if id := client.ConfigurationRootDirectoryID(); !id.IsZero() {
		s = s.SetConfigurationRootID(id)
	}
	return s
}

// Homedir returns the home directory of the OS' logged-in user.
func Homedir() (string, error) {
	const op = "config.Homedir"
	u, err := osuser.Current()
	if u == nil {
		if err != nil {
			return "", errors.E(op, errors.Errorf("lookup of current user failed: %v", err))
		}
		return "", errors.E(op, errors.Str("lookup of current user failed"))
	}
	if u.HomeDir == "" {
		return "", errors.E(op, errors.MetaDataMissingOrCorrupted, errors.Str("user home directory not found"))
	}
	return u.HomeDir, nil
}
