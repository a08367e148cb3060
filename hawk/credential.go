package hawk

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Credential holds the attributes of a parsed Hawk header value.
// Parsing is purely syntactic: mac and hash are base64-decoded but
// never checked against anything.
type Credential struct {
	ID    string
	TS    time.Time
	Nonce string
	MAC   []byte
	Hash  []byte
	Ext   string
	App   string
	Dlg   string
}

// ParseCredential parses the attribute list that follows the scheme
// token, e.g. `id="xyz", ts="1353832234", nonce="abc", mac="..."`.
// Attributes are comma-separated key="value" pairs; values must be
// double-quoted and may not contain quotes or backslashes. Every field
// is optional at this layer — which ones a caller requires is policy,
// so an empty payload yields an empty credential.
func ParseCredential(payload string) (*Credential, error) {
	cred := &Credential{}
	seen := make(map[string]bool)

	s := strings.TrimSpace(payload)
	for len(s) > 0 {
		eq := strings.IndexByte(s, '=')
		if eq < 0 {
			return nil, fmt.Errorf("missing '=' in Hawk attribute %q", s)
		}
		key := strings.TrimSpace(s[:eq])
		s = s[eq+1:]

		if len(s) == 0 || s[0] != '"' {
			return nil, fmt.Errorf("value of Hawk field %s is not quoted", key)
		}
		s = s[1:]
		end := strings.IndexByte(s, '"')
		if end < 0 {
			return nil, fmt.Errorf("unterminated value for Hawk field %s", key)
		}
		value := s[:end]
		if i := strings.IndexByte(value, '\\'); i >= 0 {
			return nil, fmt.Errorf("escape in value for Hawk field %s", key)
		}
		s = strings.TrimSpace(s[end+1:])

		if len(s) > 0 {
			if s[0] != ',' {
				return nil, fmt.Errorf("junk after Hawk field %s", key)
			}
			s = strings.TrimSpace(s[1:])
			if len(s) == 0 {
				return nil, fmt.Errorf("trailing comma after Hawk field %s", key)
			}
		}

		if seen[key] {
			return nil, fmt.Errorf("duplicate Hawk field %s", key)
		}
		seen[key] = true

		if err := cred.setField(key, value); err != nil {
			return nil, err
		}
	}

	return cred, nil
}

func (c *Credential) setField(key, value string) error {
	switch key {
	case "id":
		c.ID = value
	case "ts":
		secs, err := strconv.ParseInt(value, 10, 64)
		if err != nil || secs < 0 {
			return fmt.Errorf("invalid ts %q", value)
		}
		c.TS = time.Unix(secs, 0)
	case "nonce":
		c.Nonce = value
	case "mac":
		mac, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return fmt.Errorf("invalid base64 in mac")
		}
		c.MAC = mac
	case "hash":
		hash, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return fmt.Errorf("invalid base64 in hash")
		}
		c.Hash = hash
	case "ext":
		c.Ext = value
	case "app":
		c.App = value
	case "dlg":
		c.Dlg = value
	default:
		return fmt.Errorf("invalid Hawk field %s", key)
	}
	return nil
}
