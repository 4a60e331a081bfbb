package repositories

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// Describe decodes a raw key/value pair of the store into a record kind and
// a one-line human readable detail. Unknown prefixes are reported as is.
func Describe(key, value []byte) (kind string, detail string, err error) {
	k := string(key)
	kind, _, _ = strings.Cut(k, ":")
	switch kind {
	case "seq":
		if len(value) != 8 {
			return kind, "", fmt.Errorf("sequence %q has %d bytes", k, len(value))
		}
		return kind, fmt.Sprintf("lease=%d", binary.BigEndian.Uint64(value)), nil
	case "user":
		var r userRecord
		if err = unmarshal(value, &r); err != nil {
			return kind, "", err
		}
		return kind, fmt.Sprintf("id=%d tag=%s admin=%t", r.ID, r.Tag, r.IsAdmin), nil
	case "tag", "dm":
		var id int64
		if err = unmarshal(value, &id); err != nil {
			return kind, "", err
		}
		return kind, fmt.Sprintf("-> %d", id), nil
	case "chat":
		var r chatRecord
		if err = unmarshal(value, &r); err != nil {
			return kind, "", err
		}
		return kind, fmt.Sprintf("id=%d name=%q group=%t", r.ID, r.Name, r.IsGroup), nil
	case "member":
		var r memberRecord
		if err = unmarshal(value, &r); err != nil {
			return kind, "", err
		}
		return kind, fmt.Sprintf("chat=%d user=%d admin=%t color=%s", r.ChatID, r.UserID, r.IsChatAdmin, r.Color), nil
	case "invite":
		var r inviteRecord
		if err = unmarshal(value, &r); err != nil {
			return kind, "", err
		}
		return kind, fmt.Sprintf("chat=%d user=%d", r.ChatID, r.UserID), nil
	case "msg":
		var r messageRecord
		if err = unmarshal(value, &r); err != nil {
			return kind, "", err
		}
		at := time.Unix(r.Created, 0).UTC().Format(time.DateTime)
		return kind, fmt.Sprintf("id=%d user=%d at=%s %q", r.ID, r.UserID, at, r.Content), nil
	case "membership", "invitation":
		return kind, "index", nil
	default:
		return kind, fmt.Sprintf("%d bytes", len(value)), nil
	}
}
