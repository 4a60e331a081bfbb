package repositories

import (
	"chat-poll/domain"
	"fmt"
	"strconv"
	"strings"
)

// Numeric key segments are padded to 20 digits so that Badger's
// lexicographic iteration order matches numeric order.
const idWidth = 20

func pad(id int64) string {
	return fmt.Sprintf("%0*d", idWidth, id)
}

func seqKey(entity string) []byte { return []byte("seq:" + entity) }

func userKey(id domain.UserID) []byte { return []byte("user:" + pad(int64(id))) }

func tagKey(tag string) []byte { return []byte("tag:" + tag) }

func chatKey(id domain.ChatID) []byte { return []byte("chat:" + pad(int64(id))) }

// dmKey is the same for (a, b) and (b, a).
func dmKey(a, b domain.UserID) []byte {
	if a > b {
		a, b = b, a
	}
	return []byte("dm:" + pad(int64(a)) + ":" + pad(int64(b)))
}

func memberKey(chatID domain.ChatID, userID domain.UserID) []byte {
	return []byte("member:" + pad(int64(chatID)) + ":" + pad(int64(userID)))
}

func memberPrefix(chatID domain.ChatID) []byte {
	return []byte("member:" + pad(int64(chatID)) + ":")
}

func membershipKey(userID domain.UserID, chatID domain.ChatID) []byte {
	return []byte("membership:" + pad(int64(userID)) + ":" + pad(int64(chatID)))
}

func membershipPrefix(userID domain.UserID) []byte {
	return []byte("membership:" + pad(int64(userID)) + ":")
}

func inviteKey(chatID domain.ChatID, userID domain.UserID) []byte {
	return []byte("invite:" + pad(int64(chatID)) + ":" + pad(int64(userID)))
}

func invitePrefix(chatID domain.ChatID) []byte {
	return []byte("invite:" + pad(int64(chatID)) + ":")
}

func invitationKey(userID domain.UserID, chatID domain.ChatID) []byte {
	return []byte("invitation:" + pad(int64(userID)) + ":" + pad(int64(chatID)))
}

func invitationPrefix(userID domain.UserID) []byte {
	return []byte("invitation:" + pad(int64(userID)) + ":")
}

func messageKey(chatID domain.ChatID, id domain.MessageID) []byte {
	return []byte("msg:" + pad(int64(chatID)) + ":" + pad(int64(id)))
}

func messagePrefix(chatID domain.ChatID) []byte {
	return []byte("msg:" + pad(int64(chatID)) + ":")
}

// lastSegment parses the trailing numeric segment of a key such as
// "membership:{user}:{chat}".
func lastSegment(key []byte) (int64, error) {
	s := string(key)
	idx := strings.LastIndexByte(s, ':')
	if idx < 0 {
		return 0, fmt.Errorf("malformed key %q", s)
	}
	return strconv.ParseInt(s[idx+1:], 10, 64)
}
