package errors

import stderrors "errors"

// Kind groups sentinel errors by how a caller should react to them.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindConflict
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

var kinds = []struct {
	kind    Kind
	members []error
}{
	{KindBadRequest, []error{ErrBadRequest, ErrEmptyContent, ErrContentTooLong, ErrEmptyName,
		ErrNotGroup, ErrInvalidTag, ErrInvalidPassword, ErrSelfDM}},
	{KindUnauthorized, []error{ErrUnauthorized, ErrInvalidCredentials, ErrInvalidSession}},
	{KindConflict, []error{ErrTagTaken, ErrPasswordMismatch, ErrDMExists, ErrAlreadyInvited,
		ErrAlreadyMember, ErrLastAdmin}},
	{KindNotFound, []error{ErrUserNotFound, ErrChatNotFound, ErrInviteNotFound, ErrNotMember,
		ErrMessageNotFound}},
}

// KindOf reports the Kind of the first known sentinel found in err's chain.
// Anything unknown, storage failures included, is KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	for _, group := range kinds {
		for _, target := range group.members {
			if stderrors.Is(err, target) {
				return group.kind
			}
		}
	}
	return KindInternal
}
