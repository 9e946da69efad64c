package domain

import "time"

// VoteKind is the direction of a vote.
type VoteKind string

const (
	VoteKindUp   VoteKind = "UPVOTE"
	VoteKindDown VoteKind = "DOWNVOTE"
)

// ValidVoteKind reports whether k is a known vote kind.
func ValidVoteKind(k VoteKind) bool {
	return k == VoteKindUp || k == VoteKindDown
}

// VoteState is the voter's current standing on a ticket: absent, up, or down.
type VoteState string

const (
	VoteStateNone VoteState = "NONE"
	VoteStateUp   VoteState = VoteState(VoteKindUp)
	VoteStateDown VoteState = VoteState(VoteKindDown)
)

// Vote is one voter's current choice on one ticket. At most one row exists per
// (ticket, voter) pair.
type Vote struct {
	TicketID  string
	VoterID   string
	Kind      VoteKind
	CreatedAt time.Time
}

// VoteOp names the persistence action a vote transition requires.
type VoteOp int

const (
	VoteOpNone VoteOp = iota
	VoteOpCreate
	VoteOpUpdate
	VoteOpDelete
)

// VoteTransition is the outcome of applying a requested vote to the current state.
type VoteTransition struct {
	NewState  VoteState
	Op        VoteOp
	UpDelta   int
	DownDelta int
}

// ApplyVote computes the transition for a vote toggle. Toggling the current kind
// removes the vote, requesting the opposite kind switches it, and voting from a
// clean state creates it. Counter deltas are floored at zero by the store.
func ApplyVote(current VoteState, requested VoteKind) VoteTransition {
	switch {
	case current == VoteState(requested):
		t := VoteTransition{NewState: VoteStateNone, Op: VoteOpDelete}
		if requested == VoteKindUp {
			t.UpDelta = -1
		} else {
			t.DownDelta = -1
		}
		return t
	case current == VoteStateNone:
		t := VoteTransition{NewState: VoteState(requested), Op: VoteOpCreate}
		if requested == VoteKindUp {
			t.UpDelta = 1
		} else {
			t.DownDelta = 1
		}
		return t
	default:
		t := VoteTransition{NewState: VoteState(requested), Op: VoteOpUpdate}
		if requested == VoteKindUp {
			t.UpDelta = 1
			t.DownDelta = -1
		} else {
			t.UpDelta = -1
			t.DownDelta = 1
		}
		return t
	}
}
