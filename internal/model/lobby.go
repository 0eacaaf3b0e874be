package model

import "time"

// PIN is the 7-digit numeric identifier for joining lobbies
type PIN string

const (
	// PINLength is the number of digits in a lobby PIN
	PINLength = 7
	// PINAlphabet is the characters used in PINs (leading zeros allowed)
	PINAlphabet = "0123456789"
)

// MemberRole distinguishes the host from participants
type MemberRole string

const (
	RoleHost        MemberRole = "host"
	RoleParticipant MemberRole = "participant"
)

// Member is a resolved lobby member: the host or a participant, with the role
// that resolution produced. Anyone resolvable this way has question-asking
// rights in the lobby.
type Member struct {
	Role MemberRole
	User *User
}

// IsHost reports whether the member resolved as the lobby's host
func (m *Member) IsHost() bool {
	return m.Role == RoleHost
}

// Lobby is a single game room: one host, zero or more participants, a secret
// concept the participants try to guess, and game parameters.
type Lobby struct {
	PIN           PIN
	Host          *User
	Participants  map[UserID]*User
	SecretConcept string
	Context       string     // optional extra context, host-visible only
	Topic         string     // visible to all members
	TimeLimit     int        // seconds
	StartTime     *time.Time // nil until the lobby is started
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AddParticipant inserts a participant keyed by user id. Names must be unique
// within the lobby and distinct from the host's name (case-sensitive).
func (l *Lobby) AddParticipant(u *User) error {
	if u.Name == l.Host.Name {
		return ErrDuplicateName
	}
	for _, p := range l.Participants {
		if p.Name == u.Name {
			return ErrDuplicateName
		}
	}
	if l.Participants == nil {
		l.Participants = make(map[UserID]*User)
	}
	l.Participants[u.ID] = u
	return nil
}

// RemoveParticipant removes the participant if present; removing an unknown
// id is a no-op.
func (l *Lobby) RemoveParticipant(id UserID) {
	delete(l.Participants, id)
}

// Participant returns the participant with the given id, or nil
func (l *Lobby) Participant(id UserID) *User {
	return l.Participants[id]
}

// ParticipantNames returns the names of all participants. Order follows map
// iteration and carries no meaning to callers.
func (l *Lobby) ParticipantNames() []string {
	names := make([]string, 0, len(l.Participants))
	for _, p := range l.Participants {
		names = append(names, p.Name)
	}
	return names
}

// GetMember resolves a user id as the host or a participant, or nil if the id
// belongs to neither. All identity resolution goes through this.
func (l *Lobby) GetMember(id UserID) *Member {
	if l.Host != nil && l.Host.ID == id {
		return &Member{Role: RoleHost, User: l.Host}
	}
	if p := l.Participants[id]; p != nil {
		return &Member{Role: RoleParticipant, User: p}
	}
	return nil
}

// Members returns the host plus every participant
func (l *Lobby) Members() []*User {
	members := make([]*User, 0, len(l.Participants)+1)
	if l.Host != nil {
		members = append(members, l.Host)
	}
	for _, p := range l.Participants {
		members = append(members, p)
	}
	return members
}

// Clone returns a deep copy of the lobby aggregate. Backends that hold
// lobbies in process memory hand out clones so readers never share mutable
// maps with writers.
func (l *Lobby) Clone() *Lobby {
	cp := *l
	cp.Host = l.Host.Clone()
	cp.Participants = make(map[UserID]*User, len(l.Participants))
	for id, p := range l.Participants {
		cp.Participants[id] = p.Clone()
	}
	if l.StartTime != nil {
		t := *l.StartTime
		cp.StartTime = &t
	}
	return &cp
}

// Start sets the start time, marking the lobby active. A lobby can be started
// at most once and never without participants.
func (l *Lobby) Start(at time.Time) error {
	if l.StartTime != nil {
		return ErrAlreadyStarted
	}
	if len(l.Participants) == 0 {
		return ErrNoParticipants
	}
	l.StartTime = &at
	return nil
}

// Started reports whether the lobby has been started
func (l *Lobby) Started() bool {
	return l.StartTime != nil
}
