package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case CreateResult:
		o.printCreateResult(v)
	case JoinResult:
		o.printJoinResult(v)
	case LobbyInfo:
		o.printLobbyInfo(v)
	case StartResult:
		o.printStartResult(v)
	case ReconnectResult:
		o.printReconnectResult(v)
	case UserSnapshot:
		o.printUserSnapshot(v)
	case AskResult:
		o.printAskResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// CreateResult response type (matches API)
type CreateResult struct {
	PIN      string `json:"pin"`
	HostID   string `json:"host_id"`
	HostName string `json:"host_name"`
}

// JoinResult response type
type JoinResult struct {
	PIN             string   `json:"pin"`
	UserID          string   `json:"user_id"`
	ParticipantName string   `json:"participant_name"`
	HostName        string   `json:"host_name"`
	Participants    []string `json:"participants"`
}

// LobbyInfo response type
type LobbyInfo struct {
	PIN           string     `json:"pin"`
	HostName      string     `json:"host_name"`
	Participants  []string   `json:"participants"`
	SecretConcept string     `json:"secret_concept,omitempty"`
	Context       string     `json:"context,omitempty"`
	Topic         string     `json:"topic"`
	TimeLimit     int        `json:"time_limit"`
	StartTime     *time.Time `json:"start_time,omitempty"`
}

// StartResult response type
type StartResult struct {
	PIN          string    `json:"pin"`
	StartTime    time.Time `json:"start_time"`
	Participants []string  `json:"participants"`
}

// ReconnectResult response type
type ReconnectResult struct {
	PIN          string     `json:"pin"`
	UserID       string     `json:"user_id"`
	UserName     string     `json:"user_name"`
	IsHost       bool       `json:"is_host"`
	Topic        string     `json:"topic"`
	TimeLimit    int        `json:"time_limit"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	Participants []string   `json:"participants"`
}

// Question response type
type Question struct {
	QuestionID string    `json:"question_id"`
	Message    string    `json:"message"`
	Answer     string    `json:"answer,omitempty"`
	AskedAt    time.Time `json:"asked_at"`
}

// UserSnapshot response type
type UserSnapshot struct {
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Questions []Question `json:"questions"`
}

// AskResult response type
type AskResult struct {
	QuestionID string `json:"question_id"`
	Response   string `json:"response"`
	Message    string `json:"message"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	QuestionCount  int    `json:"question_count"`
	GuessedCorrect bool   `json:"guessed_correct"`
}

// Leaderboard response type
type Leaderboard struct {
	PIN     string             `json:"pin"`
	Entries []LeaderboardEntry `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printCreateResult(c CreateResult) {
	fmt.Printf("Lobby: %s\n", c.PIN)
	fmt.Printf("Host: %s (%s)\n", c.HostName, c.HostID)
	fmt.Println("Share the PIN with participants to let them join.")
}

func (o *Output) printJoinResult(j JoinResult) {
	fmt.Printf("Joined lobby %s as %s (%s)\n", j.PIN, j.ParticipantName, j.UserID)
	fmt.Printf("Host: %s\n", j.HostName)
	fmt.Printf("Participants: %s\n", strings.Join(j.Participants, ", "))
}

func (o *Output) printLobbyInfo(l LobbyInfo) {
	fmt.Printf("Lobby: %s\n", l.PIN)
	fmt.Printf("Host: %s\n", l.HostName)
	if l.Topic != "" {
		fmt.Printf("Topic: %s\n", l.Topic)
	}
	fmt.Printf("Time Limit: %ds\n", l.TimeLimit)
	if l.SecretConcept != "" {
		fmt.Printf("Secret: %s\n", l.SecretConcept)
	}
	if l.Context != "" {
		fmt.Printf("Context: %s\n", l.Context)
	}
	if l.StartTime != nil {
		fmt.Printf("Started: %s\n", l.StartTime.Format(time.RFC3339))
	} else {
		fmt.Println("Started: not yet")
	}
	fmt.Printf("Participants (%d):\n", len(l.Participants))
	for _, p := range l.Participants {
		fmt.Printf("  - %s\n", p)
	}
}

func (o *Output) printStartResult(s StartResult) {
	fmt.Printf("Lobby %s started at %s\n", s.PIN, s.StartTime.Format(time.RFC3339))
	fmt.Printf("Participants: %s\n", strings.Join(s.Participants, ", "))
}

func (o *Output) printReconnectResult(r ReconnectResult) {
	roleStr := "participant"
	if r.IsHost {
		roleStr = "host"
	}
	fmt.Printf("Reconnected to lobby %s as %s (%s)\n", r.PIN, r.UserName, roleStr)
	if r.Topic != "" {
		fmt.Printf("Topic: %s\n", r.Topic)
	}
	if r.StartTime != nil {
		fmt.Printf("Started: %s\n", r.StartTime.Format(time.RFC3339))
	}
	fmt.Printf("Participants: %s\n", strings.Join(r.Participants, ", "))
}

func (o *Output) printUserSnapshot(u UserSnapshot) {
	fmt.Printf("User: %s (%s) - %s\n", u.Name, u.UserID, u.Role)
	fmt.Printf("Questions (%d):\n", len(u.Questions))
	for _, q := range u.Questions {
		answer := q.Answer
		if answer == "" {
			answer = "(unanswered)"
		}
		fmt.Printf("  - %s -> %s\n", q.Message, answer)
	}
}

func (o *Output) printAskResult(a AskResult) {
	fmt.Printf("Q: %s\n", a.Message)
	fmt.Printf("A: %s\n", a.Response)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard for lobby %s:\n", l.PIN)
	for i, e := range l.Entries {
		marker := ""
		if e.GuessedCorrect {
			marker = " [guessed it]"
		}
		fmt.Printf("  %d. %s - %d questions%s\n", i+1, e.Name, e.QuestionCount, marker)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
