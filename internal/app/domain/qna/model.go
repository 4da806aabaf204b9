// Package qna holds the question-and-answer entities and the per-request
// actor identity resolved from session state.
package qna

// User is a registered account. Expert and admin are independent flags, not
// a mutually exclusive role enum; a user can carry both.
type User struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	PasswordHash string `db:"password"`
	Expert       bool   `db:"expert"`
	Admin        bool   `db:"admin"`
}

// Question is asked by one user and assigned to one expert. It is answered
// iff AnswerText is non-nil; there is no separate state flag.
type Question struct {
	ID           int64   `db:"id"`
	QuestionText string  `db:"question_text"`
	AnswerText   *string `db:"answer_text"`
	AskedByID    int64   `db:"asked_by_id"`
	ExpertID     int64   `db:"expert_id"`

	// Display names joined in by list/get queries.
	AskedByName string `db:"asked_by_name"`
	ExpertName  string `db:"expert_name"`
}

// Answered reports whether the question has been answered.
func (q Question) Answered() bool { return q.AnswerText != nil }

// Actor is the identity resolved for the current request.
type Actor struct {
	ID     int64
	Name   string
	Expert bool
	Admin  bool
}

// ActorFromUser projects a stored user onto the request identity.
func ActorFromUser(u User) Actor {
	return Actor{ID: u.ID, Name: u.Name, Expert: u.Expert, Admin: u.Admin}
}
