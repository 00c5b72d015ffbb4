package model

// Comment is the latest comment of a notification thread. Ephemeral,
// fetched once per notification and handed to the command dispatcher.
type Comment struct {
	IssueURL string      `json:"issue_url"`
	Body     string      `json:"body"`
	User     CommentUser `json:"user"`
}

// CommentUser identifies the comment author
type CommentUser struct {
	Login string `json:"login"`
}
