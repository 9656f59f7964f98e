package model

// View rows are the denormalized shapes returned by read handlers.

type DebateSummary struct {
	Debate
	// Number of arguments plus the number of comments under them.
	ArgumentCount int `json:"argument_count"`
}

type ArgumentView struct {
	Argument
	Author       *PublicProfile `json:"profile"`
	IsLiked      bool           `json:"is_liked"`
	CommentCount int            `json:"comment_count"`
}

type SideGroup struct {
	Side      Side            `json:"side"`
	Arguments []*ArgumentView `json:"arguments"`
}

type CommentView struct {
	Comment
	Author  *PublicProfile `json:"profile"`
	IsLiked bool           `json:"is_liked"`
}

type NoticeView struct {
	Notice
	CommentCount int  `json:"comment_count"`
	IsLiked      bool `json:"is_liked"`
}

type NoticeCommentView struct {
	NoticeComment
	Author  *PublicProfile `json:"profile"`
	IsLiked bool           `json:"is_liked"`
}
