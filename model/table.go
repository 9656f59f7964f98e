package model

// Table is a table name from the closed set below. Only these values are ever
// interpolated into SQL.
type Table string

const (
	TableDebates            Table = "debates"
	TableArguments          Table = "arguments"
	TableComments           Table = "comments"
	TableNotices            Table = "notices"
	TableNoticeComments     Table = "notice_comments"
	TableArgumentLikes      Table = "argument_likes"
	TableCommentLikes       Table = "comment_likes"
	TableNoticeLikes        Table = "notice_likes"
	TableNoticeCommentLikes Table = "notice_comment_likes"
	TableProfiles           Table = "profiles"
	TableReports            Table = "reports"
)

// CooldownTables are the tables whose latest row per user throttles writes.
var CooldownTables = []Table{
	TableArguments,
	TableComments,
	TableNoticeComments,
	TableNoticeLikes,
}

func IsCooldownTable(t Table) bool {
	for _, c := range CooldownTables {
		if c == t {
			return true
		}
	}
	return false
}
