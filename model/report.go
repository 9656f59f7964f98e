package model

import "time"

type ReportTargetType string

const (
	ReportTargetArgument      ReportTargetType = "argument"
	ReportTargetComment       ReportTargetType = "comment"
	ReportTargetNoticeComment ReportTargetType = "notice_comment"
)

// Report is write-once. Filing one notifies the admin address.
type Report struct {
	Id         string           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time        `json:"created_at"`
	ReporterID string           `gorm:"not null;index" json:"reporter_id"`
	Reporter   *Profile         `gorm:"foreignKey:ReporterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	TargetType ReportTargetType `gorm:"not null" json:"target_type"`
	TargetID   string           `gorm:"not null" json:"target_id"`
	Reason     string           `gorm:"not null" json:"reason"`
}

// ReportFiled is the event published after a report is stored.
type ReportFiled struct {
	Report        Report `json:"report"`
	ReporterName  string `json:"reporter_name"`
	ReporterEmail string `json:"reporter_email"`
}
