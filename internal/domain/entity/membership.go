package entity

import (
	"time"
)

type MembershipStatus string

const (
	MembershipStatusPending  MembershipStatus = "pending"
	MembershipStatusMember   MembershipStatus = "member"
	MembershipStatusCoHost   MembershipStatus = "co-host"
	MembershipStatusInactive MembershipStatus = "inactive"
)

func ValidMembershipStatus(s MembershipStatus) bool {
	switch s {
	case MembershipStatusPending, MembershipStatusMember, MembershipStatusCoHost, MembershipStatusInactive:
		return true
	}
	return false
}

// Membership joins a user to a group. At most one row per (user, group).
type Membership struct {
	ID        string           `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	GroupID   string           `gorm:"type:uuid;not null;uniqueIndex:idx_membership_group_user;constraint:OnDelete:CASCADE" json:"groupId"`
	Group     *Group           `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    string           `gorm:"type:uuid;not null;uniqueIndex:idx_membership_group_user" json:"userId"`
	User      *User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Status    MembershipStatus `gorm:"not null;default:'pending'" json:"status"`
}
