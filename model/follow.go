package model

import "time"

/*

Follow is a directed "user follows author" relation.

UserID:
User: the follower, "belongs-to" relation
AuthorID:
Author: the followed user, "belongs-to" relation
CreatedAt: time when relation is created

The pair (UserID, AuthorID) is the composite primary key, so a duplicate
follow is rejected by the database itself. Deleting either referenced user
cascades to the follow row. Self-follow is blocked at the policy level, not
here.

*/

type Follow struct {
	UserID    string `gorm:"primaryKey"`
	AuthorID  string `gorm:"primaryKey"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
}
