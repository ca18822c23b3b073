package model

import "time"

/*

Group is a named community/topic a Post can be tagged with.

Id: primary key
CreatedAt: time when entity is created

Title: display name
Slug: unique URL key, e.g. /group/{slug}/
Description: free-form description shown on the group page

Deleting a Group does not delete its Posts, it only clears their group
reference (see Post.GroupID constraint).

*/

type Group struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	Title       string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string
}
