package model

import "time"

/*

Post is a single publication by a user.

Id: primary key
CreatedAt: time when entity is created

AuthorID:
Author: user who published the post, "belongs-to" relation. Required and
		immutable after creation.
GroupID:
Group: optional community the post is tagged with, "belongs-to" relation.
	   Cleared (not cascaded) when the group is deleted.

Text: post body in plain text, required
PubDate: publication timestamp, set once at creation and never updated.
		 Feeds order by PubDate descending (newest first).
ImageKey: optional reference into the image file store, empty when the post
		  has no image

*/

type Post struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	AuthorID  string `gorm:"not null"`
	Author    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *string
	Group     *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Text      string    `gorm:"not null"`
	PubDate   time.Time `gorm:"index"`
	ImageKey  string
}
