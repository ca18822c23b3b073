package model

import "time"

/*

Comment is a user's reply on a Post.

Id: primary key
PostID:
Post: the post commented on, "belongs-to" relation. Comments are deleted
	  together with their post (the store performs the cascade explicitly).
AuthorID:
Author: user who wrote the comment, "belongs-to" relation

Text: comment body, required
Created: creation timestamp, set once. Comment lists order by Created
		 descending (newest first).

*/

type Comment struct {
	Id       string `gorm:"primaryKey"`
	PostID   string `gorm:"not null"`
	Post     Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID string `gorm:"not null"`
	Author   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text     string `gorm:"not null"`
	Created  time.Time
}
