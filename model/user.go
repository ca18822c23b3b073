package model

import "time"

/*

User is a registered identity on the platform.

Id: primary key
CreatedAt: time when entity is created

Username: unique handle, also used as the profile URL key
HashedPassword: bcrypt hash, owned by the auth subsystem

The core domain only ever reads users; it never mutates them.

*/

type User struct {
	Id             string `gorm:"primaryKey"`
	CreatedAt      time.Time
	Username       string `gorm:"uniqueIndex;not null"`
	HashedPassword string `json:"-"`
}
