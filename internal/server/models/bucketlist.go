package models

import "time"

// Bucketlist is a named list owned by exactly one user (CreatedBy).
type Bucketlist struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
	CreatedBy    int64     `json:"created_by"`
}
