// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment manages discussion threads attached to reviews.
package comment

import "time"

// Comment is a reply to a review.
type Comment struct {
	ID       int64  `json:"id"`
	ReviewID int64  `json:"-"`
	AuthorID string `json:"-"`
	// Author is the username of AuthorID.
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

// Thread addresses the review a comment belongs to, as given by the request path.
type Thread struct {
	TitleID  int64
	ReviewID int64
}

const resource = "Comment"
