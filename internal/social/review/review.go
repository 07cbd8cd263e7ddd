// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages the scored reviews users leave on titles.

Each author reviews a title at most once. The rule is checked by
[policy.AssertReviewAllowed] inside the insert transaction and backed by the
uq_review_author_title constraint for concurrent writers.
*/
package review

import "time"

// Review is a scored opinion on a title.
type Review struct {
	ID       int64  `json:"id"`
	TitleID  int64  `json:"-"`
	AuthorID string `json:"-"`
	// Author is the username of AuthorID.
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

const (
	// MinScore and MaxScore bound Review.Score.
	MinScore = 1
	MaxScore = 10

	resource      = "Review"
	titleResource = "Title"
)
